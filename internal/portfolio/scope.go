package portfolio

// Scope is the query scope an aggregation request runs under: restricted to
// one owner's records, or unrestricted across all users. It is resolved once
// at the request boundary from the caller's role, so business logic never
// re-checks role strings.
type Scope struct {
	ownerID      string
	unrestricted bool
}

// OwnerScope restricts record fetches to a single owner.
func OwnerScope(ownerID string) Scope {
	return Scope{ownerID: ownerID}
}

// UnrestrictedScope reads across all users (admin views and anonymous
// aggregation).
func UnrestrictedScope() Scope {
	return Scope{unrestricted: true}
}

// Unrestricted reports whether the scope spans all owners.
func (s Scope) Unrestricted() bool { return s.unrestricted }

// OwnerID returns the owner the scope is restricted to. It is only
// meaningful when Unrestricted is false.
func (s Scope) OwnerID() string { return s.ownerID }
