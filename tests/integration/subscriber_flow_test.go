package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestSubscriberFlow_RoleGate(t *testing.T) {
	app := setupApp(t)
	userToken, _ := app.registerUser(t, "plain@test.com", "")

	rec := app.request("GET", "/api/v1/subscriber/tracking", "", userToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a regular user, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubscriberFlow_AnonymousAggregate(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice@test.com", "")
	bobToken, _ := app.registerUser(t, "bob@test.com", "")
	subToken, _ := app.registerUser(t, "sub@test.com", "subscriber")

	app.createInvestment(t, aliceToken,
		`{"symbol":"AAPL","asset_type":"stocks","amount":10,"purchase_price":100,"current_price":150}`)
	app.createInvestment(t, aliceToken,
		`{"symbol":"BTC","asset_type":"crypto","amount":1,"purchase_price":30000}`)
	app.createInvestment(t, bobToken,
		`{"symbol":"GOOG","asset_type":"stocks","amount":2,"purchase_price":120,"current_price":150}`)

	rec := app.request("GET", "/api/v1/subscriber/tracking", "", subToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Cross-user records are aggregated without owner identifiers.
	if strings.Contains(rec.Body.String(), "user_id") {
		t.Errorf("aggregate leaked an owner identifier: %s", rec.Body.String())
	}

	d := data(t, rec)
	if d["total_investments"] != 3.0 {
		t.Errorf("expected 3 records across users, got %v", d["total_investments"])
	}
	dist := d["asset_type_distribution"].(map[string]interface{})
	if dist["stocks"] != 2.0 {
		t.Errorf("expected 2 stocks records, got %v", dist["stocks"])
	}
	if dist["crypto"] != 1.0 {
		t.Errorf("expected 1 crypto record, got %v", dist["crypto"])
	}

	// Narrow by asset type.
	rec = app.request("GET", "/api/v1/subscriber/tracking?asset_type=crypto", "", subToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	d = data(t, rec)
	if d["total_investments"] != 1.0 {
		t.Errorf("expected 1 crypto record, got %v", d["total_investments"])
	}
}

func TestSubscriberFlow_TrackingAndInsights(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice@test.com", "")
	subToken, _ := app.registerUser(t, "sub@test.com", "subscriber")

	app.createInvestment(t, aliceToken,
		`{"symbol":"AAPL","asset_type":"stocks","amount":10,"purchase_price":100,"current_price":150}`)
	app.createInvestment(t, aliceToken,
		`{"symbol":"BTC","asset_type":"crypto","amount":1,"purchase_price":30000}`)

	// Save a stocks-only filter.
	rec := app.request("POST", "/api/v1/subscriber/tracking",
		`{"filters":{"asset_type":"stocks"}}`, subToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("tracking setup failed: %d %s", rec.Code, rec.Body.String())
	}
	trackingID := data(t, rec)["id"].(string)

	rec = app.request("GET", "/api/v1/subscriber/tracking/"+trackingID+"/insights", "", subToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("insights failed: %d %s", rec.Code, rec.Body.String())
	}
	d := data(t, rec)

	tracking := d["tracking"].(map[string]interface{})
	if tracking["id"] != trackingID {
		t.Errorf("expected tracking id %s, got %v", trackingID, tracking["id"])
	}

	insights := d["insights"].(map[string]interface{})
	if insights["total_investments"] != 1.0 {
		t.Errorf("expected 1 matching record, got %v", insights["total_investments"])
	}
	if insights["total_value"] != 1500.0 {
		t.Errorf("expected total_value 1500, got %v", insights["total_value"])
	}
	perf := insights["performance"].([]interface{})
	if len(perf) != 1 {
		t.Fatalf("expected 1 performance point, got %d", len(perf))
	}
	point := perf[0].(map[string]interface{})
	if point["roi"] != 50.0 {
		t.Errorf("expected roi 50, got %v", point["roi"])
	}
}

func TestSubscriberFlow_InsightsIsolatedPerSubscriber(t *testing.T) {
	app := setupApp(t)
	subToken, _ := app.registerUser(t, "sub@test.com", "subscriber")
	otherToken, _ := app.registerUser(t, "other@test.com", "subscriber")

	rec := app.request("POST", "/api/v1/subscriber/tracking",
		`{"filters":{"asset_type":"crypto"}}`, subToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("tracking setup failed: %d %s", rec.Code, rec.Body.String())
	}
	trackingID := data(t, rec)["id"].(string)

	rec = app.request("GET", "/api/v1/subscriber/tracking/"+trackingID+"/insights", "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another subscriber's filter, got %d", rec.Code)
	}
}

func TestSubscriberFlow_EmptyMatchReturnsZeros(t *testing.T) {
	app := setupApp(t)
	subToken, _ := app.registerUser(t, "sub@test.com", "subscriber")

	rec := app.request("GET", "/api/v1/subscriber/tracking?asset_type=commodities", "", subToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	d := data(t, rec)
	if d["total_investments"] != 0.0 {
		t.Errorf("expected 0 records, got %v", d["total_investments"])
	}
	if d["average_roi"] != 0.0 {
		t.Errorf("expected average_roi 0, got %v", d["average_roi"])
	}
	// Empty matches still serialize the distribution as an object.
	if _, ok := d["asset_type_distribution"].(map[string]interface{}); !ok {
		t.Errorf("expected asset_type_distribution object, got %v", d["asset_type_distribution"])
	}
}
