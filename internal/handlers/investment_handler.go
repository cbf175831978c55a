package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "investrack/internal/errors"
	"investrack/internal/models"
	"investrack/internal/portfolio"
	"investrack/internal/services"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for recording a position.
type CreateInvestmentRequest struct {
	Symbol        string                  `json:"symbol" binding:"required,min=1,max=20"`
	AssetType     models.AssetType        `json:"asset_type" binding:"required,asset_type"`
	Amount        float64                 `json:"amount" binding:"gte=0"`
	PurchasePrice float64                 `json:"purchase_price" binding:"gte=0"`
	CurrentPrice  *float64                `json:"current_price" binding:"omitempty,gte=0"`
	PurchaseDate  *time.Time              `json:"purchase_date"`
	Status        models.InvestmentStatus `json:"status" binding:"omitempty,investment_status"`
	Notes         string                  `json:"notes" binding:"max=500"`
}

// UpdateInvestmentRequest represents a partial investment update payload.
type UpdateInvestmentRequest struct {
	Symbol        *string                  `json:"symbol" binding:"omitempty,min=1,max=20"`
	AssetType     *models.AssetType        `json:"asset_type" binding:"omitempty,asset_type"`
	Amount        *float64                 `json:"amount" binding:"omitempty,gte=0"`
	PurchasePrice *float64                 `json:"purchase_price" binding:"omitempty,gte=0"`
	CurrentPrice  *float64                 `json:"current_price" binding:"omitempty,gte=0"`
	PurchaseDate  *time.Time               `json:"purchase_date"`
	Status        *models.InvestmentStatus `json:"status" binding:"omitempty,investment_status"`
	Notes         *string                  `json:"notes" binding:"omitempty,max=500"`
}

// portfolioQuery holds the optional owner-view filters.
type portfolioQuery struct {
	AssetType models.AssetType        `form:"asset_type" binding:"omitempty,asset_type"`
	Status    models.InvestmentStatus `form:"status" binding:"omitempty,investment_status"`
}

// InvestmentResponse is an investment record with its derived valuation fields.
type InvestmentResponse struct {
	models.Investment
	portfolio.Metrics
}

func newInvestmentResponse(inv *models.Investment) InvestmentResponse {
	return InvestmentResponse{Investment: *inv, Metrics: portfolio.Compute(inv)}
}

// CreateInvestment records a new position for the authenticated user.
// @Summary     Create an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment data"
// @Success     201 {object} InvestmentResponse "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(userID, services.CreateInvestmentInput{
		Symbol:        req.Symbol,
		AssetType:     req.AssetType,
		Amount:        req.Amount,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  req.PurchaseDate,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.create", "investment", investment.ID, c.ClientIP(), map[string]any{
		"symbol":     investment.Symbol,
		"asset_type": investment.AssetType,
	})

	respondData(c, http.StatusCreated, newInvestmentResponse(investment))
}

// GetInvestments returns the requester's aggregated portfolio. Admins see all
// users' records; everyone else is scoped to their own.
// @Summary     Get aggregated portfolio
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       asset_type query string false "Filter by asset type"
// @Param       status query string false "Filter by status"
// @Success     200 {object} portfolio.OwnerPortfolio "Aggregated positions and summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	role, err := getRole(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query portfolioQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Resolve the query scope once at the boundary.
	scope := portfolio.OwnerScope(userID)
	if role == models.RoleAdmin {
		scope = portfolio.UnrestrictedScope()
	}

	filter := services.InvestmentFilter{}
	if query.AssetType != "" {
		filter.AssetType = &query.AssetType
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	result, err := h.investmentService.GetPortfolio(scope, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, result)
}

// GetInvestment returns a single investment owned by the requester.
// @Summary     Get an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} InvestmentResponse "Investment"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, newInvestmentResponse(investment))
}

// UpdateInvestment applies a partial update to an owned investment.
// @Summary     Update an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} InvestmentResponse "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(userID, investmentID, services.UpdateInvestmentInput{
		Symbol:        req.Symbol,
		AssetType:     req.AssetType,
		Amount:        req.Amount,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  req.PurchaseDate,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.update", "investment", investment.ID, c.ClientIP(), nil)

	respondData(c, http.StatusOK, newInvestmentResponse(investment))
}

// DeleteInvestment removes an owned investment.
// @Summary     Delete an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string]interface{} "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(userID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.delete", "investment", investmentID, c.ClientIP(), nil)

	respondData(c, http.StatusOK, gin.H{})
}
