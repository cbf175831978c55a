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

// SubscriberHandler handles tracking filters and anonymous aggregation.
type SubscriberHandler struct {
	trackingService services.TrackingServicer
	auditService    services.AuditServicer
}

// NewSubscriberHandler creates a new SubscriberHandler.
func NewSubscriberHandler(trackingService services.TrackingServicer, auditService services.AuditServicer) *SubscriberHandler {
	return &SubscriberHandler{trackingService: trackingService, auditService: auditService}
}

// DateRangePayload is the optional date window inside a tracking filter.
type DateRangePayload struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// TrackingFiltersPayload is the filter definition inside a setup request.
type TrackingFiltersPayload struct {
	AssetType *models.AssetType `json:"asset_type" binding:"omitempty,asset_type"`
	RiskLevel *models.RiskLevel `json:"risk_level" binding:"omitempty,risk_level"`
	MinAmount *float64          `json:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount *float64          `json:"max_amount" binding:"omitempty,gte=0"`
	DateRange *DateRangePayload `json:"date_range"`
}

// SetupTrackingRequest represents the request payload for saving a tracking filter.
type SetupTrackingRequest struct {
	Filters TrackingFiltersPayload `json:"filters" binding:"required"`
}

// aggregateQuery holds the ad hoc cross-subscriber query parameters.
type aggregateQuery struct {
	AssetType models.AssetType `form:"asset_type" binding:"omitempty,asset_type"`
}

// InsightsResponse pairs a tracking filter with its computed insight.
type InsightsResponse struct {
	Tracking *models.TrackingFilter   `json:"tracking"`
	Insights *portfolio.FilterInsight `json:"insights"`
}

// SetupTracking stores a subscriber's tracking filter.
// @Summary     Create a tracking filter
// @Tags        subscriber
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetupTrackingRequest true "Tracking filter definition"
// @Success     201 {object} models.TrackingFilter "Tracking filter created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /subscriber/tracking [post]
func (h *SubscriberHandler) SetupTracking(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetupTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateTrackingInput{
		AssetType: req.Filters.AssetType,
		RiskLevel: req.Filters.RiskLevel,
		MinAmount: req.Filters.MinAmount,
		MaxAmount: req.Filters.MaxAmount,
	}
	if req.Filters.DateRange != nil {
		input.RangeStart = req.Filters.DateRange.Start
		input.RangeEnd = req.Filters.DateRange.End
	}

	tracking, err := h.trackingService.CreateFilter(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "tracking.create", "tracking_filter", tracking.ID, c.ClientIP(), nil)

	respondData(c, http.StatusCreated, tracking)
}

// GetAggregatedData computes the anonymous cross-user aggregate for an ad hoc
// query. The output never contains owner identifiers.
// @Summary     Get anonymous aggregated data
// @Tags        subscriber
// @Produce     json
// @Security    BearerAuth
// @Param       asset_type query string false "Filter by asset type"
// @Param       start query string false "Purchase date range start (RFC 3339 or YYYY-MM-DD)"
// @Param       end query string false "Purchase date range end"
// @Success     200 {object} portfolio.AnonymousAggregate "Anonymous aggregate"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /subscriber/tracking [get]
func (h *SubscriberHandler) GetAggregatedData(c *gin.Context) {
	var query aggregateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := portfolio.Filter{}
	if query.AssetType != "" {
		filter.AssetType = &query.AssetType
	}

	start, err := parseDateQuery(c, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		respondWithError(c, err)
		return
	}
	// The date range only applies when both ends are given.
	if start != nil && end != nil {
		filter.RangeStart = start
		filter.RangeEnd = end
	}

	agg, err := h.trackingService.GetAggregatedData(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, agg)
}

// GetInsights recomputes a stored tracking filter's insight against the live
// record set.
// @Summary     Get tracking insights
// @Tags        subscriber
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tracking filter ID"
// @Success     200 {object} InsightsResponse "Tracking filter and insights"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /subscriber/tracking/{id}/insights [get]
func (h *SubscriberHandler) GetInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	trackingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tracking, insights, err := h.trackingService.GetInsights(userID, trackingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondData(c, http.StatusOK, InsightsResponse{
		Tracking: tracking,
		Insights: insights,
	})
}
