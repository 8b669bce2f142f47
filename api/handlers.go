package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conflictcheck/namecheck/internal/analytics"
	internalErrors "github.com/conflictcheck/namecheck/internal/errors"
	"github.com/conflictcheck/namecheck/model"
	"github.com/conflictcheck/namecheck/services"
)

// maxRequestBodySize bounds inline record uploads (1 MB, matching the
// original server's JSON body limit).
const maxRequestBodySize = 1 << 20

// API holds dependencies for the HTTP handlers.
type API struct {
	pipeline  services.Pipeline
	records   services.ReferenceSource
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(pipeline services.Pipeline, records services.ReferenceSource, analyticsService *analytics.Service) *API {
	return &API{
		pipeline:  pipeline,
		records:   records,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all routes of the name-check API.
func SetupRoutes(router *gin.Engine, pipeline services.Pipeline, records services.ReferenceSource, analyticsService *analytics.Service) {
	apiHandler := NewAPI(pipeline, records, analyticsService)

	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/health", apiHandler.HealthCheckHandler)
		apiRoutes.POST("/name-check", apiHandler.NameCheckHandler)
		apiRoutes.GET("/records", apiHandler.ListRecordsHandler)
		apiRoutes.PUT("/records", apiHandler.ReplaceRecordsHandler)
		apiRoutes.GET("/analytics", apiHandler.GetAnalyticsHandler)
	}
}

// NameCheckRequest is the body of POST /api/name-check. Records are
// optional; when omitted, the server's loaded reference records are
// used.
type NameCheckRequest struct {
	Name        string                  `json:"name"`
	PhoneNumber string                  `json:"phone_number,omitempty"`
	Email       string                  `json:"email,omitempty"`
	Address     string                  `json:"address,omitempty"`
	Records     []model.ReferenceRecord `json:"records,omitempty"`
}

// NameCheckHandler runs one pipeline check.
func (api *API) NameCheckHandler(c *gin.Context) {
	var req NameCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	criteria := model.SearchCriteria{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	}

	if result := ValidateSearchCriteria(criteria); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}
	if result := ValidateRecords(req.Records); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	records := req.Records
	if records == nil {
		records = api.records.Records()
	}

	result, err := api.pipeline.Run(c.Request.Context(), criteria, records)
	if err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrInvalidInput):
			validation := &ValidationResult{Valid: true}
			validation.AddError("name", err.Error())
			SendStructuredValidationError(c, validation)
		case errors.Is(err, internalErrors.ErrClassifierUnavailable):
			SendClassifierUnavailableError(c, err)
		default:
			SendInternalError(c, "name check", err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListRecordsHandler returns the loaded reference records.
func (api *API) ListRecordsHandler(c *gin.Context) {
	records := api.records.Records()
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// ReplaceRecordsHandler swaps in a new reference record collection.
func (api *API) ReplaceRecordsHandler(c *gin.Context) {
	var records []model.ReferenceRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateRecords(records); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	api.records.Replace(records)
	c.JSON(http.StatusOK, gin.H{
		"message": "Reference records replaced",
		"total":   len(records),
	})
}

// GetAnalyticsHandler returns the check-analytics dashboard.
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}

// HealthCheckHandler reports service liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"records":   api.records.Count(),
	})
}
