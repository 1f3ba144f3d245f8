package handler

import (
	"math"
	"net/http"
	"strconv"

	"payment-journey-tracker/internal/adapter/http/dto"
	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/pkg/apperror"
	"payment-journey-tracker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JourneyHandler handles the read-only journey API endpoints.
type JourneyHandler struct {
	instRepo ports.InstanceRepository
	stepRepo ports.StepRepository
}

// NewJourneyHandler creates a new JourneyHandler.
func NewJourneyHandler(instRepo ports.InstanceRepository, stepRepo ports.StepRepository) *JourneyHandler {
	return &JourneyHandler{instRepo: instRepo, stepRepo: stepRepo}
}

// List handles GET /api/v1/journeys.
func (h *JourneyHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.InstanceListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if s := c.Query("status"); s != "" {
		status := domain.InstanceStatus(s)
		params.Status = &status
	}
	if r := c.Query("resource_id"); r != "" {
		params.ResourceID = &r
	}
	if d := c.Query("definition_id"); d != "" {
		id, err := uuid.Parse(d)
		if err != nil {
			response.Error(c, apperror.Validation("definition_id must be a UUID"))
			return
		}
		params.DefinitionID = &id
	}

	instances, total, err := h.instRepo.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	items := make([]dto.JourneyInstanceResponse, 0, len(instances))
	for i := range instances {
		items = append(items, dto.FromInstance(&instances[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.JourneyListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// Get handles GET /api/v1/journeys/:id.
func (h *JourneyHandler) Get(c *gin.Context) {
	inst, ok := h.lookupInstance(c)
	if !ok {
		return
	}
	response.OK(c, dto.FromInstance(inst))
}

// Steps handles GET /api/v1/journeys/:id/steps.
func (h *JourneyHandler) Steps(c *gin.Context) {
	inst, ok := h.lookupInstance(c)
	if !ok {
		return
	}

	steps, err := h.stepRepo.ListByInstance(c.Request.Context(), inst.ID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	items := make([]dto.JourneyStepResponse, 0, len(steps))
	for i := range steps {
		items = append(items, dto.FromStep(&steps[i]))
	}

	response.OK(c, dto.JourneyStepsResponse{
		InstanceID: inst.ID.String(),
		Steps:      items,
	})
}

// Stats handles GET /api/v1/journeys/stats.
func (h *JourneyHandler) Stats(c *gin.Context) {
	stats, err := h.instRepo.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	response.OK(c, dto.JourneyStatsResponse{
		Total:     stats.Total,
		Active:    stats.Active,
		Stuck:     stats.Stuck,
		Completed: stats.Completed,
		Failed:    stats.Failed,
		Abandoned: stats.Abandoned,
	})
}

func (h *JourneyHandler) lookupInstance(c *gin.Context) (*domain.JourneyInstance, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return nil, false
	}

	inst, err := h.instRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return nil, false
	}
	if inst == nil {
		response.Error(c, apperror.ErrInstanceNotFound(id.String()))
		return nil, false
	}
	return inst, true
}

// HealthCheck handles GET /health, verifying all registered dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
