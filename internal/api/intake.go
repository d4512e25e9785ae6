package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pillpal/backend/internal/middleware"
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/service"
	"github.com/pillpal/backend/internal/types"
)

// IntakeHandler exposes intake recording and history endpoints.
type IntakeHandler struct {
	intakeService *service.IntakeService
	authService   *service.AuthService
	rateLimiter   *middleware.RateLimiter
}

// NewIntakeHandler builds the handler. rateLimiter may be nil, in which
// case intake recording is not throttled.
func NewIntakeHandler(intakeService *service.IntakeService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *IntakeHandler) RegisterRoutes(router *gin.RouterGroup) {
	intakes := router.Group("/intakes")
	intakes.Use(middleware.AuthMiddleware(h.authService))
	{
		intakes.GET("/me", h.ListMine)
		intakes.GET("/medication/:medicationId", h.ListForMedication)

		record := intakes.Group("")
		if h.rateLimiter != nil {
			record.Use(h.rateLimiter.Middleware())
		}
		record.POST("", h.Record)
		record.POST("/:medicationId/taken", h.MarkTaken)
		record.POST("/:medicationId/skipped", h.MarkSkipped)
	}
}

// Record logs an intake event with an explicit status.
func (h *IntakeHandler) Record(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req types.CreateIntakeRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	intake, err := h.intakeService.Record(c.Request.Context(), req.MedicationID, userID, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, service.ToIntakeResponse(*intake))
}

// MarkTaken is a shortcut that records a TAKEN intake timestamped now.
func (h *IntakeHandler) MarkTaken(c *gin.Context) {
	h.recordShortcut(c, h.intakeService.MarkTaken)
}

// MarkSkipped is a shortcut that records a SKIPPED intake timestamped now.
func (h *IntakeHandler) MarkSkipped(c *gin.Context) {
	h.recordShortcut(c, h.intakeService.MarkSkipped)
}

func (h *IntakeHandler) recordShortcut(c *gin.Context, record func(ctx context.Context, medicationID, userID uuid.UUID) (*models.MedicationIntake, error)) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	medicationID, ok := parseID(c, "medicationId")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	intake, err := record(c.Request.Context(), medicationID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, service.ToIntakeResponse(*intake))
}

// ListMine returns all intakes across the caller's medications, newest
// first.
func (h *IntakeHandler) ListMine(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	intakes, err := h.intakeService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"intakes": toIntakeResponses(intakes)})
}

// ListForMedication returns the intake history of one owned medication.
func (h *IntakeHandler) ListForMedication(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	medicationID, ok := parseID(c, "medicationId")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	intakes, err := h.intakeService.ListForMedication(c.Request.Context(), medicationID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"intakes": toIntakeResponses(intakes)})
}

func toIntakeResponses(intakes []models.MedicationIntake) []types.IntakeResponse {
	responses := make([]types.IntakeResponse, 0, len(intakes))
	for i := range intakes {
		responses = append(responses, service.ToIntakeResponse(intakes[i]))
	}
	return responses
}
