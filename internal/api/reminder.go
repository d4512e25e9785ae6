package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pillpal/backend/internal/mapper"
	"github.com/pillpal/backend/internal/middleware"
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/service"
	"github.com/pillpal/backend/internal/types"
)

// ReminderHandler exposes reminder CRUD plus the enable/disable toggle.
type ReminderHandler struct {
	reminderService *service.ReminderService
	authService     *service.AuthService
}

func NewReminderHandler(reminderService *service.ReminderService, authService *service.AuthService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, authService: authService}
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders")
	reminders.Use(middleware.AuthMiddleware(h.authService))
	{
		reminders.GET("", h.List)
		reminders.GET("/:id", h.Get)
		reminders.GET("/medication/:medicationId", h.ListForMedication)
		reminders.POST("", h.Create)
		reminders.PUT("/:id", h.Update)
		reminders.PATCH("/:id/toggle", h.Toggle)
		reminders.DELETE("/:id", h.Delete)
	}
}

// List returns every reminder across the caller's medications.
func (h *ReminderHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	reminders, err := h.reminderService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toReminderList(reminders, ""))
}

func (h *ReminderHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid reminder id: %w", service.ErrInvalidInput))
		return
	}

	reminder, err := h.reminderService.Get(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToReminderResponse(*reminder))
}

// ListForMedication returns the reminders of one owned medication. An
// empty result carries an explanatory message rather than a bare list.
func (h *ReminderHandler) ListForMedication(c *gin.Context) {
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

	reminders, err := h.reminderService.ListForMedication(c.Request.Context(), medicationID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := ""
	if len(reminders) == 0 {
		message = "No reminders found for this medication"
	}
	c.JSON(http.StatusOK, toReminderList(reminders, message))
}

func (h *ReminderHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req types.CreateReminderRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	reminder, err := h.reminderService.Create(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToReminderResponse(*reminder))
}

func (h *ReminderHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid reminder id: %w", service.ErrInvalidInput))
		return
	}

	var req types.UpdateReminderRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	reminder, err := h.reminderService.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToReminderResponse(*reminder))
}

// Toggle flips the enabled flag and returns the updated reminder.
func (h *ReminderHandler) Toggle(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid reminder id: %w", service.ErrInvalidInput))
		return
	}

	reminder, err := h.reminderService.Toggle(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToReminderResponse(*reminder))
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid reminder id: %w", service.ErrInvalidInput))
		return
	}

	if err := h.reminderService.Delete(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully", "id": id})
}

func toReminderList(reminders []models.Reminder, message string) types.ReminderListResponse {
	responses := make([]types.ReminderResponse, 0, len(reminders))
	for i := range reminders {
		responses = append(responses, mapper.ToReminderResponse(reminders[i]))
	}
	return types.ReminderListResponse{Reminders: responses, Message: message}
}
