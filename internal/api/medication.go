package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pillpal/backend/internal/middleware"
	"github.com/pillpal/backend/internal/service"
	"github.com/pillpal/backend/internal/types"
)

// MedicationHandler exposes medication CRUD, search and the daily status
// views.
type MedicationHandler struct {
	medicationService *service.MedicationService
	statusService     *service.MedicationStatusService
	authService       *service.AuthService
}

func NewMedicationHandler(medicationService *service.MedicationService, statusService *service.MedicationStatusService, authService *service.AuthService) *MedicationHandler {
	return &MedicationHandler{
		medicationService: medicationService,
		statusService:     statusService,
		authService:       authService,
	}
}

func (h *MedicationHandler) RegisterRoutes(router *gin.RouterGroup) {
	medications := router.Group("/medications")
	medications.Use(middleware.AuthMiddleware(h.authService))
	{
		medications.GET("", h.List)
		medications.GET("/status", h.TodayStatus)
		medications.GET("/:id", h.Get)
		medications.GET("/:id/status", h.Status)
		medications.POST("", h.Create)
		medications.POST("/with-image", h.CreateWithImage)
		medications.PUT("/:id", h.Update)
		medications.PUT("/:id/with-image", h.UpdateWithImage)
		medications.DELETE("/:id", h.Delete)
	}
}

// List returns the caller's medications. Supports ?active=true and ?name=
// substring search.
func (h *MedicationHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	opts := service.ListOptions{Name: c.Query("name")}
	if active := c.Query("active"); active != "" {
		opts.ActiveOnly, _ = strconv.ParseBool(active)
	}

	medications, err := h.medicationService.List(c.Request.Context(), userID, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"medications": medications})
}

func (h *MedicationHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	med, err := h.medicationService.Get(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, med)
}

// TodayStatus returns the derived adherence status of every active
// medication for the current day.
func (h *MedicationHandler) TodayStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	statuses, err := h.statusService.TodayOverview(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"medications": statuses})
}

func (h *MedicationHandler) Status(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	status, err := h.statusService.Status(c.Request.Context(), id, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *MedicationHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req types.CreateMedicationRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	med, err := h.medicationService.Create(c.Request.Context(), userID, req, nil)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, med)
}

// CreateWithImage accepts a multipart form with the medication fields plus
// an optional image file.
func (h *MedicationHandler) CreateWithImage(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	req, err := createRequestFromForm(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	image, err := readImageUpload(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	med, err := h.medicationService.Create(c.Request.Context(), userID, req, image)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, med)
}

func (h *MedicationHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	var req types.UpdateMedicationRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	med, err := h.medicationService.Update(c.Request.Context(), id, userID, req, nil)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, med)
}

func (h *MedicationHandler) UpdateWithImage(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	req, err := updateRequestFromForm(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	image, err := readImageUpload(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	med, err := h.medicationService.Update(c.Request.Context(), id, userID, req, image)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, med)
}

func (h *MedicationHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.Error(fmt.Errorf("invalid medication id: %w", service.ErrInvalidInput))
		return
	}

	if err := h.medicationService.Delete(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted successfully", "id": id})
}

// createRequestFromForm reads medication fields out of a multipart form.
func createRequestFromForm(c *gin.Context) (types.CreateMedicationRequest, error) {
	req := types.CreateMedicationRequest{Name: c.PostForm("name")}
	if req.Name == "" {
		return req, fmt.Errorf("name is required: %w", service.ErrInvalidInput)
	}

	start, err := types.ParseDate(c.PostForm("start_date"))
	if err != nil {
		return req, fmt.Errorf("%v: %w", err, service.ErrInvalidInput)
	}
	req.StartDate = start

	if v := c.PostForm("description"); v != "" {
		req.Description = &v
	}
	if v := c.PostForm("dosage"); v != "" {
		req.Dosage = &v
	}
	if v := c.PostForm("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid active flag: %w", service.ErrInvalidInput)
		}
		req.Active = &b
	}
	if v := c.PostForm("lifetime"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid lifetime flag: %w", service.ErrInvalidInput)
		}
		req.Lifetime = &b
	}
	if v := c.PostForm("end_date"); v != "" {
		end, err := types.ParseDate(v)
		if err != nil {
			return req, fmt.Errorf("%v: %w", err, service.ErrInvalidInput)
		}
		req.EndDate = &end
	}
	return req, nil
}

// updateRequestFromForm reads the sparse patch fields out of a multipart
// form; absent fields stay nil.
func updateRequestFromForm(c *gin.Context) (types.UpdateMedicationRequest, error) {
	var req types.UpdateMedicationRequest

	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if v, ok := c.GetPostForm("dosage"); ok {
		req.Dosage = &v
	}
	if v, ok := c.GetPostForm("active"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid active flag: %w", service.ErrInvalidInput)
		}
		req.Active = &b
	}
	if v, ok := c.GetPostForm("lifetime"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid lifetime flag: %w", service.ErrInvalidInput)
		}
		req.Lifetime = &b
	}
	if v, ok := c.GetPostForm("start_date"); ok && v != "" {
		start, err := types.ParseDate(v)
		if err != nil {
			return req, fmt.Errorf("%v: %w", err, service.ErrInvalidInput)
		}
		req.StartDate = &start
	}
	if v, ok := c.GetPostForm("end_date"); ok && v != "" {
		end, err := types.ParseDate(v)
		if err != nil {
			return req, fmt.Errorf("%v: %w", err, service.ErrInvalidInput)
		}
		req.EndDate = &end
	}
	return req, nil
}

// readImageUpload pulls the optional "image" file out of a multipart form.
func readImageUpload(c *gin.Context) (*service.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached is fine; both with-image endpoints treat the
		// image as optional.
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read image file: %w", service.ErrInvalidInput)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read image file: %w", service.ErrInvalidInput)
	}

	return &service.ImageUpload{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}
