package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- DTOs ---

type TemplateExerciseRequest struct {
	Name          string   `json:"name" binding:"required"`
	DefaultWeight *float64 `json:"defaultWeight"`
	DefaultReps   *int     `json:"defaultReps"`
	OrderIndex    int      `json:"orderIndex"`
}

type SaveTemplateRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Description string                    `json:"description"`
	Exercises   []TemplateExerciseRequest `json:"exercises"`
}

type TemplateResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Exercises   []domain.TemplateExercise `json:"exercises"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// MapTemplateToResponse converts a domain.WorkoutTemplate to its DTO.
func MapTemplateToResponse(template *domain.WorkoutTemplate) TemplateResponse {
	if template == nil {
		return TemplateResponse{}
	}
	return TemplateResponse{
		ID:          template.ID.Hex(),
		Name:        template.Name,
		Description: template.Description,
		Exercises:   template.Exercises,
		CreatedAt:   template.CreatedAt,
		UpdatedAt:   template.UpdatedAt,
	}
}

func mapExercises(reqs []TemplateExerciseRequest) []domain.TemplateExercise {
	exercises := make([]domain.TemplateExercise, len(reqs))
	for i, req := range reqs {
		exercises[i] = domain.TemplateExercise{
			Name:          req.Name,
			DefaultWeight: req.DefaultWeight,
			DefaultReps:   req.DefaultReps,
			OrderIndex:    req.OrderIndex,
		}
	}
	return exercises
}

// --- Handler Methods ---

// CreateTemplate godoc
// @Summary Create a workout template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body SaveTemplateRequest true "Template details"
// @Success 201 {object} TemplateResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), ownerID, req.Name, req.Description, mapExercises(req.Exercises))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create template.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTemplateToResponse(template))
}

// GetTemplates godoc
// @Summary List the user's workout templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TemplateResponse
// @Router /templates [get]
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	templates, err := h.templateService.GetTemplates(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve templates.")
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = MapTemplateToResponse(&templates[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetTemplate godoc
// @Summary Get one workout template
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} TemplateResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), ownerID, templateID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve template.")
		}
		return
	}

	c.JSON(http.StatusOK, MapTemplateToResponse(template))
}

// UpdateTemplate godoc
// @Summary Update a workout template (replaces the exercise list)
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param template body SaveTemplateRequest true "Template details"
// @Success 200 {object} TemplateResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), ownerID, templateID, req.Name, req.Description, mapExercises(req.Exercises))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update template.")
		}
		return
	}

	c.JSON(http.StatusOK, MapTemplateToResponse(template))
}

// DeleteTemplate godoc
// @Summary Delete a workout template
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), ownerID, templateID); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete template.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
