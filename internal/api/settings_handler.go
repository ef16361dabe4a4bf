package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler holds the settings service dependency.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// --- DTOs ---

type UpdateUnitRequest struct {
	WeightUnit string `json:"weightUnit" binding:"required"`
}

type UpdateColorsRequest struct {
	// Day type to hex color. An empty value clears that override.
	Colors map[string]string `json:"colors" binding:"required"`
}

type SettingsResponse struct {
	WeightUnit    domain.WeightUnit `json:"weightUnit"`
	WorkoutColors map[string]string `json:"workoutColors"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// MapSettingsToResponse converts a domain.UserSettings to its DTO.
func MapSettingsToResponse(settings *domain.UserSettings) SettingsResponse {
	if settings == nil {
		return SettingsResponse{}
	}
	colors := settings.WorkoutColors
	if colors == nil {
		colors = map[string]string{}
	}
	return SettingsResponse{
		WeightUnit:    settings.WeightUnit,
		WorkoutColors: colors,
		UpdatedAt:     settings.UpdatedAt,
	}
}

// --- Handler Methods ---

// GetSettings godoc
// @Summary Get the user's preferences
// @Description Returns the settings record, creating the defaults (kg, no color overrides) on first access.
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve settings.")
		return
	}

	c.JSON(http.StatusOK, MapSettingsToResponse(settings))
}

// UpdateUnit godoc
// @Summary Set the preferred weight unit
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUnitRequest true "Weight unit (kg or lbs)"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} gin.H "Invalid unit"
// @Router /settings/unit [put]
func (h *SettingsHandler) UpdateUnit(c *gin.Context) {
	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.UpdateUnit(c.Request.Context(), ownerID, domain.WeightUnit(req.WeightUnit))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Weight unit must be 'kg' or 'lbs'.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update settings.")
		}
		return
	}

	c.JSON(http.StatusOK, MapSettingsToResponse(settings))
}

// UpdateColors godoc
// @Summary Update workout color overrides
// @Description Merges the given overrides into the stored map. An empty value clears that day type back to its default color.
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateColorsRequest true "Color overrides"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} gin.H "Unknown day type"
// @Router /settings/colors [put]
func (h *SettingsHandler) UpdateColors(c *gin.Context) {
	var req UpdateColorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.UpdateColors(c.Request.Context(), ownerID, req.Colors)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Unknown workout day type in colors map.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update settings.")
		}
		return
	}

	c.JSON(http.StatusOK, MapSettingsToResponse(settings))
}
