package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/schedule"
	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler holds the schedule service dependency.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- DTOs ---

type CreateScheduleRequest struct {
	Name      string   `json:"name" binding:"required"`
	Pattern   []string `json:"pattern" binding:"required"`
	StartDate string   `json:"startDate" binding:"required"`
}

// UpdateScheduleRequest is a merge patch: nil fields are left unchanged.
type UpdateScheduleRequest struct {
	Name      *string  `json:"name"`
	Pattern   []string `json:"pattern"`
	StartDate *string  `json:"startDate"`
}

type ScheduleResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Pattern   []domain.WorkoutDayType `json:"pattern"`
	StartDate string                  `json:"startDate"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

type ResolvedDayResponse struct {
	Date      string `json:"date"`
	Type      string `json:"type,omitempty"`
	Label     string `json:"label,omitempty"`
	Color     string `json:"color,omitempty"`
	Token     string `json:"colorToken,omitempty"`
	Scheduled bool   `json:"scheduled"`
}

// MapScheduleToResponse converts a domain.Schedule to its DTO.
func MapScheduleToResponse(s *domain.Schedule) ScheduleResponse {
	if s == nil {
		return ScheduleResponse{}
	}
	return ScheduleResponse{
		ID:        s.ID,
		Name:      s.Name,
		Pattern:   s.Pattern,
		StartDate: formatDate(s.StartDate),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func mapPattern(pattern []string) []domain.WorkoutDayType {
	if pattern == nil {
		return nil
	}
	dayTypes := make([]domain.WorkoutDayType, len(pattern))
	for i, entry := range pattern {
		dayTypes[i] = domain.WorkoutDayType(entry)
	}
	return dayTypes
}

func (h *ScheduleHandler) resolvedDay(c *gin.Context, ownerID primitive.ObjectID, day schedule.Day) ResolvedDayResponse {
	resp := ResolvedDayResponse{
		Date:      formatDate(day.Date),
		Scheduled: day.Scheduled,
	}
	if !day.Scheduled {
		return resp
	}

	color := h.scheduleService.ColorFor(c.Request.Context(), ownerID, day.Type)
	resp.Type = string(day.Type)
	resp.Label = schedule.Labels[day.Type]
	resp.Color = color.Hex
	resp.Token = color.Token
	return resp
}

// --- Handler Methods ---

// CreateSchedule godoc
// @Summary Create a repeating workout schedule
// @Description The pattern repeats from the start date; the newest schedule is the active one.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body CreateScheduleRequest true "Schedule details"
// @Success 201 {object} ScheduleResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD.")
		return
	}

	created, err := h.scheduleService.CreateSchedule(c.Request.Context(), ownerID, req.Name, mapPattern(req.Pattern), startDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPattern):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create schedule.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapScheduleToResponse(created))
}

// GetSchedules godoc
// @Summary List the user's schedules, newest first
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ScheduleResponse
// @Router /schedules [get]
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleService.GetSchedules(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules.")
		return
	}

	responses := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = MapScheduleToResponse(&schedules[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetActiveSchedule godoc
// @Summary Get the active schedule
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ScheduleResponse
// @Failure 404 {object} gin.H "No schedules exist"
// @Router /schedules/active [get]
func (h *ScheduleHandler) GetActiveSchedule(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	active, err := h.scheduleService.ActiveSchedule(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedule.")
		return
	}
	if active == nil {
		abortWithError(c, http.StatusNotFound, "No schedules exist yet.")
		return
	}

	c.JSON(http.StatusOK, MapScheduleToResponse(active))
}

// UpdateSchedule godoc
// @Summary Merge-patch a schedule
// @Description Omitted fields are left unchanged. The pattern may be replaced but not emptied.
// @Tags Schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param patch body UpdateScheduleRequest true "Fields to change"
// @Success 200 {object} ScheduleResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /schedules/{id} [patch]
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	patch := domain.SchedulePatch{
		Name:    req.Name,
		Pattern: mapPattern(req.Pattern),
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD.")
			return
		}
		patch.StartDate = &startDate
	}

	updated, err := h.scheduleService.UpdateSchedule(c.Request.Context(), ownerID, c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmptyPattern):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update schedule.")
		}
		return
	}

	c.JSON(http.StatusOK, MapScheduleToResponse(updated))
}

// DeleteSchedule godoc
// @Summary Delete a schedule
// @Description Deleting an unknown id succeeds without effect.
// @Tags Schedules
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 204 "Deleted"
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSchedule(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete schedule.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ResolveDay godoc
// @Summary Resolve the workout for a date
// @Description Resolves a calendar date against the active schedule. Dates before the schedule's start, or with no schedule at all, come back unscheduled.
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date to resolve (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} ResolvedDayResponse
// @Failure 400 {object} gin.H "Invalid date"
// @Router /schedules/resolve [get]
func (h *ScheduleHandler) ResolveDay(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	// A zero date lets the service's clock supply "today".
	var date time.Time
	if value := c.Query("date"); value != "" {
		parsed, err := parseDate(value)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
			return
		}
		date = parsed
	}

	day, err := h.scheduleService.WorkoutForDate(c.Request.Context(), ownerID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve workout.")
		return
	}

	c.JSON(http.StatusOK, h.resolvedDay(c, ownerID, day))
}

// UpcomingWorkouts godoc
// @Summary Preview the upcoming workout days
// @Tags Schedules
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day of the window (YYYY-MM-DD, defaults to today)"
// @Param days query int false "Window length in days (defaults to 7)"
// @Success 200 {array} ResolvedDayResponse
// @Failure 400 {object} gin.H "Invalid query"
// @Router /schedules/upcoming [get]
func (h *ScheduleHandler) UpcomingWorkouts(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	var from time.Time
	if value := c.Query("from"); value != "" {
		parsed, err := parseDate(value)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD.")
			return
		}
		from = parsed
	}

	window := 0
	if value := c.Query("days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			abortWithError(c, http.StatusBadRequest, "'days' must be a positive integer.")
			return
		}
		window = parsed
	}

	days, err := h.scheduleService.UpcomingWorkouts(c.Request.Context(), ownerID, from, window)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve upcoming workouts.")
		return
	}

	responses := make([]ResolvedDayResponse, len(days))
	for i, day := range days {
		responses[i] = h.resolvedDay(c, ownerID, day)
	}
	c.JSON(http.StatusOK, responses)
}
