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

// LogHandler holds the workout log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs ---

type SetEntryRequest struct {
	ExerciseName string  `json:"exerciseName" binding:"required"`
	Weight       float64 `json:"weight"`
	Reps         int     `json:"reps" binding:"required,min=1"`
	SetNumber    int     `json:"setNumber"`
	OrderIndex   int     `json:"orderIndex"`
}

type SaveLogRequest struct {
	TemplateID      *string           `json:"templateId"`
	Date            string            `json:"date" binding:"required"` // YYYY-MM-DD
	Notes           string            `json:"notes"`
	DurationMinutes *int              `json:"durationMinutes"`
	Sets            []SetEntryRequest `json:"sets"`
}

type LogResponse struct {
	ID              string            `json:"id"`
	TemplateID      *string           `json:"templateId,omitempty"`
	Date            string            `json:"date"`
	Notes           string            `json:"notes,omitempty"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	Sets            []domain.SetEntry `json:"sets"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// MapLogToResponse converts a domain.WorkoutLog to its DTO.
func MapLogToResponse(workoutLog *domain.WorkoutLog) LogResponse {
	if workoutLog == nil {
		return LogResponse{}
	}
	resp := LogResponse{
		ID:              workoutLog.ID.Hex(),
		Date:            formatDate(workoutLog.Date),
		Notes:           workoutLog.Notes,
		DurationMinutes: workoutLog.DurationMinutes,
		Sets:            workoutLog.Sets,
		CreatedAt:       workoutLog.CreatedAt,
		UpdatedAt:       workoutLog.UpdatedAt,
	}
	if workoutLog.TemplateID != nil {
		templateIDHex := workoutLog.TemplateID.Hex()
		resp.TemplateID = &templateIDHex
	}
	return resp
}

func (req *SaveLogRequest) toServiceArgs() (*primitive.ObjectID, time.Time, []domain.SetEntry, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	var templateID *primitive.ObjectID
	if req.TemplateID != nil && *req.TemplateID != "" {
		parsed, err := primitive.ObjectIDFromHex(*req.TemplateID)
		if err != nil {
			return nil, time.Time{}, nil, errors.New("invalid template ID format")
		}
		templateID = &parsed
	}

	sets := make([]domain.SetEntry, len(req.Sets))
	for i, set := range req.Sets {
		sets[i] = domain.SetEntry{
			ExerciseName: set.ExerciseName,
			Weight:       set.Weight,
			Reps:         set.Reps,
			SetNumber:    set.SetNumber,
			OrderIndex:   set.OrderIndex,
		}
	}
	return templateID, date, sets, nil
}

// --- Handler Methods ---

// CreateLog godoc
// @Summary Log a completed workout
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param log body SaveLogRequest true "Workout log"
// @Success 201 {object} LogResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /logs [post]
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req SaveLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	templateID, date, sets, err := req.toServiceArgs()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workoutLog, err := h.logService.CreateLog(c.Request.Context(), ownerID, templateID, date, req.Notes, req.DurationMinutes, sets)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create log.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapLogToResponse(workoutLog))
}

// GetLogs godoc
// @Summary List workout logs, optionally bounded by date
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {array} LogResponse
// @Router /logs [get]
func (h *LogHandler) GetLogs(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	var from, to *time.Time
	if value := c.Query("from"); value != "" {
		parsed, err := parseDate(value)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD.")
			return
		}
		from = &parsed
	}
	if value := c.Query("to"); value != "" {
		parsed, err := parseDate(value)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD.")
			return
		}
		to = &parsed
	}

	logs, err := h.logService.GetLogs(c.Request.Context(), ownerID, from, to)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve logs.")
		return
	}

	responses := make([]LogResponse, len(logs))
	for i := range logs {
		responses[i] = MapLogToResponse(&logs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetLog godoc
// @Summary Get one workout log
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 200 {object} LogResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /logs/{id} [get]
func (h *LogHandler) GetLog(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	workoutLog, err := h.logService.GetLog(c.Request.Context(), ownerID, logID)
	if err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve log.")
		}
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(workoutLog))
}

// UpdateLog godoc
// @Summary Update a workout log (replaces the set list)
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Param log body SaveLogRequest true "Workout log"
// @Success 200 {object} LogResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /logs/{id} [put]
func (h *LogHandler) UpdateLog(c *gin.Context) {
	var req SaveLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	templateID, date, sets, err := req.toServiceArgs()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workoutLog, err := h.logService.UpdateLog(c.Request.Context(), ownerID, logID, templateID, date, req.Notes, req.DurationMinutes, sets)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update log.")
		}
		return
	}

	c.JSON(http.StatusOK, MapLogToResponse(workoutLog))
}

// DeleteLog godoc
// @Summary Delete a workout log
// @Tags Logs
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /logs/{id} [delete]
func (h *LogHandler) DeleteLog(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	if err := h.logService.DeleteLog(c.Request.Context(), ownerID, logID); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete log.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
