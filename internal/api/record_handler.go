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

// RecordHandler holds the personal record service dependency.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// --- DTOs ---

type SaveRecordRequest struct {
	ExerciseName string  `json:"exerciseName" binding:"required"`
	Weight       float64 `json:"weight" binding:"required,gt=0"`
	Unit         string  `json:"unit"` // "kg" or "lbs", defaults to kg
	Reps         int     `json:"reps"` // defaults to 1
	Date         string  `json:"date" binding:"required"`
	Notes        string  `json:"notes"`
}

type RecordResponse struct {
	ID           string            `json:"id"`
	ExerciseName string            `json:"exerciseName"`
	Weight       float64           `json:"weight"`
	Unit         domain.WeightUnit `json:"unit"`
	Reps         int               `json:"reps"`
	Date         string            `json:"date"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type TopRecordResponse struct {
	ExerciseName string         `json:"exerciseName"`
	Record       RecordResponse `json:"record"`
}

// MapRecordToResponse converts a domain.PersonalRecord to its DTO.
func MapRecordToResponse(record *domain.PersonalRecord) RecordResponse {
	if record == nil {
		return RecordResponse{}
	}
	return RecordResponse{
		ID:           record.ID.Hex(),
		ExerciseName: record.ExerciseName,
		Weight:       record.Weight,
		Unit:         record.Unit,
		Reps:         record.Reps,
		Date:         formatDate(record.Date),
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateRecord godoc
// @Summary Register a personal record
// @Tags Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record body SaveRecordRequest true "Record details"
// @Success 201 {object} RecordResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), ownerID, req.ExerciseName, req.Weight, domain.WeightUnit(req.Unit), req.Reps, date, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create record.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapRecordToResponse(record))
}

// GetRecords godoc
// @Summary List all personal records, most recent first
// @Tags Records
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RecordResponse
// @Router /records [get]
func (h *RecordHandler) GetRecords(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	records, err := h.recordService.GetRecords(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve records.")
		return
	}

	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = MapRecordToResponse(&records[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetTopRecords godoc
// @Summary Get the heaviest record per exercise
// @Tags Records
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TopRecordResponse
// @Router /records/top [get]
func (h *RecordHandler) GetTopRecords(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	top, err := h.recordService.GetTopRecords(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve top records.")
		return
	}

	responses := make([]TopRecordResponse, len(top))
	for i, entry := range top {
		record := entry.Record
		responses[i] = TopRecordResponse{
			ExerciseName: entry.ExerciseName,
			Record:       MapRecordToResponse(&record),
		}
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateRecord godoc
// @Summary Update a personal record
// @Tags Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param record body SaveRecordRequest true "Record details"
// @Success 200 {object} RecordResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /records/{id} [put]
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	var req SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid record ID format.")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), ownerID, recordID, req.ExerciseName, req.Weight, domain.WeightUnit(req.Unit), req.Reps, date, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update record.")
		}
		return
	}

	c.JSON(http.StatusOK, MapRecordToResponse(record))
}

// DeleteRecord godoc
// @Summary Delete a personal record
// @Tags Records
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /records/{id} [delete]
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid record ID format.")
		return
	}

	if err := h.recordService.DeleteRecord(c.Request.Context(), ownerID, recordID); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete record.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
