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

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs ---

type SaveGoalRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	TargetValue *float64 `json:"targetValue"`
	TargetUnit  string   `json:"targetUnit"`
}

type SetAchievedRequest struct {
	Achieved *bool `json:"achieved" binding:"required"`
}

type GoalResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	TargetValue  *float64  `json:"targetValue,omitempty"`
	TargetUnit   string    `json:"targetUnit,omitempty"`
	Achieved     bool      `json:"achieved"`
	AchievedDate *string   `json:"achievedDate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MapGoalToResponse converts a domain.FitnessGoal to its DTO.
func MapGoalToResponse(goal *domain.FitnessGoal) GoalResponse {
	if goal == nil {
		return GoalResponse{}
	}
	resp := GoalResponse{
		ID:          goal.ID.Hex(),
		Title:       goal.Title,
		Description: goal.Description,
		Category:    goal.Category,
		TargetValue: goal.TargetValue,
		TargetUnit:  goal.TargetUnit,
		Achieved:    goal.Achieved,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
	if goal.AchievedDate != nil {
		achievedDate := formatDate(*goal.AchievedDate)
		resp.AchievedDate = &achievedDate
	}
	return resp
}

// --- Handler Methods ---

// CreateGoal godoc
// @Summary Create a fitness goal
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body SaveGoalRequest true "Goal details"
// @Success 201 {object} GoalResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req SaveGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), ownerID, req.Title, req.Description, req.Category, req.TargetValue, req.TargetUnit)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create goal.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

// GetGoals godoc
// @Summary List the user's fitness goals
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} GoalResponse
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	goals, err := h.goalService.GetGoals(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve goals.")
		return
	}

	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateGoal godoc
// @Summary Update a goal's descriptive fields
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param goal body SaveGoalRequest true "Goal details"
// @Success 200 {object} GoalResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req SaveGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	goalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format.")
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), ownerID, goalID, req.Title, req.Description, req.Category, req.TargetValue, req.TargetUnit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoalNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update goal.")
		}
		return
	}

	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// SetAchieved godoc
// @Summary Mark a goal achieved or not achieved
// @Description Achieving a goal stamps today's date on it; clearing the flag removes the date.
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param body body SetAchievedRequest true "Achieved flag"
// @Success 200 {object} GoalResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /goals/{id}/achieved [put]
func (h *GoalHandler) SetAchieved(c *gin.Context) {
	var req SetAchievedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Achieved == nil {
		abortWithError(c, http.StatusBadRequest, "Body must include an 'achieved' boolean.")
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	goalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format.")
		return
	}

	goal, err := h.goalService.SetAchieved(c.Request.Context(), ownerID, goalID, *req.Achieved)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update goal.")
		}
		return
	}

	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// DeleteGoal godoc
// @Summary Delete a fitness goal
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	goalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID format.")
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), ownerID, goalID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete goal.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
