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

// PhotoHandler holds the progress photo service dependency.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// --- DTOs ---

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AddPhotoRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	URL         string `json:"url" binding:"required"`
	ContentType string `json:"contentType"`
	WeekDate    string `json:"weekDate" binding:"required"`
	Notes       string `json:"notes"`
}

type UpdatePhotoRequest struct {
	WeekDate string `json:"weekDate" binding:"required"`
	Notes    string `json:"notes"`
}

type PhotoResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType,omitempty"`
	WeekDate    string    `json:"weekDate"`
	Year        int       `json:"year,omitempty"`
	WeekNumber  int       `json:"weekNumber,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MapPhotoToResponse converts a domain.ProgressPhoto to its DTO.
func MapPhotoToResponse(photo *domain.ProgressPhoto) PhotoResponse {
	if photo == nil {
		return PhotoResponse{}
	}
	return PhotoResponse{
		ID:          photo.ID.Hex(),
		URL:         photo.URL,
		ContentType: photo.ContentType,
		WeekDate:    formatDate(photo.WeekDate),
		Notes:       photo.Notes,
		CreatedAt:   photo.CreatedAt,
	}
}

func mapPhotoWeekToResponse(week *service.PhotoWeek) PhotoResponse {
	resp := MapPhotoToResponse(&week.ProgressPhoto)
	resp.Year = week.Year
	resp.WeekNumber = week.WeekNumber
	return resp
}

// --- Handler Methods ---

// GetUploadURL godoc
// @Summary Get a presigned URL for uploading a progress photo
// @Description The client PUTs the image to the returned URL, then confirms with POST /photos.
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UploadURLRequest true "Image content type"
// @Success 200 {object} service.UploadTicket
// @Failure 400 {object} gin.H "Unsupported content type"
// @Router /photos/upload-url [post]
func (h *PhotoHandler) GetUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	ticket, err := h.photoService.NewUploadTicket(c.Request.Context(), ownerID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedContent) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// AddPhoto godoc
// @Summary Record an uploaded progress photo
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param photo body AddPhotoRequest true "Photo metadata"
// @Success 201 {object} PhotoResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /photos [post]
func (h *PhotoHandler) AddPhoto(c *gin.Context) {
	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	weekDate, err := parseDate(req.WeekDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weekDate, expected YYYY-MM-DD.")
		return
	}

	photo, err := h.photoService.AddPhoto(c.Request.Context(), ownerID, req.ObjectKey, req.URL, req.ContentType, weekDate, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record photo.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPhotoToResponse(photo))
}

// GetPhotos godoc
// @Summary List progress photos, most recent week first
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PhotoResponse
// @Router /photos [get]
func (h *PhotoHandler) GetPhotos(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	photos, err := h.photoService.GetPhotos(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve photos.")
		return
	}

	responses := make([]PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = mapPhotoWeekToResponse(&photos[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdatePhoto godoc
// @Summary Update a photo's week assignment and notes
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Param photo body UpdatePhotoRequest true "Photo metadata"
// @Success 200 {object} PhotoResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /photos/{id} [put]
func (h *PhotoHandler) UpdatePhoto(c *gin.Context) {
	var req UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	photoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid photo ID format.")
		return
	}
	weekDate, err := parseDate(req.WeekDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weekDate, expected YYYY-MM-DD.")
		return
	}

	photo, err := h.photoService.UpdatePhoto(c.Request.Context(), ownerID, photoID, weekDate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update photo.")
		}
		return
	}

	c.JSON(http.StatusOK, MapPhotoToResponse(photo))
}

// DeletePhoto godoc
// @Summary Delete a progress photo and its stored image
// @Tags Photos
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /photos/{id} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}
	photoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid photo ID format.")
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), ownerID, photoID); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete photo.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
