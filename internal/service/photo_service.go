package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
	"liftlog/internal/schedule"
	"liftlog/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound      = errors.New("progress photo not found")
	ErrUnsupportedContent = errors.New("unsupported photo content type")
)

// PhotoWeek annotates a photo with the ISO week it belongs to, for the
// week-by-week progress view.
type PhotoWeek struct {
	domain.ProgressPhoto
	Year       int `json:"year"`
	WeekNumber int `json:"weekNumber"`
}

// UploadTicket is handed to the client so it can PUT the image straight
// to object storage, then confirm with AddPhoto.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	PhotoURL  string `json:"photoUrl"`
}

// PhotoService manages progress photos: presigned uploads, metadata
// records and deletion of both halves.
type PhotoService interface {
	NewUploadTicket(ctx context.Context, ownerID primitive.ObjectID, contentType string) (*UploadTicket, error)
	AddPhoto(ctx context.Context, ownerID primitive.ObjectID, objectKey, url, contentType string, weekDate time.Time, notes string) (*domain.ProgressPhoto, error)
	GetPhotos(ctx context.Context, ownerID primitive.ObjectID) ([]PhotoWeek, error)
	UpdatePhoto(ctx context.Context, ownerID, photoID primitive.ObjectID, weekDate time.Time, notes string) (*domain.ProgressPhoto, error)
	DeletePhoto(ctx context.Context, ownerID, photoID primitive.ObjectID) error
}

type photoService struct {
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, fileStorage storage.FileStorage) PhotoService {
	return &photoService{photoRepo: photoRepo, fileStorage: fileStorage}
}

// NewUploadTicket issues a presigned PUT URL for a new photo. The object
// key namespaces photos per user so presigned access can never cross
// user boundaries.
func (s *photoService) NewUploadTicket(ctx context.Context, ownerID primitive.ObjectID, contentType string) (*UploadTicket, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedContent
	}

	objectKey := fmt.Sprintf("progress-photos/%s/%s", ownerID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	photoURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, 0)
	if err != nil {
		return nil, err
	}

	return &UploadTicket{UploadURL: uploadURL, ObjectKey: objectKey, PhotoURL: photoURL}, nil
}

// AddPhoto records the metadata for an uploaded photo.
func (s *photoService) AddPhoto(ctx context.Context, ownerID primitive.ObjectID, objectKey, url, contentType string, weekDate time.Time, notes string) (*domain.ProgressPhoto, error) {
	if objectKey == "" || url == "" || weekDate.IsZero() {
		return nil, ErrValidationFailed
	}
	// Only accept keys this service could have issued for this user.
	if !strings.HasPrefix(objectKey, "progress-photos/"+ownerID.Hex()+"/") {
		return nil, ErrValidationFailed
	}

	photo := &domain.ProgressPhoto{
		OwnerID:     ownerID,
		URL:         url,
		ObjectKey:   objectKey,
		ContentType: contentType,
		WeekDate:    schedule.Normalize(weekDate),
		Notes:       notes,
	}

	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	created, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshURL(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetPhotos returns a user's photos, most recent week first, annotated
// with year and ISO week number. Every photo carries a freshly presigned
// download URL.
func (s *photoService) GetPhotos(ctx context.Context, ownerID primitive.ObjectID) ([]PhotoWeek, error) {
	photos, err := s.photoRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	annotated := make([]PhotoWeek, 0, len(photos))
	for _, photo := range photos {
		if err := s.refreshURL(ctx, &photo); err != nil {
			return nil, err
		}
		year, week := photo.WeekDate.ISOWeek()
		annotated = append(annotated, PhotoWeek{ProgressPhoto: photo, Year: year, WeekNumber: week})
	}
	return annotated, nil
}

// UpdatePhoto changes a photo's week assignment and notes.
func (s *photoService) UpdatePhoto(ctx context.Context, ownerID, photoID primitive.ObjectID, weekDate time.Time, notes string) (*domain.ProgressPhoto, error) {
	if weekDate.IsZero() {
		return nil, ErrValidationFailed
	}

	existing, err := s.getOwned(ctx, ownerID, photoID)
	if err != nil {
		return nil, err
	}

	existing.WeekDate = schedule.Normalize(weekDate)
	existing.Notes = notes

	if err := s.photoRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if err := s.refreshURL(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// refreshURL replaces the photo's download URL with a freshly presigned
// one. The stored URL is only a snapshot from upload time; presigned
// URLs expire, so every read hands out a new one from the object key.
func (s *photoService) refreshURL(ctx context.Context, photo *domain.ProgressPhoto) error {
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.ObjectKey, 0)
	if err != nil {
		return err
	}
	photo.URL = url
	return nil
}

// DeletePhoto removes the stored object and then the metadata record.
// If the S3 delete fails the record is kept so the photo stays visible
// and the delete can be retried.
func (s *photoService) DeletePhoto(ctx context.Context, ownerID, photoID primitive.ObjectID) error {
	existing, err := s.getOwned(ctx, ownerID, photoID)
	if err != nil {
		return err
	}

	if err := s.fileStorage.DeleteObject(ctx, existing.ObjectKey); err != nil {
		return err
	}

	if err := s.photoRepo.Delete(ctx, photoID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The object is already gone; losing the race on the record
			// is harmless.
			log.Printf("WARN: photo record %s vanished during delete", photoID.Hex())
			return nil
		}
		return err
	}
	return nil
}

func (s *photoService) getOwned(ctx context.Context, ownerID, photoID primitive.ObjectID) (*domain.ProgressPhoto, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	if photo.OwnerID != ownerID {
		return nil, ErrPhotoNotFound
	}
	return photo, nil
}
