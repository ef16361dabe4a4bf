package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhoto stores metadata for a weekly progress picture. The image
// itself lives in S3; ObjectKey is its key in the bucket. URL is the
// presigned location as of upload time; it expires, so reads re-presign
// from ObjectKey rather than handing back the stored value.
type ProgressPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	URL         string             `bson:"url" json:"url"`
	ObjectKey   string             `bson:"objectKey" json:"-"` // S3 key, internal use only
	ContentType string             `bson:"contentType,omitempty" json:"contentType,omitempty"`
	WeekDate    time.Time          `bson:"weekDate" json:"weekDate"` // Monday of the week the photo belongs to
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
