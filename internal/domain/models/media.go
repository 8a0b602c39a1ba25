package models

import (
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

type MediaStatus string

const (
	MediaStatusActive  MediaStatus = "active"
	MediaStatusFlagged MediaStatus = "flagged"
	MediaStatusDeleted MediaStatus = "deleted"
)

type Media struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	AlbumID          string      `db:"album_id" json:"album_id"`
	UploadedBy       string      `db:"uploaded_by" json:"uploaded_by"`
	Type             MediaType   `db:"type" json:"type"`
	URL              string      `db:"url" json:"url"`
	Filename         string      `db:"filename" json:"filename,omitempty"`
	OriginalFilename string      `db:"original_filename" json:"original_filename,omitempty"`
	Caption          *string     `db:"caption" json:"caption,omitempty"`
	FileSize         int64       `db:"file_size" json:"file_size"`
	Status           MediaStatus `db:"status" json:"status"`
	Approved         bool        `db:"approved" json:"approved"`
	Flagged          bool        `db:"flagged" json:"flagged"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	// UploadedAt is only set by the upload path; analytics read it.
	UploadedAt *time.Time `db:"uploaded_at" json:"uploaded_at,omitempty"`
}
