package dto

import (
	"wedding_memories/internal/domain/models"
)

// CreateMediaRequest is a fully formed media record stored as sent.
type CreateMediaRequest struct {
	AlbumID          string  `json:"album_id" validate:"required"`
	UploadedBy       string  `json:"uploaded_by,omitempty"`
	Type             string  `json:"type" validate:"omitempty,oneof=photo video"`
	URL              string  `json:"url" validate:"required"`
	Filename         string  `json:"filename,omitempty"`
	OriginalFilename string  `json:"original_filename,omitempty"`
	Caption          *string `json:"caption,omitempty"`
	FileSize         int64   `json:"file_size,omitempty" validate:"min=0"`
	Status           string  `json:"status,omitempty" validate:"omitempty,oneof=active flagged deleted"`
	Approved         *bool   `json:"approved,omitempty"`
	Flagged          *bool   `json:"flagged,omitempty"`
}

// ToDomain fills the record defaults; uploaded_by falls back to the caller.
// A flagged status implies flagged=true and approved=false unless the client sent them.
func (r CreateMediaRequest) ToDomain(callerID string) models.Media {
	media := models.Media{
		AlbumID:          r.AlbumID,
		UploadedBy:       r.UploadedBy,
		Type:             models.MediaType(r.Type),
		URL:              r.URL,
		Filename:         r.Filename,
		OriginalFilename: r.OriginalFilename,
		Caption:          r.Caption,
		FileSize:         r.FileSize,
		Status:           models.MediaStatus(r.Status),
		Approved:         true,
	}

	if media.UploadedBy == "" {
		media.UploadedBy = callerID
	}
	if media.Type == "" {
		media.Type = models.MediaTypePhoto
	}
	if media.Status == "" {
		media.Status = models.MediaStatusActive
	}
	if media.Status == models.MediaStatusFlagged {
		media.Approved = false
		media.Flagged = true
	}
	if r.Approved != nil {
		media.Approved = *r.Approved
	}
	if r.Flagged != nil {
		media.Flagged = *r.Flagged
	}

	return media
}

// MediaUploadInput is the parsed multipart upload.
type MediaUploadInput struct {
	AlbumID     string  `validate:"required"`
	Caption     *string `validate:"omitempty,max=500"`
	UploadedBy  string  `validate:"required"`
	Filename    string  `validate:"required"`
	ContentType string  `validate:"required"`
	Data        []byte  `validate:"required"`
}
