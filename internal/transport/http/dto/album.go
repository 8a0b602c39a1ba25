package dto

import (
	"time"

	"wedding_memories/internal/domain/models"
)

type CreateAlbumRequest struct {
	Title      string     `json:"title" validate:"required,max=200"`
	Theme      *string    `json:"theme,omitempty" validate:"omitempty,max=100"`
	MusicURL   *string    `json:"music_url,omitempty" validate:"omitempty,url"`
	CoverPhoto *string    `json:"cover_photo,omitempty"`
	IsPublic   *bool      `json:"is_public,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// ToDomain builds an album owned by hostID. Albums are public unless stated otherwise.
func (r CreateAlbumRequest) ToDomain(hostID string) models.Album {
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}

	return models.Album{
		HostID:     hostID,
		Title:      r.Title,
		Theme:      r.Theme,
		MusicURL:   r.MusicURL,
		CoverPhoto: r.CoverPhoto,
		IsPublic:   isPublic,
		ExpiresAt:  r.ExpiresAt,
	}
}

// UpdateAlbumRequest only carries the fields the client sent.
type UpdateAlbumRequest struct {
	Title      *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Theme      *string    `json:"theme,omitempty" validate:"omitempty,max=100"`
	MusicURL   *string    `json:"music_url,omitempty" validate:"omitempty,url"`
	CoverPhoto *string    `json:"cover_photo,omitempty"`
	IsPublic   *bool      `json:"is_public,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

func (r UpdateAlbumRequest) ToDomain() models.AlbumUpdate {
	return models.AlbumUpdate{
		Title:      r.Title,
		Theme:      r.Theme,
		MusicURL:   r.MusicURL,
		CoverPhoto: r.CoverPhoto,
		IsPublic:   r.IsPublic,
		ExpiresAt:  r.ExpiresAt,
	}
}
