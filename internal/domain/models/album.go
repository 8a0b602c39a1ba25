package models

import (
	"time"

	"github.com/google/uuid"
)

type Album struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	HostID     string     `db:"host_id" json:"host_id"`
	Title      string     `db:"title" json:"title"`
	Theme      *string    `db:"theme" json:"theme,omitempty"`
	MusicURL   *string    `db:"music_url" json:"music_url,omitempty"`
	CoverPhoto *string    `db:"cover_photo" json:"cover_photo,omitempty"`
	IsPublic   bool       `db:"is_public" json:"is_public"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// AlbumUpdate carries the fields supplied by the caller; nil fields are left untouched.
type AlbumUpdate struct {
	Title      *string
	Theme      *string
	MusicURL   *string
	CoverPhoto *string
	IsPublic   *bool
	ExpiresAt  *time.Time
}

func (u AlbumUpdate) IsEmpty() bool {
	return u.Title == nil && u.Theme == nil && u.MusicURL == nil &&
		u.CoverPhoto == nil && u.IsPublic == nil && u.ExpiresAt == nil
}
