package storage

import "errors"

var (
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrAlbumNotFound  = errors.New("album not found")
	ErrMediaNotFound  = errors.New("media not found")
	ErrNothingChanged = errors.New("no fields to update")
)
