package service

import "errors"

// Domain errors surfaced to handlers, which map them onto HTTP codes.
// The messages double as the client-facing error strings.
var (
	ErrMissingFields      = errors.New("fill all the fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrPasswordTooShort   = errors.New("password should be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid login id or password")
	ErrWrongPassword      = errors.New("invalid current password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrFileMissing        = errors.New("please choose an image")
	ErrAvatarTooLarge     = errors.New("profile picture too big, should be less than 500kb")
	ErrThumbnailTooLarge  = errors.New("thumbnail too big, file should be less than 2mb")
	ErrUpdateFailed       = errors.New("couldn't update post")
	ErrInvalidToken       = errors.New("invalid token")
)
