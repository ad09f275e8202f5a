package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrInvalidRefreshToken     = errors.New("invalid refresh token")

	ErrInvalidFileType    = errors.New("file type is not allowed")
	ErrFileTooLarge       = errors.New("file is too large")
	ErrInvalidCoordinates = errors.New("latitude and longitude must be provided together")

	ErrEmptyNoteBody = errors.New("note body must not be empty")
)
