package entity

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("user already exists with that email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("user not approved by admin")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotParticipant     = errors.New("user is not a participant of the conversation")
	ErrStorageFailure     = errors.New("storage failure")
	ErrExternalService    = errors.New("external service failure")
)
