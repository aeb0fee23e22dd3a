package domain

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already in use")
	ErrDuplicateName      = errors.New("name already in use")
	// ErrSlotTaken is returned by storage when another event holds the same room and date-time.
	ErrSlotTaken = errors.New("room and time slot already taken")
	// ErrNameDayTaken is returned by storage when another event has the same name on the same day.
	ErrNameDayTaken = errors.New("event name already used on that day")
)
