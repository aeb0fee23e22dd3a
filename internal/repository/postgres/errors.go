package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// Constraint names from migrations/001_init.up.sql.
const (
	constraintEventRoomSlot = "events_room_slot_key"
	constraintEventNameDay  = "events_name_day_key"
	constraintRoomName      = "rooms_name_key"
	constraintUsername      = "users_username_key"
)

// uniqueConstraint returns the violated constraint name when err is a unique violation.
func uniqueConstraint(err error) (string, bool) {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == uniqueViolation {
		return perr.Constraint, true
	}
	return "", false
}

// malformedID reports whether err is Postgres rejecting a value for a UUID column.
// An id that cannot be a UUID cannot match a row, so callers treat it as not found.
func malformedID(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == invalidTextRepresentation
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
