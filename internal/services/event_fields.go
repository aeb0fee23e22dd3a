package services

import (
	"regexp"
	"strings"

	"eventplanner/internal/domain"
)

const (
	maxSpeakers   = 3
	minBeamerCode = 1000
	maxBeamerCode = 9999
	minPriceCents = 999
	maxPriceCents = 10000
)

var eventNameRegex = regexp.MustCompile(`^[A-Za-z]`)

// checkEventFields applies the per-field constraints (presence, format, ranges).
// Cross-record rules live in EventValidator.
func checkEventFields(d *domain.EventDraft) []domain.FieldViolation {
	var out []domain.FieldViolation
	if d.Name == nil {
		out = append(out, required(domain.FieldName))
	} else if n := *d.Name; strings.TrimSpace(n) != "" && !eventNameRegex.MatchString(n) {
		out = append(out, domain.FieldViolation{
			Field:   domain.FieldName,
			Kind:    domain.KindInvalidFormat,
			Message: "name must start with a letter",
		})
	}
	if len(d.Speakers) > maxSpeakers {
		out = append(out, domain.FieldViolation{
			Field:   domain.FieldSpeakers,
			Kind:    domain.KindTooManySpeakers,
			Message: "at most 3 speakers are allowed",
		})
	}
	if d.ScheduledAt == nil {
		out = append(out, required(domain.FieldScheduledAt))
	}
	if d.RoomID == nil || strings.TrimSpace(*d.RoomID) == "" {
		out = append(out, required(domain.FieldRoomID))
	}
	if d.BeamerCode != nil && (*d.BeamerCode < minBeamerCode || *d.BeamerCode > maxBeamerCode) {
		out = append(out, domain.FieldViolation{
			Field:   domain.FieldBeamerCode,
			Kind:    domain.KindOutOfRange,
			Message: "beamer code must have 4 digits",
		})
	}
	if d.PriceCents != nil && (*d.PriceCents < minPriceCents || *d.PriceCents > maxPriceCents) {
		out = append(out, domain.FieldViolation{
			Field:   domain.FieldPriceCents,
			Kind:    domain.KindOutOfRange,
			Message: "price must be between 9.99 and 100.00",
		})
	}
	return out
}

func required(field string) domain.FieldViolation {
	return domain.FieldViolation{Field: field, Kind: domain.KindRequired, Message: field + " is required"}
}
