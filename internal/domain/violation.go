package domain

// ViolationKind is the machine-readable reason of a field violation.
type ViolationKind string

const (
	KindPastDateTime      ViolationKind = "PAST_DATETIME"
	KindBlankName         ViolationKind = "BLANK_NAME"
	KindNoSpeakers        ViolationKind = "NO_SPEAKERS"
	KindFirstSpeakerBlank ViolationKind = "FIRST_SPEAKER_BLANK"
	KindDuplicateSpeakers ViolationKind = "DUPLICATE_SPEAKERS"
	KindSlotConflict      ViolationKind = "SLOT_CONFLICT"
	KindNameDayConflict   ViolationKind = "NAME_DAY_CONFLICT"

	KindRequired        ViolationKind = "REQUIRED"
	KindInvalidFormat   ViolationKind = "INVALID_FORMAT"
	KindOutOfRange      ViolationKind = "OUT_OF_RANGE"
	KindTooManySpeakers ViolationKind = "TOO_MANY_SPEAKERS"
	KindDuplicateName   ViolationKind = "DUPLICATE_NAME"
)

// Field names used in violations. They match the JSON names of the request bodies.
const (
	FieldName        = "name"
	FieldScheduledAt = "scheduled_at"
	FieldSpeakers    = "speakers"
	FieldRoomID      = "room_id"
	FieldBeamerCode  = "beamer_code"
	FieldPriceCents  = "price_cents"
	FieldCapacity    = "capacity"
)

// FieldViolation is a user-correctable validation failure on one field.
// swagger:model FieldViolation
type FieldViolation struct {
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// HasKind reports whether vs contains a violation of kind k.
func HasKind(vs []FieldViolation, k ViolationKind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}
