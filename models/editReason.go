package models

// Edit reason code constants
const (
	// EditReasonTypo records a spelling or typing correction.
	EditReasonTypo = "TYPO"

	// EditReasonLateEntry records information entered after the fact.
	EditReasonLateEntry = "LATE_ENTRY"

	// EditReasonClarification records a clarification of an earlier entry.
	EditReasonClarification = "CLARIFICATION"
)

// EditReasonLabels maps edit reason codes to their display labels.
var EditReasonLabels = map[string]string{
	EditReasonTypo:          "Typo / Spelling Correction",
	EditReasonLateEntry:     "Late Entry",
	EditReasonClarification: "Clarification",
}

// IsValidEditReasonCode reports whether code is one of the defined edit reason codes.
func IsValidEditReasonCode(code string) bool {
	_, ok := EditReasonLabels[code]
	return ok
}
