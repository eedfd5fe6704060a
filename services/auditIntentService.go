package services

import (
	"strings"

	"github.com/CareLedger/models"
)

// The audit-intent fields describe the change itself and never count as a
// meaningful change on their own.
var auditIntentFields = map[string]bool{
	"edit_reason_type":   true,
	"edit_reason_detail": true,
}

// ChangedFields returns the names of fields whose proposed value differs from
// the stored value, excluding the audit-intent fields.
func ChangedFields(existing, proposed map[string]any) []string {
	var changed []string
	for field, newValue := range proposed {
		if auditIntentFields[field] {
			continue
		}
		if !snapshotValuesEqual(existing[field], newValue) {
			changed = append(changed, field)
		}
	}
	return changed
}

// ValidateEditReasonType checks an optionally supplied reason code. Returns a
// field-keyed error map, or nil when valid. An empty code is valid.
func ValidateEditReasonType(reasonType string) map[string]string {
	if reasonType != "" && !models.IsValidEditReasonCode(reasonType) {
		return map[string]string{"edit_reason_type": "Invalid edit reason type."}
	}
	return nil
}

// ValidateEditIntent enforces the audit rules for updates: any meaningful
// change requires a non-blank edit_reason_detail, and a supplied
// edit_reason_type must be a defined code. Creation paths only call
// ValidateEditReasonType. Returns field-keyed errors, or nil when the update
// may proceed.
func ValidateEditIntent(existing, proposed map[string]any, reasonType, reasonDetail string) map[string]string {
	if errs := ValidateEditReasonType(reasonType); errs != nil {
		return errs
	}

	if len(ChangedFields(existing, proposed)) == 0 {
		return nil
	}

	if strings.TrimSpace(reasonDetail) == "" {
		return map[string]string{"edit_reason_detail": "An edit reason is required when updating this record."}
	}

	return nil
}
