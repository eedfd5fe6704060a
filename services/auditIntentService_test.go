package services

import (
	"testing"

	"github.com/CareLedger/models"
	"github.com/stretchr/testify/assert"
)

func TestChangedFields(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]any
		proposed map[string]any
		expected []string
	}{
		{
			name:     "no changes",
			existing: map[string]any{"summary": "Quiet day", "mood": "calm"},
			proposed: map[string]any{"summary": "Quiet day", "mood": "calm"},
			expected: nil,
		},
		{
			name:     "one scalar change",
			existing: map[string]any{"summary": "Quiet day", "mood": "calm"},
			proposed: map[string]any{"summary": "Busy day", "mood": "calm"},
			expected: []string{"summary"},
		},
		{
			name: "audit-intent fields never count as changes",
			existing: map[string]any{
				"summary":            "Quiet day",
				"edit_reason_type":   "",
				"edit_reason_detail": "",
			},
			proposed: map[string]any{
				"summary":            "Quiet day",
				"edit_reason_type":   models.EditReasonTypo,
				"edit_reason_detail": "fixed spelling",
			},
			expected: nil,
		},
		{
			name:     "int and float compare by magnitude",
			existing: map[string]any{"resident_id": float64(3)},
			proposed: map[string]any{"resident_id": 3},
			expected: nil,
		},
		{
			name:     "nil to value is a change",
			existing: map[string]any{"shift_id": nil},
			proposed: map[string]any{"shift_id": 2},
			expected: []string{"shift_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, ChangedFields(tt.existing, tt.proposed))
		})
	}
}

func TestValidateEditReasonType(t *testing.T) {
	assert.Nil(t, ValidateEditReasonType(""))
	assert.Nil(t, ValidateEditReasonType(models.EditReasonTypo))
	assert.Nil(t, ValidateEditReasonType(models.EditReasonLateEntry))
	assert.Nil(t, ValidateEditReasonType(models.EditReasonClarification))

	errs := ValidateEditReasonType("HUNCH")
	assert.NotNil(t, errs)
	assert.Equal(t, "Invalid edit reason type.", errs["edit_reason_type"])
}

func TestValidateEditIntent(t *testing.T) {
	existing := map[string]any{"summary": "Quiet day", "mood": "calm"}

	t.Run("meaningful change without reason is rejected", func(t *testing.T) {
		proposed := map[string]any{"summary": "Busy day", "mood": "calm"}
		errs := ValidateEditIntent(existing, proposed, "", "")
		assert.NotNil(t, errs)
		assert.Equal(t, "An edit reason is required when updating this record.", errs["edit_reason_detail"])
	})

	t.Run("whitespace-only reason is rejected", func(t *testing.T) {
		proposed := map[string]any{"summary": "Busy day", "mood": "calm"}
		errs := ValidateEditIntent(existing, proposed, "", "   ")
		assert.NotNil(t, errs)
		assert.NotEmpty(t, errs["edit_reason_detail"])
	})

	t.Run("meaningful change with reason passes", func(t *testing.T) {
		proposed := map[string]any{"summary": "Busy day", "mood": "calm"}
		assert.Nil(t, ValidateEditIntent(existing, proposed, models.EditReasonTypo, "fixed summary"))
	})

	t.Run("no-op update without reason passes", func(t *testing.T) {
		proposed := map[string]any{"summary": "Quiet day", "mood": "calm"}
		assert.Nil(t, ValidateEditIntent(existing, proposed, "", ""))
	})

	t.Run("invalid reason type fails even with detail", func(t *testing.T) {
		proposed := map[string]any{"summary": "Busy day", "mood": "calm"}
		errs := ValidateEditIntent(existing, proposed, "GUESS", "some detail")
		assert.NotNil(t, errs)
		assert.NotEmpty(t, errs["edit_reason_type"])
	})

	t.Run("invalid reason type fails even without changes", func(t *testing.T) {
		proposed := map[string]any{"summary": "Quiet day", "mood": "calm"}
		errs := ValidateEditIntent(existing, proposed, "GUESS", "")
		assert.NotNil(t, errs)
		assert.NotEmpty(t, errs["edit_reason_type"])
	})
}
