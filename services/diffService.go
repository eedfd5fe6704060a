package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

type FieldKind int

const (
	FieldScalar FieldKind = iota
	FieldChoice
	FieldFK
)

// FieldDescriptor declares how one domain field of an auditable entity is
// diffed and displayed. Identity, bookkeeping and audit-intent fields have no
// descriptor and therefore never appear in a diff.
type FieldDescriptor struct {
	Name    string
	Label   string
	Kind    FieldKind
	Choices map[string]string
	// Resolve maps a stored foreign key to the referenced entity's display
	// string. A false return means the row no longer exists.
	Resolve func(id any) (string, bool)
}

// Change is a raw before/after pair for one field.
type Change struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// FieldChange is the humanized shape of one changed field.
type FieldChange struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}

// IncidentFieldDescriptors describes the diffable fields of an incident.
var IncidentFieldDescriptors = []FieldDescriptor{
	{Name: "resident_id", Label: "Resident", Kind: FieldFK, Resolve: ResolveResidentDisplay},
	{Name: "reported_by", Label: "Reported by", Kind: FieldFK, Resolve: ResolveUserDisplay},
	{Name: "occurred_at", Label: "Occurred at"},
	{Name: "category", Label: "Category", Kind: FieldChoice, Choices: models.IncidentCategoryLabels},
	{Name: "severity", Label: "Severity", Kind: FieldChoice, Choices: models.SeverityLabels},
	{Name: "description", Label: "Description"},
	{Name: "action_taken", Label: "Action taken"},
	{Name: "external_contacts", Label: "External contacts"},
	{Name: "follow_up_required", Label: "Follow up required"},
}

// MARFieldDescriptors describes the diffable fields of a medication
// administration record.
var MARFieldDescriptors = []FieldDescriptor{
	{Name: "medication_id", Label: "Medication", Kind: FieldFK, Resolve: ResolveMedicationDisplay},
	{Name: "administered_by", Label: "Administered by", Kind: FieldFK, Resolve: ResolveUserDisplay},
	{Name: "administered_at", Label: "Administered at"},
	{Name: "outcome", Label: "Outcome", Kind: FieldChoice, Choices: models.MAROutcomeLabels},
	{Name: "notes", Label: "Notes"},
}

// DailyLogFieldDescriptors describes the diffable fields of a daily log.
var DailyLogFieldDescriptors = []FieldDescriptor{
	{Name: "resident_id", Label: "Resident", Kind: FieldFK, Resolve: ResolveResidentDisplay},
	{Name: "shift_id", Label: "Shift", Kind: FieldFK, Resolve: ResolveShiftDisplay},
	{Name: "author_id", Label: "Author", Kind: FieldFK, Resolve: ResolveUserDisplay},
	{Name: "summary", Label: "Summary"},
	{Name: "mood", Label: "Mood"},
	{Name: "interventions", Label: "Interventions"},
	{Name: "event_at", Label: "Event at"},
	{Name: "recorded_at", Label: "Recorded at"},
}

// DescriptorsFor returns the field descriptors for a record_history entity type.
func DescriptorsFor(entityType string) []FieldDescriptor {
	switch entityType {
	case models.EntityIncident:
		return IncidentFieldDescriptors
	case models.EntityMedicationAdministration:
		return MARFieldDescriptors
	case models.EntityDailyLog:
		return DailyLogFieldDescriptors
	}
	return nil
}

// ComputeDiff compares a snapshot to its chronological predecessor, field by
// field over the descriptor set. Callers pass nil prev for the oldest
// snapshot, which yields an empty diff.
func ComputeDiff(curr, prev map[string]any, descs []FieldDescriptor) map[string]Change {
	changes := map[string]Change{}
	if prev == nil {
		return changes
	}

	for _, desc := range descs {
		oldValue := prev[desc.Name]
		newValue := curr[desc.Name]
		if !snapshotValuesEqual(oldValue, newValue) {
			changes[desc.Name] = Change{From: oldValue, To: newValue}
		}
	}
	return changes
}

// HumanizeDiff derives the presentation shape from a raw diff: descriptor
// order, display labels, choice labels and foreign keys resolved to display
// strings (raw key kept when the referenced row is gone).
func HumanizeDiff(diff map[string]Change, descs []FieldDescriptor) []FieldChange {
	out := []FieldChange{}
	for _, desc := range descs {
		change, ok := diff[desc.Name]
		if !ok {
			continue
		}
		out = append(out, FieldChange{
			Field: desc.DisplayLabel(),
			From:  desc.DisplayValue(change.From),
			To:    desc.DisplayValue(change.To),
		})
	}
	return out
}

// DisplayLabel returns the declared label, falling back to title-casing the
// raw field name.
func (d FieldDescriptor) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return HumanizeLabel(d.Name)
}

// DisplayValue formats a stored value for presentation.
func (d FieldDescriptor) DisplayValue(value any) any {
	if value == nil {
		return nil
	}

	switch d.Kind {
	case FieldChoice:
		code := fmt.Sprintf("%v", value)
		if label, ok := d.Choices[code]; ok {
			return label
		}
		return value
	case FieldFK:
		if d.Resolve != nil {
			if display, ok := d.Resolve(value); ok {
				return display
			}
		}
		return value
	}
	return value
}

// HumanizeLabel turns a raw snake_case field name into a title-cased label.
func HumanizeLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ResolveResidentDisplay looks up a resident's display name by primary key.
func ResolveResidentDisplay(id any) (string, bool) {
	var resident models.Resident
	found, err := initializers.DB.From("resident").
		Select("resident_id", "legal_name", "preferred_name").
		Where(goqu.C("resident_id").Eq(id)).
		ScanStruct(&resident)
	if err != nil || !found {
		return "", false
	}
	return resident.DisplayName(), true
}

// ResolveUserDisplay looks up a user's username by primary key.
func ResolveUserDisplay(id any) (string, bool) {
	var username string
	found, err := initializers.DB.From("user_profile").
		Select("username").
		Where(goqu.C("user_profile_id").Eq(id)).
		ScanVal(&username)
	if err != nil || !found {
		return "", false
	}
	return username, true
}

// ResolveMedicationDisplay looks up a medication's name by primary key.
func ResolveMedicationDisplay(id any) (string, bool) {
	var name string
	found, err := initializers.DB.From("medication").
		Select("medication_name").
		Where(goqu.C("medication_id").Eq(id)).
		ScanVal(&name)
	if err != nil || !found {
		return "", false
	}
	return name, true
}

// ResolveShiftDisplay looks up a shift's display string by primary key.
func ResolveShiftDisplay(id any) (string, bool) {
	var shift models.Shift
	found, err := initializers.DB.From("shift").
		Select("shift_id", "shift_type", "starts_at").
		Where(goqu.C("shift_id").Eq(id)).
		ScanStruct(&shift)
	if err != nil || !found {
		return "", false
	}
	label := shift.Shift_Type
	if l, ok := models.ShiftTypeLabels[shift.Shift_Type]; ok {
		label = l
	}
	return fmt.Sprintf("%s %s", label, shift.Starts_At.Format("2006-01-02")), true
}

// snapshotValuesEqual compares two snapshot values. Numeric values compare by
// magnitude because JSON decoding yields float64 while in-memory snapshots
// carry ints.
func snapshotValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}

	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
