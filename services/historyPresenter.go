package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

// HistoryActor identifies the user behind a snapshot.
type HistoryActor struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// HistoryRecord is the raw machine-diff shape of one snapshot.
type HistoryRecord struct {
	History_ID            int               `json:"history_id"`
	History_Date          time.Time         `json:"history_date"`
	History_Type          string            `json:"history_type"`
	History_Change_Reason *string           `json:"history_change_reason"`
	History_User          *HistoryActor     `json:"history_user"`
	Edit_Reason_Type      string            `json:"edit_reason_type"`
	Edit_Reason_Detail    string            `json:"edit_reason_detail"`
	Changes               map[string]Change `json:"changes"`
}

// HistoryReason pairs the structured reason code with the free-text reason.
type HistoryReason struct {
	Type   *string `json:"type"`
	Detail *string `json:"detail"`
}

// HistoryEvent is one entry of the humanized audit timeline.
type HistoryEvent struct {
	ID      int           `json:"id"`
	At      time.Time     `json:"at"`
	Event   string        `json:"event"`
	Actor   *HistoryActor `json:"actor"`
	Reason  HistoryReason `json:"reason"`
	Changes []FieldChange `json:"changes"`
	Summary string        `json:"summary"`
}

// EventKind maps a history type code to its event name. Unrecognized codes map
// to UNKNOWN rather than failing.
func EventKind(historyType string) string {
	switch historyType {
	case models.HistoryTypeCreated:
		return "CREATED"
	case models.HistoryTypeUpdated:
		return "UPDATED"
	case models.HistoryTypeDeleted:
		return "DELETED"
	}
	return "UNKNOWN"
}

// PresentRawHistory turns an ordered (newest first) snapshot list into raw
// diff records. Each snapshot diffs against its chronological predecessor;
// the oldest yields an empty diff.
func PresentRawHistory(rows []models.RecordHistory, descs []FieldDescriptor) ([]HistoryRecord, error) {
	snapshots, err := decodeSnapshots(rows)
	if err != nil {
		return nil, err
	}
	actors := resolveHistoryActors(rows)

	out := []HistoryRecord{}
	for i, row := range rows {
		var prev map[string]any
		if i+1 < len(rows) {
			prev = snapshots[i+1]
		}

		out = append(out, HistoryRecord{
			History_ID:            row.Record_History_ID,
			History_Date:          row.History_Date,
			History_Type:          row.History_Type,
			History_Change_Reason: row.History_Change_Reason,
			History_User:          actorFor(row, actors),
			Edit_Reason_Type:      row.Edit_Reason_Type,
			Edit_Reason_Detail:    row.Edit_Reason_Detail,
			Changes:               ComputeDiff(snapshots[i], prev, descs),
		})
	}
	return out, nil
}

// PresentHistorySummary turns an ordered (newest first) snapshot list into the
// humanized audit timeline. The humanized changes derive from the same diff
// computation as the raw records.
func PresentHistorySummary(rows []models.RecordHistory, descs []FieldDescriptor) ([]HistoryEvent, error) {
	snapshots, err := decodeSnapshots(rows)
	if err != nil {
		return nil, err
	}
	actors := resolveHistoryActors(rows)

	out := []HistoryEvent{}
	for i, row := range rows {
		var prev map[string]any
		if i+1 < len(rows) {
			prev = snapshots[i+1]
		}

		changes := HumanizeDiff(ComputeDiff(snapshots[i], prev, descs), descs)
		actor := actorFor(row, actors)
		event := EventKind(row.History_Type)

		out = append(out, HistoryEvent{
			ID:      row.Record_History_ID,
			At:      row.History_Date,
			Event:   event,
			Actor:   actor,
			Reason:  reasonFor(row),
			Changes: changes,
			Summary: summarize(event, actor, changes),
		})
	}
	return out, nil
}

func reasonFor(row models.RecordHistory) HistoryReason {
	reason := HistoryReason{}
	if row.Edit_Reason_Type != "" {
		t := row.Edit_Reason_Type
		reason.Type = &t
	}
	if row.History_Change_Reason != nil && *row.History_Change_Reason != "" {
		reason.Detail = row.History_Change_Reason
	}
	return reason
}

// summarize builds the one-line narrative for a timeline event, capped at the
// first three changed fields.
func summarize(event string, actor *HistoryActor, changes []FieldChange) string {
	actorName := "Someone"
	if actor != nil {
		actorName = actor.Username
	}

	if len(changes) == 0 && event != "CREATED" {
		return fmt.Sprintf("%s made an update.", actorName)
	}

	if event == "CREATED" {
		return fmt.Sprintf("%s created this record.", actorName)
	}

	parts := []string{}
	for _, c := range changes {
		if len(parts) == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%s → %s)", c.Field, displayString(c.From), displayString(c.To)))
	}

	suffix := ""
	if len(changes) > 3 {
		suffix = fmt.Sprintf(" +%d more", len(changes)-3)
	}

	if len(parts) > 0 {
		return fmt.Sprintf("%s updated %s%s.", actorName, strings.Join(parts, "; "), suffix)
	}
	return fmt.Sprintf("%s updated this record.", actorName)
}

func displayString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func decodeSnapshots(rows []models.RecordHistory) ([]map[string]any, error) {
	snapshots := make([]map[string]any, len(rows))
	for i, row := range rows {
		fields, err := row.SnapshotMap()
		if err != nil {
			return nil, err
		}
		snapshots[i] = fields
	}
	return snapshots, nil
}

func actorFor(row models.RecordHistory, actors map[int]HistoryActor) *HistoryActor {
	if row.History_User_ID == nil {
		return nil
	}
	if actor, ok := actors[*row.History_User_ID]; ok {
		a := actor
		return &a
	}
	return &HistoryActor{ID: *row.History_User_ID}
}

// resolveHistoryActors loads usernames for every distinct acting user in one
// query. Lookup failures degrade to id-only actors.
func resolveHistoryActors(rows []models.RecordHistory) map[int]HistoryActor {
	ids := []int{}
	seen := map[int]bool{}
	for _, row := range rows {
		if row.History_User_ID != nil && !seen[*row.History_User_ID] {
			seen[*row.History_User_ID] = true
			ids = append(ids, *row.History_User_ID)
		}
	}

	actors := map[int]HistoryActor{}
	if len(ids) == 0 {
		return actors
	}

	var users []models.UserProfile
	err := initializers.DB.From("user_profile").
		Select("user_profile_id", "username").
		Where(goqu.C("user_profile_id").In(ids)).
		ScanStructs(&users)
	if err != nil {
		return actors
	}

	for _, u := range users {
		actors[u.User_Profile_ID] = HistoryActor{ID: u.User_Profile_ID, Username: u.Username}
	}
	return actors
}
