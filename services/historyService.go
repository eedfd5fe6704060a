package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

// PostCommit collects callbacks to run strictly after the enclosing
// transaction has committed.
type PostCommit struct {
	fns []func()
}

func (p *PostCommit) Add(fn func()) {
	p.fns = append(p.fns, fn)
}

func (p *PostCommit) run() {
	for _, fn := range p.fns {
		fn()
	}
}

// RunInTransaction runs fn inside a transaction on the global DB. Callbacks
// queued on the PostCommit argument run only after a successful commit; a
// rollback discards them along with every write.
func RunInTransaction(fn func(tx *goqu.TxDatabase, after *PostCommit) error) error {
	tx, err := initializers.DB.Begin()
	if err != nil {
		return err
	}

	after := &PostCommit{}
	if err := fn(tx, after); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Println("rollback failed:", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	after.run()
	return nil
}

func appendHistory(tx *goqu.TxDatabase, entityType string, entityID int, historyType string, userID *int, reasonType, reasonDetail string, snapshot map[string]any) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	row := goqu.Record{
		"entity_type":        entityType,
		"entity_id":          entityID,
		"history_date":       time.Now().UTC(),
		"history_type":       historyType,
		"history_user_id":    userID,
		"edit_reason_type":   reasonType,
		"edit_reason_detail": reasonDetail,
		"snapshot":           string(payload),
	}

	_, err = tx.Insert("record_history").Rows(row).Executor().Exec()
	return err
}

// RecordCreated appends a creation snapshot in the caller's transaction.
func RecordCreated(tx *goqu.TxDatabase, entityType string, entityID int, userID *int, reasonType, reasonDetail string, snapshot map[string]any) error {
	return appendHistory(tx, entityType, entityID, models.HistoryTypeCreated, userID, reasonType, reasonDetail, snapshot)
}

// RecordUpdated appends an update snapshot in the caller's transaction.
func RecordUpdated(tx *goqu.TxDatabase, entityType string, entityID int, userID *int, reasonType, reasonDetail string, snapshot map[string]any) error {
	return appendHistory(tx, entityType, entityID, models.HistoryTypeUpdated, userID, reasonType, reasonDetail, snapshot)
}

// RecordDeleted appends a deletion snapshot capturing the pre-deletion state.
func RecordDeleted(tx *goqu.TxDatabase, entityType string, entityID int, userID *int, snapshot map[string]any) error {
	return appendHistory(tx, entityType, entityID, models.HistoryTypeDeleted, userID, "", "", snapshot)
}

// AttributeChangeReason patches the newest history snapshot for an entity with
// the human readable change reason. It must run after the transaction that
// produced the snapshot has committed, so it re-selects the newest row by
// (history_date desc, record_history_id desc) rather than trusting any id
// captured earlier.
func AttributeChangeReason(entityType string, entityID int, reason string) {
	newest := initializers.DB.From("record_history").
		Select("record_history_id").
		Where(goqu.C("entity_type").Eq(entityType), goqu.C("entity_id").Eq(entityID)).
		Order(goqu.C("history_date").Desc(), goqu.C("record_history_id").Desc()).
		Limit(1)

	update := initializers.DB.Update("record_history").
		Set(goqu.Record{"history_change_reason": reason}).
		Where(goqu.C("record_history_id").Eq(newest))

	if _, err := update.Executor().Exec(); err != nil {
		log.Printf("Failed to attribute change reason for %s %d: %v", entityType, entityID, err)
	}
}

// FetchHistory materializes the full ordered snapshot list for one entity,
// newest first. Diffing always works over this list, never a live cursor.
func FetchHistory(entityType string, entityID int) ([]models.RecordHistory, error) {
	var rows []models.RecordHistory
	err := initializers.DB.From("record_history").
		Select("*").
		Where(goqu.C("entity_type").Eq(entityType), goqu.C("entity_id").Eq(entityID)).
		Order(goqu.C("history_date").Desc(), goqu.C("record_history_id").Desc()).
		ScanStructs(&rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
