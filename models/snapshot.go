package models

import "time"

// Snapshot values are stored as JSON, so times normalize to RFC3339 strings
// and nullable references to nil.

func formatSnapshotTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatSnapshotTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatSnapshotTime(*t)
}

func intPtrValue(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
