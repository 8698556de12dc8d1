package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	err = r.RecordRun(&RunRecord{
		StartedAt:       time.Now(),
		Duration:        1200 * time.Millisecond,
		Succeeded:       10,
		Failed:          1,
		Rows:            2800,
		OverheatedCount: 2,
		Published:       true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var count, succeeded, published int
	row := r.db.QueryRow(`SELECT COUNT(*), MAX(succeeded), MAX(published) FROM runs`)
	if err := row.Scan(&count, &succeeded, &published); err != nil {
		t.Fatal(err)
	}
	if count != 1 || succeeded != 10 || published != 1 {
		t.Errorf("stored run = count %d, succeeded %d, published %d", count, succeeded, published)
	}
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.RecordRun(&RunRecord{StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	r.Close()

	// Migrations must be idempotent across reopens.
	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r2.Close()

	var count int
	if err := r2.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected the earlier run to survive reopen, got %d", count)
	}
}
