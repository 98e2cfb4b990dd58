// Package journal keeps a summary of every finished export and import run.
package journal

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
)

// RunKind tells exports and imports apart.
type RunKind string

const (
	KindExport RunKind = "export"
	KindImport RunKind = "import"
)

// SyncRun is the database model of a finished run.
type SyncRun struct {
	ID          uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	Kind        RunKind        `gorm:"column:kind;not null"`
	Owner       string         `gorm:"column:owner;not null;index"`
	OK          bool           `gorm:"column:ok;not null"`
	UserMessage string         `gorm:"column:user_message"`
	OutputPath  string         `gorm:"column:output_path"`
	Imported    pq.StringArray `gorm:"column:imported;type:text[]"`
	Remaining   RemainingRows  `gorm:"column:remaining;type:jsonb"`
	StartedAt   time.Time      `gorm:"column:started_at;not null"`
	FinishedAt  time.Time      `gorm:"column:finished_at;not null"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

// Duration is how long the run took.
func (r SyncRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// RemainingRows is stored as a JSON array.
type RemainingRows []friends.Friendship

// Value implements driver.Valuer
func (r RemainingRows) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]friends.Friendship(r))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (r *RemainingRows) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RemainingRows", src)
	}
	return json.Unmarshal(raw, (*[]friends.Friendship)(r))
}

// NewExportRun builds the journal entry of an export.
func NewExportRun(result friends.ExportResult, startedAt, finishedAt time.Time) *SyncRun {
	return &SyncRun{
		ID:          uuid.New(),
		Kind:        KindExport,
		Owner:       result.Owner,
		OK:          result.OK,
		UserMessage: result.UserMessage,
		OutputPath:  result.OutputPath,
		Imported:    pq.StringArray{},
		Remaining:   RemainingRows{},
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
	}
}

// NewImportRun builds the journal entry of an import. remainingPath is where
// the rows worth retrying were saved, if anywhere.
func NewImportRun(result friends.ImportResult, remainingPath string, startedAt, finishedAt time.Time) *SyncRun {
	imported := pq.StringArray(append([]string{}, result.Imported...))
	return &SyncRun{
		ID:          uuid.New(),
		Kind:        KindImport,
		Owner:       result.Owner,
		OK:          result.OK,
		UserMessage: result.UserMessage,
		OutputPath:  remainingPath,
		Imported:    imported,
		Remaining:   RemainingRows(append([]friends.Friendship{}, result.Remaining...)),
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
	}
}
