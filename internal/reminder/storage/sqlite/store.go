// Package sqlite provides a SQLite-backed reminder storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/craycray/rocky/internal/platform/storage/sqlitemigrate"
	"github.com/craycray/rocky/internal/reminder/storage"
	"github.com/craycray/rocky/internal/reminder/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists reminder state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite reminder store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateReminder inserts one reminder record.
func (s *Store) CreateReminder(ctx context.Context, reminder storage.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(reminder.ID)
	inboxID := strings.TrimSpace(reminder.InboxID)
	title := strings.TrimSpace(reminder.Title)
	if id == "" {
		return fmt.Errorf("reminder id is required")
	}
	if inboxID == "" {
		return fmt.Errorf("inbox id is required")
	}
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if reminder.TargetTime.IsZero() {
		return fmt.Errorf("target time is required")
	}
	createdAt := reminder.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO reminders (
		   id,
		   inbox_id,
		   conversation_id,
		   title,
		   description,
		   target_time,
		   sent,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		inboxID,
		strings.TrimSpace(reminder.ConversationID),
		title,
		strings.TrimSpace(reminder.Description),
		toMillis(reminder.TargetTime),
		boolToInt(reminder.Sent),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// ListPendingForInbox returns unsent reminders for one inbox ordered by
// target time ascending.
func (s *Store) ListPendingForInbox(ctx context.Context, inboxID string) ([]storage.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	inboxID = strings.TrimSpace(inboxID)
	if inboxID == "" {
		return nil, fmt.Errorf("inbox id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, inbox_id, conversation_id, title, description,
		        target_time, sent, created_at
		   FROM reminders
		  WHERE inbox_id = ? AND sent = 0
		  ORDER BY target_time ASC`,
		inboxID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reminders := []storage.Reminder{}
	for rows.Next() {
		var reminder storage.Reminder
		var targetTime int64
		var sent int64
		var createdAt int64
		if err := rows.Scan(
			&reminder.ID,
			&reminder.InboxID,
			&reminder.ConversationID,
			&reminder.Title,
			&reminder.Description,
			&targetTime,
			&sent,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminder.TargetTime = fromMillis(targetTime)
		reminder.Sent = sent != 0
		reminder.CreatedAt = fromMillis(createdAt)
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return reminders, nil
}

// MarkSent flags one reminder as delivered.
func (s *Store) MarkSent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("reminder id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `UPDATE reminders SET sent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}
