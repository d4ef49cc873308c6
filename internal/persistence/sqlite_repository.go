package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/entropiahud/entropiahud/internal/session"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL mode reduces write latency by avoiding full fsync on every commit.
	// synchronous=NORMAL is safe with WAL and significantly faster than the default FULL.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}
	repo := &SQLiteRepository{db: db}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSession(ctx context.Context, rec SessionRecord) error {
	payload, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = r.db.ExecContext(ctx, `INSERT INTO sessions(
		session_id, started_at, ended_at, event_count, snapshot_json, updated_at
	) VALUES(?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		started_at=excluded.started_at,
		ended_at=excluded.ended_at,
		event_count=excluded.event_count,
		snapshot_json=excluded.snapshot_json,
		updated_at=excluded.updated_at`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.EndedAt.UTC().Format(time.RFC3339Nano),
		rec.EventCount,
		string(payload),
		now,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT session_id, started_at, ended_at, event_count, snapshot_json
		FROM sessions WHERE session_id = ?`, id)

	rec, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) ListSessions(ctx context.Context, f SessionFilter) ([]SessionRecord, error) {
	query := `SELECT session_id, started_at, ended_at, event_count, snapshot_json FROM sessions`
	where, args := filterClause(f)
	query += where + ` ORDER BY started_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	} else if f.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []SessionRecord{}
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CountSessions(ctx context.Context, f SessionFilter) (int, error) {
	where, args := filterClause(f)
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func filterClause(f SessionFilter) (string, []any) {
	where := ""
	args := []any{}
	appendCond := func(cond string, arg any) {
		if where == "" {
			where = ` WHERE ` + cond
		} else {
			where += ` AND ` + cond
		}
		args = append(args, arg)
	}
	if f.FromTime != nil {
		appendCond(`started_at >= ?`, f.FromTime.UTC().Format(time.RFC3339Nano))
	}
	if f.ToTime != nil {
		appendCond(`started_at <= ?`, f.ToTime.UTC().Format(time.RFC3339Nano))
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var rec SessionRecord
	var startedAt, endedAt, payload string
	if err := row.Scan(&rec.ID, &startedAt, &endedAt, &rec.EventCount, &payload); err != nil {
		return nil, err
	}

	var err error
	rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt)
	if err != nil {
		return nil, fmt.Errorf("parse ended_at: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode session snapshot: %w", err)
	}
	rec.Snapshot = snap
	return &rec, nil
}
