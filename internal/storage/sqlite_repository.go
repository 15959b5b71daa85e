package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed-width so that stored timestamps compare correctly as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const todoColumns = `id, title, description, priority, sort_order, due_date, reminder_at, completed, archived, created_at, updated_at`

// Display order of todos: priority group, then manual order, then due date
// (undated last), then newest first.
const todoOrderBy = ` ORDER BY
		CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END,
		sort_order ASC,
		CASE WHEN due_date IS NULL THEN 1 ELSE 0 END,
		due_date ASC,
		created_at DESC`

type SQLiteRepository struct {
	db   *sql.DB
	path string
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	repo.path = path
	return repo, nil
}

func (r *SQLiteRepository) Path() string {
	return r.path
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (`+todoColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.Priority, in.SortOrder,
		nullTime(in.DueDate), nullTime(in.ReminderAt), boolInt(in.Completed), boolInt(in.Archived),
		mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id string) (Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return todo, nil
}

func (r *SQLiteRepository) UpdateTodo(ctx context.Context, in Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, priority = ?, sort_order = ?, due_date = ?, reminder_at = ?,
			completed = ?, archived = ?, updated_at = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Priority, in.SortOrder, nullTime(in.DueDate), nullTime(in.ReminderAt),
		boolInt(in.Completed), boolInt(in.Archived), mustTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Archived != nil {
		clauses = append(clauses, "archived = ?")
		args = append(args, boolInt(*filter.Archived))
	}
	if filter.Priority != "" {
		clauses = append(clauses, "priority = ?")
		args = append(args, filter.Priority)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += todoOrderBy
	query += applyPagination(&args, filter.Limit, filter.Offset)
	return r.queryTodos(ctx, query, args...)
}

// NextSortOrder returns the key that places a new todo at the end of its
// non-archived priority group.
func (r *SQLiteRepository) NextSortOrder(ctx context.Context, priority string) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(sort_order) FROM todos WHERE archived = 0 AND priority = ?`, priority).Scan(&maxOrder)
	if err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 10, nil
}

// UpdateTodoOrder rewrites sort_order for every entry in one transaction. An
// unknown id rolls back the whole batch and returns ErrNotFound.
func (r *SQLiteRepository) UpdateTodoOrder(ctx context.Context, updates []OrderUpdate, at time.Time) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `UPDATE todos SET sort_order = ?, updated_at = ? WHERE id = ?`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare order update: %w", err)
	}
	defer stmt.Close()

	stamp := mustTime(at)
	for _, u := range updates {
		res, execErr := stmt.ExecContext(ctx, u.Order, stamp, u.ID)
		if execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update order for %s: %w", u.ID, execErr)
		}
		if affectedErr := checkRowsAffected(res); affectedErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update order for %s: %w", u.ID, affectedErr)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) TodoStats(ctx context.Context) (TodoStats, error) {
	var out TodoStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completed = 0 AND archived = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN archived = 1 THEN 1 ELSE 0 END), 0)
		FROM todos`).Scan(&out.Total, &out.Completed, &out.Pending, &out.Archived)
	return out, err
}

func (r *SQLiteRepository) ListDueReminders(ctx context.Context, now time.Time) ([]Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
		WHERE reminder_at IS NOT NULL AND reminder_at <= ? AND completed = 0 AND archived = 0
		ORDER BY reminder_at ASC`
	return r.queryTodos(ctx, query, mustTime(now))
}

func (r *SQLiteRepository) CreateInspiration(ctx context.Context, in Inspiration) error {
	tags, err := encodeTags(in.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO inspirations (id, content, tags, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.Content, tags, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetInspiration(ctx context.Context, id string) (Inspiration, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, content, tags, created_at FROM inspirations WHERE id = ?`, id)
	item, err := scanInspiration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Inspiration{}, ErrNotFound
		}
		return Inspiration{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) DeleteInspiration(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inspirations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListInspirations(ctx context.Context, filter InspirationListFilter) ([]Inspiration, error) {
	query := `SELECT id, content, tags, created_at FROM inspirations`
	args := make([]any, 0, 4)
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		query += ` WHERE content LIKE ? OR tags LIKE ?`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Inspiration, 0)
	for rows.Next() {
		item, scanErr := scanInspiration(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) queryTodos(ctx context.Context, query string, args ...any) ([]Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(raw), nil
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (Todo, error) {
	var out Todo
	var due sql.NullString
	var reminder sql.NullString
	var completed int
	var archived int
	var created string
	var updated string
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.Priority, &out.SortOrder,
		&due, &reminder, &completed, &archived, &created, &updated); err != nil {
		return Todo{}, err
	}
	dueDate, err := parseNullableTime(due)
	if err != nil {
		return Todo{}, err
	}
	reminderAt, err := parseNullableTime(reminder)
	if err != nil {
		return Todo{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Todo{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Todo{}, err
	}
	out.DueDate = dueDate
	out.ReminderAt = reminderAt
	out.Completed = completed == 1
	out.Archived = archived == 1
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanInspiration(s scanner) (Inspiration, error) {
	var out Inspiration
	var tags string
	var created string
	if err := s.Scan(&out.ID, &out.Content, &tags, &created); err != nil {
		return Inspiration{}, err
	}
	if err := json.Unmarshal([]byte(tags), &out.Tags); err != nil {
		return Inspiration{}, fmt.Errorf("decode tags for %s: %w", out.ID, err)
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Inspiration{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
