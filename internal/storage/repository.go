// Package storage implements the persistence ports on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"housetab/internal/core"
	"housetab/internal/ports"

	_ "modernc.org/sqlite"
)

const fullAmountKey = "full_amount"

// dateLayout is how day-granularity dates are stored. ISO dates compare
// correctly as strings, which the range queries below rely on.
const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

// Compile-time conformance with the service-layer ports.
var (
	_ ports.ExpenseStore     = (*SQLiteRepository)(nil)
	_ ports.EntryStore       = (*SQLiteRepository)(nil)
	_ ports.CommentStore     = (*SQLiteRepository)(nil)
	_ ports.CategoryRegistry = (*SQLiteRepository)(nil)
	_ ports.MemberRegistry   = (*SQLiteRepository)(nil)
	_ ports.BudgetStore      = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func encodeDate(d core.Date) string {
	return d.Format(dateLayout)
}

func decodeDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return core.Date{Time: t}, nil
}

// Timestamps are stored as unix milliseconds; the edit window is compared at
// millisecond precision.
func encodeTime(t time.Time) int64 {
	return t.UnixMilli()
}

func decodeTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// --- expenses -------------------------------------------------------------

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, date, category_id, category_name, amount_cents, description, added_by, added_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, encodeDate(e.Date), e.CategoryID, e.CategoryName, e.Amount.Cents,
		e.Description, e.AddedBy, encodeTime(e.AddedDate))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"date", encodeDate(e.Date))
	return nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, category_id, category_name, amount_cents, description, added_by, added_date
		FROM expenses WHERE id = ?`, id)
	return scanExpense(row)
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET date = ?, category_id = ?, category_name = ?, amount_cents = ?, description = ?, synced = 0
		WHERE id = ?`,
		encodeDate(e.Date), e.CategoryID, e.CategoryName, e.Amount.Cents, e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

// DeleteExpense removes the expense and its whole comment thread in one
// transaction so no orphaned comments survive.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete expense: %w", err)
	}
	defer tx.Rollback()

	if err := deleteThreadTx(ctx, tx, core.ParentExpense, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted with its comment thread", "id", id)
	return nil
}

func (r *SQLiteRepository) FilterExpenses(ctx context.Context, f ports.ExpenseFilter) ([]core.Expense, error) {
	query := `
		SELECT id, date, category_id, category_name, amount_cents, description, added_by, added_date
		FROM expenses WHERE 1=1`
	args := []any{}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if !f.StartDate.IsZero() {
		query += ` AND date >= ?`
		args = append(args, encodeDate(f.StartDate))
	}
	if !f.EndDate.IsZero() {
		query += ` AND date <= ?`
		args = append(args, encodeDate(f.EndDate))
	}
	query += ` ORDER BY date DESC, added_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e       core.Expense
		date    string
		addedMs int64
	)
	err := row.Scan(&e.ID, &date, &e.CategoryID, &e.CategoryName, &e.Amount.Cents,
		&e.Description, &e.AddedBy, &addedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	if e.Date, err = decodeDate(date); err != nil {
		return core.Expense{}, err
	}
	e.AddedDate = decodeTime(addedMs)
	return e, nil
}

// --- sync bookkeeping for the export worker -------------------------------

// PendingSyncExpenses returns expenses not yet mirrored to the export sheet,
// oldest first.
func (r *SQLiteRepository) PendingSyncExpenses(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, category_id, category_name, amount_cents, description, added_by, added_date
		FROM expenses WHERE synced = 0 ORDER BY added_date ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("pending sync expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkExpenseSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE expenses SET synced = 1, sync_error = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark expense synced: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) MarkExpenseSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE expenses SET sync_error = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark expense sync error: %w", err)
	}
	slog.WarnContext(ctx, "Expense marked with sync error", "id", id)
	return nil
}

// --- calendar entries -----------------------------------------------------

func (r *SQLiteRepository) CreateEntry(ctx context.Context, e core.CalendarEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_entries (id, date, category_id, category_name, text, price_cents, created_by, creator_name, creator_phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, encodeDate(e.Date), e.CategoryID, e.CategoryName, e.Text, e.Price.Cents,
		e.CreatedBy, e.CreatorName, e.CreatorPhone, encodeTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert calendar entry: %w", err)
	}

	slog.InfoContext(ctx, "Calendar entry saved",
		"id", e.ID,
		"date", encodeDate(e.Date),
		"category_id", e.CategoryID)
	return nil
}

func (r *SQLiteRepository) GetEntry(ctx context.Context, id string) (core.CalendarEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, category_id, category_name, text, price_cents, created_by, creator_name, creator_phone, created_at
		FROM calendar_entries WHERE id = ?`, id)
	return scanEntry(row)
}

// UpdateEntry persists mutable entry fields. The date column is deliberately
// not in the SET list: an entry's day is fixed at creation.
func (r *SQLiteRepository) UpdateEntry(ctx context.Context, e core.CalendarEntry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE calendar_entries
		SET category_id = ?, category_name = ?, text = ?, price_cents = ?
		WHERE id = ?`,
		e.CategoryID, e.CategoryName, e.Text, e.Price.Cents, e.ID)
	if err != nil {
		return fmt.Errorf("update calendar entry: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete entry: %w", err)
	}
	defer tx.Rollback()

	if err := deleteThreadTx(ctx, tx, core.ParentEntry, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM calendar_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calendar entry: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListEntriesByMonth(ctx context.Context, year, month0 int) ([]core.CalendarEntry, error) {
	first := core.NewDate(year, month0+1, 1)
	last := core.Date{Time: first.AddDate(0, 1, -1)}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, category_id, category_name, text, price_cents, created_by, creator_name, creator_phone, created_at
		FROM calendar_entries WHERE date >= ? AND date <= ?`,
		encodeDate(first), encodeDate(last))
	if err != nil {
		return nil, fmt.Errorf("list entries by month: %w", err)
	}
	defer rows.Close()

	var out []core.CalendarEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(row rowScanner) (core.CalendarEntry, error) {
	var (
		e         core.CalendarEntry
		date      string
		createdMs int64
	)
	err := row.Scan(&e.ID, &date, &e.CategoryID, &e.CategoryName, &e.Text, &e.Price.Cents,
		&e.CreatedBy, &e.CreatorName, &e.CreatorPhone, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CalendarEntry{}, core.ErrNotFound
	}
	if err != nil {
		return core.CalendarEntry{}, fmt.Errorf("scan calendar entry: %w", err)
	}
	if e.Date, err = decodeDate(date); err != nil {
		return core.CalendarEntry{}, err
	}
	e.CreatedAt = decodeTime(createdMs)
	return e, nil
}

// --- comment threads ------------------------------------------------------

func (r *SQLiteRepository) ParentExists(ctx context.Context, kind core.ParentKind, parentID string) (bool, error) {
	table := "expenses"
	if kind == core.ParentEntry {
		table = "calendar_entries"
	}
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, parentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check parent: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) AddComment(ctx context.Context, kind core.ParentKind, parentID string, c core.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, parent_kind, parent_id, author_id, author_name, author_phone, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(kind), parentID, c.AuthorID, c.AuthorName, c.AuthorPhone, c.Text, encodeTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetComment(ctx context.Context, kind core.ParentKind, parentID, commentID string) (core.Comment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, author_id, author_name, author_phone, text, created_at
		FROM comments WHERE id = ? AND parent_kind = ? AND parent_id = ?`,
		commentID, string(kind), parentID)

	var (
		c         core.Comment
		createdMs int64
	)
	err := row.Scan(&c.ID, &c.AuthorID, &c.AuthorName, &c.AuthorPhone, &c.Text, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Comment{}, core.ErrNotFound
	}
	if err != nil {
		return core.Comment{}, fmt.Errorf("scan comment: %w", err)
	}
	c.CreatedAt = decodeTime(createdMs)

	c.Replies, err = r.listReplies(ctx, c.ID)
	if err != nil {
		return core.Comment{}, err
	}
	return c, nil
}

// ListComments returns comments in insertion (rowid) order. Ids and
// timestamps are assigned at append time, so insertion order is
// chronological order; no re-sort by timestamp is applied.
func (r *SQLiteRepository) ListComments(ctx context.Context, kind core.ParentKind, parentID string) ([]core.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author_id, author_name, author_phone, text, created_at
		FROM comments WHERE parent_kind = ? AND parent_id = ? ORDER BY rowid ASC`,
		string(kind), parentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []core.Comment
	for rows.Next() {
		var (
			c         core.Comment
			createdMs int64
		)
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.AuthorName, &c.AuthorPhone, &c.Text, &createdMs); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.CreatedAt = decodeTime(createdMs)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Replies, err = r.listReplies(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteRepository) listReplies(ctx context.Context, commentID string) ([]core.Reply, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author_id, author_name, text, created_at
		FROM replies WHERE comment_id = ? ORDER BY rowid ASC`, commentID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	var out []core.Reply
	for rows.Next() {
		var (
			rep       core.Reply
			createdMs int64
		)
		if err := rows.Scan(&rep.ID, &rep.AuthorID, &rep.AuthorName, &rep.Text, &createdMs); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		rep.CreatedAt = decodeTime(createdMs)
		out = append(out, rep)
	}
	return out, rows.Err()
}

// UpdateCommentText replaces the text and nothing else; created_at is left
// untouched so editing cannot extend the edit window.
func (r *SQLiteRepository) UpdateCommentText(ctx context.Context, kind core.ParentKind, parentID, commentID, text string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE comments SET text = ? WHERE id = ? AND parent_kind = ? AND parent_id = ?`,
		text, commentID, string(kind), parentID)
	if err != nil {
		return fmt.Errorf("update comment text: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteComment(ctx context.Context, kind core.ParentKind, parentID, commentID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete comment: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM replies WHERE comment_id = ?`, commentID); err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		DELETE FROM comments WHERE id = ? AND parent_kind = ? AND parent_id = ?`,
		commentID, string(kind), parentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) AddReply(ctx context.Context, commentID string, rep core.Reply) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO replies (id, comment_id, author_id, author_name, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rep.ID, commentID, rep.AuthorID, rep.AuthorName, rep.Text, encodeTime(rep.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

// deleteThreadTx removes every comment and reply attached to a parent inside
// an open transaction.
func deleteThreadTx(ctx context.Context, tx *sql.Tx, kind core.ParentKind, parentID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM replies WHERE comment_id IN (
			SELECT id FROM comments WHERE parent_kind = ? AND parent_id = ?
		)`, string(kind), parentID)
	if err != nil {
		return fmt.Errorf("delete thread replies: %w", err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_kind = ? AND parent_id = ?`,
		string(kind), parentID)
	if err != nil {
		return fmt.Errorf("delete thread comments: %w", err)
	}
	return nil
}

// --- categories -----------------------------------------------------------

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, icon, created_by, created_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, c.Icon, c.CreatedBy, encodeTime(c.CreatedDate))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, color, icon, created_by, created_date FROM categories WHERE id = ?`, id)

	var (
		c         core.Category
		createdMs int64
	)
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedBy, &createdMs)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("scan category: %w", err)
	}
	c.CreatedDate = decodeTime(createdMs)
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, color, icon, created_by, created_date FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var (
			c         core.Category
			createdMs int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.CreatedBy, &createdMs); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedDate = decodeTime(createdMs)
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCategory removes only the category row. Expenses and entries that
// reference it keep their frozen category_name, so nothing downstream
// breaks; fresh lookups fall back to the "Unknown" label.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

// --- members --------------------------------------------------------------

func (r *SQLiteRepository) CreateMember(ctx context.Context, m core.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, name, phone, is_admin, added_date)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Phone, boolToInt(m.IsAdmin), encodeTime(m.AddedDate))
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, is_admin, added_date FROM members ORDER BY added_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var out []core.Member
	for rows.Next() {
		var (
			m       core.Member
			isAdmin int
			addedMs int64
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &isAdmin, &addedMs); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.IsAdmin = isAdmin != 0
		m.AddedDate = decodeTime(addedMs)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountMembers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteMember(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return requireRow(res)
}

// --- settings -------------------------------------------------------------

// GetFullAmount returns the configured budget ceiling, zero when none has
// been set yet.
func (r *SQLiteRepository) GetFullAmount(ctx context.Context) (core.Money, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, fullAmountKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Money{}, nil
	}
	if err != nil {
		return core.Money{}, fmt.Errorf("get full amount: %w", err)
	}
	cents, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return core.Money{}, fmt.Errorf("parse stored full amount %q: %w", value, err)
	}
	return core.Money{Cents: cents}, nil
}

func (r *SQLiteRepository) SetFullAmount(ctx context.Context, amount core.Money) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fullAmountKey, strconv.FormatInt(amount.Cents, 10))
	if err != nil {
		return fmt.Errorf("set full amount: %w", err)
	}
	slog.InfoContext(ctx, "Full amount updated", "amount_cents", amount.Cents)
	return nil
}

// --- helpers --------------------------------------------------------------

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
