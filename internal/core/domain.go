package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// UnknownCategoryName is the display fallback used when a referenced
	// category no longer exists in the registry.
	UnknownCategoryName = "Unknown"

	// PhoneDigits is the required length of a member phone number.
	PhoneDigits = 10
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Member belongs to the fixed household group. Members are owned by the
	// member registry; expenses, entries and comments reference them by id
	// and phone.
	Member struct {
		ID        string
		Name      string
		Phone     string
		IsAdmin   bool
		AddedDate time.Time
	}

	// Category is owned by the category registry and referenced by id from
	// expenses and calendar entries.
	Category struct {
		ID          string
		Name        string
		Color       string
		Icon        string
		CreatedBy   string
		CreatedDate time.Time
	}

	// Expense is a ledger record. Date is the accrual date used for monthly
	// bucketing and is independent of AddedDate (when it was recorded).
	// CategoryName is frozen at creation time for display.
	Expense struct {
		ID           string
		Date         Date
		CategoryID   string
		CategoryName string
		Amount       Money
		Description  string
		AddedBy      string
		AddedDate    time.Time
	}

	// CalendarEntry is a dated, categorized free-form note, optionally
	// carrying a price. The date is immutable after creation: edits change
	// text, category or price, never the day the entry belongs to.
	CalendarEntry struct {
		ID           string
		Date         Date
		CategoryID   string
		CategoryName string
		Text         string
		Price        Money // optional, zero when absent
		CreatedBy    string
		CreatorName  string
		CreatorPhone string
		CreatedAt    time.Time
	}

	// Comment annotates one parent item (an expense or a calendar entry).
	// Replies are one level deep and append-only: once posted they are
	// permanent.
	Comment struct {
		ID          string
		AuthorID    string
		AuthorName  string
		AuthorPhone string
		Text        string
		CreatedAt   time.Time
		Replies     []Reply
	}

	Reply struct {
		ID         string
		AuthorID   string
		AuthorName string
		Text       string
		CreatedAt  time.Time
	}
)

// ParentKind identifies which aggregate a comment thread hangs off.
type ParentKind string

const (
	ParentExpense ParentKind = "expense"
	ParentEntry   ParentKind = "entry"
)

func (k ParentKind) Valid() bool {
	return k == ParentExpense || k == ParentEntry
}

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyText     = errors.New("empty text")
	ErrEmptyCategory = errors.New("empty category")
	ErrMissingDate   = errors.New("missing date")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidParent = errors.New("invalid parent kind")
	ErrNotFound      = errors.New("not found")
	ErrWindowExpired = errors.New("edit window expired")
	ErrTextTooLong   = errors.New("text too long (max 500 characters)")
)

const maxTextLen = 500

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// NewDate creates a Date at UTC midnight of the given day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// SameDay reports whether both dates fall on the same calendar day,
// ignoring time of day.
func (d Date) SameDay(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// InMonth reports whether the date falls in the given year and 0-based month.
func (d Date) InMonth(year, month0 int) bool {
	return d.Year() == year && int(d.Time.Month())-1 == month0
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Phone) != PhoneDigits {
		return ErrInvalidPhone
	}
	for _, r := range m.Phone {
		if r < '0' || r > '9' {
			return ErrInvalidPhone
		}
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyText
	}
	if len(e.Description) > maxTextLen {
		return ErrTextTooLong
	}
	return nil
}

func (e CalendarEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(e.Text)) == 0 {
		return ErrEmptyText
	}
	if len(e.Text) > maxTextLen {
		return ErrTextTooLong
	}
	// Price is optional; when present it must not be negative.
	if e.Price.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateCommentText checks the text shared by comments and replies.
func ValidateCommentText(text string) error {
	if len(strings.TrimSpace(text)) == 0 {
		return ErrEmptyText
	}
	if len(text) > maxTextLen {
		return ErrTextTooLong
	}
	return nil
}
