package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"housetab/internal/core"
	"housetab/internal/ports"
)

// CalendarService manages dated entries on the household calendar.
// Unlike expenses, entries may only be edited or removed inside the
// author's edit window, and the day an entry belongs to never changes.
type CalendarService struct {
	entries    ports.EntryStore
	categories ports.CategoryRegistry
	window     core.EditWindow
	now        func() time.Time
}

func NewCalendarService(entries ports.EntryStore, categories ports.CategoryRegistry, window core.EditWindow) *CalendarService {
	return &CalendarService{
		entries:    entries,
		categories: categories,
		window:     window,
		now:        time.Now,
	}
}

// EntryView pairs an entry with its mutability at the moment of the read.
// The flags are recomputed on every read and never persisted.
type EntryView struct {
	core.CalendarEntry
	CanEdit   bool
	CanDelete bool
}

func (s *CalendarService) view(e core.CalendarEntry) EntryView {
	mutable := s.window.CanModify(e.CreatedAt, s.now())
	return EntryView{CalendarEntry: e, CanEdit: mutable, CanDelete: mutable}
}

// Create validates and saves a new entry, freezing the category display
// name at creation time.
func (s *CalendarService) Create(ctx context.Context, e core.CalendarEntry) (core.CalendarEntry, error) {
	if err := e.Validate(); err != nil {
		return core.CalendarEntry{}, err
	}

	e.ID = uuid.NewString()
	e.CategoryName = s.resolveCategoryName(ctx, e.CategoryID)
	e.CreatedAt = s.now()

	if err := s.entries.CreateEntry(ctx, e); err != nil {
		return core.CalendarEntry{}, fmt.Errorf("save entry: %w", err)
	}
	return e, nil
}

func (s *CalendarService) Get(ctx context.Context, id string) (EntryView, error) {
	e, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return EntryView{}, err
	}
	return s.view(e), nil
}

// Update edits an entry's text, category and price. It fails with
// core.ErrWindowExpired once the edit window anchored to the entry's
// creation has passed. The date is immutable and taken from the stored
// entry, never from the caller.
func (s *CalendarService) Update(ctx context.Context, e core.CalendarEntry) (core.CalendarEntry, error) {
	current, err := s.entries.GetEntry(ctx, e.ID)
	if err != nil {
		return core.CalendarEntry{}, err
	}
	if !s.window.CanModify(current.CreatedAt, s.now()) {
		return core.CalendarEntry{}, core.ErrWindowExpired
	}

	e.Date = current.Date
	e.CreatedBy = current.CreatedBy
	e.CreatorName = current.CreatorName
	e.CreatorPhone = current.CreatorPhone
	e.CreatedAt = current.CreatedAt

	if err := e.Validate(); err != nil {
		return core.CalendarEntry{}, err
	}

	if e.CategoryID != current.CategoryID {
		e.CategoryName = s.resolveCategoryName(ctx, e.CategoryID)
	} else {
		e.CategoryName = current.CategoryName
	}

	if err := s.entries.UpdateEntry(ctx, e); err != nil {
		return core.CalendarEntry{}, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

// Remove deletes an entry and its comment thread, subject to the same
// window as edits.
func (s *CalendarService) Remove(ctx context.Context, id string) error {
	current, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if !s.window.CanModify(current.CreatedAt, s.now()) {
		return core.ErrWindowExpired
	}
	return s.entries.DeleteEntry(ctx, id)
}

// ListMonth returns all entries of a month (0-based), in insertion order.
func (s *CalendarService) ListMonth(ctx context.Context, year, month0 int) ([]EntryView, error) {
	entries, err := s.entries.ListEntriesByMonth(ctx, year, month0)
	if err != nil {
		return nil, err
	}
	views := make([]EntryView, len(entries))
	for i, e := range entries {
		views[i] = s.view(e)
	}
	return views, nil
}

// ListDay returns the entries of a single calendar day.
func (s *CalendarService) ListDay(ctx context.Context, day core.Date) ([]EntryView, error) {
	entries, err := s.entries.ListEntriesByMonth(ctx, day.Year(), int(day.Month())-1)
	if err != nil {
		return nil, err
	}
	var views []EntryView
	for _, e := range entries {
		if e.Date.SameDay(day) {
			views = append(views, s.view(e))
		}
	}
	return views, nil
}

func (s *CalendarService) resolveCategoryName(ctx context.Context, categoryID string) string {
	c, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Category lookup failed, using fallback name",
				"category_id", categoryID, "error", err)
		}
		return core.UnknownCategoryName
	}
	return c.Name
}
