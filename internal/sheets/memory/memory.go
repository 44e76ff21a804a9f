package memory

import (
	"context"
	"fmt"
	"sync"

	"housetab/internal/core"
	ports "housetab/internal/sheets"
)

// Mirror is an in-memory ExpenseMirror used in tests and local runs
// without Google credentials.
type Mirror struct {
	mu   sync.Mutex
	rows map[string]core.Expense
	fail error
}

var _ ports.ExpenseMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{rows: make(map[string]core.Expense)}
}

// Fail makes every subsequent call return err. Passing nil heals the mirror.
func (m *Mirror) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *Mirror) AppendExpense(_ context.Context, e core.Expense) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", m.fail
	}
	m.rows[e.ID] = e
	return fmt.Sprintf("memory!%s", e.ID), nil
}

func (m *Mirror) RemoveExpense(_ context.Context, expenseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	delete(m.rows, expenseID)
	return nil
}

// Get returns the mirrored copy of an expense, if present.
func (m *Mirror) Get(expenseID string) (core.Expense, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[expenseID]
	return e, ok
}

// Len returns the number of mirrored rows.
func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
