package http

import (
	"fmt"
	"time"

	"housetab/internal/core"
	"housetab/internal/services"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return core.Date{Time: t}, nil
}

func formatDate(d core.Date) string {
	return d.Format(dateLayout)
}

type expenseJSON struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	AmountCents  int64  `json:"amountCents"`
	Description  string `json:"description"`
	AddedBy      string `json:"addedBy,omitempty"`
	AddedDate    string `json:"addedDate"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:           e.ID,
		Date:         formatDate(e.Date),
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		AmountCents:  e.Amount.Cents,
		Description:  e.Description,
		AddedBy:      e.AddedBy,
		AddedDate:    e.AddedDate.UTC().Format(time.RFC3339),
	}
}

type expenseRequest struct {
	Date        string `json:"date"`
	CategoryID  string `json:"categoryId"`
	AmountCents int64  `json:"amountCents"`
	Description string `json:"description"`
	AddedBy     string `json:"addedBy,omitempty"`
}

func (in expenseRequest) toDomain() (core.Expense, error) {
	d, err := parseDate(in.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:        d,
		CategoryID:  in.CategoryID,
		Amount:      core.Money{Cents: in.AmountCents},
		Description: in.Description,
		AddedBy:     in.AddedBy,
	}, nil
}

type entryJSON struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Text         string `json:"text"`
	PriceCents   int64  `json:"priceCents,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`
	CreatorName  string `json:"creatorName,omitempty"`
	CreatorPhone string `json:"creatorPhone,omitempty"`
	CreatedAt    string `json:"createdAt"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
}

func toEntryJSON(v services.EntryView) entryJSON {
	return entryJSON{
		ID:           v.ID,
		Date:         formatDate(v.Date),
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Text:         v.Text,
		PriceCents:   v.Price.Cents,
		CreatedBy:    v.CreatedBy,
		CreatorName:  v.CreatorName,
		CreatorPhone: v.CreatorPhone,
		CreatedAt:    v.CreatedAt.UTC().Format(time.RFC3339),
		CanEdit:      v.CanEdit,
		CanDelete:    v.CanDelete,
	}
}

// newEntryJSON renders a just-created entry, which is always mutable.
func newEntryJSON(e core.CalendarEntry) entryJSON {
	return toEntryJSON(services.EntryView{CalendarEntry: e, CanEdit: true, CanDelete: true})
}

type entryRequest struct {
	Date         string `json:"date,omitempty"`
	CategoryID   string `json:"categoryId"`
	Text         string `json:"text"`
	PriceCents   int64  `json:"priceCents,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`
	CreatorName  string `json:"creatorName,omitempty"`
	CreatorPhone string `json:"creatorPhone,omitempty"`
}

func (in entryRequest) toDomain() (core.CalendarEntry, error) {
	d, err := parseDate(in.Date)
	if err != nil {
		return core.CalendarEntry{}, err
	}
	return core.CalendarEntry{
		Date:         d,
		CategoryID:   in.CategoryID,
		Text:         in.Text,
		Price:        core.Money{Cents: in.PriceCents},
		CreatedBy:    in.CreatedBy,
		CreatorName:  in.CreatorName,
		CreatorPhone: in.CreatorPhone,
	}, nil
}

type replyJSON struct {
	ID         string `json:"id"`
	AuthorID   string `json:"authorId,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
	Text       string `json:"text"`
	CreatedAt  string `json:"createdAt"`
}

type commentJSON struct {
	ID          string      `json:"id"`
	AuthorID    string      `json:"authorId,omitempty"`
	AuthorName  string      `json:"authorName,omitempty"`
	AuthorPhone string      `json:"authorPhone,omitempty"`
	Text        string      `json:"text"`
	CreatedAt   string      `json:"createdAt"`
	CanEdit     bool        `json:"canEdit"`
	CanDelete   bool        `json:"canDelete"`
	Replies     []replyJSON `json:"replies"`
}

func toReplyJSON(rep core.Reply) replyJSON {
	return replyJSON{
		ID:         rep.ID,
		AuthorID:   rep.AuthorID,
		AuthorName: rep.AuthorName,
		Text:       rep.Text,
		CreatedAt:  rep.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toCommentJSON(v services.CommentView) commentJSON {
	replies := make([]replyJSON, len(v.Replies))
	for i, rep := range v.Replies {
		replies[i] = toReplyJSON(rep)
	}
	return commentJSON{
		ID:          v.ID,
		AuthorID:    v.AuthorID,
		AuthorName:  v.AuthorName,
		AuthorPhone: v.AuthorPhone,
		Text:        v.Text,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		CanEdit:     v.CanEdit,
		CanDelete:   v.CanDelete,
		Replies:     replies,
	}
}

// toFreshCommentView wraps a just-written comment, which is always mutable.
func toFreshCommentView(c core.Comment) services.CommentView {
	return services.CommentView{Comment: c, CanEdit: true, CanDelete: true}
}

type commentRequest struct {
	AuthorID    string `json:"authorId,omitempty"`
	AuthorName  string `json:"authorName,omitempty"`
	AuthorPhone string `json:"authorPhone,omitempty"`
	Text        string `json:"text"`
}

type summaryJSON struct {
	Month              int   `json:"month"`
	Year               int   `json:"year"`
	TotalExpensesCents int64 `json:"totalExpensesCents"`
	TotalMembers       int   `json:"totalMembers"`
	PerPersonCents     int64 `json:"perPersonCents"`
	BalanceCents       int64 `json:"balanceCents"`
}

func toSummaryJSON(s core.MonthlySummary) summaryJSON {
	return summaryJSON{
		Month:              s.Month,
		Year:               s.Year,
		TotalExpensesCents: s.TotalExpenses.Cents,
		TotalMembers:       s.TotalMembers,
		PerPersonCents:     s.PerPersonAmount.Cents,
		BalanceCents:       s.Balance.Cents,
	}
}

type categoryJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedDate string `json:"createdDate"`
}

func toCategoryJSON(c core.Category) categoryJSON {
	return categoryJSON{
		ID:          c.ID,
		Name:        c.Name,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedBy:   c.CreatedBy,
		CreatedDate: c.CreatedDate.UTC().Format(time.RFC3339),
	}
}

type memberJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	AddedDate string `json:"addedDate"`
}

func toMemberJSON(m core.Member) memberJSON {
	return memberJSON{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		IsAdmin:   m.IsAdmin,
		AddedDate: m.AddedDate.UTC().Format(time.RFC3339),
	}
}

type fullAmountJSON struct {
	AmountCents int64 `json:"amountCents"`
}
