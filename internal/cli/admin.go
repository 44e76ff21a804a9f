// Package cli implements the housetab-admin command set. The HTTP API is
// deliberately read-only for the roster, categories and budget live under
// /api/settings; changing who is in the household or what categories exist
// is an operator action done from the shell.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"housetab/internal/core"
	"housetab/internal/storage"
)

// Admin dispatches roster, category and budget commands against the
// repository.
type Admin struct {
	repo *storage.SQLiteRepository
	out  io.Writer
	now  func() time.Time
}

func NewAdmin(repo *storage.SQLiteRepository, out io.Writer) *Admin {
	return &Admin{repo: repo, out: out, now: time.Now}
}

// Usage describes the command set for the main's help output.
const Usage = `usage: housetab-admin <command> [args]

commands:
  member add <name> <phone> [--admin]   add a household member
  member list                           list members
  member remove <id>                    remove a member
  category add <name> [color] [icon]    add an expense category
  category list                         list categories
  category remove <id>                  remove a category
  budget set <amount>                   set the monthly full amount, e.g. 500 or 499.99
  budget get                            show the monthly full amount in cents`

// Run executes one command. It returns an error both for failed operations
// and for unknown or malformed commands.
func (a *Admin) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing command\n\n%s", Usage)
	}

	switch args[0] + " " + args[1] {
	case "member add":
		return a.memberAdd(ctx, args[2:])
	case "member list":
		return a.memberList(ctx)
	case "member remove":
		return a.memberRemove(ctx, args[2:])
	case "category add":
		return a.categoryAdd(ctx, args[2:])
	case "category list":
		return a.categoryList(ctx)
	case "category remove":
		return a.categoryRemove(ctx, args[2:])
	case "budget set":
		return a.budgetSet(ctx, args[2:])
	case "budget get":
		return a.budgetGet(ctx)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0]+" "+args[1], Usage)
	}
}

func (a *Admin) memberAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("member add needs a name and a phone number")
	}
	m := core.Member{
		ID:        uuid.NewString(),
		Name:      args[0],
		Phone:     args[1],
		IsAdmin:   len(args) > 2 && args[2] == "--admin",
		AddedDate: a.now(),
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := a.repo.CreateMember(ctx, m); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	fmt.Fprintf(a.out, "added member %s (%s)\n", m.Name, m.ID)
	return nil
}

func (a *Admin) memberList(ctx context.Context) error {
	members, err := a.repo.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	for _, m := range members {
		role := ""
		if m.IsAdmin {
			role = " [admin]"
		}
		fmt.Fprintf(a.out, "%s  %s  %s%s\n", m.ID, m.Name, m.Phone, role)
	}
	return nil
}

func (a *Admin) memberRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("member remove needs a member id")
	}
	if err := a.repo.DeleteMember(ctx, args[0]); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	fmt.Fprintf(a.out, "removed member %s\n", args[0])
	return nil
}

func (a *Admin) categoryAdd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("category add needs a name")
	}
	c := core.Category{
		ID:          uuid.NewString(),
		Name:        args[0],
		CreatedDate: a.now(),
	}
	if len(args) > 1 {
		c.Color = args[1]
	}
	if len(args) > 2 {
		c.Icon = args[2]
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := a.repo.CreateCategory(ctx, c); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	fmt.Fprintf(a.out, "added category %s (%s)\n", c.Name, c.ID)
	return nil
}

func (a *Admin) categoryList(ctx context.Context) error {
	categories, err := a.repo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *Admin) categoryRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("category remove needs a category id")
	}
	if err := a.repo.DeleteCategory(ctx, args[0]); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	fmt.Fprintf(a.out, "removed category %s\n", args[0])
	return nil
}

func (a *Admin) budgetSet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("budget set needs an amount")
	}
	cents, err := core.ParseDecimalToCents(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	if err := a.repo.SetFullAmount(ctx, core.Money{Cents: cents}); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	fmt.Fprintf(a.out, "full amount set to %d cents\n", cents)
	return nil
}

func (a *Admin) budgetGet(ctx context.Context) error {
	amount, err := a.repo.GetFullAmount(ctx)
	if err != nil {
		return fmt.Errorf("get budget: %w", err)
	}
	fmt.Fprintf(a.out, "%d\n", amount.Cents)
	return nil
}
