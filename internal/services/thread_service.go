package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"housetab/internal/core"
	"housetab/internal/ports"
)

// ThreadService manages the comment thread hanging off an expense or a
// calendar entry. Comments share the calendar's edit window; replies are
// one level deep and permanent once posted.
type ThreadService struct {
	comments ports.CommentStore
	window   core.EditWindow
	now      func() time.Time
}

func NewThreadService(comments ports.CommentStore, window core.EditWindow) *ThreadService {
	return &ThreadService{
		comments: comments,
		window:   window,
		now:      time.Now,
	}
}

// CommentView pairs a comment with its mutability at the moment of the
// read. The flags are never stored: a thread read a second time after the
// window closes comes back with both flags off.
type CommentView struct {
	core.Comment
	CanEdit   bool
	CanDelete bool
}

func (s *ThreadService) view(c core.Comment) CommentView {
	mutable := s.window.CanModify(c.CreatedAt, s.now())
	return CommentView{Comment: c, CanEdit: mutable, CanDelete: mutable}
}

// Add posts a comment on the given parent. The parent must exist.
func (s *ThreadService) Add(ctx context.Context, kind core.ParentKind, parentID string, c core.Comment) (core.Comment, error) {
	if !kind.Valid() {
		return core.Comment{}, core.ErrInvalidParent
	}
	if err := core.ValidateCommentText(c.Text); err != nil {
		return core.Comment{}, err
	}

	ok, err := s.comments.ParentExists(ctx, kind, parentID)
	if err != nil {
		return core.Comment{}, fmt.Errorf("check parent: %w", err)
	}
	if !ok {
		return core.Comment{}, core.ErrNotFound
	}

	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	c.Replies = nil

	if err := s.comments.AddComment(ctx, kind, parentID, c); err != nil {
		return core.Comment{}, fmt.Errorf("save comment: %w", err)
	}
	return c, nil
}

// Edit replaces a comment's text inside the edit window. The creation
// timestamp is preserved, so editing never extends the window.
func (s *ThreadService) Edit(ctx context.Context, kind core.ParentKind, parentID, commentID, text string) (core.Comment, error) {
	if err := core.ValidateCommentText(text); err != nil {
		return core.Comment{}, err
	}

	current, err := s.comments.GetComment(ctx, kind, parentID, commentID)
	if err != nil {
		return core.Comment{}, err
	}
	if !s.window.CanModify(current.CreatedAt, s.now()) {
		return core.Comment{}, core.ErrWindowExpired
	}

	if err := s.comments.UpdateCommentText(ctx, kind, parentID, commentID, text); err != nil {
		return core.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	current.Text = text
	return current, nil
}

// Delete removes a comment and all its replies inside the edit window.
func (s *ThreadService) Delete(ctx context.Context, kind core.ParentKind, parentID, commentID string) error {
	current, err := s.comments.GetComment(ctx, kind, parentID, commentID)
	if err != nil {
		return err
	}
	if !s.window.CanModify(current.CreatedAt, s.now()) {
		return core.ErrWindowExpired
	}
	return s.comments.DeleteComment(ctx, kind, parentID, commentID)
}

// Reply appends a reply to a comment. Replies have no window and no
// delete path.
func (s *ThreadService) Reply(ctx context.Context, kind core.ParentKind, parentID, commentID string, rep core.Reply) (core.Reply, error) {
	if err := core.ValidateCommentText(rep.Text); err != nil {
		return core.Reply{}, err
	}

	// The comment must still exist; replying to a deleted comment is a 404.
	if _, err := s.comments.GetComment(ctx, kind, parentID, commentID); err != nil {
		return core.Reply{}, err
	}

	rep.ID = uuid.NewString()
	rep.CreatedAt = s.now()

	if err := s.comments.AddReply(ctx, commentID, rep); err != nil {
		return core.Reply{}, fmt.Errorf("save reply: %w", err)
	}
	return rep, nil
}

// List returns the parent's comments in posting order, each with its
// mutability flags computed against the current clock.
func (s *ThreadService) List(ctx context.Context, kind core.ParentKind, parentID string) ([]CommentView, error) {
	if !kind.Valid() {
		return nil, core.ErrInvalidParent
	}
	// A deleted parent reads as not found, never as an empty thread.
	exists, err := s.comments.ParentExists(ctx, kind, parentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, core.ErrNotFound
	}
	comments, err := s.comments.ListComments(ctx, kind, parentID)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = s.view(c)
	}
	return views, nil
}
