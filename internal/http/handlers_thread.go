package http

import (
	"net/http"

	"housetab/internal/core"
)

// Thread handlers are parameterized on the parent kind so the same code
// serves /api/expenses/{id}/comments and /api/calendar/{id}/comments.

func (s *Server) handleListComments(kind core.ParentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := s.threads.List(r.Context(), kind, r.PathValue("id"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		out := make([]commentJSON, len(views))
		for i, v := range views {
			out[i] = toCommentJSON(v)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleAddComment(kind core.ParentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in commentRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := s.threads.Add(r.Context(), kind, r.PathValue("id"), core.Comment{
			AuthorID:    in.AuthorID,
			AuthorName:  in.AuthorName,
			AuthorPhone: in.AuthorPhone,
			Text:        in.Text,
		})
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		// A fresh comment is always inside its window.
		view := toCommentJSON(toFreshCommentView(created))
		writeJSON(w, http.StatusCreated, view)
	}
}

func (s *Server) handleEditComment(kind core.ParentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in commentRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		edited, err := s.threads.Edit(r.Context(), kind, r.PathValue("id"), r.PathValue("commentID"), in.Text)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toCommentJSON(toFreshCommentView(edited)))
	}
}

func (s *Server) handleDeleteComment(kind core.ParentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.threads.Delete(r.Context(), kind, r.PathValue("id"), r.PathValue("commentID")); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleAddReply(kind core.ParentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in commentRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := s.threads.Reply(r.Context(), kind, r.PathValue("id"), r.PathValue("commentID"), core.Reply{
			AuthorID:   in.AuthorID,
			AuthorName: in.AuthorName,
			Text:       in.Text,
		})
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReplyJSON(created))
	}
}
