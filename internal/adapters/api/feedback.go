package api

import (
	"net/http"

	"github.com/javaBin/speechrank/internal/adapters/auth"
	"github.com/javaBin/speechrank/internal/domain"
)

// RateRequest is the body of a rate submission
type RateRequest struct {
	Value  int    `json:"value"`
	UserID string `json:"userId,omitempty"`
}

// CommentRequest is the body of a comment submission
type CommentRequest struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// FeedbackResponse echoes the presentation after feedback was attached
type FeedbackResponse struct {
	Status       string              `json:"status"`
	Presentation domain.Presentation `json:"presentation"`
}

// HandleAddRate attaches a rate to the presentation in the path.
// The signed-in user is recorded when the request names none.
func (a *Adapter) HandleAddRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	presentationID := r.PathValue("id")

	var req RateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "failed to add rate", err)
		return
	}

	rate := domain.Rate{PresentationID: presentationID, Value: req.Value, UserID: req.UserID}
	if sess := auth.GetSession(ctx); sess != nil && rate.UserID == "" {
		rate.UserID = sess.Email
	}

	if err := a.catalog.AddRate(rate); err != nil {
		writeError(w, "failed to add rate", err)
		return
	}

	a.respondFeedback(w, r, presentationID)
}

// HandleAddComment attaches a comment to the presentation in the path.
// The author defaults to the signed-in user's display name.
func (a *Adapter) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	presentationID := r.PathValue("id")

	var req CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "failed to add comment", err)
		return
	}

	comment := domain.Comment{PresentationID: presentationID, Text: req.Text, Author: req.Author}
	if sess := auth.GetSession(ctx); sess != nil && comment.Author == "" {
		comment.Author = sess.DisplayName()
	}

	if err := a.catalog.AddComment(comment); err != nil {
		writeError(w, "failed to add comment", err)
		return
	}

	a.respondFeedback(w, r, presentationID)
}

func (a *Adapter) respondFeedback(w http.ResponseWriter, r *http.Request, presentationID string) {
	a.reindexPresentation(r.Context(), presentationID)

	p, err := a.catalog.Presentation(presentationID)
	if err != nil {
		writeError(w, "failed to read presentation", err)
		return
	}

	writeJSON(w, http.StatusCreated, FeedbackResponse{Status: "success", Presentation: p})
}
