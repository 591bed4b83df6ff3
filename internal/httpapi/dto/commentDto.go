package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// CommentRequest used for POST .../reviews/:review_id/comments
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentUpdateRequest struct {
	Text *string `json:"text,omitempty"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func CommentFromModel(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}
