package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// ReviewRequest used for POST /api/v1/titles/:title_id/reviews. The author and
// the title come from the request context, never from the payload.
type ReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// ReviewUpdateRequest used for PATCH (partial updates)
type ReviewUpdateRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
}

// ReviewResponse exposes the author as a username; the title id is implicit
// from the URL and left off the wire.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func ReviewFromModel(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}
