package dto

import "time"

type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type ReviewResponse struct {
	ID        string        `json:"id"`
	BookingID string        `json:"booking_id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Reviewer  *ReviewerInfo `json:"reviewer,omitempty"`
}
