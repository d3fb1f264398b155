package dto

import (
	"time"
)

type CreateBookingRequest struct {
	MentorID  string    `json:"mentor_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Note      string    `json:"note" validate:"max=2000"`
}

type CompleteBookingRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" validate:"max=2000"`
}

// BookingResult is the structured outcome of every ledger mutation; Message
// is surfaced to end users as-is.
type BookingResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id,omitempty"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentor_id"`
	MenteeID  string    `json:"mentee_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Mentor *UserInfo `json:"mentor,omitempty"`
	Mentee *UserInfo `json:"mentee,omitempty"`
}

// MyBookingsResponse splits a user's bookings by the side they hold; a
// booking appears on exactly one side since mentor and mentee differ.
type MyBookingsResponse struct {
	AsMentor []*BookingResponse `json:"as_mentor"`
	AsMentee []*BookingResponse `json:"as_mentee"`
}

type UserInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	GivePoints int    `json:"give_points"`
}
