package models

import "time"

// Booking is a mentorship session. One GivePoint is held from the mentee at
// creation and stays escrowed while the booking is PENDING or CONFIRMED;
// it moves to the mentor on COMPLETED and returns to the mentee on CANCELLED.
type Booking struct {
	BaseModel
	MentorID  string        `gorm:"not null;index" json:"mentor_id"`
	MenteeID  string        `gorm:"not null;index" json:"mentee_id"`
	StartTime time.Time     `gorm:"not null" json:"start_time"`
	EndTime   time.Time     `gorm:"not null" json:"end_time"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Note      string        `gorm:"type:text" json:"note"`

	// Relations
	Mentor User `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
	Mentee User `gorm:"foreignKey:MenteeID" json:"mentee,omitempty"`
}
