package models

// Review is authored by the mentee against a completed booking. The unique
// index on BookingID guarantees at most one review per booking.
type Review struct {
	BaseModel
	BookingID  string `gorm:"not null;uniqueIndex" json:"booking_id"`
	ReceiverID string `gorm:"not null;index" json:"receiver_id"`
	AuthorID   string `gorm:"not null;index" json:"author_id"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `gorm:"type:text" json:"comment"`

	// Relations
	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
