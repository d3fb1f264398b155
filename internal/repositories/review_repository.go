package repositories

import (
	"errors"
	"math"
	"strings"

	"givegot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this booking")
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByBookingID(db *gorm.DB, bookingID string) (*models.Review, error)
	FindByReceiver(db *gorm.DB, receiverID string) ([]models.Review, error)
	FindByReceiverWithReviewer(db *gorm.DB, receiverID string) ([]models.Review, error)

	// GetMentorRatingStats computes a mentor's aggregate rating: arithmetic
	// mean of all ratings received, rounded to one decimal; {0, 0} when the
	// mentor has no reviews.
	GetMentorRatingStats(db *gorm.DB, mentorID string) (*RatingStats, error)
}

type RatingStats struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	var existing models.Review
	if err := db.Where("booking_id = ?", review.BookingID).First(&existing).Error; err == nil {
		return ErrReviewAlreadyExists
	}

	if err := db.Create(review).Error; err != nil {
		// The unique index on booking_id is the real guard against a
		// concurrent duplicate slipping past the pre-check.
		if isUniqueViolation(err) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByBookingID(db *gorm.DB, bookingID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("booking_id = ?", bookingID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByReceiver(db *gorm.DB, receiverID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindByReceiverWithReviewer(db *gorm.DB, receiverID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.
		Where("receiver_id = ?", receiverID).
		Preload("Booking.Mentee").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) GetMentorRatingStats(db *gorm.DB, mentorID string) (*RatingStats, error) {
	var result struct {
		Average float64
		Count   int64
	}

	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("receiver_id = ?", mentorID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &RatingStats{
		Average: math.Round(result.Average*10) / 10,
		Count:   result.Count,
	}, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Postgres unique_violation surfaced without translation.
	return strings.Contains(err.Error(), "duplicate key value")
}
