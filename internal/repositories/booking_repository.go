package repositories

import (
	"errors"

	"givegot_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingStatusChanged = errors.New("booking status changed concurrently")
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *models.Booking) error
	FindByID(db *gorm.DB, id string) (*models.Booking, error)

	// FindByIDForUpdate takes a row lock so transitions on the same booking
	// serialize. Only meaningful inside a transaction.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Booking, error)

	// UpdateStatus is a compare-and-swap on the status column: it only
	// applies when the row still holds the expected prior status.
	UpdateStatus(db *gorm.DB, id string, from, to models.BookingStatus) error

	FindByUser(db *gorm.DB, userID string) ([]models.Booking, error)
	FindAll(db *gorm.DB) ([]models.Booking, error)
}

type BookingRepositoryImpl struct{}

func NewBookingRepository() BookingRepository {
	return &BookingRepositoryImpl{}
}

func (r *BookingRepositoryImpl) Create(db *gorm.DB, booking *models.Booking) error {
	return db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	err := db.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.BookingStatus) error {
	result := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingStatusChanged
	}
	return nil
}

func (r *BookingRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.
		Where("mentor_id = ? OR mentee_id = ?", userID, userID).
		Preload("Mentor").
		Preload("Mentee").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) FindAll(db *gorm.DB) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.
		Preload("Mentor").
		Preload("Mentee").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}
