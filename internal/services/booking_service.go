package services

import (
	"errors"
	"fmt"

	"givegot_backend/internal/models"
	"givegot_backend/internal/repositories"
	"givegot_backend/internal/services/dto"
	"givegot_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BookingService interface {
	// Ledger transitions. Each one commits the status change and the
	// balance mutation together or not at all.
	CreateBooking(menteeID string, req *dto.CreateBookingRequest) (*dto.BookingResult, error)
	AcceptBooking(bookingID, mentorID string) (*dto.BookingResult, error)
	CompleteSessionWithReview(bookingID, menteeID string, req *dto.CompleteBookingRequest) (*dto.BookingResult, error)
	CancelBooking(bookingID, userID string) (*dto.BookingResult, error)

	// Read operations
	GetMyBookings(userID string) (*dto.MyBookingsResponse, error)
	GetAllBookings() ([]*dto.BookingResponse, error)
}

type bookingService struct {
	tx          repositories.TxManager
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
	reviewRepo  repositories.ReviewRepository
}

func NewBookingService(
	tx repositories.TxManager,
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
) BookingService {
	return &bookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
	}
}

// ---------------- Ledger Transitions ----------------

func (s *bookingService) CreateBooking(menteeID string, req *dto.CreateBookingRequest) (*dto.BookingResult, error) {
	if req.MentorID == menteeID {
		return nil, apperrors.ErrSelfBooking
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.NewBadRequestError("End time must be after start time")
	}

	db := s.tx.DB()

	mentee, err := s.userRepo.FindByID(db, menteeID)
	if err != nil {
		return nil, s.translateUserError(err)
	}
	if _, err := s.userRepo.FindByID(db, req.MentorID); err != nil {
		return nil, s.translateUserError(err)
	}

	if mentee.GivePoints < 1 {
		return nil, apperrors.ErrInsufficientPoints(mentee.GivePoints)
	}

	booking := &models.Booking{
		MentorID:  req.MentorID,
		MenteeID:  menteeID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    models.BookingStatusPending,
		Note:      req.Note,
	}

	err = s.tx.Transaction(func(tx *gorm.DB) error {
		// The conditional decrement re-checks the balance inside the
		// transaction; a concurrent creation for the same mentee cannot
		// drive it negative.
		if err := s.userRepo.HoldGivePoint(tx, menteeID); err != nil {
			if errors.Is(err, repositories.ErrInsufficientPoints) {
				return apperrors.ErrInsufficientPoints(0)
			}
			return err
		}
		return s.bookingRepo.Create(tx, booking)
	})
	if err != nil {
		return nil, s.wrapLedgerError(err)
	}

	return &dto.BookingResult{
		Success:   true,
		Message:   "1 GivePoint held. Waiting for mentor to accept.",
		BookingID: booking.ID,
	}, nil
}

func (s *bookingService) AcceptBooking(bookingID, mentorID string) (*dto.BookingResult, error) {
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(tx, bookingID)
		if err != nil {
			return err
		}

		if booking.MentorID != mentorID {
			return apperrors.ErrNotParty("Unauthorized: You are not the mentor for this session")
		}
		if booking.Status != models.BookingStatusPending {
			return apperrors.ErrInvalidStatus(fmt.Sprintf("Cannot accept booking with status: %s", booking.Status))
		}

		return s.bookingRepo.UpdateStatus(tx, bookingID, models.BookingStatusPending, models.BookingStatusConfirmed)
	})
	if err != nil {
		return nil, s.wrapLedgerError(err)
	}

	return &dto.BookingResult{
		Success:   true,
		Message:   "Booking confirmed! Session is scheduled.",
		BookingID: bookingID,
	}, nil
}

func (s *bookingService) CompleteSessionWithReview(bookingID, menteeID string, req *dto.CompleteBookingRequest) (*dto.BookingResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(tx, bookingID)
		if err != nil {
			return err
		}

		if booking.MenteeID != menteeID {
			return apperrors.ErrNotParty("Unauthorized: You are not the mentee for this session")
		}
		if booking.Status != models.BookingStatusConfirmed {
			return apperrors.ErrInvalidStatus(fmt.Sprintf(
				"Cannot complete booking with status: %s. Booking must be confirmed first.", booking.Status))
		}

		review := &models.Review{
			BookingID:  bookingID,
			ReceiverID: booking.MentorID,
			AuthorID:   booking.MenteeID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(tx, bookingID, models.BookingStatusConfirmed, models.BookingStatusCompleted); err != nil {
			return err
		}

		return s.userRepo.CreditGivePoint(tx, booking.MentorID)
	})
	if err != nil {
		return nil, s.wrapLedgerError(err)
	}

	return &dto.BookingResult{
		Success:   true,
		Message:   "Session completed and review submitted! 1 GivePoint transferred to mentor.",
		BookingID: bookingID,
	}, nil
}

func (s *bookingService) CancelBooking(bookingID, userID string) (*dto.BookingResult, error) {
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(tx, bookingID)
		if err != nil {
			return err
		}

		if booking.MentorID != userID && booking.MenteeID != userID {
			return apperrors.ErrNotParty("Unauthorized: You are not part of this booking")
		}
		if booking.Status == models.BookingStatusCompleted {
			return apperrors.ErrInvalidStatus("Cannot cancel a completed booking")
		}
		if booking.Status == models.BookingStatusCancelled {
			return apperrors.ErrInvalidStatus("Booking is already cancelled")
		}

		if err := s.bookingRepo.UpdateStatus(tx, bookingID, booking.Status, models.BookingStatusCancelled); err != nil {
			return err
		}

		// The booking was PENDING or CONFIRMED, so a point was held; it
		// goes back to the mentee.
		return s.userRepo.CreditGivePoint(tx, booking.MenteeID)
	})
	if err != nil {
		return nil, s.wrapLedgerError(err)
	}

	return &dto.BookingResult{
		Success:   true,
		Message:   "Booking cancelled. Point refunded to mentee.",
		BookingID: bookingID,
	}, nil
}

// ---------------- Read Operations ----------------

func (s *bookingService) GetMyBookings(userID string) (*dto.MyBookingsResponse, error) {
	bookings, err := s.bookingRepo.FindByUser(s.tx.DB(), userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MyBookingsResponse{
		AsMentor: []*dto.BookingResponse{},
		AsMentee: []*dto.BookingResponse{},
	}
	for i := range bookings {
		built := buildBookingResponse(&bookings[i])
		if bookings[i].MentorID == userID {
			resp.AsMentor = append(resp.AsMentor, built)
		} else {
			resp.AsMentee = append(resp.AsMentee, built)
		}
	}

	return resp, nil
}

func (s *bookingService) GetAllBookings() ([]*dto.BookingResponse, error) {
	bookings, err := s.bookingRepo.FindAll(s.tx.DB())
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, buildBookingResponse(&bookings[i]))
	}
	return responses, nil
}

// ---------------- Helper Methods ----------------

func (s *bookingService) translateUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrNotFound(err, "booking", "User not found")
	}
	return err
}

// wrapLedgerError maps repository sentinels that escaped the transaction to
// the caller-facing taxonomy; AppErrors pass through untouched.
func (s *bookingService) wrapLedgerError(err error) error {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, repositories.ErrBookingNotFound):
		return apperrors.ErrNotFound(err, "booking", "Booking not found")
	case errors.Is(err, repositories.ErrReviewAlreadyExists):
		return apperrors.ErrReviewExists
	case errors.Is(err, repositories.ErrBookingStatusChanged):
		return apperrors.ErrInvalidStatus("Booking status changed, please retry")
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrNotFound(err, "booking", "User not found")
	}
	return err
}

func buildBookingResponse(booking *models.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:        booking.ID,
		MentorID:  booking.MentorID,
		MenteeID:  booking.MenteeID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    string(booking.Status),
		Note:      booking.Note,
		CreatedAt: booking.CreatedAt,
	}

	if booking.Mentor.ID != "" {
		resp.Mentor = buildUserInfo(&booking.Mentor)
	}
	if booking.Mentee.ID != "" {
		resp.Mentee = buildUserInfo(&booking.Mentee)
	}

	return resp
}

func buildUserInfo(user *models.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		AvatarURL:  user.AvatarURL,
		GivePoints: user.GivePoints,
	}
}
