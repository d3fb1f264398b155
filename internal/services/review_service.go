package services

import (
	"errors"

	"givegot_backend/internal/models"
	"givegot_backend/internal/repositories"
	"givegot_backend/internal/services/dto"
	"givegot_backend/pkg/apperrors"
)

type ReviewService interface {
	GetMentorRating(mentorID string) (*dto.RatingResponse, error)
	GetMentorReviews(mentorID string) ([]*dto.ReviewResponse, error)
}

type reviewService struct {
	tx         repositories.TxManager
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
}

func NewReviewService(
	tx repositories.TxManager,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		tx:         tx,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

func (s *reviewService) GetMentorRating(mentorID string) (*dto.RatingResponse, error) {
	db := s.tx.DB()

	if _, err := s.userRepo.FindByID(db, mentorID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Mentor not found")
		}
		return nil, err
	}

	stats, err := s.reviewRepo.GetMentorRatingStats(db, mentorID)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		Average: stats.Average,
		Count:   stats.Count,
	}, nil
}

func (s *reviewService) GetMentorReviews(mentorID string) ([]*dto.ReviewResponse, error) {
	db := s.tx.DB()

	if _, err := s.userRepo.FindByID(db, mentorID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "review", "Mentor not found")
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByReceiverWithReviewer(db, mentorID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, buildReviewResponse(&reviews[i]))
	}
	return responses, nil
}

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:        review.ID,
		BookingID: review.BookingID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	if review.Booking.Mentee.ID != "" {
		resp.Reviewer = &dto.ReviewerInfo{
			ID:        review.Booking.Mentee.ID,
			Name:      review.Booking.Mentee.Name,
			AvatarURL: review.Booking.Mentee.AvatarURL,
		}
	}

	return resp
}
