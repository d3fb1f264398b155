package services

import (
	"givegot_backend/internal/embedding"
	"givegot_backend/internal/repositories"
)

// ServiceContainer aggregates every service behind one wiring point so the
// app layer builds the graph once.
type ServiceContainer struct {
	Booking  BookingService
	Review   ReviewService
	Matching MatchingService
	Profile  ProfileService
}

type ContainerDeps struct {
	Tx          repositories.TxManager
	UserRepo    repositories.UserRepository
	SkillRepo   repositories.SkillRepository
	BookingRepo repositories.BookingRepository
	ReviewRepo  repositories.ReviewRepository
	Embedder    embedding.Provider
	Matching    MatchingConfig
}

func NewServiceContainer(deps ContainerDeps) *ServiceContainer {
	return &ServiceContainer{
		Booking:  NewBookingService(deps.Tx, deps.BookingRepo, deps.UserRepo, deps.ReviewRepo),
		Review:   NewReviewService(deps.Tx, deps.ReviewRepo, deps.UserRepo),
		Matching: NewMatchingService(deps.Tx, deps.UserRepo, deps.SkillRepo, deps.Matching),
		Profile:  NewProfileService(deps.Tx, deps.UserRepo, deps.SkillRepo, deps.Embedder),
	}
}
