package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"givegot_backend/internal/models"
	"givegot_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// In-memory doubles for the repository layer. They ignore the db handle,
// which the real implementations only pass through to GORM.

type fakeTxManager struct{}

func (f *fakeTxManager) DB() *gorm.DB { return nil }

func (f *fakeTxManager) Transaction(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// ---------------- User Repository ----------------

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByIDWithSkills(db *gorm.DB, id string) (*models.User, error) {
	return f.FindByID(db, id)
}

func (f *fakeUserRepo) FindAll(_ *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ *gorm.DB, userID string, fields map[string]interface{}) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if name, ok := fields["name"].(string); ok {
		user.Name = name
	}
	if bio, ok := fields["bio"].(string); ok {
		user.Bio = bio
	}
	if avatarURL, ok := fields["avatar_url"].(string); ok {
		user.AvatarURL = avatarURL
	}
	return nil
}

func (f *fakeUserRepo) HoldGivePoint(_ *gorm.DB, userID string) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if user.GivePoints < 1 {
		return repositories.ErrInsufficientPoints
	}
	user.GivePoints--
	return nil
}

func (f *fakeUserRepo) CreditGivePoint(_ *gorm.DB, userID string) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.GivePoints++
	return nil
}

func (f *fakeUserRepo) SaveTeachingEmbedding(_ *gorm.DB, userID string, vec datatypes.JSON) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.TeachingEmbedding = vec
	return nil
}

func (f *fakeUserRepo) SaveLearningEmbedding(_ *gorm.DB, userID string, vec datatypes.JSON) error {
	user, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.LearningEmbedding = vec
	return nil
}

func (f *fakeUserRepo) FindMentorCandidates(_ *gorm.DB, excludeUserID string) ([]models.User, error) {
	var candidates []models.User
	for _, user := range f.users {
		if user.ID == excludeUserID {
			continue
		}
		giveSkills := filterSkills(user.Skills, models.SkillTypeGive)
		if len(giveSkills) == 0 {
			continue
		}
		candidate := *user
		candidate.Skills = giveSkills
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates, nil
}

func (f *fakeUserRepo) FindMentorsWithTeachingEmbedding(_ *gorm.DB, excludeUserID string) ([]models.User, error) {
	var mentors []models.User
	for _, user := range f.users {
		if user.ID == excludeUserID || user.TeachingEmbedding == nil {
			continue
		}
		mentor := *user
		mentor.Skills = filterSkills(user.Skills, models.SkillTypeGive)
		mentors = append(mentors, mentor)
	}
	return mentors, nil
}

func (f *fakeUserRepo) FindUsersMissingEmbeddings(_ *gorm.DB, limit int) ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		if len(user.Skills) == 0 {
			continue
		}
		if user.TeachingEmbedding == nil || user.LearningEmbedding == nil {
			users = append(users, *user)
		}
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func filterSkills(skills []models.UserSkill, skillType models.SkillType) []models.UserSkill {
	var filtered []models.UserSkill
	for _, us := range skills {
		if us.Type == skillType {
			filtered = append(filtered, us)
		}
	}
	return filtered
}

// ---------------- Skill Repository ----------------

type fakeSkillRepo struct {
	skills     map[string]*models.Skill
	userSkills []models.UserSkill
	users      *fakeUserRepo
	nextID     int
}

func newFakeSkillRepo(users *fakeUserRepo) *fakeSkillRepo {
	return &fakeSkillRepo{skills: map[string]*models.Skill{}, users: users}
}

func (f *fakeSkillRepo) add(skill *models.Skill) *models.Skill {
	f.skills[skill.ID] = skill
	return skill
}

func (f *fakeSkillRepo) FindByID(_ *gorm.DB, id string) (*models.Skill, error) {
	skill, ok := f.skills[id]
	if !ok {
		return nil, repositories.ErrSkillNotFound
	}
	return skill, nil
}

func (f *fakeSkillRepo) FindByNameInsensitive(_ *gorm.DB, name string) (*models.Skill, error) {
	for _, skill := range f.skills {
		if strings.EqualFold(skill.Name, name) {
			return skill, nil
		}
	}
	return nil, repositories.ErrSkillNotFound
}

func (f *fakeSkillRepo) FindBySlug(_ *gorm.DB, slug string) (*models.Skill, error) {
	for _, skill := range f.skills {
		if skill.Slug == slug {
			return skill, nil
		}
	}
	return nil, repositories.ErrSkillNotFound
}

func (f *fakeSkillRepo) FindAll(_ *gorm.DB) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(f.skills))
	for _, skill := range f.skills {
		skills = append(skills, *skill)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

func (f *fakeSkillRepo) Create(_ *gorm.DB, skill *models.Skill) error {
	if skill.ID == "" {
		f.nextID++
		skill.ID = fmt.Sprintf("skill-%d", f.nextID)
	}
	f.skills[skill.ID] = skill
	return nil
}

func (f *fakeSkillRepo) FindUserSkills(_ *gorm.DB, userID string, skillType models.SkillType) ([]models.UserSkill, error) {
	var result []models.UserSkill
	for _, us := range f.userSkills {
		if us.UserID == userID && us.Type == skillType {
			result = append(result, us)
		}
	}
	return result, nil
}

func (f *fakeSkillRepo) ReplaceUserSkills(_ *gorm.DB, userID string, skillType models.SkillType, skillIDs []string) error {
	kept := f.userSkills[:0]
	for _, us := range f.userSkills {
		if us.UserID != userID || us.Type != skillType {
			kept = append(kept, us)
		}
	}
	f.userSkills = kept

	for _, skillID := range skillIDs {
		us := models.UserSkill{
			UserID:  userID,
			SkillID: skillID,
			Type:    skillType,
		}
		if skill, ok := f.skills[skillID]; ok {
			us.Skill = *skill
		}
		f.userSkills = append(f.userSkills, us)
	}

	f.syncUser(userID)
	return nil
}

// syncUser mirrors the relation onto the user record the way a Preload
// would, so reads through the user repo see the new lists.
func (f *fakeSkillRepo) syncUser(userID string) {
	if f.users == nil {
		return
	}
	user, ok := f.users.users[userID]
	if !ok {
		return
	}
	var skills []models.UserSkill
	for _, us := range f.userSkills {
		if us.UserID == userID {
			skills = append(skills, us)
		}
	}
	user.Skills = skills
}

// ---------------- Booking Repository ----------------

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	nextID   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingRepo) add(booking *models.Booking) *models.Booking {
	if booking.ID == "" {
		f.nextID++
		booking.ID = fmt.Sprintf("booking-%d", f.nextID)
	}
	f.bookings[booking.ID] = booking
	return booking
}

func (f *fakeBookingRepo) Create(_ *gorm.DB, booking *models.Booking) error {
	f.add(booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ *gorm.DB, id string) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(db *gorm.DB, id string) (*models.Booking, error) {
	return f.FindByID(db, id)
}

func (f *fakeBookingRepo) UpdateStatus(_ *gorm.DB, id string, from, to models.BookingStatus) error {
	booking, ok := f.bookings[id]
	if !ok || booking.Status != from {
		return repositories.ErrBookingStatusChanged
	}
	booking.Status = to
	return nil
}

func (f *fakeBookingRepo) FindByUser(_ *gorm.DB, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	for _, booking := range f.bookings {
		if booking.MentorID == userID || booking.MenteeID == userID {
			bookings = append(bookings, *booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

func (f *fakeBookingRepo) FindAll(_ *gorm.DB) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0, len(f.bookings))
	for _, booking := range f.bookings {
		bookings = append(bookings, *booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

// ---------------- Review Repository ----------------

type fakeReviewRepo struct {
	reviews map[string]*models.Review // keyed by booking id
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*models.Review{}}
}

func (f *fakeReviewRepo) Create(_ *gorm.DB, review *models.Review) error {
	if _, exists := f.reviews[review.BookingID]; exists {
		return repositories.ErrReviewAlreadyExists
	}
	f.nextID++
	review.ID = fmt.Sprintf("review-%d", f.nextID)
	f.reviews[review.BookingID] = review
	return nil
}

func (f *fakeReviewRepo) FindByBookingID(_ *gorm.DB, bookingID string) (*models.Review, error) {
	review, ok := f.reviews[bookingID]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	return review, nil
}

func (f *fakeReviewRepo) FindByReceiver(_ *gorm.DB, receiverID string) ([]models.Review, error) {
	var reviews []models.Review
	for _, review := range f.reviews {
		if review.ReceiverID == receiverID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) FindByReceiverWithReviewer(db *gorm.DB, receiverID string) ([]models.Review, error) {
	return f.FindByReceiver(db, receiverID)
}

func (f *fakeReviewRepo) GetMentorRatingStats(_ *gorm.DB, mentorID string) (*repositories.RatingStats, error) {
	var sum, count int64
	for _, review := range f.reviews {
		if review.ReceiverID == mentorID {
			sum += int64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return &repositories.RatingStats{}, nil
	}
	average := math.Round(float64(sum)/float64(count)*10) / 10
	return &repositories.RatingStats{Average: average, Count: count}, nil
}

// ---------------- Embedding Provider ----------------

// fakeEmbedder returns canned vectors per input text and can be forced to
// fail.
type fakeEmbedder struct {
	dim     int
	vectors map[string][]float32
	err     error
	calls   []string
}

func newFakeEmbedder(dim int) *fakeEmbedder {
	return &fakeEmbedder{dim: dim, vectors: map[string][]float32{}}
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	vec := make([]float32, f.dim)
	for i := range vec {
		vec[i] = 0.5
	}
	return vec, nil
}
