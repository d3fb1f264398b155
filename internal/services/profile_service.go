package services

import (
	"context"
	"errors"
	"fmt"

	"givegot_backend/internal/embedding"
	"givegot_backend/internal/logger"
	"givegot_backend/internal/models"
	"givegot_backend/internal/repositories"
	"givegot_backend/internal/services/dto"
	"givegot_backend/internal/utils"
	"givegot_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// slugDedupLimit bounds the numeric-suffix search when a slug collides with
// an existing skill of a different name.
const slugDedupLimit = 50

type ProfileService interface {
	GetProfile(userID string) (*dto.UserWithSkillsResponse, error)
	GetAllUsers() ([]*dto.UserWithSkillsResponse, error)

	// UpdateProfile applies scalar fields and skill lists transactionally,
	// then regenerates embeddings for the sides whose lists changed.
	// Embedding failure does not roll back the skill change; the result
	// reports the two sub-operations separately.
	UpdateProfile(ctx context.Context, userID string, req *dto.ProfileUpdateRequest) (*dto.ProfileUpdateResult, error)

	ListSkills() ([]dto.SkillInfo, error)
}

type profileService struct {
	tx        repositories.TxManager
	userRepo  repositories.UserRepository
	skillRepo repositories.SkillRepository
	embedder  embedding.Provider
}

func NewProfileService(
	tx repositories.TxManager,
	userRepo repositories.UserRepository,
	skillRepo repositories.SkillRepository,
	embedder embedding.Provider,
) ProfileService {
	return &profileService{
		tx:        tx,
		userRepo:  userRepo,
		skillRepo: skillRepo,
		embedder:  embedder,
	}
}

// ---------------- Read Operations ----------------

func (s *profileService) GetProfile(userID string) (*dto.UserWithSkillsResponse, error) {
	user, err := s.userRepo.FindByIDWithSkills(s.tx.DB(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "profile", "User not found")
		}
		return nil, err
	}
	return buildUserWithSkills(user), nil
}

func (s *profileService) GetAllUsers() ([]*dto.UserWithSkillsResponse, error) {
	users, err := s.userRepo.FindAll(s.tx.DB())
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserWithSkillsResponse, 0, len(users))
	for i := range users {
		responses = append(responses, buildUserWithSkills(&users[i]))
	}
	return responses, nil
}

func (s *profileService) ListSkills() ([]dto.SkillInfo, error) {
	skills, err := s.skillRepo.FindAll(s.tx.DB())
	if err != nil {
		return nil, err
	}

	infos := make([]dto.SkillInfo, 0, len(skills))
	for _, skill := range skills {
		infos = append(infos, dto.SkillInfo{
			ID:   skill.ID,
			Name: skill.Name,
			Slug: skill.Slug,
		})
	}
	return infos, nil
}

// ---------------- Profile Update ----------------

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *dto.ProfileUpdateRequest) (*dto.ProfileUpdateResult, error) {
	if _, err := s.userRepo.FindByID(s.tx.DB(), userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "profile", "User not found")
		}
		return nil, err
	}

	skillsTouched := false

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		fields := map[string]interface{}{}
		if req.Name != nil {
			fields["name"] = *req.Name
		}
		if req.Bio != nil {
			fields["bio"] = *req.Bio
		}
		if req.AvatarURL != nil {
			fields["avatar_url"] = *req.AvatarURL
		}
		if len(fields) > 0 {
			if err := s.userRepo.UpdateProfile(tx, userID, fields); err != nil {
				return err
			}
		}

		if req.TeachingSkills != nil {
			skillsTouched = true
			ids, err := s.ensureSkills(tx, *req.TeachingSkills)
			if err != nil {
				return err
			}
			if err := s.skillRepo.ReplaceUserSkills(tx, userID, models.SkillTypeGive, ids); err != nil {
				return err
			}
		}
		if req.LearningGoals != nil {
			skillsTouched = true
			ids, err := s.ensureSkills(tx, *req.LearningGoals)
			if err != nil {
				return err
			}
			if err := s.skillRepo.ReplaceUserSkills(tx, userID, models.SkillTypeWant, ids); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &dto.ProfileUpdateResult{
		Success:       true,
		Message:       "Profile updated.",
		SkillsUpdated: skillsTouched,
	}
	if !skillsTouched {
		return result, nil
	}

	if err := s.refreshEmbeddings(ctx, userID, req); err != nil {
		logger.CtxWithError(ctx, "embedding refresh failed after profile update", err, "user_id", userID)
		result.Message = "Profile updated. Semantic matching data will refresh later."
		return result, nil
	}

	result.EmbeddingsRefreshed = true
	return result, nil
}

// refreshEmbeddings regenerates the vector for each side whose skill list
// was provided. An empty list clears the stored vector instead of embedding
// an empty string.
func (s *profileService) refreshEmbeddings(ctx context.Context, userID string, req *dto.ProfileUpdateRequest) error {
	db := s.tx.DB()

	if req.TeachingSkills != nil {
		vec, err := s.embedSide(ctx, *req.TeachingSkills)
		if err != nil {
			return err
		}
		if err := s.userRepo.SaveTeachingEmbedding(db, userID, models.EncodeEmbedding(vec)); err != nil {
			return err
		}
	}

	if req.LearningGoals != nil {
		vec, err := s.embedSide(ctx, *req.LearningGoals)
		if err != nil {
			return err
		}
		if err := s.userRepo.SaveLearningEmbedding(db, userID, models.EncodeEmbedding(vec)); err != nil {
			return err
		}
	}

	return nil
}

func (s *profileService) embedSide(ctx context.Context, skillNames []string) ([]float32, error) {
	if len(skillNames) == 0 {
		return nil, nil
	}
	return embedding.EmbedSkills(ctx, s.embedder, skillNames)
}

// ---------------- Skill Catalog ----------------

func (s *profileService) ensureSkills(tx *gorm.DB, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		skill, err := s.ensureSkill(tx, name)
		if err != nil {
			return nil, err
		}
		// Duplicate names in one request collapse to one link.
		if _, dup := seen[skill.ID]; dup {
			continue
		}
		seen[skill.ID] = struct{}{}
		ids = append(ids, skill.ID)
	}
	return ids, nil
}

// ensureSkill returns the catalog entry matching name case-insensitively,
// creating it when absent. Slug collisions against differently named skills
// get a numeric suffix (react, react-2, react-3, ...).
func (s *profileService) ensureSkill(tx *gorm.DB, name string) (*models.Skill, error) {
	existing, err := s.skillRepo.FindByNameInsensitive(tx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrSkillNotFound) {
		return nil, err
	}

	base := utils.Slugify(name)
	if base == "" {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Invalid skill name: %q", name))
	}

	slug := base
	for i := 2; ; i++ {
		_, err := s.skillRepo.FindBySlug(tx, slug)
		if errors.Is(err, repositories.ErrSkillNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		if i > slugDedupLimit {
			return nil, apperrors.InternalError(fmt.Errorf("could not allocate slug for skill %q", name))
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}

	skill := &models.Skill{Name: name, Slug: slug}
	if err := s.skillRepo.Create(tx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// ---------------- Helper Functions ----------------

func buildUserWithSkills(user *models.User) *dto.UserWithSkillsResponse {
	resp := &dto.UserWithSkillsResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		GivePoints:     user.GivePoints,
		TeachingSkills: []dto.SkillInfo{},
		LearningGoals:  []dto.SkillInfo{},
	}

	for _, us := range user.Skills {
		info := dto.SkillInfo{
			ID:         us.Skill.ID,
			Name:       us.Skill.Name,
			Slug:       us.Skill.Slug,
			IsVerified: us.IsVerified,
		}
		switch us.Type {
		case models.SkillTypeGive:
			resp.TeachingSkills = append(resp.TeachingSkills, info)
		case models.SkillTypeWant:
			resp.LearningGoals = append(resp.LearningGoals, info)
		}
	}

	return resp
}
