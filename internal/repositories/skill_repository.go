package repositories

import (
	"errors"

	"givegot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSkillNotFound = errors.New("skill not found")
)

type SkillRepository interface {
	// Skill directory
	FindByID(db *gorm.DB, id string) (*models.Skill, error)
	FindByNameInsensitive(db *gorm.DB, name string) (*models.Skill, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Skill, error)
	FindAll(db *gorm.DB) ([]models.Skill, error)
	Create(db *gorm.DB, skill *models.Skill) error

	// UserSkill relations
	FindUserSkills(db *gorm.DB, userID string, skillType models.SkillType) ([]models.UserSkill, error)
	ReplaceUserSkills(db *gorm.DB, userID string, skillType models.SkillType, skillIDs []string) error
}

type SkillRepositoryImpl struct{}

func NewSkillRepository() SkillRepository {
	return &SkillRepositoryImpl{}
}

// Skill directory

func (r *SkillRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Skill, error) {
	var skill models.Skill
	err := db.First(&skill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindByNameInsensitive(db *gorm.DB, name string) (*models.Skill, error) {
	var skill models.Skill
	err := db.Where("LOWER(name) = LOWER(?)", name).First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Skill, error) {
	var skill models.Skill
	err := db.Where("slug = ?", slug).First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindAll(db *gorm.DB) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepositoryImpl) Create(db *gorm.DB, skill *models.Skill) error {
	return db.Create(skill).Error
}

// UserSkill relations

func (r *SkillRepositoryImpl) FindUserSkills(db *gorm.DB, userID string, skillType models.SkillType) ([]models.UserSkill, error) {
	var userSkills []models.UserSkill
	err := db.
		Where("user_id = ? AND type = ?", userID, skillType).
		Preload("Skill").
		Find(&userSkills).Error
	return userSkills, err
}

// ReplaceUserSkills swaps a user's declared set for one polarity: the old
// relations go away and the new ones come in, inside the caller's
// transaction handle.
func (r *SkillRepositoryImpl) ReplaceUserSkills(db *gorm.DB, userID string, skillType models.SkillType, skillIDs []string) error {
	if err := db.Where("user_id = ? AND type = ?", userID, skillType).
		Delete(&models.UserSkill{}).Error; err != nil {
		return err
	}

	if len(skillIDs) == 0 {
		return nil
	}

	userSkills := make([]models.UserSkill, 0, len(skillIDs))
	for _, skillID := range skillIDs {
		userSkills = append(userSkills, models.UserSkill{
			UserID:  userID,
			SkillID: skillID,
			Type:    skillType,
		})
	}

	return db.Create(&userSkills).Error
}
