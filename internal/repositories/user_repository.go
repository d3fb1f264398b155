package repositories

import (
	"errors"
	"time"

	"givegot_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInsufficientPoints = errors.New("insufficient give points")
)

type UserRepository interface {
	// User operations
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByIDWithSkills(db *gorm.DB, id string) (*models.User, error)
	FindAll(db *gorm.DB) ([]models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateProfile(db *gorm.DB, userID string, fields map[string]interface{}) error

	// Ledger operations. HoldGivePoint is the atomic conditional decrement
	// that closes the concurrent double-spend race: two creations for the
	// same mentee cannot both pass the balance check.
	HoldGivePoint(db *gorm.DB, userID string) error
	CreditGivePoint(db *gorm.DB, userID string) error

	// Embedding persistence. A nil vector clears the column to NULL.
	SaveTeachingEmbedding(db *gorm.DB, userID string, vec datatypes.JSON) error
	SaveLearningEmbedding(db *gorm.DB, userID string, vec datatypes.JSON) error

	// Matching candidates
	FindMentorCandidates(db *gorm.DB, excludeUserID string) ([]models.User, error)
	FindMentorsWithTeachingEmbedding(db *gorm.DB, excludeUserID string) ([]models.User, error)
	FindUsersMissingEmbeddings(db *gorm.DB, limit int) ([]models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// User operations

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIDWithSkills(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Skills.Skill").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Ledger operations

func (r *UserRepositoryImpl) HoldGivePoint(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND give_points >= 1", userID).
		UpdateColumn("give_points", gorm.Expr("give_points - 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the user is gone or the balance is empty; distinguish so
		// the service can report the right error.
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUserNotFound
		}
		return ErrInsufficientPoints
	}
	return nil
}

func (r *UserRepositoryImpl) CreditGivePoint(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("give_points", gorm.Expr("give_points + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Embedding persistence

func (r *UserRepositoryImpl) SaveTeachingEmbedding(db *gorm.DB, userID string, vec datatypes.JSON) error {
	return r.saveEmbedding(db, userID, "teaching_embedding", vec)
}

func (r *UserRepositoryImpl) SaveLearningEmbedding(db *gorm.DB, userID string, vec datatypes.JSON) error {
	return r.saveEmbedding(db, userID, "learning_embedding", vec)
}

func (r *UserRepositoryImpl) saveEmbedding(db *gorm.DB, userID, column string, vec datatypes.JSON) error {
	var value interface{}
	if len(vec) > 0 {
		value = vec
	}

	result := db.Model(&models.User{}).Where("id = ?", userID).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Matching candidates

func (r *UserRepositoryImpl) FindMentorCandidates(db *gorm.DB, excludeUserID string) ([]models.User, error) {
	var users []models.User
	err := db.
		Where("id <> ?", excludeUserID).
		Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&models.UserSkill{}).
			Select("user_id").
			Where("type = ?", models.SkillTypeGive)).
		Preload("Skills", "type = ?", models.SkillTypeGive).
		Preload("Skills.Skill").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindMentorsWithTeachingEmbedding(db *gorm.DB, excludeUserID string) ([]models.User, error) {
	var users []models.User
	err := db.
		Where("id <> ?", excludeUserID).
		Where("teaching_embedding IS NOT NULL").
		Preload("Skills", "type = ?", models.SkillTypeGive).
		Preload("Skills.Skill").
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) FindUsersMissingEmbeddings(db *gorm.DB, limit int) ([]models.User, error) {
	var users []models.User
	err := db.
		Where("teaching_embedding IS NULL OR learning_embedding IS NULL").
		Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&models.UserSkill{}).
			Select("user_id")).
		Limit(limit).
		Find(&users).Error
	return users, err
}
