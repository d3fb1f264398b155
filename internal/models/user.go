package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Name       string `json:"name"`
	Bio        string `gorm:"type:text" json:"bio"`
	AvatarURL  string `json:"avatar_url"`
	GivePoints int    `gorm:"not null;default:3;check:give_points >= 0" json:"give_points"`

	// Semantic vectors over the user's declared skill sets, stored as jsonb
	// arrays of float32. NULL means the side has no skills declared yet.
	TeachingEmbedding datatypes.JSON `gorm:"type:jsonb" json:"-"`
	LearningEmbedding datatypes.JSON `gorm:"type:jsonb" json:"-"`

	// Relations
	Skills []UserSkill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// GetTeachingEmbedding decodes the stored teaching vector. Returns nil when
// the column is NULL or empty.
func (u *User) GetTeachingEmbedding() []float32 {
	return decodeEmbedding(u.TeachingEmbedding)
}

// GetLearningEmbedding decodes the stored learning vector. Returns nil when
// the column is NULL or empty.
func (u *User) GetLearningEmbedding() []float32 {
	return decodeEmbedding(u.LearningEmbedding)
}

func decodeEmbedding(raw datatypes.JSON) []float32 {
	if len(raw) == 0 {
		return nil
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil
	}
	if len(vec) == 0 {
		return nil
	}
	return vec
}

// EncodeEmbedding serializes a vector for storage. A nil vector encodes to
// nil, which GORM writes as SQL NULL.
func EncodeEmbedding(vec []float32) datatypes.JSON {
	if len(vec) == 0 {
		return nil
	}
	raw, err := json.Marshal(vec)
	if err != nil {
		return nil
	}
	return raw
}
