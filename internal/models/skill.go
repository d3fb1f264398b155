package models

type Skill struct {
	BaseModel
	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Category string `gorm:"default:'Other'" json:"category"`
}

// UserSkill links a user to a skill with a polarity: GIVE (teaches) or
// WANT (wants to learn). A user may hold both relations for the same skill.
type UserSkill struct {
	BaseModel
	UserID  string    `gorm:"not null;index;uniqueIndex:idx_user_skill_type" json:"user_id"`
	SkillID string    `gorm:"not null;uniqueIndex:idx_user_skill_type" json:"skill_id"`
	Type    SkillType `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_skill_type" json:"type"`

	// Set only by the quiz subsystem, never by this core.
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// Relations
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill"`
}
