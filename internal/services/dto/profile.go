package dto

// ProfileUpdateRequest uses pointers to distinguish "not provided" from
// "provided empty": a nil skill list leaves that side untouched, an empty
// list clears it (and its embedding).
type ProfileUpdateRequest struct {
	Name           *string   `json:"name" validate:"omitempty,max=100"`
	Bio            *string   `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL      *string   `json:"avatar_url" validate:"omitempty,url"`
	TeachingSkills *[]string `json:"teaching_skills"`
	LearningGoals  *[]string `json:"learning_goals"`
}

// ProfileUpdateResult reports sub-operations separately: a skill-list change
// that applied while embedding regeneration failed is a partial success the
// caller can tell apart from a full one.
type ProfileUpdateResult struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	SkillsUpdated       bool   `json:"skills_updated"`
	EmbeddingsRefreshed bool   `json:"embeddings_refreshed"`
}

type UserWithSkillsResponse struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	Bio            string      `json:"bio,omitempty"`
	AvatarURL      string      `json:"avatar_url,omitempty"`
	GivePoints     int         `json:"give_points"`
	TeachingSkills []SkillInfo `json:"teaching_skills"`
	LearningGoals  []SkillInfo `json:"learning_goals"`
}
