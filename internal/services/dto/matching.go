package dto

import "time"

type SkillInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IsVerified bool   `json:"is_verified,omitempty"`
}

// MentorMatch is one candidate mentor enriched for the discover view.
// MatchScore is a cosine similarity on the semantic path and an overlap
// count on the keyword path; MatchedSkills is always the literal name
// intersection regardless of path.
type MentorMatch struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	AvatarURL      string      `json:"avatar_url,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	GivePoints     int         `json:"give_points"`
	CreatedAt      time.Time   `json:"created_at"`
	TeachingSkills []SkillInfo `json:"teaching_skills"`
	MatchedSkills  []string    `json:"matched_skills"`
	MatchScore     float64     `json:"match_score"`
}

type AutoMatchResponse struct {
	BestMatches  []*MentorMatch `json:"best_matches"`
	OtherMentors []*MentorMatch `json:"other_mentors"`
	LearnerGoals []string       `json:"learner_goals"`
}

type MentorResponse struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	AvatarURL      string      `json:"avatar_url,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	GivePoints     int         `json:"give_points"`
	TeachingSkills []SkillInfo `json:"teaching_skills"`
}
