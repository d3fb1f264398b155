package services

import (
	"context"
	"testing"

	"givegot_backend/internal/models"
	"givegot_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchingFixture struct {
	service MatchingService
	users   *fakeUserRepo
	skills  *fakeSkillRepo
	nextID  int
}

func newMatchingFixture(t *testing.T) *matchingFixture {
	t.Helper()

	users := newFakeUserRepo()
	skills := newFakeSkillRepo(users)

	fx := &matchingFixture{users: users, skills: skills}
	fx.service = NewMatchingService(&fakeTxManager{}, users, skills, MatchingConfig{
		BestMatchThreshold: 0.57,
		CandidateLimit:     50,
	})
	return fx
}

func (fx *matchingFixture) addSkill(name, slug string) *models.Skill {
	fx.nextID++
	return fx.skills.add(&models.Skill{
		BaseModel: models.BaseModel{ID: slug},
		Name:      name,
		Slug:      slug,
	})
}

func (fx *matchingFixture) addUser(id string, teaches, wants []*models.Skill) *models.User {
	user := &models.User{
		BaseModel:  models.BaseModel{ID: id},
		Email:      id + "@example.com",
		Name:       id,
		GivePoints: 3,
	}
	for _, skill := range teaches {
		user.Skills = append(user.Skills, models.UserSkill{
			UserID:  id,
			SkillID: skill.ID,
			Type:    models.SkillTypeGive,
			Skill:   *skill,
		})
	}
	for _, skill := range wants {
		user.Skills = append(user.Skills, models.UserSkill{
			UserID:  id,
			SkillID: skill.ID,
			Type:    models.SkillTypeWant,
			Skill:   *skill,
		})
	}
	return fx.users.add(user)
}

// ---------------- Keyword Path ----------------

func TestAutoMatch_KeywordPath_OrdersByOverlap(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")
	python := fx.addSkill("Python", "python")
	ielts := fx.addSkill("IELTS", "ielts")

	// Learner has no stored embedding, so matching runs on name overlap.
	fx.addUser("learner", nil, []*models.Skill{react, python})
	fx.addUser("mentor-both", []*models.Skill{react, python}, nil)
	fx.addUser("mentor-react", []*models.Skill{react}, nil)
	fx.addUser("mentor-ielts", []*models.Skill{ielts}, nil)

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	assert.Equal(t, []string{"ReactJS", "Python"}, result.LearnerGoals)

	require.Len(t, result.BestMatches, 2)
	assert.Equal(t, "mentor-both", result.BestMatches[0].ID)
	assert.Equal(t, float64(2), result.BestMatches[0].MatchScore)
	assert.Equal(t, []string{"ReactJS", "Python"}, result.BestMatches[0].MatchedSkills)

	assert.Equal(t, "mentor-react", result.BestMatches[1].ID)
	assert.Equal(t, float64(1), result.BestMatches[1].MatchScore)
	assert.Equal(t, []string{"ReactJS"}, result.BestMatches[1].MatchedSkills)

	require.Len(t, result.OtherMentors, 1)
	assert.Equal(t, "mentor-ielts", result.OtherMentors[0].ID)
	assert.Empty(t, result.OtherMentors[0].MatchedSkills)
}

func TestAutoMatch_ExcludesLearnerAndNonMentors(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")

	// The learner also teaches, but must never match themself; a user with
	// only WANT skills is not a candidate at all.
	fx.addUser("learner", []*models.Skill{react}, []*models.Skill{react})
	fx.addUser("pure-learner", nil, []*models.Skill{react})
	fx.addUser("mentor", []*models.Skill{react}, nil)

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	require.Len(t, result.BestMatches, 1)
	assert.Equal(t, "mentor", result.BestMatches[0].ID)
	assert.Empty(t, result.OtherMentors)
}

func TestAutoMatch_NoCandidates(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")
	fx.addUser("learner", nil, []*models.Skill{react})

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	assert.Empty(t, result.BestMatches)
	assert.Empty(t, result.OtherMentors)
	assert.Equal(t, []string{"ReactJS"}, result.LearnerGoals)
}

func TestAutoMatch_UnknownLearner(t *testing.T) {
	fx := newMatchingFixture(t)

	_, err := fx.service.AutoMatch(context.Background(), "ghost")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

// ---------------- Semantic Path ----------------

func TestAutoMatch_SemanticPath_PartitionsAtThreshold(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")
	design := fx.addSkill("UI/UX Design", "uiux-design")

	learner := fx.addUser("learner", nil, []*models.Skill{react})
	learner.LearningEmbedding = models.EncodeEmbedding([]float32{1, 0, 0})

	// Aligned with the learner's goals: cosine 1.0, above the threshold.
	aligned := fx.addUser("mentor-close", []*models.Skill{react}, nil)
	aligned.TeachingEmbedding = models.EncodeEmbedding([]float32{1, 0, 0})

	// Orthogonal: cosine 0.0, below the threshold.
	far := fx.addUser("mentor-far", []*models.Skill{design}, nil)
	far.TeachingEmbedding = models.EncodeEmbedding([]float32{0, 1, 0})

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	require.Len(t, result.BestMatches, 1)
	assert.Equal(t, "mentor-close", result.BestMatches[0].ID)
	assert.InDelta(t, 1.0, result.BestMatches[0].MatchScore, 1e-9)
	// The literal name overlap rides along even on the semantic path.
	assert.Equal(t, []string{"ReactJS"}, result.BestMatches[0].MatchedSkills)

	require.Len(t, result.OtherMentors, 1)
	assert.Equal(t, "mentor-far", result.OtherMentors[0].ID)
	assert.InDelta(t, 0.0, result.OtherMentors[0].MatchScore, 1e-9)
	assert.Empty(t, result.OtherMentors[0].MatchedSkills)
}

func TestAutoMatch_SemanticPath_SkipsCandidatesWithoutVectors(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")

	learner := fx.addUser("learner", nil, []*models.Skill{react})
	learner.LearningEmbedding = models.EncodeEmbedding([]float32{1, 0, 0})

	withVec := fx.addUser("mentor-vec", []*models.Skill{react}, nil)
	withVec.TeachingEmbedding = models.EncodeEmbedding([]float32{1, 0, 0})
	fx.addUser("mentor-novec", []*models.Skill{react}, nil)

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	// Only the mentor with a vector is ranked semantically.
	require.Len(t, result.BestMatches, 1)
	assert.Equal(t, "mentor-vec", result.BestMatches[0].ID)
	assert.Empty(t, result.OtherMentors)
}

func TestAutoMatch_FallsBackWhenNoCandidateHasVectors(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")

	learner := fx.addUser("learner", nil, []*models.Skill{react})
	learner.LearningEmbedding = models.EncodeEmbedding([]float32{1, 0, 0})

	fx.addUser("mentor", []*models.Skill{react}, nil)

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	// Keyword scores are overlap counts, not cosines.
	require.Len(t, result.BestMatches, 1)
	assert.Equal(t, float64(1), result.BestMatches[0].MatchScore)
}

func TestAutoMatch_ZeroVectorLearnerUsesKeywordPath(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")

	// An all-zero learner vector carries no signal and must not produce a
	// semantic ranking where everything scores 0.
	learner := fx.addUser("learner", nil, []*models.Skill{react})
	learner.LearningEmbedding = models.EncodeEmbedding([]float32{0, 0, 0})

	mentor := fx.addUser("mentor", []*models.Skill{react}, nil)
	mentor.TeachingEmbedding = models.EncodeEmbedding([]float32{1, 0, 0})

	result, err := fx.service.AutoMatch(context.Background(), "learner")
	require.NoError(t, err)

	require.Len(t, result.BestMatches, 1)
	assert.Equal(t, float64(1), result.BestMatches[0].MatchScore)
}

// ---------------- Mentor Listing ----------------

func TestGetAllMentors_ListsTeachersOnly(t *testing.T) {
	fx := newMatchingFixture(t)

	react := fx.addSkill("ReactJS", "reactjs")

	fx.addUser("caller", nil, []*models.Skill{react})
	fx.addUser("mentor-a", []*models.Skill{react}, nil)
	fx.addUser("mentor-b", []*models.Skill{react}, nil)
	fx.addUser("lurker", nil, nil)

	mentors, err := fx.service.GetAllMentors(context.Background(), "caller")
	require.NoError(t, err)

	require.Len(t, mentors, 2)
	ids := []string{mentors[0].ID, mentors[1].ID}
	assert.ElementsMatch(t, []string{"mentor-a", "mentor-b"}, ids)
	require.Len(t, mentors[0].TeachingSkills, 1)
	assert.Equal(t, "ReactJS", mentors[0].TeachingSkills[0].Name)
}
