package services

import (
	"context"
	"errors"
	"sort"

	"givegot_backend/internal/algorithms"
	"givegot_backend/internal/logger"
	"givegot_backend/internal/models"
	"givegot_backend/internal/repositories"
	"givegot_backend/internal/services/dto"
	"givegot_backend/pkg/apperrors"
)

type MatchingService interface {
	// AutoMatch ranks mentors against the learner's WANT goals. The
	// semantic path uses stored embeddings; when the learner has no usable
	// learning vector (or candidates lack teaching vectors) it degrades to
	// keyword overlap and never fails the request for that reason.
	AutoMatch(ctx context.Context, learnerID string) (*dto.AutoMatchResponse, error)

	// GetAllMentors lists every user who teaches at least one skill,
	// unranked, excluding the caller.
	GetAllMentors(ctx context.Context, callerID string) ([]*dto.MentorResponse, error)
}

type MatchingConfig struct {
	BestMatchThreshold float64
	CandidateLimit     int
}

type matchingService struct {
	tx        repositories.TxManager
	userRepo  repositories.UserRepository
	skillRepo repositories.SkillRepository
	cfg       MatchingConfig
}

func NewMatchingService(
	tx repositories.TxManager,
	userRepo repositories.UserRepository,
	skillRepo repositories.SkillRepository,
	cfg MatchingConfig,
) MatchingService {
	return &matchingService{
		tx:        tx,
		userRepo:  userRepo,
		skillRepo: skillRepo,
		cfg:       cfg,
	}
}

// ---------------- Auto Match ----------------

func (s *matchingService) AutoMatch(ctx context.Context, learnerID string) (*dto.AutoMatchResponse, error) {
	db := s.tx.DB()

	learner, err := s.userRepo.FindByIDWithSkills(db, learnerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "matching", "User not found")
		}
		return nil, err
	}

	learnerGoals := wantSkillNames(learner)

	candidates, err := s.userRepo.FindMentorCandidates(db, learnerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AutoMatchResponse{
		BestMatches:  []*dto.MentorMatch{},
		OtherMentors: []*dto.MentorMatch{},
		LearnerGoals: learnerGoals,
	}
	if len(candidates) == 0 {
		return resp, nil
	}

	learnerVec := learner.GetLearningEmbedding()
	if isUsableVector(learnerVec) {
		best, other, ok := s.semanticRank(ctx, learnerVec, learnerGoals, candidates)
		if ok {
			resp.BestMatches = best
			resp.OtherMentors = other
			return resp, nil
		}
	}

	resp.BestMatches, resp.OtherMentors = s.keywordRank(learnerGoals, candidates)
	return resp, nil
}

// semanticRank scores candidates by cosine similarity between the learner's
// learning vector and each mentor's teaching vector, then partitions at the
// configured threshold. Returns ok=false when no candidate carries a usable
// teaching vector, which sends the caller down the keyword path.
func (s *matchingService) semanticRank(
	ctx context.Context,
	learnerVec []float32,
	learnerGoals []string,
	candidates []models.User,
) ([]*dto.MentorMatch, []*dto.MentorMatch, bool) {
	byID := make(map[string]*models.User, len(candidates))
	vectors := make(map[string][]float32)
	for i := range candidates {
		vec := candidates[i].GetTeachingEmbedding()
		if !isUsableVector(vec) {
			continue
		}
		byID[candidates[i].ID] = &candidates[i]
		vectors[candidates[i].ID] = vec
	}
	if len(vectors) == 0 {
		logger.CtxInfo(ctx, "no candidates with teaching embeddings, falling back to keyword match")
		return nil, nil, false
	}

	ranked := algorithms.RankBySimilarity(learnerVec, vectors)
	if len(ranked) > s.cfg.CandidateLimit {
		ranked = ranked[:s.cfg.CandidateLimit]
	}

	best := []*dto.MentorMatch{}
	other := []*dto.MentorMatch{}
	for _, candidate := range ranked {
		mentor := byID[candidate.ID]
		match := s.buildMentorMatch(mentor, learnerGoals, candidate.Similarity)
		if candidate.Similarity >= s.cfg.BestMatchThreshold {
			best = append(best, match)
		} else {
			other = append(other, match)
		}
	}

	return best, other, true
}

// keywordRank orders candidates by exact overlap between the learner's WANT
// names and each mentor's GIVE names. Mentors with at least one overlap are
// best matches; the rest are listed after them.
func (s *matchingService) keywordRank(learnerGoals []string, candidates []models.User) ([]*dto.MentorMatch, []*dto.MentorMatch) {
	best := []*dto.MentorMatch{}
	other := []*dto.MentorMatch{}

	for i := range candidates {
		giveNames := giveSkillNames(&candidates[i])
		count, _ := algorithms.KeywordOverlap(learnerGoals, giveNames)
		match := s.buildMentorMatch(&candidates[i], learnerGoals, float64(count))
		if count > 0 {
			best = append(best, match)
		} else {
			other = append(other, match)
		}
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].MatchScore > best[j].MatchScore
	})

	return best, other
}

func (s *matchingService) buildMentorMatch(mentor *models.User, learnerGoals []string, score float64) *dto.MentorMatch {
	giveNames := giveSkillNames(mentor)
	_, matched := algorithms.KeywordOverlap(learnerGoals, giveNames)
	if matched == nil {
		matched = []string{}
	}

	return &dto.MentorMatch{
		ID:             mentor.ID,
		Email:          mentor.Email,
		Name:           mentor.Name,
		AvatarURL:      mentor.AvatarURL,
		Bio:            mentor.Bio,
		GivePoints:     mentor.GivePoints,
		CreatedAt:      mentor.CreatedAt,
		TeachingSkills: teachingSkillInfos(mentor),
		MatchedSkills:  matched,
		MatchScore:     score,
	}
}

// ---------------- Mentor Listing ----------------

func (s *matchingService) GetAllMentors(ctx context.Context, callerID string) ([]*dto.MentorResponse, error) {
	mentors, err := s.userRepo.FindMentorCandidates(s.tx.DB(), callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MentorResponse, 0, len(mentors))
	for i := range mentors {
		responses = append(responses, &dto.MentorResponse{
			ID:             mentors[i].ID,
			Email:          mentors[i].Email,
			Name:           mentors[i].Name,
			AvatarURL:      mentors[i].AvatarURL,
			Bio:            mentors[i].Bio,
			GivePoints:     mentors[i].GivePoints,
			TeachingSkills: teachingSkillInfos(&mentors[i]),
		})
	}
	return responses, nil
}

// ---------------- Helper Functions ----------------

func wantSkillNames(user *models.User) []string {
	names := []string{}
	for _, us := range user.Skills {
		if us.Type == models.SkillTypeWant {
			names = append(names, us.Skill.Name)
		}
	}
	return names
}

func giveSkillNames(user *models.User) []string {
	var names []string
	for _, us := range user.Skills {
		if us.Type == models.SkillTypeGive {
			names = append(names, us.Skill.Name)
		}
	}
	return names
}

func teachingSkillInfos(user *models.User) []dto.SkillInfo {
	infos := []dto.SkillInfo{}
	for _, us := range user.Skills {
		if us.Type != models.SkillTypeGive {
			continue
		}
		infos = append(infos, dto.SkillInfo{
			ID:         us.Skill.ID,
			Name:       us.Skill.Name,
			Slug:       us.Skill.Slug,
			IsVerified: us.IsVerified,
		})
	}
	return infos
}

// isUsableVector reports whether a stored embedding can drive the semantic
// path: present and not all zeros (the encoding for an empty skill list).
func isUsableVector(vec []float32) bool {
	if len(vec) == 0 {
		return false
	}
	for _, v := range vec {
		if v != 0 {
			return true
		}
	}
	return false
}
