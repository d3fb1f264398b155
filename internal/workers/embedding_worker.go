package workers

import (
	"context"
	"time"

	"givegot_backend/internal/embedding"
	"givegot_backend/internal/logger"
	"givegot_backend/internal/models"
	"givegot_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// backfillBatchSize bounds one backfill pass so a large user base never
// holds a single pass open for long.
const backfillBatchSize = 100

// EmbeddingWorker backfills missing skill embeddings. Profile updates
// regenerate vectors inline, but a provider outage leaves users without
// them; this worker repairs those rows so semantic matching recovers
// without manual intervention.
type EmbeddingWorker struct {
	db        *gorm.DB
	userRepo  repositories.UserRepository
	skillRepo repositories.SkillRepository
	embedder  embedding.Provider
	interval  time.Duration
}

func NewEmbeddingWorker(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	skillRepo repositories.SkillRepository,
	embedder embedding.Provider,
	interval time.Duration,
) *EmbeddingWorker {
	return &EmbeddingWorker{
		db:        db,
		userRepo:  userRepo,
		skillRepo: skillRepo,
		embedder:  embedder,
		interval:  interval,
	}
}

func (w *EmbeddingWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *EmbeddingWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Embedding worker stopped")
			return
		case <-ticker.C:
			w.backfillOnce(ctx)
		}
	}
}

func (w *EmbeddingWorker) backfillOnce(ctx context.Context) {
	users, err := w.userRepo.FindUsersMissingEmbeddings(w.db, backfillBatchSize)
	if err != nil {
		logger.WorkerLog("embedding", "find users missing embeddings", err)
		return
	}
	if len(users) == 0 {
		return
	}

	repaired := 0
	for i := range users {
		if ctx.Err() != nil {
			return
		}
		if err := w.repairUser(ctx, &users[i]); err != nil {
			logger.WorkerLog("embedding", "backfill user "+users[i].ID, err)
			continue
		}
		repaired++
	}

	logger.Info("Embedding backfill pass finished", "candidates", len(users), "repaired", repaired)
}

// repairUser regenerates whichever side is missing. A side whose skill list
// is empty stays NULL; the zero vector would only mimic absence.
func (w *EmbeddingWorker) repairUser(ctx context.Context, user *models.User) error {
	if user.TeachingEmbedding == nil {
		if err := w.repairSide(ctx, user.ID, models.SkillTypeGive, w.userRepo.SaveTeachingEmbedding); err != nil {
			return err
		}
	}
	if user.LearningEmbedding == nil {
		if err := w.repairSide(ctx, user.ID, models.SkillTypeWant, w.userRepo.SaveLearningEmbedding); err != nil {
			return err
		}
	}
	return nil
}

func (w *EmbeddingWorker) repairSide(
	ctx context.Context,
	userID string,
	skillType models.SkillType,
	save func(db *gorm.DB, userID string, vec datatypes.JSON) error,
) error {
	userSkills, err := w.skillRepo.FindUserSkills(w.db, userID, skillType)
	if err != nil {
		return err
	}
	if len(userSkills) == 0 {
		return nil
	}

	names := make([]string, 0, len(userSkills))
	for _, us := range userSkills {
		names = append(names, us.Skill.Name)
	}

	vec, err := embedding.EmbedSkills(ctx, w.embedder, names)
	if err != nil {
		return err
	}

	return save(w.db, userID, models.EncodeEmbedding(vec))
}
