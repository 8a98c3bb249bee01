package serviceImp

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"readquest/entities"
	"readquest/pkg/ai"
	"readquest/pkg/article/repository"
	"readquest/pkg/article/service"
	sessionsvc "readquest/pkg/session/service"
)

// Fixed at generation time: the exercise always uses the hardest tier.
const difficultyTier = "advanced"

const persistWarning = "the new session could not be saved; it will not survive a restart"

type ArticleSvc struct {
	llm   ai.Client
	repo  repository.ArticleRepository
	store sessionsvc.SessionService
}

func New(llm ai.Client, repo repository.ArticleRepository, store sessionsvc.SessionService) *ArticleSvc {
	return &ArticleSvc{llm: llm, repo: repo, store: store}
}

func (s *ArticleSvc) Generate(ctx context.Context, studentID string, genre entities.Genre, topic string) (*service.GenerateResult, error) {
	if !genre.Valid() {
		return nil, entities.ErrBadGenre
	}

	topic = strings.TrimSpace(topic)
	if topic != "" {
		verdict, err := s.llm.CheckSafety(ctx, topic)
		if err != nil {
			return nil, err
		}
		if verdict != ai.VerdictSafe {
			return nil, &entities.NotSafeError{Reason: strings.TrimPrefix(verdict, ai.UnsafePrefix)}
		}
	}

	gen, err := s.llm.GenerateArticle(ctx, genre, topic)
	if err != nil {
		return nil, err
	}

	a := &entities.Article{
		ID:         "article_" + uuid.NewString(),
		Title:      gen.Title,
		Body:       gen.Body,
		Genre:      genre,
		Difficulty: difficultyTier,
	}
	if err := s.repo.Create(a); err != nil {
		log.Printf("[article] archive row for %s failed: %v", studentID, err)
	}

	// a new session replaces whatever came before it
	if err := s.store.Reset(studentID); err != nil {
		log.Printf("[article] reset for %s failed: %v", studentID, err)
	}
	j := entities.NewJourney(a)
	warning := ""
	if err := s.store.Persist(studentID, j, a, entities.StagePreRead); err != nil {
		log.Printf("[article] persist for %s failed: %v", studentID, err)
		warning = persistWarning
	}

	return &service.GenerateResult{Article: a, Journey: j, NextStage: entities.StagePreRead, Warning: warning}, nil
}
