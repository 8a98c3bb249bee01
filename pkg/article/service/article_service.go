package service

import (
	"context"

	"readquest/entities"
)

type GenerateResult struct {
	Article   *entities.Article `json:"article"`
	Journey   *entities.Journey `json:"journey"`
	NextStage entities.Stage    `json:"nextStage"`
	Warning   string            `json:"warning,omitempty"`
}

type ArticleService interface {
	// Generate starts a fresh session: screens the optional topic, asks the
	// model for a passage at the hardest tier, and creates the journey.
	// Any previous session for the student is cleared first.
	Generate(ctx context.Context, studentID string, genre entities.Genre, topic string) (*GenerateResult, error)
}
