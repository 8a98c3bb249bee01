// pkg/ai/client.go

package ai

import (
	"context"

	"readquest/entities"
)

// GeneratedArticle is the structured output of article generation.
type GeneratedArticle struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

const (
	VerdictSafe        = "SAFE"
	UnsafePrefix       = "UNSAFE: "
	ReasonNoCredential = "missing API key"
	ReasonServiceError = "safety service unavailable"
	ReasonUnreadable   = "unreadable safety verdict"
)

type Client interface {
	// CheckSafety returns "SAFE" or "UNSAFE: <reason>". It fails closed:
	// any trouble reaching or reading the classifier comes back as UNSAFE.
	// The error is non-nil only for a configuration problem (no credential),
	// which callers surface differently from a policy rejection.
	CheckSafety(ctx context.Context, text string) (string, error)

	// GenerateFeedback evaluates one step's text as a grade-school reading
	// teacher would, returning free text.
	GenerateFeedback(ctx context.Context, text string, step entities.StepKey, genre entities.Genre) (string, error)

	// GenerateArticle produces a reading passage at the hardest difficulty
	// tier, optionally pinned to a topic.
	GenerateArticle(ctx context.Context, genre entities.Genre, topic string) (*GeneratedArticle, error)

	// EvaluateJourney produces the final report evaluation (HTML-flavored
	// free text) from the whole journey.
	EvaluateJourney(ctx context.Context, j *entities.Journey) (string, error)
}
