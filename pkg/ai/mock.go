// pkg/ai/mock.go

package ai

import (
	"context"
	"fmt"
	"strings"

	"readquest/entities"
)

type mockClient struct{}

// NewMock returns a deterministic client for local runs and tests. Texts
// containing "stupid" or "hate" are rejected so the blocked path stays
// reachable without a credential.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) CheckSafety(_ context.Context, text string) (string, error) {
	lower := strings.ToLower(text)
	for _, w := range []string{"stupid", "hate"} {
		if strings.Contains(lower, w) {
			return UnsafePrefix + "insulting language (mock)", nil
		}
	}
	return VerdictSafe, nil
}

func (m *mockClient) GenerateFeedback(_ context.Context, _ string, step entities.StepKey, genre entities.Genre) (string, error) {
	return fmt.Sprintf("Nice work on the %s step! (mock feedback)", stageLabel(step, genre)), nil
}

func (m *mockClient) GenerateArticle(_ context.Context, genre entities.Genre, topic string) (*GeneratedArticle, error) {
	if strings.TrimSpace(topic) == "" {
		topic = "the night sky"
	}
	body := fmt.Sprintf("This is a practice passage about %s.\n\nIt has a second paragraph.\n\nAnd a third one to read carefully.", topic)
	if genre == entities.GenreArgumentative {
		body = fmt.Sprintf("I believe %s deserves more attention.\n\nFirst, it teaches us to observe.\n\nSecond, it makes us curious.", topic)
	}
	return &GeneratedArticle{Title: "About " + topic, Body: body}, nil
}

func (m *mockClient) EvaluateJourney(_ context.Context, j *entities.Journey) (string, error) {
	return fmt.Sprintf("<p><strong>Good</strong> — %d steps completed. (mock evaluation)</p>", len(j.Steps)), nil
}
