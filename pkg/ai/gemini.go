// pkg/ai/gemini.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"readquest/entities"
)

var errMalformed = errors.New("malformed model response")

type Gemini struct {
	endpoint string
	model    string
	key      func() string // resolved per call so a manual entry takes effect immediately
	httpc    *http.Client

	attempts  int
	baseDelay time.Duration
	sleep     func(time.Duration) // swapped out in tests
}

func NewGemini(endpoint, model string, key func() string) *Gemini {
	return &Gemini{
		endpoint:  strings.TrimRight(endpoint, "/"),
		model:     model,
		key:       key,
		httpc:     &http.Client{Timeout: 45 * time.Second},
		attempts:  3,
		baseDelay: time.Second,
		sleep:     time.Sleep,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

// call posts one generateContent request with bounded retry and returns the
// first candidate's text. schema, when non-nil, switches the model into
// constrained JSON output.
func (g *Gemini) call(ctx context.Context, apiKey, prompt string, schema json.RawMessage) (string, error) {
	reqBody := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	if schema != nil {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json", ResponseSchema: schema}
	}
	b, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.endpoint, g.model, apiKey)

	raw, err := withRetry(ctx, g.attempts, g.baseDelay, g.sleep, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := g.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("api status %s: %s", resp.Status, truncate(string(body), 200))
		}
		return body, nil
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []part `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: %v", errMalformed, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", errMalformed
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

var safetySchema = json.RawMessage(`{"type":"OBJECT","properties":{"safety":{"type":"STRING"}},"required":["safety"]}`)

func (g *Gemini) CheckSafety(ctx context.Context, text string) (string, error) {
	apiKey := g.key()
	if apiKey == "" {
		// fail closed, and don't even try the network
		return UnsafePrefix + ReasonNoCredential, entities.ErrNoCredential
	}

	raw, err := g.call(ctx, apiKey, safetyPrompt(text), safetySchema)
	if err != nil {
		if errors.Is(err, errMalformed) {
			return UnsafePrefix + ReasonUnreadable, nil
		}
		return UnsafePrefix + ReasonServiceError, nil
	}

	var verdict struct {
		Safety string `json:"safety"`
	}
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil || verdict.Safety == "" {
		return UnsafePrefix + ReasonUnreadable, nil
	}
	if verdict.Safety == VerdictSafe {
		return VerdictSafe, nil
	}
	if strings.HasPrefix(verdict.Safety, UnsafePrefix) {
		return verdict.Safety, nil
	}
	// anything that isn't the literal SAFE blocks the text
	return UnsafePrefix + verdict.Safety, nil
}

func (g *Gemini) GenerateFeedback(ctx context.Context, text string, step entities.StepKey, genre entities.Genre) (string, error) {
	apiKey := g.key()
	if apiKey == "" {
		return "", entities.ErrNoCredential
	}
	return g.call(ctx, apiKey, feedbackPrompt(text, step, genre), nil)
}

var articleSchema = json.RawMessage(`{"type":"OBJECT","properties":{"title":{"type":"STRING"},"body":{"type":"STRING"}},"required":["title","body"]}`)

func (g *Gemini) GenerateArticle(ctx context.Context, genre entities.Genre, topic string) (*GeneratedArticle, error) {
	apiKey := g.key()
	if apiKey == "" {
		return nil, entities.ErrNoCredential
	}
	raw, err := g.call(ctx, apiKey, articlePrompt(genre, topic), articleSchema)
	if err != nil {
		return nil, err
	}
	var out GeneratedArticle
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if out.Title == "" || out.Body == "" {
		return nil, errMalformed
	}
	return &out, nil
}

func (g *Gemini) EvaluateJourney(ctx context.Context, j *entities.Journey) (string, error) {
	apiKey := g.key()
	if apiKey == "" {
		return "", entities.ErrNoCredential
	}
	return g.call(ctx, apiKey, evaluationPrompt(j), nil)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
