package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readquest/entities"
)

func testGemini(t *testing.T, handler http.HandlerFunc) (*Gemini, *int64) {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	g := NewGemini(srv.URL, "test-model", func() string { return "test-key" })
	g.sleep = func(time.Duration) {}
	return g, &hits
}

// candidateBody wraps inner text the way generateContent responses do.
func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(b)
}

func TestCheckSafetySafe(t *testing.T) {
	g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateBody(`{"safety":"SAFE"}`))
	})
	verdict, err := g.CheckSafety(context.Background(), "a kind note")
	require.NoError(t, err)
	assert.Equal(t, VerdictSafe, verdict)
}

func TestCheckSafetyUnsafeVerdictPassesThrough(t *testing.T) {
	g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateBody(`{"safety":"UNSAFE: insulting language"}`))
	})
	verdict, err := g.CheckSafety(context.Background(), "something rude")
	require.NoError(t, err)
	assert.Equal(t, "UNSAFE: insulting language", verdict)
}

func TestCheckSafetyNoCredential(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	defer srv.Close()

	g := NewGemini(srv.URL, "test-model", func() string { return "" })
	verdict, err := g.CheckSafety(context.Background(), "anything")

	require.ErrorIs(t, err, entities.ErrNoCredential)
	assert.Equal(t, UnsafePrefix+ReasonNoCredential, verdict)
	assert.Zero(t, atomic.LoadInt64(&hits), "must not touch the network without a credential")
}

func TestCheckSafetyServiceDownFailsClosed(t *testing.T) {
	g, hits := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	verdict, err := g.CheckSafety(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, UnsafePrefix+ReasonServiceError, verdict)
	assert.EqualValues(t, 3, atomic.LoadInt64(hits), "retries before failing closed")
}

func TestCheckSafetyMalformedVerdict(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates":  `{"candidates":[]}`,
		"bad inner json": candidateBody(`not json at all`),
		"missing field":  candidateBody(`{"other":"x"}`),
	} {
		t.Run(name, func(t *testing.T) {
			g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})
			verdict, err := g.CheckSafety(context.Background(), "anything")
			require.NoError(t, err)
			assert.Equal(t, UnsafePrefix+ReasonUnreadable, verdict)
		})
	}
}

func TestGenerateArticle(t *testing.T) {
	g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.GenerationConfig, "article generation must request structured output")
		fmt.Fprint(w, candidateBody(`{"title":"The Busy Ant","body":"Ants work hard.\n\nThey carry food."}`))
	})
	out, err := g.GenerateArticle(context.Background(), entities.GenreInformational, "ants")
	require.NoError(t, err)
	assert.Equal(t, "The Busy Ant", out.Title)
	assert.Contains(t, out.Body, "Ants work hard.")
}

func TestGenerateArticleMalformed(t *testing.T) {
	g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateBody(`{"title":"only a title"}`))
	})
	_, err := g.GenerateArticle(context.Background(), entities.GenreInformational, "")
	require.Error(t, err)
}

func TestGenerateFeedbackFreeText(t *testing.T) {
	g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.GenerationConfig, "feedback wants free text, not a schema")
		fmt.Fprint(w, candidateBody("Nice prediction! Try adding what you already know."))
	})
	fb, err := g.GenerateFeedback(context.Background(), "I think this is about space", entities.StepPreRead, entities.GenreInformational)
	require.NoError(t, err)
	assert.Contains(t, fb, "Nice prediction")
}

func TestEvaluateJourneyMalformedThrows(t *testing.T) {
	g, _ := testGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})
	j := entities.NewJourney(&entities.Article{Title: "T", Body: "B", Genre: entities.GenreInformational})
	_, err := g.EvaluateJourney(context.Background(), j)
	require.Error(t, err)
}
