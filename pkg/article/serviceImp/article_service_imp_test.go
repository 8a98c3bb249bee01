package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readquest/entities"
	"readquest/pkg/ai"
	sessionsvc "readquest/pkg/session/service"
)

type genAI struct {
	unsafeTopics []string
	genErr       error
	generated    int
}

func (g *genAI) CheckSafety(_ context.Context, text string) (string, error) {
	for _, t := range g.unsafeTopics {
		if strings.Contains(text, t) {
			return ai.UnsafePrefix + "inappropriate topic", nil
		}
	}
	return ai.VerdictSafe, nil
}

func (g *genAI) GenerateArticle(_ context.Context, genre entities.Genre, topic string) (*ai.GeneratedArticle, error) {
	g.generated++
	if g.genErr != nil {
		return nil, g.genErr
	}
	return &ai.GeneratedArticle{Title: "About " + topic, Body: "First paragraph.\n\nSecond paragraph."}, nil
}

func (g *genAI) GenerateFeedback(context.Context, string, entities.StepKey, entities.Genre) (string, error) {
	return "", errors.New("not used")
}

func (g *genAI) EvaluateJourney(context.Context, *entities.Journey) (string, error) {
	return "", errors.New("not used")
}

type memArticles struct{ rows []*entities.Article }

func (m *memArticles) Create(a *entities.Article) error {
	m.rows = append(m.rows, a)
	return nil
}

func (m *memArticles) FindByID(id string) (*entities.Article, error) {
	for _, a := range m.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

type sessionSpy struct {
	resets   int
	journey  *entities.Journey
	article  *entities.Article
	last     entities.Stage
	persists int
}

func (s *sessionSpy) Persist(_ string, j *entities.Journey, a *entities.Article, last entities.Stage) error {
	jb, _ := json.Marshal(j)
	var copied entities.Journey
	_ = json.Unmarshal(jb, &copied)
	s.journey, s.article, s.last = &copied, a, last
	s.persists++
	return nil
}

func (s *sessionSpy) Load(string) (*sessionsvc.Snapshot, error) {
	if s.journey == nil {
		return nil, nil
	}
	return &sessionsvc.Snapshot{Journey: s.journey, Article: s.article, LastStage: s.last}, nil
}

func (s *sessionSpy) Reset(string) error {
	s.resets++
	s.journey, s.article = nil, nil
	return nil
}

func TestGenerateRejectsUnknownGenre(t *testing.T) {
	llm := &genAI{}
	svc := New(llm, &memArticles{}, &sessionSpy{})

	_, err := svc.Generate(context.Background(), "stu", "poetry", "")

	require.ErrorIs(t, err, entities.ErrBadGenre)
	assert.Zero(t, llm.generated)
}

func TestGenerateBlocksUnsafeTopicBeforeGeneration(t *testing.T) {
	llm := &genAI{unsafeTopics: []string{"weapons"}}
	store := &sessionSpy{}
	svc := New(llm, &memArticles{}, store)

	_, err := svc.Generate(context.Background(), "stu", entities.GenreInformational, "weapons")

	var nse *entities.NotSafeError
	require.ErrorAs(t, err, &nse)
	assert.Equal(t, "inappropriate topic", nse.Reason)
	assert.Zero(t, llm.generated, "a blocked topic never reaches generation")
	assert.Zero(t, store.resets, "the previous session survives a rejected request")
}

func TestGenerateEmptyTopicSkipsScreening(t *testing.T) {
	// an empty topic means "model's choice" and there is nothing to screen
	llm := &genAI{unsafeTopics: []string{""}}
	svc := New(llm, &memArticles{}, &sessionSpy{})

	out, err := svc.Generate(context.Background(), "stu", entities.GenreArgumentative, "   ")

	require.NoError(t, err)
	assert.Equal(t, 1, llm.generated)
	assert.Equal(t, entities.GenreArgumentative, out.Article.Genre)
}

func TestGenerateStartsFreshJourney(t *testing.T) {
	llm := &genAI{}
	repo := &memArticles{}
	store := &sessionSpy{}
	svc := New(llm, repo, store)

	out, err := svc.Generate(context.Background(), "stu", entities.GenreInformational, "ants")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Article.ID, "article_"))
	assert.Equal(t, "advanced", out.Article.Difficulty)
	assert.Equal(t, entities.StagePreRead, out.NextStage)
	assert.Empty(t, out.Journey.Steps)
	assert.Equal(t, out.Article.Title, out.Journey.ArticleTitle)

	assert.Len(t, repo.rows, 1, "the article is archived")
	assert.Equal(t, 1, store.resets, "a new article replaces the old session")
	assert.Equal(t, entities.StagePreRead, store.last)
}

func TestGenerateFailurePropagates(t *testing.T) {
	llm := &genAI{genErr: errors.New("model overloaded")}
	store := &sessionSpy{}
	svc := New(llm, &memArticles{}, store)

	_, err := svc.Generate(context.Background(), "stu", entities.GenreInformational, "")

	require.Error(t, err)
	assert.Zero(t, store.resets, "a failed generation leaves the old session intact")
	assert.Zero(t, store.persists)
}
