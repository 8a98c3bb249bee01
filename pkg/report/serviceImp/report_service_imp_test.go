package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readquest/entities"
	"readquest/pkg/ai"
	sessionsvc "readquest/pkg/session/service"
)

type evalAI struct {
	html string
	err  error
}

func (e *evalAI) CheckSafety(context.Context, string) (string, error) {
	return ai.VerdictSafe, nil
}

func (e *evalAI) GenerateFeedback(context.Context, string, entities.StepKey, entities.Genre) (string, error) {
	return "", errors.New("not used")
}

func (e *evalAI) GenerateArticle(context.Context, entities.Genre, string) (*ai.GeneratedArticle, error) {
	return nil, errors.New("not used")
}

func (e *evalAI) EvaluateJourney(context.Context, *entities.Journey) (string, error) {
	return e.html, e.err
}

type fixedStore struct{ snap *sessionsvc.Snapshot }

func (f *fixedStore) Persist(string, *entities.Journey, *entities.Article, entities.Stage) error {
	return nil
}
func (f *fixedStore) Load(string) (*sessionsvc.Snapshot, error) { return f.snap, nil }
func (f *fixedStore) Reset(string) error                        { return nil }

type fixedKV struct{ rows map[string]string }

func (f *fixedKV) Get(_, key string) (string, bool, error) {
	v, ok := f.rows[key]
	return v, ok, nil
}
func (f *fixedKV) Put(_, key, value string) error { return nil }
func (f *fixedKV) Delete(string, ...string) error { return nil }

func reportFixture() *fixedStore {
	a := &entities.Article{ID: "article_1", Title: "Ants", Body: "Busy bodies.", Genre: entities.GenreInformational}
	j := entities.NewJourney(a)
	j.Steps[entities.StepPreRead] = &entities.StepRecord{NoteV1: "a guess", Feedback: "good start", NoteV2: "better guess"}
	j.Steps[entities.StepDuringRead] = &entities.StepRecord{V1: "- [other] why?"}
	j.Steps[entities.StepAdjustment] = &entities.StepRecord{Choice: "yes", SolutionV1: "slowed down"}
	j.Steps[entities.StepPostRead1] = &entities.StepRecord{Title: "Summarize the article", V1: "ants work hard"}
	return &fixedStore{snap: &sessionsvc.Snapshot{Journey: j, Article: a, LastStage: entities.StageSummary}}
}

func TestBuildAssemblesSteps(t *testing.T) {
	svc := New(&evalAI{html: "<p>Excellent</p>"}, reportFixture(), &fixedKV{rows: map[string]string{entities.KeyNickname: "Sam"}})

	view, err := svc.Build(context.Background(), "stu")

	require.NoError(t, err)
	assert.Equal(t, "Sam", view.Nickname)
	assert.Equal(t, "Ants", view.ArticleTitle)
	require.Len(t, view.Steps, 4)
	assert.Equal(t, "Before reading", view.Steps[0].Title)
	assert.Equal(t, "a guess", view.Steps[0].V1)
	assert.Equal(t, "good start", view.Steps[0].Feedback)
	assert.Equal(t, "better guess", view.Steps[0].V2)
	assert.Equal(t, "slowed down", view.Steps[2].V1)
	assert.Equal(t, "After reading (Summarize the article)", view.Steps[3].Title)
	assert.Equal(t, "<p>Excellent</p>", view.EvaluationHTML)
	assert.False(t, view.EvaluationFailed)
}

func TestBuildSanitizesEvaluation(t *testing.T) {
	svc := New(&evalAI{html: `<p onclick="x">Good</p><script>bad()</script>`}, reportFixture(), &fixedKV{})

	view, err := svc.Build(context.Background(), "stu")

	require.NoError(t, err)
	assert.Equal(t, "<p>Good</p>", view.EvaluationHTML)
}

func TestBuildEvaluationFailureUsesPlaceholder(t *testing.T) {
	svc := New(&evalAI{err: errors.New("model overloaded")}, reportFixture(), &fixedKV{})

	view, err := svc.Build(context.Background(), "stu")

	require.NoError(t, err, "a failed evaluation does not fail the report")
	assert.True(t, view.EvaluationFailed)
	assert.Equal(t, evaluationPlaceholder, view.EvaluationHTML)
	assert.Len(t, view.Steps, 4, "the activity record is still complete")
}

func TestBuildWithoutSession(t *testing.T) {
	svc := New(&evalAI{}, &fixedStore{}, &fixedKV{})
	_, err := svc.Build(context.Background(), "stu")
	require.ErrorIs(t, err, entities.ErrNoSession)
}

func TestExportSheets(t *testing.T) {
	svc := New(&evalAI{html: "<p>Excellent work</p>"}, reportFixture(), &fixedKV{rows: map[string]string{entities.KeyNickname: "Sam"}})

	f, err := svc.Export(context.Background(), "stu")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Article", "Journey", "Evaluation"}, f.GetSheetList())

	nick, err := f.GetCellValue("Article", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Sam", nick)
	kind, _ := f.GetCellValue("Article", "B3")
	assert.Equal(t, "informational article", kind)

	header, _ := f.GetCellValue("Journey", "A1")
	assert.Equal(t, "Step", header)
	firstStep, _ := f.GetCellValue("Journey", "A2")
	assert.Equal(t, "Before reading", firstStep)
	firstV1, _ := f.GetCellValue("Journey", "C2")
	assert.Equal(t, "a guess", firstV1)

	eval, _ := f.GetCellValue("Evaluation", "A1")
	assert.Equal(t, "Excellent work", eval)
}
