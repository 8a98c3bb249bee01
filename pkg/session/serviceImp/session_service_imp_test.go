package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readquest/entities"
)

type memRepo struct {
	rows map[string]string // studentID + "/" + key
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]string{}} }

func (m *memRepo) Get(studentID, key string) (string, bool, error) {
	v, ok := m.rows[studentID+"/"+key]
	return v, ok, nil
}

func (m *memRepo) Put(studentID, key, value string) error {
	m.rows[studentID+"/"+key] = value
	return nil
}

func (m *memRepo) Delete(studentID string, keys ...string) error {
	for _, k := range keys {
		delete(m.rows, studentID+"/"+k)
	}
	return nil
}

func sampleState() (*entities.Journey, *entities.Article) {
	a := &entities.Article{ID: "article_1", Title: "Ants", Body: "Ants are busy.", Genre: entities.GenreInformational, Difficulty: "advanced"}
	j := entities.NewJourney(a)
	j.Steps[entities.StepPreRead] = &entities.StepRecord{NoteV1: "about ants", Feedback: "nice guess"}
	j.Steps[entities.StepAdjustment] = &entities.StepRecord{Choice: "no"}
	return j, a
}

func TestPersistThenLoadRoundTrips(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo)
	j, a := sampleState()

	require.NoError(t, svc.Persist("stu", j, a, entities.StageDuringRead))
	snap, err := svc.Load("stu")

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, j, snap.Journey)
	assert.Equal(t, a.ID, snap.Article.ID)
	assert.Equal(t, entities.StageDuringRead, snap.LastStage)
}

func TestPersistIsIdempotentOnLoadedState(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo)
	j, a := sampleState()
	require.NoError(t, svc.Persist("stu", j, a, entities.StageSummary))

	snap, err := svc.Load("stu")
	require.NoError(t, err)
	before := map[string]string{}
	for k, v := range repo.rows {
		before[k] = v
	}

	require.NoError(t, svc.Persist("stu", snap.Journey, snap.Article, snap.LastStage))
	assert.Equal(t, before, repo.rows, "re-persisting a loaded session must not change the stored bytes")
}

func TestLoadNothingStored(t *testing.T) {
	svc := New(newMemRepo())
	snap, err := svc.Load("stu")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLoadPartialStateCleared(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo)
	require.NoError(t, repo.Put("stu", entities.KeyJourney, `{"steps":{}}`))

	snap, err := svc.Load("stu")

	require.NoError(t, err)
	assert.Nil(t, snap)
	_, ok, _ := repo.Get("stu", entities.KeyJourney)
	assert.False(t, ok, "a half-written session is dropped, not resumed")
}

func TestLoadMalformedStateCleared(t *testing.T) {
	cases := map[string][3]string{
		"broken journey json": {"{not json", `{"id":"article_1"}`, "pre-read"},
		"journey no steps":    {`{"articleTitle":"x"}`, `{"id":"article_1"}`, "pre-read"},
		"article no id":       {`{"steps":{}}`, `{"title":"x"}`, "pre-read"},
		"bad stage":           {`{"steps":{}}`, `{"id":"article_1"}`, "somewhere"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newMemRepo()
			svc := New(repo)
			require.NoError(t, repo.Put("stu", entities.KeyJourney, tc[0]))
			require.NoError(t, repo.Put("stu", entities.KeyArticle, tc[1]))
			require.NoError(t, repo.Put("stu", entities.KeyLastStage, tc[2]))

			snap, err := svc.Load("stu")

			require.NoError(t, err)
			assert.Nil(t, snap)
			assert.Empty(t, repo.rows, "unreadable state is cleared")
		})
	}
}

func TestResetLeavesOtherStudentsAlone(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo)
	j, a := sampleState()
	require.NoError(t, svc.Persist("stu", j, a, entities.StagePreRead))
	require.NoError(t, svc.Persist("other", j, a, entities.StagePreRead))
	require.NoError(t, repo.Put("stu", entities.KeyNickname, "Sam"))

	require.NoError(t, svc.Reset("stu"))

	snap, err := svc.Load("stu")
	require.NoError(t, err)
	assert.Nil(t, snap)
	nick, ok, _ := repo.Get("stu", entities.KeyNickname)
	assert.True(t, ok, "reset clears session keys only")
	assert.Equal(t, "Sam", nick)
	snap, err = svc.Load("other")
	require.NoError(t, err)
	assert.NotNil(t, snap)
}
