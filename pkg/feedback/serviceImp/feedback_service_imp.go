package serviceImp

import (
	"context"
	"log"
	"sync"

	"readquest/entities"
	"readquest/pkg/ai"
	"readquest/pkg/feedback/service"
	sessionsvc "readquest/pkg/session/service"
)

const persistWarning = "feedback could not be saved; it will not survive a restart"

// task is one pending feedback request.
type task struct {
	key  entities.StepKey
	text string
}

// queue is an ordered list with a single in-flight slot: pop gives out the
// next task only when none is outstanding, so sequential-only external calls
// are enforced by structure, not convention.
type queue struct {
	tasks    []task
	inFlight bool
}

func (q *queue) pop() (task, bool) {
	if q.inFlight || len(q.tasks) == 0 {
		return task{}, false
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	q.inFlight = true
	return t, true
}

func (q *queue) done() { q.inFlight = false }

type FeedbackSvc struct {
	llm   ai.Client
	store sessionsvc.SessionService
	mu    sync.Mutex // one batch at a time, process-wide
}

func New(llm ai.Client, store sessionsvc.SessionService) *FeedbackSvc {
	return &FeedbackSvc{llm: llm, store: store}
}

// buildQueue collects, in step order, every record with work but no
// feedback; "nothing was hard" adjustments are skipped.
func buildQueue(j *entities.Journey) *queue {
	q := &queue{}
	for _, key := range entities.StepOrder {
		rec := j.Step(key)
		if rec.NeedsFeedback() {
			q.tasks = append(q.tasks, task{key: key, text: rec.FirstVersion()})
		}
	}
	return q
}

func (s *FeedbackSvc) Run(ctx context.Context, studentID string) (*service.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(studentID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, entities.ErrNoSession
	}
	j := snap.Journey
	if !j.RequiredStepsDone() {
		return nil, entities.ErrNotReady
	}

	q := buildQueue(j)
	out := &service.BatchResult{Journey: j}
	for {
		t, ok := q.pop()
		if !ok {
			break
		}
		fb, err := s.llm.GenerateFeedback(ctx, t.text, t.key, j.ArticleType)
		q.done()
		if err != nil {
			// report per step and keep going
			log.Printf("[feedback] %s for %s failed: %v", t.key, studentID, err)
			out.Results = append(out.Results, service.StepResult{Key: t.key, Error: err.Error()})
			continue
		}
		j.Steps[t.key].Feedback = fb
		if perr := s.store.Persist(studentID, j, snap.Article, entities.StageSummary); perr != nil {
			log.Printf("[feedback] persist for %s failed: %v", studentID, perr)
			out.Warning = persistWarning
		}
		out.Results = append(out.Results, service.StepResult{Key: t.key, OK: true})
	}
	return out, nil
}
