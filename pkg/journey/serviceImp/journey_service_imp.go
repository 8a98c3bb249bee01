package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"readquest/entities"
	"readquest/pkg/ai"
	"readquest/pkg/journey/service"
	sessionsvc "readquest/pkg/session/service"
)

// adjustmentNoText is what gets screened when the student says nothing was
// hard; its verdict never blocks the step.
const adjustmentNoText = "Nothing was especially hard to understand."

const persistWarning = "progress could not be saved; it will not survive a restart"

type JourneySvc struct {
	llm   ai.Client
	store sessionsvc.SessionService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(llm ai.Client, store sessionsvc.SessionService) *JourneySvc {
	return &JourneySvc{llm: llm, store: store, locks: map[string]*sync.Mutex{}}
}

// lockFor serializes a student's submissions: one mutation plus its awaited
// safety check at a time, like the single-threaded app this replaces.
func (s *JourneySvc) lockFor(studentID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[studentID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[studentID] = l
	}
	return l
}

// checkSafety converts the verdict protocol into errors: nil for the literal
// SAFE, ErrNoCredential for a configuration problem, NotSafeError otherwise.
func (s *JourneySvc) checkSafety(ctx context.Context, text string) error {
	verdict, err := s.llm.CheckSafety(ctx, text)
	if err != nil {
		return err
	}
	if verdict != ai.VerdictSafe {
		return &entities.NotSafeError{Reason: strings.TrimPrefix(verdict, ai.UnsafePrefix)}
	}
	return nil
}

func (s *JourneySvc) load(studentID string) (*sessionsvc.Snapshot, error) {
	snap, err := s.store.Load(studentID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, entities.ErrNoSession
	}
	return snap, nil
}

// persist never blocks a committed step: a write failure becomes a warning.
func (s *JourneySvc) persist(studentID string, snap *sessionsvc.Snapshot, last entities.Stage) string {
	if err := s.store.Persist(studentID, snap.Journey, snap.Article, last); err != nil {
		log.Printf("[journey] persist for %s failed: %v", studentID, err)
		return persistWarning
	}
	return ""
}

func (s *JourneySvc) SubmitPreRead(ctx context.Context, studentID, note string) (*service.SubmitResult, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, entities.ErrEmptyInput
	}

	l := s.lockFor(studentID)
	l.Lock()
	defer l.Unlock()

	snap, err := s.load(studentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSafety(ctx, note); err != nil {
		return nil, err
	}

	j := snap.Journey
	rec := j.Step(entities.StepPreRead)
	isRevision := rec != nil
	next := entities.StageDuringRead
	if !isRevision {
		j.Steps[entities.StepPreRead] = &entities.StepRecord{NoteV1: note}
	} else {
		rec.NoteV2 = note
		next = entities.StageSummary
	}

	warning := s.persist(studentID, snap, next)
	return &service.SubmitResult{NextStage: next, Journey: j, Warning: warning}, nil
}

// composeQuestions renders the typed question/answer pairs into the single
// text that gets screened and stored as v1.
func composeQuestions(genre entities.Genre, questions []entities.Question) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		line := fmt.Sprintf("- [%s] %s", genre.QuestionTypeLabel(q.Type), strings.TrimSpace(q.Question))
		if a := strings.TrimSpace(q.Answer); a != "" {
			line += " — " + a
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *JourneySvc) SubmitDuringRead(ctx context.Context, studentID string, questions []entities.Question) (*service.SubmitResult, error) {
	if len(questions) == 0 {
		return nil, entities.ErrEmptyInput
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, entities.ErrEmptyInput
		}
	}

	l := s.lockFor(studentID)
	l.Lock()
	defer l.Unlock()

	snap, err := s.load(studentID)
	if err != nil {
		return nil, err
	}
	j := snap.Journey
	composed := composeQuestions(j.ArticleType, questions)
	if err := s.checkSafety(ctx, composed); err != nil {
		return nil, err
	}

	rec := j.Step(entities.StepDuringRead)
	isRevision := rec != nil
	next := entities.StageAdjustment
	if !isRevision {
		j.Steps[entities.StepDuringRead] = &entities.StepRecord{V1: composed, Questions: questions}
	} else {
		rec.V2 = composed
		rec.Questions = questions
		next = entities.StageSummary
	}

	warning := s.persist(studentID, snap, next)
	return &service.SubmitResult{NextStage: next, Journey: j, Warning: warning}, nil
}

func (s *JourneySvc) SubmitAdjustment(ctx context.Context, studentID, choice, solution string) (*service.SubmitResult, error) {
	if choice != "yes" && choice != "no" {
		return nil, entities.ErrEmptyInput
	}
	solution = strings.TrimSpace(solution)
	if choice == "yes" && solution == "" {
		return nil, entities.ErrEmptyInput
	}

	l := s.lockFor(studentID)
	l.Lock()
	defer l.Unlock()

	snap, err := s.load(studentID)
	if err != nil {
		return nil, err
	}
	j := snap.Journey
	rec := j.Step(entities.StepAdjustment)
	isRevision := rec != nil
	next := entities.StagePostRead
	if isRevision {
		next = entities.StageSummary
	}

	if choice == "yes" {
		if err := s.checkSafety(ctx, "(how I got unstuck) "+solution); err != nil {
			return nil, err
		}
		if !isRevision {
			j.Steps[entities.StepAdjustment] = &entities.StepRecord{Choice: "yes", SolutionV1: solution}
		} else {
			rec.Choice = "yes"
			if rec.SolutionV1 == "" {
				rec.SolutionV1 = solution
			} else {
				rec.SolutionV2 = solution
			}
		}
	} else {
		// the fixed literal goes through the screen for symmetry, but "no"
		// can never be rejected and stores no free text
		_, _ = s.llm.CheckSafety(ctx, adjustmentNoText)
		if !isRevision {
			j.Steps[entities.StepAdjustment] = &entities.StepRecord{Choice: "no"}
		} else {
			*rec = entities.StepRecord{Choice: "no"}
		}
	}

	warning := s.persist(studentID, snap, next)
	return &service.SubmitResult{NextStage: next, Journey: j, Warning: warning}, nil
}

func (s *JourneySvc) SubmitPostRead(ctx context.Context, studentID string, slots []string) (*service.SubmitResult, error) {
	l := s.lockFor(studentID)
	l.Lock()
	defer l.Unlock()

	snap, err := s.load(studentID)
	if err != nil {
		return nil, err
	}
	j := snap.Journey
	vocab := j.ArticleType.Vocab()

	texts := make([]string, vocab.PostReadSlots)
	filled := 0
	for i := range texts {
		if i < len(slots) {
			texts[i] = strings.TrimSpace(slots[i])
		}
		if texts[i] != "" {
			filled++
		}
	}
	if filled == 0 {
		return nil, entities.ErrEmptyInput
	}

	// every non-empty slot must pass before any record is written
	var reasons []string
	for _, t := range texts {
		if t == "" {
			continue
		}
		if err := s.checkSafety(ctx, t); err != nil {
			var nse *entities.NotSafeError
			if errors.As(err, &nse) {
				reasons = append(reasons, nse.Reason)
				continue
			}
			return nil, err
		}
	}
	if len(reasons) > 0 {
		return nil, &entities.NotSafeError{Reason: strings.Join(reasons, ", ")}
	}

	isRevision := j.HasPostRead()
	for i, t := range texts {
		if t == "" {
			continue
		}
		key := entities.PostReadKey(i + 1)
		title := vocab.SlotTitles[i]
		rec := j.Step(key)
		switch {
		case rec == nil:
			j.Steps[key] = &entities.StepRecord{Title: title, V1: t}
		case isRevision:
			rec.V2 = t
			rec.Title = title
		default:
			rec.V1 = t
			rec.Title = title
		}
	}

	warning := s.persist(studentID, snap, entities.StageSummary)
	return &service.SubmitResult{NextStage: entities.StageSummary, Journey: j, Warning: warning}, nil
}

func (s *JourneySvc) Summary(studentID string) (*service.SummaryView, error) {
	snap, err := s.load(studentID)
	if err != nil {
		return nil, err
	}
	j := snap.Journey
	needs := false
	for _, key := range entities.StepOrder {
		if j.Step(key).NeedsFeedback() {
			needs = true
			break
		}
	}
	done := j.RequiredStepsDone()
	return &service.SummaryView{
		Journey:       j,
		NeedsFeedback: needs,
		CanFeedback:   needs && done,
		CanReport:     done,
	}, nil
}
