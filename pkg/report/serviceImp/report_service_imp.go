package serviceImp

import (
	"context"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"readquest/entities"
	"readquest/pkg/ai"
	"readquest/pkg/report/service"
	sessionrepo "readquest/pkg/session/repository"
	sessionsvc "readquest/pkg/session/service"
)

const evaluationPlaceholder = "<p>The AI evaluation could not be generated this time. The activity record below is still complete — try the evaluation again later.</p>"

type ReportSvc struct {
	llm   ai.Client
	store sessionsvc.SessionService
	kv    sessionrepo.SessionRepository
}

func New(llm ai.Client, store sessionsvc.SessionService, kv sessionrepo.SessionRepository) *ReportSvc {
	return &ReportSvc{llm: llm, store: store, kv: kv}
}

func (s *ReportSvc) Build(ctx context.Context, studentID string) (*service.ReportView, error) {
	snap, err := s.store.Load(studentID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, entities.ErrNoSession
	}
	j := snap.Journey

	view := &service.ReportView{
		ArticleTitle: j.ArticleTitle,
		ArticleBody:  j.ArticleBody,
		ArticleType:  j.ArticleType,
	}
	if nick, ok, err := s.kv.Get(studentID, entities.KeyNickname); err == nil && ok {
		view.Nickname = nick
	}

	for _, key := range entities.StepOrder {
		rec := j.Step(key)
		if rec == nil {
			continue
		}
		step := service.ReportStep{
			Key:      key,
			Title:    stepTitle(key, rec, j.ArticleType),
			Choice:   rec.Choice,
			V1:       rec.FirstVersion(),
			Feedback: rec.Feedback,
			V2:       rec.SecondVersion(),
		}
		view.Steps = append(view.Steps, step)
	}

	eval, err := s.llm.EvaluateJourney(ctx, j)
	if err != nil {
		log.Printf("[report] evaluation for %s failed: %v", studentID, err)
		view.EvaluationHTML = evaluationPlaceholder
		view.EvaluationFailed = true
	} else {
		view.EvaluationHTML = SanitizeHTML(eval)
	}
	return view, nil
}

func stepTitle(key entities.StepKey, rec *entities.StepRecord, genre entities.Genre) string {
	switch key {
	case entities.StepPreRead:
		return "Before reading"
	case entities.StepDuringRead:
		return "During reading"
	case entities.StepAdjustment:
		return "Adjusting my reading"
	default:
		if rec.Title != "" {
			return "After reading (" + rec.Title + ")"
		}
		return "After reading"
	}
}

var stepHeaders = []string{"Step", "Choice", "What I wrote (v1)", "AI feedback", "My revision (v2)"}

func (s *ReportSvc) Export(ctx context.Context, studentID string) (*excelize.File, error) {
	view, err := s.Build(ctx, studentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const articleSheet = "Article"
	f.SetSheetName("Sheet1", articleSheet)
	_ = f.SetCellValue(articleSheet, "A1", "Student")
	_ = f.SetCellValue(articleSheet, "B1", view.Nickname)
	_ = f.SetCellValue(articleSheet, "A2", "Title")
	_ = f.SetCellValue(articleSheet, "B2", view.ArticleTitle)
	_ = f.SetCellValue(articleSheet, "A3", "Kind")
	_ = f.SetCellValue(articleSheet, "B3", view.ArticleType.Vocab().Label)
	_ = f.SetCellValue(articleSheet, "A4", "Body")
	_ = f.SetCellValue(articleSheet, "B4", view.ArticleBody)

	const stepSheet = "Journey"
	if _, err := f.NewSheet(stepSheet); err != nil {
		return nil, err
	}
	for col, h := range stepHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(stepSheet, cell, h)
	}
	for row, step := range view.Steps {
		vals := []string{step.Title, step.Choice, step.V1, step.Feedback, step.V2}
		for col, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(stepSheet, cell, v)
		}
	}

	const evalSheet = "Evaluation"
	if _, err := f.NewSheet(evalSheet); err != nil {
		return nil, err
	}
	evalText := HTMLToText(view.EvaluationHTML)
	if view.EvaluationFailed {
		evalText = fmt.Sprintf("(evaluation unavailable)\n%s", evalText)
	}
	_ = f.SetCellValue(evalSheet, "A1", evalText)

	return f, nil
}
