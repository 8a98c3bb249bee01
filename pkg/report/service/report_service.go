package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"readquest/entities"
)

type ReportStep struct {
	Key      entities.StepKey `json:"key"`
	Title    string           `json:"title"`
	Choice   string           `json:"choice,omitempty"`
	V1       string           `json:"v1,omitempty"`
	Feedback string           `json:"feedback,omitempty"`
	V2       string           `json:"v2,omitempty"`
}

// ReportView is the final record. The raw activity steps are always present;
// EvaluationFailed marks that the AI evaluation is a placeholder.
type ReportView struct {
	Nickname         string         `json:"nickname,omitempty"`
	ArticleTitle     string         `json:"articleTitle"`
	ArticleBody      string         `json:"articleBody"`
	ArticleType      entities.Genre `json:"articleType"`
	Steps            []ReportStep   `json:"steps"`
	EvaluationHTML   string         `json:"evaluationHtml"`
	EvaluationFailed bool           `json:"evaluationFailed"`
}

type ReportService interface {
	// Build assembles the report and asks the model for the evaluation.
	// An evaluation failure yields a placeholder, never an error: the raw
	// activity record is worth having on its own.
	Build(ctx context.Context, studentID string) (*ReportView, error)

	// Export renders the report as a spreadsheet workbook.
	Export(ctx context.Context, studentID string) (*excelize.File, error)
}
