package service

import (
	"context"

	"readquest/entities"
)

// SubmitResult reports where the student goes next. Warning is set when the
// step committed in memory but could not be written to durable storage.
type SubmitResult struct {
	NextStage entities.Stage    `json:"nextStage"`
	Journey   *entities.Journey `json:"journey"`
	Warning   string            `json:"warning,omitempty"`
}

// SummaryView backs the summary screen: the records plus the gating flags
// for the feedback and report buttons.
type SummaryView struct {
	Journey       *entities.Journey `json:"journey"`
	NeedsFeedback bool              `json:"needsFeedback"`
	CanFeedback   bool              `json:"canFeedback"`
	CanReport     bool              `json:"canReport"`
}

// JourneyService is the step state machine. Every submission validates its
// required fields, safety-checks the composed text, and commits atomically:
// first pass creates the record and advances, a revision sets only the
// v2-family field and routes to summary.
type JourneyService interface {
	SubmitPreRead(ctx context.Context, studentID, note string) (*SubmitResult, error)
	SubmitDuringRead(ctx context.Context, studentID string, questions []entities.Question) (*SubmitResult, error)
	SubmitAdjustment(ctx context.Context, studentID, choice, solution string) (*SubmitResult, error)
	SubmitPostRead(ctx context.Context, studentID string, slots []string) (*SubmitResult, error)
	Summary(studentID string) (*SummaryView, error)
}
