package service

import (
	"context"

	"readquest/entities"
)

// StepResult is one queue item's outcome. A failed item does not abort the
// batch and never blocks the report.
type StepResult struct {
	Key   entities.StepKey `json:"key"`
	OK    bool             `json:"ok"`
	Error string           `json:"error,omitempty"`
}

type BatchResult struct {
	Results []StepResult      `json:"results"`
	Journey *entities.Journey `json:"journey"`
	Warning string            `json:"warning,omitempty"`
}

type FeedbackService interface {
	// Run requests feedback for every step that lacks it, strictly one call
	// at a time, persisting the journey after each success. Requires all
	// mandatory steps to be complete.
	Run(ctx context.Context, studentID string) (*BatchResult, error)
}
