package service

import "readquest/entities"

// Snapshot is a fully reconstructed session: all three entries were present
// and parsed.
type Snapshot struct {
	Journey   *entities.Journey `json:"journey"`
	Article   *entities.Article `json:"article"`
	LastStage entities.Stage    `json:"lastStage"`
}

type SessionService interface {
	// Persist writes the journey, the article and the stage to resume at.
	Persist(studentID string, j *entities.Journey, a *entities.Article, last entities.Stage) error

	// Load returns the snapshot to resume, or nil when there is nothing to
	// resume. Missing or unparsable entries are cleared and reported as nil.
	Load(studentID string) (*Snapshot, error)

	// Reset removes the journey, article and last-stage entries together.
	Reset(studentID string) error
}
