package entities

import "time"

// StoreEntry is one durable key/value pair scoped to a student, mirroring
// the storage contract the browser app used: independent string entries
// under fixed keys.
type StoreEntry struct {
	ID        uint   `gorm:"primaryKey"`
	StudentID string `gorm:"index:idx_store_student_key,unique"`
	Key       string `gorm:"index:idx_store_student_key,unique"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// Fixed storage keys. Journey, article and last-stage form the resumable
// session and are cleared together; nickname and api key live on their own.
const (
	KeyJourney   = "journey"
	KeyArticle   = "article"
	KeyLastStage = "last_stage"
	KeyNickname  = "nickname"
	KeyAPIKey    = "api_key"
)

// SessionKeys are the entries that must all be present and parse for a
// resume to be offered, and that a reset removes together.
var SessionKeys = []string{KeyJourney, KeyArticle, KeyLastStage}
