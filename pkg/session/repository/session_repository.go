package repository

// SessionRepository is the durable string store behind a student's session:
// independent entries under fixed keys, like the browser storage it replaces.
type SessionRepository interface {
	Get(studentID, key string) (string, bool, error)
	Put(studentID, key, value string) error
	Delete(studentID string, keys ...string) error
}
