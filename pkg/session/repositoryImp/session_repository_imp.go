package repositoryImp

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"readquest/entities"
	"readquest/pkg/session/repository"
)

type sessionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SessionRepository { return &sessionRepo{db} }

func (r *sessionRepo) Get(studentID, key string) (string, bool, error) {
	var e entities.StoreEntry
	err := r.db.Where("student_id = ? AND key = ?", studentID, key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (r *sessionRepo) Put(studentID, key, value string) error {
	e := entities.StoreEntry{StudentID: studentID, Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (r *sessionRepo) Delete(studentID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.Where("student_id = ? AND key IN ?", studentID, keys).Delete(&entities.StoreEntry{}).Error
}
