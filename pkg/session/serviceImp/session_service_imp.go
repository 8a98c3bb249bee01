package serviceImp

import (
	"encoding/json"
	"log"

	"readquest/entities"
	"readquest/pkg/session/repository"
	"readquest/pkg/session/service"
)

type sessionSvc struct{ repo repository.SessionRepository }

func New(repo repository.SessionRepository) service.SessionService { return &sessionSvc{repo} }

func (s *sessionSvc) Persist(studentID string, j *entities.Journey, a *entities.Article, last entities.Stage) error {
	jb, err := json.Marshal(j)
	if err != nil {
		return err
	}
	ab, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := s.repo.Put(studentID, entities.KeyJourney, string(jb)); err != nil {
		return err
	}
	if err := s.repo.Put(studentID, entities.KeyArticle, string(ab)); err != nil {
		return err
	}
	return s.repo.Put(studentID, entities.KeyLastStage, string(last))
}

func (s *sessionSvc) Load(studentID string) (*service.Snapshot, error) {
	jraw, jok, err := s.repo.Get(studentID, entities.KeyJourney)
	if err != nil {
		return nil, err
	}
	araw, aok, err := s.repo.Get(studentID, entities.KeyArticle)
	if err != nil {
		return nil, err
	}
	sraw, sok, err := s.repo.Get(studentID, entities.KeyLastStage)
	if err != nil {
		return nil, err
	}
	if !jok || !aok || !sok {
		// a half-written session is not resumable; drop the leftovers
		if jok || aok || sok {
			_ = s.Reset(studentID)
		}
		return nil, nil
	}

	var j entities.Journey
	var a entities.Article
	if json.Unmarshal([]byte(jraw), &j) != nil || json.Unmarshal([]byte(araw), &a) != nil ||
		j.Steps == nil || a.ID == "" || !entities.Stage(sraw).Valid() {
		log.Printf("[session] stored state for %s unreadable, clearing", studentID)
		_ = s.Reset(studentID)
		return nil, nil
	}
	return &service.Snapshot{Journey: &j, Article: &a, LastStage: entities.Stage(sraw)}, nil
}

func (s *sessionSvc) Reset(studentID string) error {
	return s.repo.Delete(studentID, entities.SessionKeys...)
}
