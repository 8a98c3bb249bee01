package repositoryImp

import (
	"gorm.io/gorm"

	"readquest/entities"
	"readquest/pkg/article/repository"
)

type articleRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ArticleRepository { return &articleRepo{db} }

func (r *articleRepo) Create(a *entities.Article) error { return r.db.Create(a).Error }

func (r *articleRepo) FindByID(id string) (*entities.Article, error) {
	var a entities.Article
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
