package repository

import "readquest/entities"

type ArticleRepository interface {
	Create(a *entities.Article) error
	FindByID(id string) (*entities.Article, error)
}
