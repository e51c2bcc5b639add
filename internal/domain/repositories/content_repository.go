package repositories

import (
	"context"

	"veab-goa.backend/internal/domain/entities"
	"veab-goa.backend/pkg/utils"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *entities.Article) error
	List(ctx context.Context) ([]*entities.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Article, error)
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	List(ctx context.Context) ([]*entities.Project, error)
	Delete(ctx context.Context, id string) error
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *entities.ContactMessage) error
	List(ctx context.Context, status entities.ContactMessageStatus, pagination utils.PaginationParams) ([]*entities.ContactMessage, int64, error)
	UpdateStatus(ctx context.Context, id string, status entities.ContactMessageStatus) error
}
