package repositories

import (
	"context"

	"gorm.io/gorm"
	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/infrastructure/models"
	"veab-goa.backend/pkg/utils"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article *entities.Article) error {
	m := &models.Article{
		ID:         article.ID,
		Title:      article.Title,
		Slug:       article.Slug,
		Date:       article.Date,
		Author:     article.Author,
		Snippet:    article.Snippet,
		Content:    article.Content,
		ImageURL:   article.ImageURL,
		DataAIHint: article.DataAIHint,
	}
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError("create article", err)
	}
	article.ID = m.ID
	article.CreatedAt = m.CreatedAt
	return nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]*entities.Article, error) {
	var ms []models.Article
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, storeError("list articles", err)
	}
	items := make([]*entities.Article, 0, len(ms))
	for i := range ms {
		items = append(items, toArticleEntity(&ms[i]))
	}
	return items, nil
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	var m models.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, storeError("get article", err)
	}
	return toArticleEntity(&m), nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return domainerrors.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		return storeError("delete article", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toArticleEntity(m *models.Article) *entities.Article {
	return &entities.Article{
		ID:         m.ID,
		Title:      m.Title,
		Slug:       m.Slug,
		Date:       m.Date,
		Author:     m.Author,
		Snippet:    m.Snippet,
		Content:    m.Content,
		ImageURL:   m.ImageURL,
		DataAIHint: m.DataAIHint,
		CreatedAt:  m.CreatedAt,
	}
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	m := &models.Project{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		ImageURL:    project.ImageURL,
		DataAIHint:  project.DataAIHint,
		Location:    project.Location,
	}
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError("create project", err)
	}
	project.ID = m.ID
	project.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	var ms []models.Project
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, storeError("list projects", err)
	}
	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		items = append(items, &entities.Project{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			ImageURL:    m.ImageURL,
			DataAIHint:  m.DataAIHint,
			Location:    m.Location,
			CreatedAt:   m.CreatedAt,
		})
	}
	return items, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return domainerrors.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return storeError("delete project", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

type ContactMessageRepository struct {
	db *gorm.DB
}

func NewContactMessageRepository(db *gorm.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

func (r *ContactMessageRepository) Create(ctx context.Context, msg *entities.ContactMessage) error {
	m := &models.ContactMessage{
		ID:          msg.ID,
		Name:        msg.Name,
		Email:       msg.Email,
		Subject:     msg.Subject,
		Message:     msg.Message,
		Status:      string(msg.Status),
		SubmittedAt: msg.SubmittedAt,
	}
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError("create contact message", err)
	}
	msg.ID = m.ID
	return nil
}

func (r *ContactMessageRepository) List(ctx context.Context, status entities.ContactMessageStatus, pagination utils.PaginationParams) ([]*entities.ContactMessage, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.ContactMessage{})
		if status != "" {
			q = q.Where("status = ?", string(status))
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, storeError("count contact messages", err)
	}

	query := scoped().Order("submitted_at DESC")
	if pagination.Limit > 0 {
		query = query.Offset(pagination.CalculateOffset()).Limit(pagination.Limit)
	}

	var ms []models.ContactMessage
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, storeError("list contact messages", err)
	}
	items := make([]*entities.ContactMessage, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		items = append(items, &entities.ContactMessage{
			ID:          m.ID,
			Name:        m.Name,
			Email:       m.Email,
			Subject:     m.Subject,
			Message:     m.Message,
			Status:      entities.ContactMessageStatus(m.Status),
			SubmittedAt: m.SubmittedAt,
		})
	}
	return items, total, nil
}

func (r *ContactMessageRepository) UpdateStatus(ctx context.Context, id string, status entities.ContactMessageStatus) error {
	if !utils.IsUUID(id) {
		return domainerrors.ErrNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return storeError("update contact message", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
