package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/pkg/logger"
)

// ArticleForm is the add-article form.
type ArticleForm struct {
	Title      string `json:"title" validate:"min=5"`
	Slug       string `json:"slug" validate:"omitempty,slug"`
	Date       string `json:"date" validate:"min=5"`
	Author     string `json:"author"`
	Snippet    string `json:"snippet" validate:"min=10"`
	Content    string `json:"content" validate:"min=20"`
	ImageURL   string `json:"imageUrl" validate:"omitempty,url"`
	DataAIHint string `json:"dataAiHint"`
}

var articleMessages = fieldMessages{
	"title.min":    "Title must be at least 5 characters.",
	"slug.slug":    "Slug must be lowercase alphanumeric with hyphens, or empty for auto-generation.",
	"date.min":     "Display date is required.",
	"snippet.min":  "Snippet must be at least 10 characters.",
	"content.min":  "Content must be at least 20 characters.",
	"imageUrl.url": "Please enter a valid URL for the image.",
}

type ArticleUsecase struct {
	repo repositories.ArticleRepository
}

func NewArticleUsecase(repo repositories.ArticleRepository) *ArticleUsecase {
	return &ArticleUsecase{repo: repo}
}

// Create stores a news article. An empty slug is derived from the title.
func (u *ArticleUsecase) Create(ctx context.Context, form ArticleForm) *entities.ActionResult {
	form = ArticleForm{
		Title:      strings.TrimSpace(form.Title),
		Slug:       strings.TrimSpace(form.Slug),
		Date:       strings.TrimSpace(form.Date),
		Author:     strings.TrimSpace(form.Author),
		Snippet:    strings.TrimSpace(form.Snippet),
		Content:    strings.TrimSpace(form.Content),
		ImageURL:   strings.TrimSpace(form.ImageURL),
		DataAIHint: strings.TrimSpace(form.DataAIHint),
	}
	if verr := checkForm(form, articleMessages); verr != nil {
		return invalidResult(verr)
	}
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}

	slug := form.Slug
	if slug == "" {
		slug = Slugify(form.Title)
	}
	article := &entities.Article{
		Title:      form.Title,
		Slug:       slug,
		Date:       form.Date,
		Author:     form.Author,
		Snippet:    form.Snippet,
		Content:    form.Content,
		ImageURL:   form.ImageURL,
		DataAIHint: form.DataAIHint,
	}
	if err := u.repo.Create(ctx, article); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return entities.Failed(entities.FailureInvalid, "An article with this slug already exists.")
		}
		logger.Error(ctx, "Failed to save article", zap.Error(err))
		return entities.Failed(entities.FailureStore, withCode("Failed to save the article due to a server error.", err))
	}

	res := entities.Succeeded("Article saved successfully!")
	res.Article = article
	return res
}

func (u *ArticleUsecase) List(ctx context.Context) ([]*entities.Article, error) {
	if u.repo == nil {
		return nil, domainerrors.ErrStoreUnavailable
	}
	return u.repo.List(ctx)
}

func (u *ArticleUsecase) GetBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	if u.repo == nil {
		return nil, domainerrors.ErrStoreUnavailable
	}
	if !IsValidSlug(slug) {
		return nil, domainerrors.ErrNotFound
	}
	return u.repo.GetBySlug(ctx, slug)
}

func (u *ArticleUsecase) Delete(ctx context.Context, id string) *entities.ActionResult {
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}
	if id == "" {
		return entities.Failed(entities.FailureInvalid, "Article ID is required for deletion.")
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Failed(entities.FailureNotFound, "Article not found.")
		}
		logger.Error(ctx, "Failed to delete article", zap.String("article_id", id), zap.Error(err))
		return entities.Failed(entities.FailureStore, withCode("Failed to delete article.", err))
	}
	return entities.Succeeded("Article deleted successfully.")
}
