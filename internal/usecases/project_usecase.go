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

// ProjectForm is the add-project form.
type ProjectForm struct {
	Title       string `json:"title" validate:"min=5"`
	Description string `json:"description" validate:"min=10"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	DataAIHint  string `json:"dataAiHint"`
	Location    string `json:"location"`
}

var projectMessages = fieldMessages{
	"title.min":       "Title must be at least 5 characters.",
	"description.min": "Description must be at least 10 characters.",
	"imageUrl.url":    "Please enter a valid URL for the image.",
}

type ProjectUsecase struct {
	repo repositories.ProjectRepository
}

func NewProjectUsecase(repo repositories.ProjectRepository) *ProjectUsecase {
	return &ProjectUsecase{repo: repo}
}

func (u *ProjectUsecase) Create(ctx context.Context, form ProjectForm) *entities.ActionResult {
	form = ProjectForm{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		ImageURL:    strings.TrimSpace(form.ImageURL),
		DataAIHint:  strings.TrimSpace(form.DataAIHint),
		Location:    strings.TrimSpace(form.Location),
	}
	if verr := checkForm(form, projectMessages); verr != nil {
		return invalidResult(verr)
	}
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}

	project := &entities.Project{
		Title:       form.Title,
		Description: form.Description,
		ImageURL:    form.ImageURL,
		DataAIHint:  form.DataAIHint,
		Location:    form.Location,
	}
	if err := u.repo.Create(ctx, project); err != nil {
		logger.Error(ctx, "Failed to save project", zap.Error(err))
		return entities.Failed(entities.FailureStore, withCode("Failed to save the project due to a server error.", err))
	}

	res := entities.Succeeded("Project saved successfully!")
	res.Project = project
	return res
}

func (u *ProjectUsecase) List(ctx context.Context) ([]*entities.Project, error) {
	if u.repo == nil {
		return nil, domainerrors.ErrStoreUnavailable
	}
	return u.repo.List(ctx)
}

func (u *ProjectUsecase) Delete(ctx context.Context, id string) *entities.ActionResult {
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}
	if id == "" {
		return entities.Failed(entities.FailureInvalid, "Project ID is required for deletion.")
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Failed(entities.FailureNotFound, "Project not found.")
		}
		logger.Error(ctx, "Failed to delete project", zap.String("project_id", id), zap.Error(err))
		return entities.Failed(entities.FailureStore, withCode("Failed to delete project.", err))
	}
	return entities.Succeeded("Project deleted successfully.")
}
