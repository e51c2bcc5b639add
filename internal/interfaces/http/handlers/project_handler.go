package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/interfaces/http/response"
	"veab-goa.backend/internal/usecases"
)

type ProjectHandler struct {
	usecase *usecases.ProjectUsecase
}

func NewProjectHandler(usecase *usecases.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{usecase: usecase}
}

// ListProjects returns projects, newest first.
// GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// CreateProject saves the add-project form.
// POST /api/v1/admin/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var form usecases.ProjectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}
	response.Result(c, h.usecase.Create(c.Request.Context(), form), http.StatusCreated)
}

// DeleteProject removes a project.
// DELETE /api/v1/admin/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	response.Result(c, h.usecase.Delete(c.Request.Context(), c.Param("id")), http.StatusOK)
}
