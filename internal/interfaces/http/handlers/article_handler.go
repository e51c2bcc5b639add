package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/interfaces/http/response"
	"veab-goa.backend/internal/usecases"
)

type ArticleHandler struct {
	usecase *usecases.ArticleUsecase
}

func NewArticleHandler(usecase *usecases.ArticleUsecase) *ArticleHandler {
	return &ArticleHandler{usecase: usecase}
}

// ListArticles returns articles, newest first.
// GET /api/v1/articles
// GET /api/v1/admin/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetArticle returns one article by slug.
// GET /api/v1/articles/:slug
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.usecase.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Article not found."))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"article": article})
}

// CreateArticle saves the add-article form.
// POST /api/v1/admin/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var form usecases.ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}
	response.Result(c, h.usecase.Create(c.Request.Context(), form), http.StatusCreated)
}

// DeleteArticle removes an article.
// DELETE /api/v1/admin/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	response.Result(c, h.usecase.Delete(c.Request.Context(), c.Param("id")), http.StatusOK)
}
