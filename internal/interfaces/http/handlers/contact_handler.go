package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/interfaces/http/response"
	"veab-goa.backend/internal/usecases"
	"veab-goa.backend/pkg/utils"
)

type ContactHandler struct {
	usecase *usecases.ContactUsecase
}

func NewContactHandler(usecase *usecases.ContactUsecase) *ContactHandler {
	return &ContactHandler{usecase: usecase}
}

// SubmitContact stores a message from the public contact form.
// POST /api/v1/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var form usecases.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}
	response.Result(c, h.usecase.Submit(c.Request.Context(), form), http.StatusCreated)
}

// ListContactMessages pages through received messages.
// GET /api/v1/admin/contact-messages?status=new&page=1&limit=20
func (h *ContactHandler) ListContactMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	pagination := utils.GetPaginationParams(page, limit)

	var status entities.ContactMessageStatus
	switch s := entities.ContactMessageStatus(c.Query("status")); s {
	case "", entities.ContactMessageNew, entities.ContactMessageRead:
		status = s
	default:
		response.Error(c, domainerrors.BadRequest("status must be new or read"))
		return
	}

	items, total, err := h.usecase.List(c.Request.Context(), status, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"meta":  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// MarkContactMessageRead flags a message as handled.
// PATCH /api/v1/admin/contact-messages/:id/read
func (h *ContactHandler) MarkContactMessageRead(c *gin.Context) {
	if err := h.usecase.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Message not found."))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Message marked as read."})
}
