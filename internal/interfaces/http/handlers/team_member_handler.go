package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/interfaces/http/response"
	"veab-goa.backend/internal/usecases"
	"veab-goa.backend/pkg/logger"
)

const (
	payloadField    = "payload"
	imageField      = "image"
	eventStreamMIME = "text/event-stream"
	multipartMemory = 32 << 20
	multipartSlack  = 1 << 20
)

type TeamMemberHandler struct {
	usecase  *usecases.TeamMemberUsecase
	maxBytes int64
}

// NewTeamMemberHandler bounds multipart bodies to maxUploadBytes plus room
// for the form payload. Zero disables the bound.
func NewTeamMemberHandler(usecase *usecases.TeamMemberUsecase, maxUploadBytes int64) *TeamMemberHandler {
	return &TeamMemberHandler{usecase: usecase, maxBytes: maxUploadBytes}
}

// ListTeamMembers returns members in display order with resolved images.
// GET /api/v1/team-members
// GET /api/v1/admin/team-members
func (h *TeamMemberHandler) ListTeamMembers(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetTeamMember returns one member for the edit dialog.
// GET /api/v1/admin/team-members/:id
func (h *TeamMemberHandler) GetTeamMember(c *gin.Context) {
	item, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Team member not found."))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"member": item})
}

// CreateTeamMember adds a member, uploading the picked image first.
// POST /api/v1/admin/team-members
func (h *TeamMemberHandler) CreateTeamMember(c *gin.Context) {
	h.submit(c, "", http.StatusCreated)
}

// UpdateTeamMember saves the edit dialog of an existing member.
// PUT /api/v1/admin/team-members/:id
func (h *TeamMemberHandler) UpdateTeamMember(c *gin.Context) {
	h.submit(c, c.Param("id"), http.StatusOK)
}

// DeleteTeamMember removes the record, then its stored image.
// DELETE /api/v1/admin/team-members/:id
func (h *TeamMemberHandler) DeleteTeamMember(c *gin.Context) {
	res := h.usecase.Delete(c.Request.Context(), c.Param("id"))
	response.Result(c, res, http.StatusOK)
}

func (h *TeamMemberHandler) submit(c *gin.Context, id string, successStatus int) {
	in := usecases.SubmitInput{ID: id}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, closer, err := h.bindMultipart(c, &in)
		if err != nil {
			response.Error(c, err)
			return
		}
		if closer != nil {
			defer closer.Close()
		}
		in.File = file
	} else if err := c.ShouldBindJSON(&in.Form); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"))
		return
	}

	if !wantsEventStream(c) {
		res := h.usecase.Submit(c.Request.Context(), in, usecases.SubmitHooks{})
		response.Result(c, res, successStatus)
		return
	}

	c.Header("Content-Type", eventStreamMIME)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	res := h.usecase.Submit(c.Request.Context(), in, usecases.SubmitHooks{
		OnPhase: func(p usecases.FormPhase) {
			c.SSEvent("phase", gin.H{"phase": p})
			c.Writer.Flush()
		},
		OnProgress: func(p usecases.UploadProgress) {
			c.SSEvent("progress", gin.H{
				"bytesTransferred": p.BytesTransferred,
				"totalBytes":       p.TotalBytes,
				"percent":          p.Percent(),
			})
			c.Writer.Flush()
		},
	})
	c.SSEvent("result", res)
	c.Writer.Flush()
}

// bindMultipart reads the JSON form from the payload field and the optional
// image part. The returned closer releases the image part.
func (h *TeamMemberHandler) bindMultipart(c *gin.Context, in *usecases.SubmitInput) (*entities.ImageUpload, io.Closer, error) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartSlack)
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, domainerrors.NewAppError(http.StatusRequestEntityTooLarge, domainerrors.CodeUploadFailed, "Image upload failed: file is too large.", domainerrors.ErrUploadFailed)
		}
		return nil, nil, domainerrors.BadRequest("Invalid multipart form")
	}

	payload := c.PostForm(payloadField)
	if strings.TrimSpace(payload) == "" {
		return nil, nil, domainerrors.BadRequest("Form payload is required")
	}
	if err := json.Unmarshal([]byte(payload), &in.Form); err != nil {
		return nil, nil, domainerrors.BadRequest("Invalid form payload")
	}

	header, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		logger.Warn(c.Request.Context(), "Failed to read image part", zap.Error(err))
		return nil, nil, domainerrors.BadRequest("Invalid image upload")
	}
	f, err := header.Open()
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to open image part", zap.Error(err))
		return nil, nil, domainerrors.InternalError(err)
	}

	return &entities.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, f, nil
}

func wantsEventStream(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), eventStreamMIME)
}
