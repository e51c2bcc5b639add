package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/pkg/logger"
	"veab-goa.backend/pkg/utils"
)

// ContactForm is the public contact form. Honeypot is a hidden field that
// only bots fill in.
type ContactForm struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"email"`
	Subject  string `json:"subject" validate:"min=5"`
	Message  string `json:"message" validate:"min=10"`
	Honeypot string `json:"honeypot"`
}

var contactMessages = fieldMessages{
	"name.min":    "Name must be at least 2 characters.",
	"email.email": "Please enter a valid email address.",
	"subject.min": "Subject must be at least 5 characters.",
	"message.min": "Message must be at least 10 characters.",
}

type ContactUsecase struct {
	repo repositories.ContactMessageRepository
}

func NewContactUsecase(repo repositories.ContactMessageRepository) *ContactUsecase {
	return &ContactUsecase{repo: repo}
}

// Submit stores a contact message with status new. A filled honeypot gets
// the same success answer without anything being stored.
func (u *ContactUsecase) Submit(ctx context.Context, form ContactForm) *entities.ActionResult {
	form = ContactForm{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Subject:  strings.TrimSpace(form.Subject),
		Message:  strings.TrimSpace(form.Message),
		Honeypot: strings.TrimSpace(form.Honeypot),
	}
	if verr := checkForm(form, contactMessages); verr != nil {
		return invalidResult(verr)
	}
	if form.Honeypot != "" {
		logger.Warn(ctx, "Contact form spam attempt dropped", zap.String("email", form.Email))
		return entities.Succeeded("Message received.")
	}
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, "Database connection error. Message not saved.")
	}

	msg := &entities.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
		Status:  entities.ContactMessageNew,
	}
	if err := u.repo.Create(ctx, msg); err != nil {
		logger.Error(ctx, "Failed to save contact message", zap.Error(err))
		return entities.Failed(entities.FailureStore, "Failed to save your message due to a server error. Please try again later.")
	}
	return entities.Succeeded("Your message has been saved successfully!")
}

// List pages through received messages, newest first. An empty status lists all.
func (u *ContactUsecase) List(
	ctx context.Context,
	status entities.ContactMessageStatus,
	pagination utils.PaginationParams,
) ([]*entities.ContactMessage, int64, error) {
	if u.repo == nil {
		return nil, 0, domainerrors.ErrStoreUnavailable
	}
	return u.repo.List(ctx, status, pagination)
}

func (u *ContactUsecase) MarkRead(ctx context.Context, id string) error {
	if u.repo == nil {
		return domainerrors.ErrStoreUnavailable
	}
	return u.repo.UpdateStatus(ctx, id, entities.ContactMessageRead)
}
