package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/pkg/logger"
)

const (
	msgDatabaseConnection = "Database connection error."
	msgMemberNotFound     = "Team member not found."
	msgMemberIDRequired   = "Member ID is required for deletion."
	msgMemberDeleted      = "Team member deleted successfully."
	msgMemberDeleteFailed = "Failed to delete team member."
	msgMemberSaveFailed   = "Failed to save team member due to a server error."
	msgStorageDisabled    = "Image storage is not configured."
	msgUploadCancelled    = "Image upload was cancelled."
)

// FormPhase is the state of an admin form submission.
type FormPhase string

const (
	PhaseValidating FormPhase = "validating"
	PhaseUploading  FormPhase = "uploading"
	PhaseSaving     FormPhase = "saving"
	PhaseDone       FormPhase = "done"
	PhaseFailed     FormPhase = "failed"
)

// SubmitInput is one save from the admin dialog. File is nil when no new
// image was picked.
type SubmitInput struct {
	ID   string
	Form TeamMemberForm
	File *entities.ImageUpload
}

// SubmitHooks observe a submission. Both are optional and called from the
// submitting goroutine.
type SubmitHooks struct {
	OnPhase    func(FormPhase)
	OnProgress func(UploadProgress)
}

func (h SubmitHooks) phase(p FormPhase) {
	if h.OnPhase != nil {
		h.OnPhase(p)
	}
}

func (h SubmitHooks) progress(p UploadProgress) {
	if h.OnProgress != nil {
		h.OnProgress(p)
	}
}

// TeamMemberUsecase runs the admin team member workflow.
type TeamMemberUsecase struct {
	repo     repositories.TeamMemberRepository
	uploads  *UploadPipeline
	resolver *ImageResolver
}

// NewTeamMemberUsecase accepts a nil repo; every action then reports a
// database connection error.
func NewTeamMemberUsecase(
	repo repositories.TeamMemberRepository,
	uploads *UploadPipeline,
	resolver *ImageResolver,
) *TeamMemberUsecase {
	return &TeamMemberUsecase{
		repo:     repo,
		uploads:  uploads,
		resolver: resolver,
	}
}

// List returns members in display order with resolved image URLs.
func (u *TeamMemberUsecase) List(ctx context.Context) ([]*entities.TeamMemberView, error) {
	if u.repo == nil {
		return nil, domainerrors.ErrStoreUnavailable
	}
	members, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return u.resolver.Views(ctx, members), nil
}

func (u *TeamMemberUsecase) Get(ctx context.Context, id string) (*entities.TeamMemberView, error) {
	if u.repo == nil {
		return nil, domainerrors.ErrStoreUnavailable
	}
	member, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entities.NewTeamMemberView(member, u.resolver.Resolve(ctx, member.Image)), nil
}

// Save validates form and creates a member, or updates the member with id.
// Image references are stored as given.
func (u *TeamMemberUsecase) Save(ctx context.Context, form TeamMemberForm, id string) *entities.ActionResult {
	values, err := ValidateTeamMember(form)
	if err != nil {
		return invalidResult(err)
	}
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}
	var existing *entities.TeamMember
	if id != "" {
		if existing, err = u.repo.GetByID(ctx, id); err != nil {
			return saveFailure(ctx, err)
		}
	}
	member, err := u.write(ctx, values, existing)
	if err != nil {
		return saveFailure(ctx, err)
	}
	return savedResult(member, id)
}

// Submit runs Validating -> Uploading -> Saving -> Done|Failed. The upload
// finishes before the record is written; a replaced store image is removed
// once the write succeeded.
func (u *TeamMemberUsecase) Submit(ctx context.Context, in SubmitInput, hooks SubmitHooks) *entities.ActionResult {
	result := u.submit(ctx, in, hooks)
	if result.Success {
		hooks.phase(PhaseDone)
	} else {
		hooks.phase(PhaseFailed)
	}
	return result
}

func (u *TeamMemberUsecase) submit(ctx context.Context, in SubmitInput, hooks SubmitHooks) *entities.ActionResult {
	hooks.phase(PhaseValidating)
	values, err := ValidateTeamMember(in.Form)
	if err != nil {
		return invalidResult(err)
	}
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}

	var existing *entities.TeamMember
	var previous entities.ImageRef
	if in.ID != "" {
		if existing, err = u.repo.GetByID(ctx, in.ID); err != nil {
			return saveFailure(ctx, err)
		}
		previous = existing.Image
	}

	retire := false
	uploaded := ""
	switch {
	case in.File != nil:
		hooks.phase(PhaseUploading)
		path, failure := u.upload(ctx, in, hooks)
		if failure != nil {
			return failure
		}
		values.Image = entities.StoreObjectRef(path)
		uploaded = path
		retire = true
	case values.Image.IsZero() && previous.Kind == entities.ImageStoreObject:
		retire = true
	}

	hooks.phase(PhaseSaving)
	member, err := u.write(ctx, values, existing)
	if err != nil {
		if uploaded != "" {
			u.uploads.Discard(ctx, uploaded)
		}
		return saveFailure(ctx, err)
	}

	if retire {
		u.uploads.Retire(ctx, previous, values.Image.String())
	}
	return savedResult(member, in.ID)
}

func (u *TeamMemberUsecase) upload(ctx context.Context, in SubmitInput, hooks SubmitHooks) (string, *entities.ActionResult) {
	task, err := u.uploads.Start(ctx, UploadRequest{MemberID: in.ID, File: *in.File})
	if err != nil {
		return "", uploadFailure(err)
	}
	for p := range task.Progress() {
		hooks.progress(p)
	}
	path, err := task.Wait()
	if err != nil {
		logger.Warn(ctx, "Team image upload failed", zap.String("path", task.Path()), zap.Error(err))
		return "", uploadFailure(err)
	}
	return path, nil
}

// Delete removes the record first and its store image second.
func (u *TeamMemberUsecase) Delete(ctx context.Context, id string) *entities.ActionResult {
	if u.repo == nil {
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	}
	if id == "" {
		return entities.Failed(entities.FailureInvalid, msgMemberIDRequired)
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return deleteFailure(ctx, err)
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return deleteFailure(ctx, err)
	}
	u.uploads.Retire(ctx, existing.Image, "")

	logger.Info(ctx, "Team member deleted", zap.String("member_id", id))
	return entities.Succeeded(msgMemberDeleted)
}

// write creates a member, or updates existing in place. Updates keep the
// stored creation time.
func (u *TeamMemberUsecase) write(ctx context.Context, values *TeamMemberValues, existing *entities.TeamMember) (*entities.TeamMember, error) {
	member := &entities.TeamMember{
		Name:         values.Name,
		Role:         values.Role,
		Profession:   values.Profession,
		Intro:        values.Intro,
		Image:        values.Image,
		DataAIHint:   values.DataAIHint,
		Socials:      values.Socials,
		DisplayOrder: values.DisplayOrder,
	}
	if existing != nil {
		member.ID = existing.ID
		member.CreatedAt = existing.CreatedAt
		return member, u.repo.Update(ctx, member)
	}
	return member, u.repo.Create(ctx, member)
}

func savedResult(member *entities.TeamMember, id string) *entities.ActionResult {
	verb := "saved"
	if id != "" {
		verb = "updated"
	}
	res := entities.Succeeded(fmt.Sprintf("Team member %s successfully!", verb))
	res.Member = member
	return res
}

func invalidResult(err error) *entities.ActionResult {
	res := entities.Failed(entities.FailureInvalid, "Invalid data: "+err.Error())
	var verr *ValidationError
	if errors.As(err, &verr) {
		res.Fields = verr.Fields
	}
	return res
}

func withCode(msg string, err error) string {
	if code := domainerrors.StoreCode(err); code != "" {
		return fmt.Sprintf("%s (code: %s)", msg, code)
	}
	return msg
}

func saveFailure(ctx context.Context, err error) *entities.ActionResult {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return entities.Failed(entities.FailureNotFound, msgMemberNotFound)
	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	case errors.Is(err, domainerrors.ErrPermissionDenied):
		logger.Error(ctx, "Permission denied saving team member", zap.Error(err))
		return entities.Failed(entities.FailurePermission, withCode("Permission denied while saving team member", err)+".")
	}
	logger.Error(ctx, "Failed to save team member", zap.Error(err))
	return entities.Failed(entities.FailureStore, withCode(msgMemberSaveFailed, err))
}

func deleteFailure(ctx context.Context, err error) *entities.ActionResult {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return entities.Failed(entities.FailureNotFound, msgMemberNotFound)
	case errors.Is(err, domainerrors.ErrStoreUnavailable):
		return entities.Failed(entities.FailureUnavailable, msgDatabaseConnection)
	case errors.Is(err, domainerrors.ErrPermissionDenied):
		logger.Error(ctx, "Permission denied deleting team member", zap.Error(err))
		return entities.Failed(entities.FailurePermission, withCode(msgMemberDeleteFailed, err))
	}
	logger.Error(ctx, "Failed to delete team member", zap.Error(err))
	return entities.Failed(entities.FailureStore, withCode(msgMemberDeleteFailed, err))
}

func uploadFailure(err error) *entities.ActionResult {
	switch {
	case errors.Is(err, domainerrors.ErrStorageDisabled):
		return entities.Failed(entities.FailureUnavailable, msgStorageDisabled)
	case errors.Is(err, ErrUploadCancelled):
		return entities.Failed(entities.FailureCancelled, msgUploadCancelled)
	}
	return entities.Failed(entities.FailureUpload, "Image upload failed: "+uploadReason(err)+".")
}

func uploadReason(err error) string {
	switch {
	case errors.Is(err, ErrUploadStalled):
		return ErrUploadStalled.Error()
	case errors.Is(err, ErrUploadTooLarge):
		return ErrUploadTooLarge.Error()
	case errors.Is(err, ErrNotAnImage):
		return ErrNotAnImage.Error()
	default:
		return "could not store the file"
	}
}
