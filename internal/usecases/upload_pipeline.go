package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/pkg/logger"
	"veab-goa.backend/pkg/metrics"
)

// TeamImagePrefix is the object store folder holding member photos.
const TeamImagePrefix = "team-images/"

const sniffLen = 3072

var (
	ErrUploadCancelled = errors.New("upload cancelled")
	ErrUploadStalled   = errors.New("upload stalled")
	ErrUploadTooLarge  = errors.New("image exceeds the upload size limit")
	ErrNotAnImage      = errors.New("file is not an image")

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// UploadRequest is one file headed for the object store.
type UploadRequest struct {
	MemberID string
	File     entities.ImageUpload
}

// UploadProgress is a snapshot of a running transfer.
type UploadProgress struct {
	BytesTransferred int64 `json:"bytesTransferred"`
	TotalBytes       int64 `json:"totalBytes"`
}

// Fraction is in [0,1]. It stays 0 while the total is unknown.
func (p UploadProgress) Fraction() float64 {
	if p.TotalBytes <= 0 {
		return 0
	}
	f := float64(p.BytesTransferred) / float64(p.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}

func (p UploadProgress) Percent() float64 {
	return p.Fraction() * 100
}

// UploadPipeline streams images into the object store and removes the ones
// that were replaced.
type UploadPipeline struct {
	store         repositories.ObjectStore
	cache         repositories.URLCache
	maxBytes      int64
	stallTimeout  time.Duration
	deleteTimeout time.Duration
	now           func() time.Time
}

type UploadPipelineConfig struct {
	MaxBytes      int64
	StallTimeout  time.Duration
	DeleteTimeout time.Duration
}

// NewUploadPipeline accepts a nil store; Start then fails with
// ErrStorageDisabled and Retire does nothing.
func NewUploadPipeline(store repositories.ObjectStore, cache repositories.URLCache, cfg UploadPipelineConfig) *UploadPipeline {
	if cfg.StallTimeout <= 0 {
		cfg.StallTimeout = 60 * time.Second
	}
	if cfg.DeleteTimeout <= 0 {
		cfg.DeleteTimeout = 10 * time.Second
	}
	return &UploadPipeline{
		store:         store,
		cache:         cache,
		maxBytes:      cfg.MaxBytes,
		stallTimeout:  cfg.StallTimeout,
		deleteTimeout: cfg.DeleteTimeout,
		now:           time.Now,
	}
}

// Enabled reports whether an object store is configured.
func (p *UploadPipeline) Enabled() bool {
	return p != nil && p.store != nil
}

// ObjectPath builds team-images/<memberId|new>_<unixMillis>_<filename>.
func ObjectPath(memberID, fileName string, at time.Time) string {
	owner := strings.TrimSpace(memberID)
	if owner == "" {
		owner = "new"
	}
	return fmt.Sprintf("%s%s_%d_%s", TeamImagePrefix, owner, at.UnixMilli(), SanitizeFileName(fileName))
}

// SanitizeFileName keeps the base name and collapses whitespace to "_".
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "image"
	}
	return whitespaceRun.ReplaceAllString(base, "_")
}

// Start validates the file and begins the transfer in the background.
func (p *UploadPipeline) Start(ctx context.Context, req UploadRequest) (*UploadTask, error) {
	if !p.Enabled() {
		return nil, domainerrors.ErrStorageDisabled
	}
	if req.File.Body == nil {
		return nil, fmt.Errorf("%w: empty file", domainerrors.ErrUploadFailed)
	}
	if p.maxBytes > 0 && req.File.Size > p.maxBytes {
		return nil, fmt.Errorf("%w: %w", domainerrors.ErrUploadFailed, ErrUploadTooLarge)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(req.File.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", domainerrors.ErrUploadFailed, err)
	}
	head = head[:n]

	contentType := strings.TrimSpace(req.File.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(head).String()
	}
	if !strings.HasPrefix(contentType, "image/") {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %w (%s)", domainerrors.ErrUploadFailed, ErrNotAnImage, contentType)
	}

	uploadCtx, cancel := context.WithCancelCause(ctx)
	task := &UploadTask{
		path:     ObjectPath(req.MemberID, req.File.FileName, p.now()),
		total:    req.File.Size,
		progress: make(chan UploadProgress, 1),
		done:     make(chan struct{}),
		cancel:   cancel,
	}
	reader := &progressReader{
		ctx:   uploadCtx,
		r:     io.MultiReader(bytes.NewReader(head), req.File.Body),
		task:  task,
		limit: p.maxBytes,
	}
	task.touch()

	go p.run(uploadCtx, task, reader, contentType)
	return task, nil
}

func (p *UploadPipeline) run(ctx context.Context, task *UploadTask, reader *progressReader, contentType string) {
	defer close(task.done)
	defer task.closeProgress()
	defer task.cancel(nil)

	stopWatch := make(chan struct{})
	go task.watch(p.stallTimeout, stopWatch)
	err := p.store.Put(ctx, task.path, reader, task.total, contentType)
	close(stopWatch)

	if err != nil {
		if cause := context.Cause(ctx); cause != nil {
			if errors.Is(cause, context.Canceled) {
				cause = ErrUploadCancelled
			}
			err = cause
		}
		task.err = fmt.Errorf("%w: %w", domainerrors.ErrUploadFailed, err)
		metrics.Uploads.WithLabelValues(uploadOutcome(err)).Inc()
		logger.Warn(ctx, "Team image upload failed", zap.String("path", task.path), zap.Error(err))
		return
	}

	metrics.Uploads.WithLabelValues("success").Inc()
	metrics.UploadBytes.Add(float64(reader.read.Load()))
	logger.Info(ctx, "Team image uploaded",
		zap.String("path", task.path),
		zap.Int64("bytes", reader.read.Load()),
	)
}

func uploadOutcome(err error) string {
	switch {
	case errors.Is(err, ErrUploadCancelled):
		return "cancelled"
	case errors.Is(err, ErrUploadStalled):
		return "stalled"
	case errors.Is(err, ErrUploadTooLarge):
		return "too_large"
	default:
		return "failed"
	}
}

// Retire deletes previous when it is a store object other than keep.
// Failures are logged and swallowed.
func (p *UploadPipeline) Retire(ctx context.Context, previous entities.ImageRef, keep string) {
	if previous.Kind != entities.ImageStoreObject || previous.Value == keep {
		return
	}
	p.deleteObject(ctx, previous.Value, "retired")
}

// Discard removes a freshly uploaded object whose record write failed.
func (p *UploadPipeline) Discard(ctx context.Context, objectPath string) {
	if objectPath == "" {
		return
	}
	p.deleteObject(ctx, objectPath, "rollback")
}

func (p *UploadPipeline) deleteObject(ctx context.Context, objectPath, reason string) {
	if !p.Enabled() {
		return
	}
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.deleteTimeout)
	defer cancel()

	if err := p.store.Delete(delCtx, objectPath); err != nil {
		metrics.ObjectDeletes.WithLabelValues(reason, "failed").Inc()
		logger.Warn(ctx, "Failed to delete team image",
			zap.String("path", objectPath),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return
	}
	if p.cache != nil {
		p.cache.Invalidate(delCtx, objectPath)
	}
	metrics.ObjectDeletes.WithLabelValues(reason, "deleted").Inc()
	logger.Info(ctx, "Team image deleted", zap.String("path", objectPath), zap.String("reason", reason))
}

// UploadTask is a running transfer. Progress is latest-wins and closes when
// the transfer ends.
type UploadTask struct {
	path     string
	total    int64
	progress chan UploadProgress
	done     chan struct{}
	err      error
	cancel   context.CancelCauseFunc

	mu       sync.Mutex
	closed   bool
	lastSeen atomic.Int64
}

// Path is the destination object path, fixed at start.
func (t *UploadTask) Path() string {
	return t.path
}

func (t *UploadTask) Progress() <-chan UploadProgress {
	return t.progress
}

// Wait blocks until the transfer ends and returns the stored path.
func (t *UploadTask) Wait() (string, error) {
	<-t.done
	if t.err != nil {
		return "", t.err
	}
	return t.path, nil
}

// Cancel aborts the transfer. It is safe to call after completion.
func (t *UploadTask) Cancel() {
	t.cancel(ErrUploadCancelled)
}

func (t *UploadTask) touch() {
	t.lastSeen.Store(time.Now().UnixNano())
}

func (t *UploadTask) publish(p UploadProgress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	select {
	case <-t.progress:
	default:
	}
	t.progress <- p
}

func (t *UploadTask) closeProgress() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.progress)
	}
}

func (t *UploadTask) watch(stall time.Duration, stop <-chan struct{}) {
	interval := stall / 4
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			idle := time.Since(time.Unix(0, t.lastSeen.Load()))
			if idle >= stall {
				t.cancel(ErrUploadStalled)
				return
			}
		}
	}
}

type progressReader struct {
	ctx   context.Context
	r     io.Reader
	task  *UploadTask
	limit int64
	read  atomic.Int64
}

func (r *progressReader) Read(b []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, context.Cause(r.ctx)
	}
	n, err := r.r.Read(b)
	if n > 0 {
		total := r.read.Add(int64(n))
		if r.limit > 0 && total > r.limit {
			r.task.cancel(ErrUploadTooLarge)
			return n, ErrUploadTooLarge
		}
		r.task.touch()
		r.task.publish(UploadProgress{BytesTransferred: total, TotalBytes: r.task.total})
	}
	return n, err
}
