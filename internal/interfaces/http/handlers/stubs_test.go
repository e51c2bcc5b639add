package handlers

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/internal/usecases"
	"veab-goa.backend/pkg/utils"
)

type teamRepoStub struct {
	items     map[string]*entities.TeamMember
	createErr error
	updateErr error
	seq       int
}

func newTeamRepoStub() *teamRepoStub {
	return &teamRepoStub{items: map[string]*entities.TeamMember{}}
}

func (s *teamRepoStub) Create(_ context.Context, member *entities.TeamMember) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.seq++
	member.ID = "member-" + strconv.Itoa(s.seq)
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	s.items[member.ID] = member
	return nil
}

func (s *teamRepoStub) GetByID(_ context.Context, id string) (*entities.TeamMember, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *teamRepoStub) List(_ context.Context) ([]*entities.TeamMember, error) {
	out := make([]*entities.TeamMember, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	entities.SortTeamMembers(out)
	return out, nil
}

func (s *teamRepoStub) Update(_ context.Context, member *entities.TeamMember) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	_, ok := s.items[member.ID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	member.UpdatedAt = time.Now()
	s.items[member.ID] = member
	return nil
}

func (s *teamRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *teamRepoStub) Count(_ context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

type objectStoreStub struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newObjectStoreStub() *objectStoreStub {
	return &objectStoreStub{objects: map[string][]byte{}}
}

func (s *objectStoreStub) Put(ctx context.Context, path string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return nil
}

func (s *objectStoreStub) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return "", domainerrors.ErrNotFound
	}
	return "https://signed.test/" + path, nil
}

func (s *objectStoreStub) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *objectStoreStub) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *objectStoreStub) List(_ context.Context, prefix string) ([]repositories.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []repositories.ObjectInfo{}
	for p, data := range s.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, repositories.ObjectInfo{Path: p, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *objectStoreStub) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for p := range s.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

type articleRepoStub struct {
	items []*entities.Article
}

func (s *articleRepoStub) Create(_ context.Context, a *entities.Article) error {
	for _, item := range s.items {
		if item.Slug == a.Slug {
			return domainerrors.ErrAlreadyExists
		}
	}
	a.ID = "article-" + a.Slug
	a.CreatedAt = time.Now()
	s.items = append(s.items, a)
	return nil
}

func (s *articleRepoStub) List(_ context.Context) ([]*entities.Article, error) {
	return s.items, nil
}

func (s *articleRepoStub) GetBySlug(_ context.Context, slug string) (*entities.Article, error) {
	for _, item := range s.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *articleRepoStub) Delete(_ context.Context, id string) error {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type projectRepoStub struct {
	items []*entities.Project
}

func (s *projectRepoStub) Create(_ context.Context, p *entities.Project) error {
	p.ID = "project-" + strconv.Itoa(len(s.items)+1)
	p.CreatedAt = time.Now()
	s.items = append(s.items, p)
	return nil
}

func (s *projectRepoStub) List(_ context.Context) ([]*entities.Project, error) {
	return s.items, nil
}

func (s *projectRepoStub) Delete(_ context.Context, id string) error {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type contactRepoStub struct {
	items []*entities.ContactMessage
}

func (s *contactRepoStub) Create(_ context.Context, m *entities.ContactMessage) error {
	m.ID = "msg-" + strconv.Itoa(len(s.items)+1)
	s.items = append(s.items, m)
	return nil
}

func (s *contactRepoStub) List(
	_ context.Context,
	status entities.ContactMessageStatus,
	pagination utils.PaginationParams,
) ([]*entities.ContactMessage, int64, error) {
	out := []*entities.ContactMessage{}
	for _, item := range s.items {
		if status == "" || item.Status == status {
			out = append(out, item)
		}
	}
	total := int64(len(out))
	if pagination.Limit > 0 {
		start := pagination.CalculateOffset()
		if start > len(out) {
			start = len(out)
		}
		end := start + pagination.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (s *contactRepoStub) UpdateStatus(_ context.Context, id string, status entities.ContactMessageStatus) error {
	for _, item := range s.items {
		if item.ID == id {
			item.Status = status
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type teamFixture struct {
	repo    *teamRepoStub
	store   *objectStoreStub
	router  *gin.Engine
	handler *TeamMemberHandler
}

func newTeamFixture(maxBytes int64) *teamFixture {
	gin.SetMode(gin.TestMode)
	repo := newTeamRepoStub()
	store := newObjectStoreStub()
	uploads := usecases.NewUploadPipeline(store, nil, usecases.UploadPipelineConfig{
		MaxBytes:     maxBytes,
		StallTimeout: time.Second,
	})
	resolver := usecases.NewImageResolver(store, nil, "/site", time.Minute, 2)
	h := NewTeamMemberHandler(usecases.NewTeamMemberUsecase(repo, uploads, resolver), maxBytes)

	r := gin.New()
	r.GET("/team-members", h.ListTeamMembers)
	r.GET("/admin/team-members/:id", h.GetTeamMember)
	r.POST("/admin/team-members", h.CreateTeamMember)
	r.PUT("/admin/team-members/:id", h.UpdateTeamMember)
	r.DELETE("/admin/team-members/:id", h.DeleteTeamMember)
	return &teamFixture{repo: repo, store: store, router: r, handler: h}
}

func pngBytes(size int) []byte {
	header := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if size < len(header) {
		size = len(header)
	}
	out := make([]byte, size)
	copy(out, header)
	return out
}
