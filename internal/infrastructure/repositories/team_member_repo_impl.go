package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/internal/infrastructure/models"
	"veab-goa.backend/pkg/utils"
)

const teamMemberOrder = "display_order IS NULL, display_order ASC, name ASC, id ASC"

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	m := toTeamMemberModel(member)
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return storeError("create team member", err)
	}
	member.ID = m.ID
	member.CreatedAt = m.CreatedAt
	member.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	if !utils.IsUUID(id) {
		return nil, domainerrors.ErrNotFound
	}
	var m models.TeamMember
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, storeError("get team member", err)
	}
	return toTeamMemberEntity(&m), nil
}

func (r *TeamMemberRepository) List(ctx context.Context) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).Order(teamMemberOrder).Find(&ms).Error; err != nil {
		return nil, storeError("list team members", err)
	}

	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, toTeamMemberEntity(&ms[i]))
	}
	return items, nil
}

// Update overwrites every mutable field; concurrent edits resolve to the last write.
func (r *TeamMemberRepository) Update(ctx context.Context, member *entities.TeamMember) error {
	if !utils.IsUUID(member.ID) {
		return domainerrors.ErrNotFound
	}
	m := toTeamMemberModel(member)
	now := time.Now()
	updates := map[string]interface{}{
		"name":          m.Name,
		"role":          m.Role,
		"profession":    m.Profession,
		"intro":         m.Intro,
		"image_url":     m.ImageURL,
		"data_ai_hint":  m.DataAIHint,
		"socials":       m.Socials,
		"display_order": m.DisplayOrder,
		"updated_at":    now,
	}

	result := GetDB(ctx, r.db).
		Model(&models.TeamMember{}).
		Where("id = ?", member.ID).
		Updates(updates)
	if result.Error != nil {
		return storeError("update team member", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	member.UpdatedAt = now
	return nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return domainerrors.ErrNotFound
	}
	result := GetDB(ctx, r.db).Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return storeError("delete team member", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&models.TeamMember{}).Count(&n).Error; err != nil {
		return 0, storeError("count team members", err)
	}
	return n, nil
}

func toTeamMemberEntity(m *models.TeamMember) *entities.TeamMember {
	socials := make([]entities.SocialLink, 0, len(m.Socials))
	for _, s := range m.Socials {
		socials = append(socials, entities.SocialLink{Platform: s.Platform, URL: s.URL})
	}
	order := null.Int{}
	if m.DisplayOrder != nil {
		order = null.IntFrom(int(*m.DisplayOrder))
	}
	return &entities.TeamMember{
		ID:           m.ID,
		Name:         m.Name,
		Role:         m.Role,
		Profession:   m.Profession,
		Intro:        m.Intro,
		Image:        entities.ParseImageRef(m.ImageURL),
		DataAIHint:   m.DataAIHint,
		Socials:      socials,
		DisplayOrder: order,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTeamMemberModel(e *entities.TeamMember) *models.TeamMember {
	socials := make([]models.SocialLink, 0, len(e.Socials))
	for _, s := range e.Socials {
		socials = append(socials, models.SocialLink{Platform: s.Platform, URL: s.URL})
	}
	var order *int64
	if e.DisplayOrder.Valid {
		v := int64(e.DisplayOrder.Int)
		order = &v
	}
	return &models.TeamMember{
		ID:           e.ID,
		Name:         e.Name,
		Role:         e.Role,
		Profession:   e.Profession,
		Intro:        e.Intro,
		ImageURL:     e.Image.String(),
		DataAIHint:   e.DataAIHint,
		Socials:      datatypes.JSONSlice[models.SocialLink](socials),
		DisplayOrder: order,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
