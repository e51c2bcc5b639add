package repositories

import (
	"context"

	"veab-goa.backend/internal/domain/entities"
)

// TeamMemberRepository persists team member documents. List returns members
// in display order; Delete never touches the member's image object.
type TeamMemberRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	GetByID(ctx context.Context, id string) (*entities.TeamMember, error)
	List(ctx context.Context) ([]*entities.TeamMember, error)
	Update(ctx context.Context, member *entities.TeamMember) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
