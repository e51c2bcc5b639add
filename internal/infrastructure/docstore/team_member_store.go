package docstore

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
)

type teamMemberDoc struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	Name         string                `bson:"name"`
	Role         string                `bson:"role"`
	Profession   string                `bson:"profession"`
	Intro        string                `bson:"intro"`
	ImageURL     string                `bson:"imageUrl"`
	DataAIHint   string                `bson:"dataAiHint,omitempty"`
	Socials      []entities.SocialLink `bson:"socials"`
	DisplayOrder *int64                `bson:"displayOrder"`
	CreatedAt    time.Time             `bson:"createdAt"`
	UpdatedAt    time.Time             `bson:"updatedAt"`
}

// TeamMemberStore implements repositories.TeamMemberRepository on a Mongo collection.
type TeamMemberStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewTeamMemberStore(coll *mongo.Collection) *TeamMemberStore {
	return &TeamMemberStore{coll: coll, now: time.Now}
}

func (s *TeamMemberStore) Create(ctx context.Context, member *entities.TeamMember) error {
	doc := toTeamMemberDoc(member)
	doc.ID = primitive.NewObjectID()
	now := s.now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("create team member", err)
	}
	member.ID = doc.ID.Hex()
	member.CreatedAt = now
	member.UpdatedAt = now
	return nil
}

func (s *TeamMemberStore) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domainerrors.ErrNotFound
	}
	var doc teamMemberDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, storeError("get team member", err)
	}
	return doc.toEntity(), nil
}

// List returns members in display order. Mongo sorts missing orders first,
// so the final order is applied in memory.
func (s *TeamMemberStore) List(ctx context.Context) ([]*entities.TeamMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("list team members", err)
	}
	defer cur.Close(ctx)

	var docs []teamMemberDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("list team members", err)
	}
	items := make([]*entities.TeamMember, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toEntity())
	}
	entities.SortTeamMembers(items)
	return items, nil
}

func (s *TeamMemberStore) Update(ctx context.Context, member *entities.TeamMember) error {
	oid, err := primitive.ObjectIDFromHex(member.ID)
	if err != nil {
		return domainerrors.ErrNotFound
	}
	doc := toTeamMemberDoc(member)
	now := s.now().UTC()
	set := bson.M{
		"name":         doc.Name,
		"role":         doc.Role,
		"profession":   doc.Profession,
		"intro":        doc.Intro,
		"imageUrl":     doc.ImageURL,
		"dataAiHint":   doc.DataAIHint,
		"socials":      doc.Socials,
		"displayOrder": doc.DisplayOrder,
		"updatedAt":    now,
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return storeError("update team member", err)
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	member.UpdatedAt = now
	return nil
}

func (s *TeamMemberStore) Delete(ctx context.Context, id string) error {
	return deleteByHex(ctx, s.coll, id, "delete team member")
}

func (s *TeamMemberStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storeError("count team members", err)
	}
	return n, nil
}

func (d *teamMemberDoc) toEntity() *entities.TeamMember {
	order := null.Int{}
	if d.DisplayOrder != nil {
		order = null.IntFrom(int(*d.DisplayOrder))
	}
	socials := d.Socials
	if socials == nil {
		socials = []entities.SocialLink{}
	}
	return &entities.TeamMember{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Role:         d.Role,
		Profession:   d.Profession,
		Intro:        d.Intro,
		Image:        entities.ParseImageRef(d.ImageURL),
		DataAIHint:   d.DataAIHint,
		Socials:      socials,
		DisplayOrder: order,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toTeamMemberDoc(e *entities.TeamMember) *teamMemberDoc {
	var order *int64
	if e.DisplayOrder.Valid {
		v := int64(e.DisplayOrder.Int)
		order = &v
	}
	socials := e.Socials
	if socials == nil {
		socials = []entities.SocialLink{}
	}
	return &teamMemberDoc{
		Name:         e.Name,
		Role:         e.Role,
		Profession:   e.Profession,
		Intro:        e.Intro,
		ImageURL:     e.Image.String(),
		DataAIHint:   e.DataAIHint,
		Socials:      socials,
		DisplayOrder: order,
	}
}
