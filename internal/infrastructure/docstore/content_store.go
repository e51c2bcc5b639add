package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"veab-goa.backend/internal/domain/entities"
	domainerrors "veab-goa.backend/internal/domain/errors"
	"veab-goa.backend/pkg/utils"
)

type articleDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Slug       string             `bson:"slug"`
	Date       string             `bson:"date"`
	Author     string             `bson:"author,omitempty"`
	Snippet    string             `bson:"snippet"`
	Content    string             `bson:"content"`
	ImageURL   string             `bson:"imageUrl,omitempty"`
	DataAIHint string             `bson:"dataAiHint,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d *articleDoc) toEntity() *entities.Article {
	return &entities.Article{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Slug:       d.Slug,
		Date:       d.Date,
		Author:     d.Author,
		Snippet:    d.Snippet,
		Content:    d.Content,
		ImageURL:   d.ImageURL,
		DataAIHint: d.DataAIHint,
		CreatedAt:  d.CreatedAt,
	}
}

type ArticleStore struct {
	coll *mongo.Collection
}

func NewArticleStore(coll *mongo.Collection) *ArticleStore {
	return &ArticleStore{coll: coll}
}

func (s *ArticleStore) Create(ctx context.Context, a *entities.Article) error {
	doc := &articleDoc{
		ID:         primitive.NewObjectID(),
		Title:      a.Title,
		Slug:       a.Slug,
		Date:       a.Date,
		Author:     a.Author,
		Snippet:    a.Snippet,
		Content:    a.Content,
		ImageURL:   a.ImageURL,
		DataAIHint: a.DataAIHint,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("create article", err)
	}
	a.ID = doc.ID.Hex()
	a.CreatedAt = doc.CreatedAt
	return nil
}

func (s *ArticleStore) List(ctx context.Context) ([]*entities.Article, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, storeError("list articles", err)
	}
	defer cur.Close(ctx)

	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("list articles", err)
	}
	items := make([]*entities.Article, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toEntity())
	}
	return items, nil
}

func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	var doc articleDoc
	if err := s.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		return nil, storeError("get article", err)
	}
	return doc.toEntity(), nil
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	return deleteByHex(ctx, s.coll, id, "delete article")
}

type projectDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	DataAIHint  string             `bson:"dataAiHint,omitempty"`
	Location    string             `bson:"location,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type ProjectStore struct {
	coll *mongo.Collection
}

func NewProjectStore(coll *mongo.Collection) *ProjectStore {
	return &ProjectStore{coll: coll}
}

func (s *ProjectStore) Create(ctx context.Context, p *entities.Project) error {
	doc := &projectDoc{
		ID:          primitive.NewObjectID(),
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		DataAIHint:  p.DataAIHint,
		Location:    p.Location,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("create project", err)
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt = doc.CreatedAt
	return nil
}

func (s *ProjectStore) List(ctx context.Context) ([]*entities.Project, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, storeError("list projects", err)
	}
	defer cur.Close(ctx)

	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("list projects", err)
	}
	items := make([]*entities.Project, 0, len(docs))
	for _, d := range docs {
		items = append(items, &entities.Project{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Description: d.Description,
			ImageURL:    d.ImageURL,
			DataAIHint:  d.DataAIHint,
			Location:    d.Location,
			CreatedAt:   d.CreatedAt,
		})
	}
	return items, nil
}

func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	return deleteByHex(ctx, s.coll, id, "delete project")
}

type contactMessageDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Subject     string             `bson:"subject"`
	Message     string             `bson:"message"`
	Status      string             `bson:"status"`
	SubmittedAt time.Time          `bson:"submittedAt"`
}

type ContactMessageStore struct {
	coll *mongo.Collection
}

func NewContactMessageStore(coll *mongo.Collection) *ContactMessageStore {
	return &ContactMessageStore{coll: coll}
}

func (s *ContactMessageStore) Create(ctx context.Context, m *entities.ContactMessage) error {
	doc := &contactMessageDoc{
		ID:          primitive.NewObjectID(),
		Name:        m.Name,
		Email:       m.Email,
		Subject:     m.Subject,
		Message:     m.Message,
		Status:      string(m.Status),
		SubmittedAt: m.SubmittedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("create contact message", err)
	}
	m.ID = doc.ID.Hex()
	return nil
}

func (s *ContactMessageStore) List(ctx context.Context, status entities.ContactMessageStatus, pagination utils.PaginationParams) ([]*entities.ContactMessage, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, storeError("count contact messages", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	if pagination.Limit > 0 {
		opts.SetSkip(int64(pagination.CalculateOffset())).SetLimit(int64(pagination.Limit))
	}
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, storeError("list contact messages", err)
	}
	defer cur.Close(ctx)

	var docs []contactMessageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, storeError("list contact messages", err)
	}
	items := make([]*entities.ContactMessage, 0, len(docs))
	for _, d := range docs {
		items = append(items, &entities.ContactMessage{
			ID:          d.ID.Hex(),
			Name:        d.Name,
			Email:       d.Email,
			Subject:     d.Subject,
			Message:     d.Message,
			Status:      entities.ContactMessageStatus(d.Status),
			SubmittedAt: d.SubmittedAt,
		})
	}
	return items, total, nil
}

func (s *ContactMessageStore) UpdateStatus(ctx context.Context, id string, status entities.ContactMessageStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domainerrors.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return storeError("update contact message", err)
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func deleteByHex(ctx context.Context, coll *mongo.Collection, id, op string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domainerrors.ErrNotFound
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError(op, err)
	}
	if res.DeletedCount == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
