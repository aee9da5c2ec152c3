package blogstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/namanchauhanrajput/blogify/internal/app/system/paging"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no blog matches the lookup.
var ErrNotFound = errors.New("blog not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

// Create inserts a new post. Content must already be sanitized and the
// image already uploaded: ImageURL and ImagePublicID are required.
func (s *Store) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	b.ID = primitive.NewObjectID()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Blog{}, err
	}
	return b, nil
}

// GetByID loads a post by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Filter narrows a listing. Search matches title or content as a
// case-insensitive substring; Category is an exact match.
type Filter struct {
	Search   string
	Category string
}

// List returns posts newest-first under the filter and paging window.
func (s *Store) List(ctx context.Context, f Filter, k paging.Keyset) ([]models.Blog, error) {
	var clauses []bson.M
	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		or := bson.M{"$or": bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"content": bson.M{"$regex": pattern, "$options": "i"}},
		}}
		clauses = append(clauses, or)
	}
	if f.Category != "" {
		clauses = append(clauses, bson.M{"category": f.Category})
	}
	if w := k.Window("created_at"); w != nil {
		clauses = append(clauses, w)
	}

	filter := bson.M{}
	if len(clauses) > 0 {
		filter = bson.M{"$and": clauses}
	}

	find := options.Find()
	k.Apply(find, "created_at")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Blog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByAuthor returns all of one author's posts newest-first.
func (s *Store) ByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Blog, error) {
	find := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"author_id": authorID}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Blog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds optional post fields; nil pointers are left untouched.
type Update struct {
	Title         *string
	Content       *string // sanitized by the caller
	Category      *string
	ImageURL      *string
	ImagePublicID *string
}

// Apply overwrites only the provided fields.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.ImagePublicID != nil {
		set["image_public_id"] = *upd.ImagePublicID
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post document. The caller deletes the media object.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Categories returns the distinct non-empty category values.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	vals, err := s.c.Distinct(ctx, "category", bson.M{
		"category": bson.M{"$exists": true, "$nin": bson.A{"", nil}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

// TitlesByIDs loads post titles for a set of IDs, keyed by ID. Deleted
// posts are simply absent from the map.
func (s *Store) TitlesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	find := options.Find().SetProjection(bson.M{"_id": 1, "title": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Title string             `bson:"title"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.Title
	}
	return out, nil
}

// DeleteByAuthor removes all of one author's posts and returns the
// media public IDs of the deleted posts so the caller can clean up the
// blob store.
func (s *Store) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]string, error) {
	find := options.Find().SetProjection(bson.M{"image_public_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"author_id": authorID}, find)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ImagePublicID string `bson:"image_public_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	if _, err := s.c.DeleteMany(ctx, bson.M{"author_id": authorID}); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.ImagePublicID != "" {
			ids = append(ids, r.ImagePublicID)
		}
	}
	return ids, nil
}
