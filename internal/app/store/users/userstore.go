package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/namanchauhanrajput/blogify/internal/app/system/normalize"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByLogin looks up a user by username (case-insensitive) or email.
// Login forms accept either.
func (s *Store) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	filter := bson.M{"$or": bson.A{
		bson.M{"username_ci": text.Fold(login)},
		bson.M{"email": normalize.Email(login)},
	}}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields. PasswordHash must
// already be a bcrypt hash. Uniqueness of username and email is
// enforced by the unique indexes; a duplicate-key error is translated
// to the matching typed error.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, s.classifyDup(ctx, u)
		}
		return models.User{}, err
	}
	return u, nil
}

// classifyDup decides which unique field collided so the caller can
// report a precise conflict.
func (s *Store) classifyDup(ctx context.Context, u models.User) error {
	err := s.c.FindOne(ctx, bson.M{"username_ci": u.UsernameCI}).Err()
	if err == nil {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// ProfileUpdate holds optional profile fields; nil pointers are left
// untouched.
type ProfileUpdate struct {
	Username    *string
	Name        *string
	Email       *string
	Phone       *string
	Bio         *string
	SocialLinks map[string]string
	AvatarURL   *string
	AvatarPubID *string
}

// UpdateProfile applies the provided fields. Returns
// ErrDuplicateUsername/ErrDuplicateEmail when a unique field collides
// with another user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Username != nil {
		uname := normalize.Username(*upd.Username)
		set["username"] = uname
		set["username_ci"] = text.Fold(uname)
	}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.SocialLinks != nil {
		set["social_links"] = upd.SocialLinks
	}
	if upd.AvatarURL != nil {
		set["avatar_url"] = *upd.AvatarURL
	}
	if upd.AvatarPubID != nil {
		set["avatar_public_id"] = *upd.AvatarPubID
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			if upd.Username != nil {
				return ErrDuplicateUsername
			}
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UsernameExistsForOther reports whether the username is used by a user
// other than excludeID.
func (s *Store) UsernameExistsForOther(ctx context.Context, username string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"username_ci": text.Fold(username),
		"_id":         bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// SetPasswordHash replaces the stored bcrypt hash.
func (s *Store) SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdmin flips the admin flag.
func (s *Store) SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_admin":   isAdmin,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns at most limit user summaries whose folded username
// contains the folded query as a substring.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]models.UserSummary, error) {
	pattern := regexp.QuoteMeta(text.Fold(q))
	find := options.Find().
		SetSort(bson.D{{Key: "username_ci", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1, "username": 1, "name": 1, "avatar_url": 1})

	cur, err := s.c.Find(ctx, bson.M{"username_ci": bson.M{"$regex": pattern}}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.UserSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SummariesByIDs loads public summaries for a set of user IDs, keyed by
// ID. Missing users are simply absent from the map.
func (s *Store) SummariesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	find := options.Find().SetProjection(bson.M{"_id": 1, "username": 1, "name": 1, "avatar_url": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.UserSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

// List returns users newest-first for admin listings. The filter and
// paging window are supplied by the caller.
func (s *Store) List(ctx context.Context, window bson.M, find *options.FindOptions) ([]models.User, error) {
	filter := bson.M{}
	if window != nil {
		filter = window
	}
	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete hard-deletes a user document. Cascading cleanup of the user's
// blogs, likes, comments, and notifications is the caller's job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FetchAuthz implements auth.UserFetcher: it reports existence and the
// live admin flag for the route guards.
func (s *Store) FetchAuthz(ctx context.Context, userID primitive.ObjectID) (bool, bool, error) {
	var row struct {
		IsAdmin bool `bson:"is_admin"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{"is_admin": 1})).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, row.IsAdmin, nil
}
