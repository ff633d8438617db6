package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection = "users"
	filesCollection = "files"
)

type userDocument struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Email    string        `bson:"email"`
	Password string        `bson:"password"`
}

// fileDocument stores parentId as the integer 0 for the root and as the
// parent's ObjectID otherwise.
type fileDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"userId"`
	Name      string        `bson:"name"`
	Type      string        `bson:"type"`
	ParentID  any           `bson:"parentId"`
	IsPublic  bool          `bson:"isPublic"`
	LocalPath string        `bson:"localPath,omitempty"`
}

// Mongo is the MongoDB backed Store.
type Mongo struct {
	db    *mongo.Database
	users *mongo.Collection
	files *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		db:    db,
		users: db.Collection(usersCollection),
		files: db.Collection(filesCollection),
	}
}

// EnsureIndexes creates the unique email index and the listing index.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	if _, err := s.files.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "parentId", Value: 1}, {Key: "_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create files index: %w", err)
	}
	return nil
}

func (s *Mongo) InsertUser(ctx context.Context, u *User) error {
	doc := userDocument{ID: bson.NewObjectID(), Email: u.Email, Password: u.PasswordHash}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (s *Mongo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findUser(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *Mongo) FindUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findUser(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *Mongo) findUser(ctx context.Context, filter bson.D) (*User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, "find user")
	}
	return &User{ID: doc.ID.Hex(), Email: doc.Email, PasswordHash: doc.Password}, nil
}

func (s *Mongo) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *Mongo) InsertFile(ctx context.Context, f *File) error {
	doc, err := toFileDocument(f)
	if err != nil {
		return err
	}
	doc.ID = bson.NewObjectID()
	if _, err := s.files.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	f.ID = doc.ID.Hex()
	return nil
}

func (s *Mongo) FindFile(ctx context.Context, id, ownerID string) (*File, error) {
	filter, err := fileFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	var doc fileDocument
	if err := s.files.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err, "find file")
	}
	return doc.toFile(), nil
}

func (s *Mongo) SetFileVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*File, error) {
	if ownerID == "" {
		return nil, ErrNotFound
	}
	filter, err := fileFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	var doc fileDocument
	err = s.files.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: bson.D{{Key: "isPublic", Value: isPublic}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err, "update file")
	}
	return doc.toFile(), nil
}

func (s *Mongo) ListFiles(ctx context.Context, filter FileFilter, page, size int) ([]*File, error) {
	skip, ok := offset(page, size)
	if !ok {
		return []*File{}, nil
	}

	query := bson.D{}
	if filter.UserID != "" {
		uid, err := bson.ObjectIDFromHex(filter.UserID)
		if err != nil {
			return []*File{}, nil
		}
		query = append(query, bson.E{Key: "userId", Value: uid})
	}
	if filter.ParentID != nil {
		parent, err := parentValue(*filter.ParentID)
		if err != nil {
			return []*File{}, nil
		}
		query = append(query, bson.E{Key: "parentId", Value: parent})
	}

	cursor, err := s.files.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(size)),
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []fileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}
	result := make([]*File, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toFile())
	}
	return result, nil
}

func (s *Mongo) CountFiles(ctx context.Context) (int64, error) {
	n, err := s.files.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return n, nil
}

func (s *Mongo) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func fileFilter(id, ownerID string) (bson.D, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.D{{Key: "_id", Value: oid}}
	if ownerID != "" {
		uid, err := bson.ObjectIDFromHex(ownerID)
		if err != nil {
			return nil, ErrNotFound
		}
		filter = append(filter, bson.E{Key: "userId", Value: uid})
	}
	return filter, nil
}

func parentValue(parentID string) (any, error) {
	if parentID == "" {
		return int32(0), nil
	}
	oid, err := bson.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, ErrNotFound
	}
	return oid, nil
}

func toFileDocument(f *File) (fileDocument, error) {
	uid, err := bson.ObjectIDFromHex(f.UserID)
	if err != nil {
		return fileDocument{}, fmt.Errorf("insert file: invalid user id %q", f.UserID)
	}
	parent, err := parentValue(f.ParentID)
	if err != nil {
		return fileDocument{}, fmt.Errorf("insert file: invalid parent id %q", f.ParentID)
	}
	return fileDocument{
		UserID:    uid,
		Name:      f.Name,
		Type:      f.Type,
		ParentID:  parent,
		IsPublic:  f.IsPublic,
		LocalPath: f.LocalPath,
	}, nil
}

func (d *fileDocument) toFile() *File {
	f := &File{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Type:      d.Type,
		IsPublic:  d.IsPublic,
		LocalPath: d.LocalPath,
	}
	switch p := d.ParentID.(type) {
	case bson.ObjectID:
		f.ParentID = p.Hex()
	case string:
		if p != "0" {
			f.ParentID = p
		}
	}
	return f
}
