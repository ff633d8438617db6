package files

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/dmitrymomot/filesmanager/pkg/file"
	"github.com/dmitrymomot/filesmanager/pkg/logger"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

// PageSize is the number of records returned by List.
const PageSize = 20

// maxPage is the last page whose offset fits in an int.
const maxPage = (math.MaxInt - PageSize) / PageSize

// FileStore is the subset of the record store the service needs.
type FileStore interface {
	InsertFile(ctx context.Context, f *store.File) error
	FindFile(ctx context.Context, id, ownerID string) (*store.File, error)
	SetFileVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*store.File, error)
	ListFiles(ctx context.Context, filter store.FileFilter, page, size int) ([]*store.File, error)
}

// Enqueuer schedules background jobs; *queue.Enqueuer implements it.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload any, opts ...queue.EnqueueOption) error
}

type Service struct {
	records FileStore
	blobs   file.Storage
	jobs    Enqueuer
	logger  *slog.Logger
	newKey  func() string
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKeyGenerator overrides how blob keys are generated.
func WithKeyGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newKey = fn
		}
	}
}

func NewService(records FileStore, blobs file.Storage, jobs Enqueuer, opts ...Option) *Service {
	s := &Service{
		records: records,
		blobs:   blobs,
		jobs:    jobs,
		logger:  logger.Discard(),
		newKey:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new file or folder for userID. Checks run in a fixed
// order and the first failure is returned. Content is written before the
// record is inserted.
func (s *Service) Create(ctx context.Context, userID string, p CreateParams) (File, error) {
	if userID == "" {
		return File{}, ErrUnauthorized
	}
	if p.Name == "" {
		return File{}, MissingFieldError{Field: "name"}
	}
	if !validType(p.Type) {
		return File{}, MissingFieldError{Field: "type"}
	}
	if p.Type != store.TypeFolder && p.Data == nil {
		return File{}, MissingFieldError{Field: "data"}
	}

	if !p.ParentID.IsRoot() {
		parent, err := s.records.FindFile(ctx, string(p.ParentID), "")
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return File{}, ErrInvalidParent
			}
			return File{}, fmt.Errorf("find parent: %w", err)
		}
		if !parent.IsFolder() {
			return File{}, ErrParentNotFolder
		}
	}

	rec := &store.File{
		UserID:   userID,
		Name:     p.Name,
		Type:     p.Type,
		ParentID: string(p.ParentID),
		IsPublic: p.IsPublic,
	}

	if !rec.IsFolder() {
		raw, err := decodeData(*p.Data)
		if err != nil {
			return File{}, err
		}
		key := s.newKey()
		if _, err := s.blobs.Put(ctx, key, bytes.NewReader(raw)); err != nil {
			return File{}, errors.Join(ErrStorageWrite, err)
		}
		rec.LocalPath = key
	}

	if err := s.records.InsertFile(ctx, rec); err != nil {
		if rec.LocalPath != "" {
			if derr := s.blobs.Delete(ctx, rec.LocalPath); derr != nil {
				s.logger.ErrorContext(ctx, "failed to remove orphaned content",
					slog.String("key", rec.LocalPath),
					logger.UserID(userID),
					logger.Error(derr),
					logger.Component("files"),
				)
			}
		}
		return File{}, fmt.Errorf("insert file: %w", err)
	}

	if rec.Type == store.TypeImage && s.jobs != nil {
		job := ThumbnailJob{UserID: userID, FileID: rec.ID}
		if err := s.jobs.Enqueue(ctx, job, queue.WithQueue(Queue), queue.WithMaxRetries(0)); err != nil {
			s.logger.ErrorContext(ctx, "failed to enqueue thumbnail job",
				logger.FileID(rec.ID),
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("files"),
			)
		}
	}

	return project(rec), nil
}

// Get returns the file with id if userID owns it.
func (s *Service) Get(ctx context.Context, userID, id string) (File, error) {
	if userID == "" {
		return File{}, ErrUnauthorized
	}
	rec, err := s.find(ctx, id, userID)
	if err != nil {
		return File{}, err
	}
	return project(rec), nil
}

// List returns one page of userID's files. A nil parent lists across all
// folders. Negative pages are treated as the first page; pages past the
// addressable range are empty.
func (s *Service) List(ctx context.Context, userID string, parent *ParentID, page int) ([]File, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if page < 0 {
		page = 0
	}
	if page > maxPage {
		return []File{}, nil
	}

	filter := store.FileFilter{UserID: userID}
	if parent != nil {
		p := string(*parent)
		filter.ParentID = &p
	}

	recs, err := s.records.ListFiles(ctx, filter, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	out := make([]File, 0, len(recs))
	for _, rec := range recs {
		out = append(out, project(rec))
	}
	return out, nil
}

// SetVisibility publishes or unpublishes a file owned by userID.
func (s *Service) SetVisibility(ctx context.Context, userID, id string, isPublic bool) (File, error) {
	if userID == "" {
		return File{}, ErrUnauthorized
	}
	rec, err := s.records.SetFileVisibility(ctx, id, userID, isPublic)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return File{}, ErrNotFound
		}
		return File{}, fmt.Errorf("update visibility: %w", err)
	}
	return project(rec), nil
}

// ReadContent opens the body of a file. Private files are only served to
// their owner; userID may be empty for anonymous callers. A non-zero width
// selects a thumbnail variant, which is ErrNotFound until generated.
func (s *Service) ReadContent(ctx context.Context, userID, id string, width int) (*Content, error) {
	if width != 0 && !slices.Contains(Widths, width) {
		return nil, ErrNotFound
	}

	rec, err := s.find(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if !rec.IsPublic && (userID == "" || userID != rec.UserID) {
		return nil, ErrNotFound
	}
	if rec.IsFolder() {
		return nil, ErrFolderHasNoContent
	}

	key := rec.LocalPath
	if width != 0 {
		key = ThumbnailKey(key, width)
	}

	obj, err := s.blobs.Stat(ctx, key)
	if err != nil {
		if errors.Is(err, file.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat content: %w", err)
	}
	body, err := s.blobs.Open(ctx, key)
	if err != nil {
		if errors.Is(err, file.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open content: %w", err)
	}

	contentType, r := file.DetectContentType(rec.Name, body)
	return &Content{
		Body:        readCloser{Reader: r, Closer: body},
		ContentType: contentType,
		Name:        rec.Name,
		Size:        obj.Size,
	}, nil
}

func (s *Service) find(ctx context.Context, id, ownerID string) (*store.File, error) {
	rec, err := s.records.FindFile(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return rec, nil
}

// decodeData accepts padded and unpadded standard base64.
func decodeData(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err == nil {
		return raw, nil
	}
	if raw, err := base64.RawStdEncoding.DecodeString(data); err == nil {
		return raw, nil
	}
	return nil, errors.Join(ErrInvalidData, err)
}

// ThumbnailKey is the blob key of the width variant of pointer.
func ThumbnailKey(pointer string, width int) string {
	return pointer + "_" + strconv.Itoa(width)
}

type readCloser struct {
	io.Reader
	io.Closer
}
