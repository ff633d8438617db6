package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/dmitrymomot/filesmanager/pkg/file"
	"github.com/dmitrymomot/filesmanager/pkg/logger"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/pkg/thumbnail"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

// Queue holds thumbnail jobs.
const Queue = "files"

// Widths are the thumbnail sizes generated for every image.
var Widths = []int{500, 250, 100}

// ThumbnailJob asks the worker to generate thumbnails for an image.
type ThumbnailJob struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// ThumbnailProcessor handles ThumbnailJob.
type ThumbnailProcessor struct {
	records FileStore
	blobs   file.Storage
	logger  *slog.Logger
}

func NewThumbnailProcessor(records FileStore, blobs file.Storage, log *slog.Logger) *ThumbnailProcessor {
	if log == nil {
		log = logger.Discard()
	}
	return &ThumbnailProcessor{records: records, blobs: blobs, logger: log}
}

// Handler registers the processor with a queue worker.
func (p *ThumbnailProcessor) Handler() queue.Handler {
	return queue.NewTaskHandler(p.Process)
}

// Process generates every width concurrently and waits for all of them.
// The job fails if any width fails; variants that succeeded stay in place
// and are overwritten on the next run.
func (p *ThumbnailProcessor) Process(ctx context.Context, job ThumbnailJob) error {
	if job.FileID == "" {
		return ErrMissingFileID
	}
	if job.UserID == "" {
		return ErrMissingUserID
	}

	rec, err := p.records.FindFile(ctx, job.FileID, job.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("find file: %w", err)
	}

	wp := pool.New().WithErrors().WithContext(ctx)
	for _, width := range Widths {
		wp.Go(func(ctx context.Context) error {
			return p.generate(ctx, rec, width)
		})
	}
	return wp.Wait()
}

func (p *ThumbnailProcessor) generate(ctx context.Context, rec *store.File, width int) error {
	start := time.Now()
	log := p.logger.With(
		logger.FileID(rec.ID),
		logger.Width(width),
		logger.Component("thumbnail"),
	)

	err := p.resize(ctx, rec.LocalPath, width)
	if err != nil {
		log.ErrorContext(ctx, "thumbnail generation failed", logger.Error(err))
		return fmt.Errorf("width %d: %w", width, err)
	}

	log.InfoContext(ctx, "thumbnail generated", logger.Duration(time.Since(start)))
	return nil
}

func (p *ThumbnailProcessor) resize(ctx context.Context, pointer string, width int) error {
	src, err := p.blobs.Open(ctx, pointer)
	if err != nil {
		return err
	}
	defer src.Close()

	data, _, err := thumbnail.Resize(src, width)
	if err != nil {
		return err
	}

	_, err = p.blobs.Put(ctx, ThumbnailKey(pointer, width), bytes.NewReader(data))
	return err
}
