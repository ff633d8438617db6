package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filesmanager/pkg/clientip"
	"github.com/dmitrymomot/filesmanager/pkg/email"
	"github.com/dmitrymomot/filesmanager/pkg/file"
	"github.com/dmitrymomot/filesmanager/pkg/logger"
	"github.com/dmitrymomot/filesmanager/pkg/mongo"
	"github.com/dmitrymomot/filesmanager/pkg/queue"
	"github.com/dmitrymomot/filesmanager/pkg/ratelimiter"
	"github.com/dmitrymomot/filesmanager/pkg/redis"
	"github.com/dmitrymomot/filesmanager/pkg/session"
	"github.com/dmitrymomot/filesmanager/svc/auth"
	"github.com/dmitrymomot/filesmanager/svc/files"
	"github.com/dmitrymomot/filesmanager/svc/store"
)

// TaskStorage is the durable queue backend shared by the enqueuer and the
// worker.
type TaskStorage interface {
	queue.EnqueuerRepository
	queue.WorkerRepository
}

// Components are the infrastructure clients the services are built from.
// New fills them from Config; tests assemble them from in-memory
// implementations.
type Components struct {
	Logger       *slog.Logger
	Store        store.Store
	SessionStore session.Store
	Blobs        file.Storage
	Tasks        TaskStorage
	Mailer       email.EmailSender

	RedisCheck func(context.Context) error
	DBCheck    func(context.Context) error
}

// App is the assembled dependency graph.
type App struct {
	Components

	Config   Config
	Sessions *session.Manager
	Enqueuer *queue.Enqueuer
	Auth     *auth.Service
	Files    *files.Service
	ClientIP *clientip.Resolver

	// LoginLimiter is nil when login throttling is disabled.
	LoginLimiter *ratelimiter.Bucket

	closers []func() error
}

// New connects to Mongo and Redis, prepares blob storage and the mailer and
// assembles the App. Close releases the connections.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}
	var closers []func() error
	fail := func(err error) (*App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
	if err != nil {
		return fail(fmt.Errorf("connect mongo: %w", err))
	}
	closers = append(closers, func() error { return db.Client().Disconnect(context.Background()) })

	records := store.NewMongo(db)
	if err := records.EnsureIndexes(ctx); err != nil {
		return fail(fmt.Errorf("ensure indexes: %w", err))
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return fail(fmt.Errorf("connect redis: %w", err))
	}
	closers = append(closers, rdb.Close)

	blobs, err := file.New(ctx, cfg.Storage)
	if err != nil {
		return fail(fmt.Errorf("init blob storage: %w", err))
	}

	mailer, err := email.New(cfg.Email)
	if err != nil {
		return fail(fmt.Errorf("init mailer: %w", err))
	}

	app, err := Assemble(cfg, Components{
		Logger:       log,
		Store:        records,
		SessionStore: redis.NewStorage(rdb),
		Blobs:        blobs,
		Tasks:        queue.NewRedisStorage(rdb, cfg.Queue.KeyPrefix),
		Mailer:       mailer,
		RedisCheck:   redis.Healthcheck(rdb),
		DBCheck:      mongo.Healthcheck(db.Client()),
	})
	if err != nil {
		return fail(err)
	}
	app.closers = append(closers, app.closers...)

	log.Info("dependencies ready",
		slog.String("database", cfg.Mongo.Database),
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("postmark", cfg.Email.UsePostmark()),
	)
	return app, nil
}

// Assemble builds the session manager, the enqueuer and the domain services
// on top of c.
func Assemble(cfg Config, c Components) (*App, error) {
	if c.Logger == nil {
		c.Logger = logger.Discard()
	}
	if c.Store == nil || c.SessionStore == nil || c.Blobs == nil || c.Tasks == nil {
		return nil, ErrMissingComponent
	}

	sessions, err := session.New(c.SessionStore,
		session.WithConfig(cfg.Session),
		session.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init sessions: %w", err)
	}

	enq, err := queue.NewEnqueuer(c.Tasks)
	if err != nil {
		return nil, fmt.Errorf("init enqueuer: %w", err)
	}

	proxies, err := clientip.ParseTrusted(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("init client ip: %w", err)
	}

	app := &App{
		Components: c,
		Config:     cfg,
		Sessions:   sessions,
		Enqueuer:   enq,
		ClientIP:   clientip.NewResolver(proxies...),
		Auth: auth.NewService(c.Store, sessions, enq,
			auth.WithHasher(auth.NewBcryptHasher(cfg.BcryptCost)),
			auth.WithLogger(c.Logger),
		),
		Files: files.NewService(c.Store, c.Blobs, enq,
			files.WithLogger(c.Logger),
		),
	}

	if cfg.LoginLimit.Enabled {
		limits := ratelimiter.NewMemoryStore()
		app.closers = append(app.closers, limits.Close)
		app.LoginLimiter, err = ratelimiter.NewBucket(limits, cfg.LoginLimit)
		if err != nil {
			_ = limits.Close()
			return nil, fmt.Errorf("init login limiter: %w", err)
		}
	}
	return app, nil
}

// NewWorker returns a queue worker with the thumbnail and welcome handlers
// registered.
func (a *App) NewWorker() (*queue.Worker, error) {
	if a.Mailer == nil {
		return nil, ErrMissingComponent
	}
	w, err := queue.NewWorker(a.Tasks,
		queue.WithQueues(files.Queue, auth.Queue),
		queue.WithConfig(a.Config.Queue),
		queue.WithWorkerLogger(a.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init worker: %w", err)
	}
	w.RegisterHandlers(
		files.NewThumbnailProcessor(a.Store, a.Blobs, a.Logger).Handler(),
		auth.NewWelcomeProcessor(a.Store, a.Mailer, a.Logger).Handler(),
	)
	return w, nil
}

// Close releases the connections and background stores the app holds.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
