// Package queue is a small durable task queue.
//
// Producers call Enqueuer.Enqueue with any JSON-serialisable payload; the
// task is named after the payload's Go type. A Worker polls a repository,
// claims ready tasks under a time-limited lock and dispatches them to the
// Handler registered under the same name:
//
//	enq, _ := queue.NewEnqueuer(storage)
//	_ = enq.Enqueue(ctx, ThumbnailJob{FileID: id}, queue.WithQueue("files"), queue.WithMaxRetries(0))
//
//	w, _ := queue.NewWorker(storage, queue.WithQueues("files"), queue.WithConfig(cfg))
//	w.RegisterHandlers(queue.NewTaskHandler(processThumbnail))
//	g.Go(w.Run(ctx))
//
// A failed task is retried with a linear backoff until its RetryCount exceeds
// MaxRetries, then it is moved to the dead-letter queue. Tasks whose worker
// dies are returned to pending once their lock expires, so delivery is at
// least once and handlers should be idempotent.
//
// Two repositories are provided: RedisStorage for deployments where the API
// and worker run as separate processes, and MemoryStorage for tests and
// single-process development.
package queue
