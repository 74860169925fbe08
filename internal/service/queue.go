package service

import (
	"context"
	"sync"
	"time"

	"navprep/internal/cache"
	"navprep/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// workerCooldown is a courtesy pause between queued requests so back-to-back
// batches do not hammer the upstream API.
const workerCooldown = 100 * time.Millisecond

// GenerationResult is what a queued request resolves to. Cache hits are
// identical in shape to freshly generated results.
type GenerationResult struct {
	Content  string
	Type     domain.ContentType
	CacheHit bool
}

type queueRequest struct {
	content domain.RawContent
	count   int
	done    chan queueResponse
}

type queueResponse struct {
	content string
	err     error
}

// QueueService serializes generation batches through a single worker
// goroutine: at most one batch is in flight at any time, across all
// callers. Results are memoized by content fingerprint, and concurrent
// requests for the same fingerprint collapse into one unit of work.
// All queue state is owned by the worker; there are no shared counters.
type QueueService struct {
	pipeline *PipelineService
	cache    domain.Cache
	cacheTTL time.Duration
	logger   *zap.Logger

	group    singleflight.Group
	requests chan *queueRequest

	closeOnce sync.Once
	closed    chan struct{}
}

// NewQueueService creates the queue and starts its worker. Construct one
// instance per process.
func NewQueueService(pipeline *PipelineService, resultCache domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *QueueService {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	s := &QueueService{
		pipeline: pipeline,
		cache:    resultCache,
		cacheTTL: cacheTTL,
		logger:   logger,
		requests: make(chan *queueRequest, 128),
		closed:   make(chan struct{}),
	}
	go s.drain()
	return s
}

// Enqueue submits a generation request and waits for its result. The cache
// is consulted first; a hit resolves immediately. A caller whose context
// expires stops waiting, but the underlying work keeps running and still
// populates the cache.
func (s *QueueService) Enqueue(ctx context.Context, content domain.RawContent, count int) (GenerationResult, error) {
	fingerprint := cache.Fingerprint(string(content.Type), content.Title, content.Description, content.Material)
	key := cache.GenerateCacheKey("generation", string(content.Type), fingerprint)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		s.logger.Debug("Generation cache hit", zap.String("key", key))
		return GenerationResult{Content: cached, Type: content.Type, CacheHit: true}, nil
	} else if err != domain.ErrCacheMiss {
		s.logger.Warn("Cache lookup failed, generating anyway", zap.Error(err), zap.String("key", key))
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.process(key, content, count)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return GenerationResult{}, res.Err
		}
		return GenerationResult{Content: res.Val.(string), Type: content.Type}, nil
	case <-ctx.Done():
		return GenerationResult{}, domain.NewInternalError("Request context cancelled while queued", ctx.Err())
	}
}

// process pushes one request through the worker and stores the result.
// It runs inside singleflight, detached from any single caller's context.
func (s *QueueService) process(key string, content domain.RawContent, count int) (interface{}, error) {
	req := &queueRequest{
		content: content,
		count:   count,
		done:    make(chan queueResponse, 1),
	}

	select {
	case s.requests <- req:
	case <-s.closed:
		return nil, domain.NewInternalError("Generation queue is shut down", nil)
	}

	var resp queueResponse
	select {
	case resp = <-req.done:
	case <-s.closed:
		// The worker is gone; nobody will answer.
		return nil, domain.NewInternalError("Generation queue is shut down", nil)
	}
	if resp.err != nil {
		return nil, resp.err
	}

	storeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cache.Set(storeCtx, key, resp.content, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to store generation result in cache", zap.Error(err), zap.String("key", key))
	}
	return resp.content, nil
}

// drain is the single worker loop. FIFO order across requests, exactly one
// batch in flight, and a short cooldown after each request.
func (s *QueueService) drain() {
	for {
		select {
		case <-s.closed:
			return
		case req := <-s.requests:
			content, err := s.pipeline.GenerateRecords(context.Background(), req.content, req.count)
			req.done <- queueResponse{content: content, err: err}
			time.Sleep(workerCooldown)
		}
	}
}

// Close stops the worker. Requests still queued or in flight resolve with a
// shutdown error.
func (s *QueueService) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
}
