package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

const (
	DefaultWindow     = 50 * time.Millisecond
	DefaultMaxRetries = 3
	flushTimeout      = 30 * time.Second
)

// ErrWritesHeld is returned by Flush after the namespace could not be restored. The
// in-memory state no longer derives from what is stored, so writing it would replace
// persisted data.
var ErrWritesHeld = errors.New("writes held until the namespace is restored")

// SnapshotSource supplies the state to persist
type SnapshotSource interface {
	Snapshot() models.Snapshot
}

// SyncerConfig configures a Syncer
type SyncerConfig struct {
	Namespace  string
	Window     time.Duration
	MaxRetries int
	Logger     *logrus.Logger
	// BackOff returns the retry schedule for one flush. Defaults to exponential.
	BackOff func() backoff.BackOff
}

// Stats counts syncer activity
type Stats struct {
	Notifications uint64 `json:"notifications"`
	Writes        uint64 `json:"writes"`
	Failures      uint64 `json:"failures"`
	Pending       bool   `json:"pending"`
	Held          bool   `json:"held"`
}

// Syncer coalesces change notifications into merge-and-write cycles against a Storage.
// Notifications arriving within one window produce a single write. Writes never overlap.
type Syncer struct {
	storage   Storage
	source    SnapshotSource
	namespace string
	window    time.Duration
	retries   uint64
	newBack   func() backoff.BackOff
	logger    *logrus.Entry

	writeMu sync.Mutex

	mu      sync.Mutex
	pending bool
	closed  bool
	held    error
	timer   *time.Timer
	stats   Stats
}

// NewSyncer creates a syncer writing source's snapshot to storage under cfg.Namespace
func NewSyncer(storage Storage, source SnapshotSource, cfg SyncerConfig) *Syncer {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackOff == nil {
		cfg.BackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Syncer{
		storage:   storage,
		source:    source,
		namespace: cfg.Namespace,
		window:    cfg.Window,
		retries:   uint64(cfg.MaxRetries),
		newBack:   cfg.BackOff,
		logger:    logger.WithFields(logrus.Fields{"component": "persistence", "namespace": cfg.Namespace}),
	}
}

// Notify marks the namespace dirty and schedules a flush at the end of the window.
// It never blocks on storage.
func (s *Syncer) Notify(slices ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = true
	s.stats.Notifications++
	if s.timer == nil {
		s.timer = time.AfterFunc(s.window, s.flushAsync)
	}
	s.logger.WithField("slices", slices).Debug("Change queued for persistence")
}

func (s *Syncer) flushAsync() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	// failures are logged and counted inside Flush
	_ = s.Flush(ctx)
}

// Flush writes pending state now. On failure after retries the namespace stays dirty,
// so the next notification or flush tries again.
func (s *Syncer) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	held := s.held
	if held == nil {
		s.pending = false
	}
	s.mu.Unlock()
	if !pending {
		return nil
	}
	if held != nil {
		s.logger.WithError(held).Warn("Namespace not restored; change kept in memory only")
		return &PersistenceError{Namespace: s.namespace, Op: "flush", Err: ErrWritesHeld}
	}

	snapshot := s.source.Snapshot()
	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBack(), s.retries), ctx)
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := s.write(ctx, snapshot)
		if err != nil {
			s.logger.WithError(err).WithField("attempt", attempt).Warn("Persistence write failed")
		}
		return err
	}, policy)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.pending = true
		s.stats.Failures++
		s.logger.WithError(err).WithField("attempts", attempt).Error("Giving up on persistence write; namespace stays dirty")
		var perr *PersistenceError
		if errors.As(err, &perr) {
			return perr
		}
		return &PersistenceError{Namespace: s.namespace, Op: "flush", Err: err}
	}
	s.stats.Writes++
	s.logger.WithField("attempts", attempt).Debug("Namespace persisted")
	return nil
}

// write reads the previous blob, merges every tracked slice over it and writes it back
func (s *Syncer) write(ctx context.Context, snapshot models.Snapshot) error {
	previous, err := s.storage.Get(ctx, s.namespace)
	if errors.Is(err, ErrNamespaceNotFound) {
		previous = Blob{}
	} else if err != nil {
		return &PersistenceError{Namespace: s.namespace, Op: "get", Err: err}
	}
	update, err := Encode(snapshot, models.TrackedSlices)
	if err != nil {
		return backoff.Permanent(&PersistenceError{Namespace: s.namespace, Op: "encode", Err: err})
	}
	if err := s.storage.Put(ctx, s.namespace, Merge(previous, update)); err != nil {
		return &PersistenceError{Namespace: s.namespace, Op: "put", Err: err}
	}
	return nil
}

// Restore loads the persisted namespace over base, retrying transient failures with the
// write policy. If the namespace still cannot be read, writes are held so that state
// started from base never replaces what is stored.
func (s *Syncer) Restore(ctx context.Context, base models.Snapshot) (models.Snapshot, bool, error) {
	var (
		snapshot models.Snapshot
		found    bool
	)
	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBack(), s.retries), ctx)
	err := backoff.Retry(func() error {
		var err error
		snapshot, found, err = Restore(ctx, s.storage, s.namespace, base)
		var perr *PersistenceError
		if errors.As(err, &perr) && perr.Op == "decode" {
			return backoff.Permanent(err)
		}
		return err
	}, policy)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.held = err
		s.logger.WithError(err).Error("Namespace restore failed; persistence writes are held")
		return models.Snapshot{}, false, err
	}
	s.held = nil
	return snapshot, found, nil
}

// Ready reports whether changes can be persisted
func (s *Syncer) Ready(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held != nil {
		return fmt.Errorf("%w: %v", ErrWritesHeld, s.held)
	}
	return nil
}

// Close stops accepting notifications and flushes anything pending
func (s *Syncer) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush(ctx)
}

// Stats returns a copy of the activity counters
func (s *Syncer) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stats
	out.Pending = s.pending
	out.Held = s.held != nil
	return out
}
