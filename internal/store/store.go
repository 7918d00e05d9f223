package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

// Event is an audit record produced by a command
type Event struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Change is delivered to subscribers once per committed batch
type Change struct {
	Version uint64
	Slices  []string
	Events  []Event
}

// Touches reports whether the change replaced the named slice
func (c Change) Touches(slice string) bool {
	for _, s := range c.Slices {
		if s == slice {
			return true
		}
	}
	return false
}

// Store owns the canonical collections of one storefront namespace.
// Mutations are expressed as commands and applied through Execute.
type Store struct {
	mu      sync.RWMutex
	state   models.Snapshot
	version uint64

	subMu       sync.RWMutex
	subscribers []func(Change)

	validator *validator.Validate
	confirmer Confirmer
	identity  Identity
	media     MediaLibrary
	logger    *logrus.Entry
	now       func() time.Time
	newID     func() string
}

// Option configures a Store
type Option func(*Store)

// WithConfirmer sets the collaborator that gates deletes
func WithConfirmer(c Confirmer) Option {
	return func(s *Store) { s.confirmer = c }
}

// WithIdentity sets the collaborator that exposes the current actor
func WithIdentity(i Identity) Option {
	return func(s *Store) { s.identity = i }
}

// WithMediaLibrary sets the collaborator that receives product images
func WithMediaLibrary(m MediaLibrary) Option {
	return func(s *Store) { s.media = m }
}

// WithLogger sets the logger
func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) { s.logger = l.WithField("component", "store") }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides identifier generation
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty store with default settings
func New(opts ...Option) *Store {
	s := &Store{
		state: models.Snapshot{
			Products:        []models.Product{},
			Orders:          []models.Order{},
			Customers:       []models.Customer{},
			Categories:      []models.Category{},
			Collections:     []models.Collection{},
			Discounts:       []models.Discount{},
			Pages:           []models.Page{},
			StoreSettings:   models.DefaultStoreSettings(),
			PaymentSettings: models.DefaultPaymentSettings(),
		},
		validator: newValidator(),
		confirmer: ContextConfirmer{},
		logger:    logrus.StandardLogger().WithField("component", "store"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called after every committed batch.
// fn runs on the committing goroutine after the store lock is released.
func (s *Store) Subscribe(fn func(Change)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load replaces the whole state once at initialisation. Subscribers are not notified.
func (s *Store) Load(snapshot models.Snapshot) {
	snapshot = snapshot.Clone()
	if snapshot.StoreSettings.OrderIDFormat == "" {
		snapshot.StoreSettings = models.DefaultStoreSettings()
	}
	s.mu.Lock()
	s.state = snapshot
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Version is the number of batches committed since the store was created
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Execute applies cmds as one all-or-nothing batch. If any command fails the state is
// left untouched and the error is returned; otherwise subscribers receive a single Change.
func (s *Store) Execute(ctx context.Context, cmds ...Command) error {
	if len(cmds) == 0 {
		return nil
	}
	if err := s.confirmDeletes(ctx, cmds); err != nil {
		return err
	}

	var actorID string
	if s.identity != nil {
		if actor, ok := s.identity.Actor(ctx); ok {
			actorID = actor.ID
		}
	}

	s.mu.Lock()
	tx := newTxn(ctx, s, actorID)
	for _, cmd := range cmds {
		if err := cmd.apply(tx); err != nil {
			s.mu.Unlock()
			s.logger.WithError(err).WithField("command", cmd.Name()).Debug("Command rejected")
			return err
		}
	}
	if len(tx.changed) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.state = tx.state
	s.version++
	change := Change{Version: s.version, Slices: tx.changedSlices(), Events: tx.events}
	s.mu.Unlock()

	s.dispatchMedia(ctx, tx.media)
	s.notify(change)
	return nil
}

// confirmDeletes asks the confirmer about every delete in the batch before anything is locked
func (s *Store) confirmDeletes(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		d, ok := cmd.(deletion)
		if !ok {
			continue
		}
		req, err := s.describeDelete(d)
		if err != nil {
			return err
		}
		if s.confirmer == nil {
			return ErrNotConfirmed
		}
		confirmed, err := s.confirmer.Confirm(ctx, req)
		if err != nil {
			return fmt.Errorf("confirm delete of %s %s: %w", req.Entity, req.ID, err)
		}
		if !confirmed {
			return ErrNotConfirmed
		}
	}
	return nil
}

func (s *Store) describeDelete(d deletion) (ConfirmRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return d.target(&s.state)
}

func (s *Store) dispatchMedia(ctx context.Context, media []models.Media) {
	if s.media == nil {
		return
	}
	for _, m := range media {
		if err := s.media.AddMedia(ctx, m); err != nil {
			s.logger.WithError(err).WithField("url", m.URL).Warn("Failed to register product image with media library")
		}
	}
}

func (s *Store) notify(change Change) {
	s.subMu.RLock()
	subs := slices.Clone(s.subscribers)
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(change)
	}
}

// requireActor returns ErrUnauthenticated unless the identity collaborator reports an actor
func (s *Store) requireActor(ctx context.Context) (models.Actor, error) {
	if s.identity == nil {
		return models.Actor{}, ErrUnauthenticated
	}
	actor, ok := s.identity.Actor(ctx)
	if !ok || actor.ID == "" {
		return models.Actor{}, ErrUnauthenticated
	}
	return actor, nil
}

// read runs fn against the committed state under the read lock
func (s *Store) read(fn func(state *models.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

func findIndex[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
