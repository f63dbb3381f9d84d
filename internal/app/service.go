package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-history/internal/domain"
	"github.com/jaminalder/tictactoe-history/internal/metrics"
	"github.com/jaminalder/tictactoe-history/internal/store"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// GameState is the state tracked per game.
type GameState struct {
	ID      string
	Game    domain.Game
	Created time.Time
	Updated time.Time
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// send delivers p without blocking. It reports false when the buffer is full.
// A closed subscriber silently accepts.
func (s *subscriber) send(p []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- p:
		return true
	default:
		return false
	}
}

// Service manages games and subscribers. Operations on games run one at a time.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	subs    map[string]map[*subscriber]struct{}
	render  func(GameState) []byte
	log     zerolog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithRenderer sets the broadcast renderer.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) { s.SetRenderer(renderer) }
}

func nopRender(GameState) []byte { return nil }

// NewService creates a service over st. A nil store means an in-memory one.
func NewService(st store.Store, opts ...Option) *Service {
	if st == nil {
		st = store.NewMemory()
	}
	s := &Service{
		store:   st,
		subs:    make(map[string]map[*subscriber]struct{}),
		render:  nopRender,
		log:     zerolog.Nop(),
		metrics: metrics.Nop{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = nopRender
		return
	}
	s.render = renderer
}

// CreateGame creates and stores a new game.
func (s *Service) CreateGame(ctx context.Context) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	gs := &GameState{ID: uuid.NewString(), Game: domain.New(), Created: now, Updated: now}
	if err := s.saveLocked(ctx, gs); err != nil {
		return nil, err
	}
	s.metrics.GameCreated()
	s.log.Info().Str("game_id", gs.ID).Msg("game created")
	return gs, nil
}

// Get returns the stored game.
func (s *Service) Get(ctx context.Context, id string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, id)
}

// Move plays the next mark at cell i.
func (s *Service) Move(ctx context.Context, id string, i int) (*GameState, error) {
	var decided bool
	gs, err := s.update(ctx, id, "move", func(g *domain.Game) error {
		decided = g.Outcome().Decided()
		return g.ApplyMove(i)
	})
	switch {
	case err == nil:
		s.metrics.MoveApplied()
		if out := gs.Game.Outcome(); !decided && out.Decided() {
			s.metrics.Finished(out.Result.String())
			s.log.Info().Str("game_id", id).Str("status", domain.Status(out, gs.Game.Next())).Msg("game decided")
		}
	case gs != nil:
		s.metrics.MoveRejected(rejectReason(err))
	}
	return gs, err
}

// Jump makes history record k active.
func (s *Service) Jump(ctx context.Context, id string, k int) (*GameState, error) {
	gs, err := s.update(ctx, id, "jump", func(g *domain.Game) error { return g.JumpTo(k) })
	if err == nil {
		s.metrics.Jumped()
	}
	return gs, err
}

// ToggleSort flips the history order.
func (s *Service) ToggleSort(ctx context.Context, id string) (*GameState, error) {
	return s.update(ctx, id, "sort", func(g *domain.Game) error {
		g.ToggleSort()
		return nil
	})
}

// Reset starts the game over.
func (s *Service) Reset(ctx context.Context, id string) (*GameState, error) {
	gs, err := s.update(ctx, id, "reset", func(g *domain.Game) error {
		g.Reset()
		return nil
	})
	if err == nil {
		s.metrics.Reset()
	}
	return gs, err
}

// update loads the game, applies fn, stores and broadcasts the result. When fn
// fails the unchanged state is returned together with the error.
func (s *Service) update(ctx context.Context, id, op string, fn func(*domain.Game) error) (*GameState, error) {
	var toDrop []*subscriber

	s.mu.Lock()
	gs, err := s.loadLocked(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := fn(&gs.Game); err != nil {
		s.mu.Unlock()
		s.log.Debug().Str("game_id", id).Str("op", op).Err(err).Msg("rejected")
		return gs, err
	}
	gs.Updated = s.now()
	if err := s.saveLocked(ctx, gs); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	// Snapshot state and subscribers
	cp := *gs
	subs := s.copySubsLocked(id)
	payload := s.render(cp)
	s.mu.Unlock()

	s.log.Debug().Str("game_id", id).Str("op", op).Int("step", cp.Game.Step()).Msg("applied")

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		if !sub.send(payload) {
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
	}
	return &cp, nil
}

func (s *Service) loadLocked(ctx context.Context, id string) (*GameState, error) {
	rec, err := s.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	g, err := domain.Restore(rec.Game)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return &GameState{ID: rec.ID, Game: g, Created: rec.Created, Updated: rec.Updated}, nil
}

func (s *Service) saveLocked(ctx context.Context, gs *GameState) error {
	rec := store.Record{ID: gs.ID, Game: gs.Game.Snapshot(), Created: gs.Created, Updated: gs.Updated}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("save %s: %w", gs.ID, err)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOccupied):
		return "occupied"
	case errors.Is(err, domain.ErrGameOver):
		return "game_over"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "out_of_bounds"
	default:
		return "error"
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
