package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"svw.info/picross/internal/domain"
	"svw.info/picross/internal/ports"
)

// Service orchestrates puzzle sessions over the ports. Sessions live
// in memory; Save/Load move them through the storage port.
type Service struct {
	Generator ports.Generator
	Tallier   ports.Tallier
	Rules     ports.RulesFactory
	Storage   ports.Storage

	mu       sync.Mutex
	sessions map[string]*domain.Puzzle
}

func NewService(g ports.Generator, t ports.Tallier, rf ports.RulesFactory, st ports.Storage) *Service {
	return &Service{
		Generator: g,
		Tallier:   t,
		Rules:     rf,
		Storage:   st,
		sessions:  make(map[string]*domain.Puzzle),
	}
}

var (
	errNotConfigured = errors.New("usecase dependency not configured")

	// ErrNotFound reports an unknown puzzle session ID.
	ErrNotFound = errors.New("puzzle not found")
)

// snapshot returns a copy of the session header. The piece and hint
// slices are shared but never mutated in place: every state change
// replaces them wholesale, so callers always observe a consistent
// view.
func snapshot(p *domain.Puzzle) *domain.Puzzle {
	snap := *p
	return &snap
}

// New generates a fresh puzzle session and registers it.
func (u *Service) New(ctx context.Context, seed int64, columns, rows int, assist, lockRevealed bool) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil || u.Tallier == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	pieces, st, err := u.Generator.Generate(ctx, seed, columns, rows)
	if err != nil {
		return nil, st, err
	}
	hints, err := u.Tallier.Hints(ctx, pieces, columns, rows, assist)
	if err != nil {
		return nil, st, err
	}
	p := &domain.Puzzle{
		ID:             uuid.NewString(),
		Seed:           seed,
		Columns:        columns,
		Rows:           rows,
		Assist:         assist,
		RevealedLocked: lockRevealed,
		Pieces:         pieces,
		Hints:          hints,
		CreatedAt:      time.Now().UnixNano(),
	}
	u.mu.Lock()
	u.sessions[p.ID] = p
	u.mu.Unlock()
	return snapshot(p), st, nil
}

// Get returns the current state of a session.
func (u *Service) Get(ctx context.Context, id string) (*domain.Puzzle, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(p), nil
}

// Select cycles the selection of the piece named by key. An unknown
// key is a silent no-op: the renderer must never be crashed by a stale
// click.
func (u *Service) Select(ctx context.Context, id, key string) (*domain.Puzzle, error) {
	if u.Rules == nil || u.Tallier == nil {
		return nil, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	idx := -1
	for i := range p.Pieces {
		if p.Pieces[i].Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return snapshot(p), nil
	}
	eng := u.Rules(p.Assist, p.RevealedLocked)
	next := make([]domain.Piece, len(p.Pieces))
	copy(next, p.Pieces)
	next[idx] = eng.Cycle(next[idx])
	hints, err := u.Tallier.Hints(ctx, next, p.Columns, p.Rows, p.Assist)
	if err != nil {
		return nil, err
	}
	p.Pieces = next
	p.Hints = hints
	return snapshot(p), nil
}

// Reset clears every non-revealed selection.
func (u *Service) Reset(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Rules == nil || u.Tallier == nil {
		return nil, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	eng := u.Rules(p.Assist, p.RevealedLocked)
	next := eng.Reset(p.Pieces)
	hints, err := u.Tallier.Hints(ctx, next, p.Columns, p.Rows, p.Assist)
	if err != nil {
		return nil, err
	}
	p.Pieces = next
	p.Hints = hints
	return snapshot(p), nil
}

// ToggleAssist flips assist mode and recolors the hints accordingly.
func (u *Service) ToggleAssist(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Tallier == nil {
		return nil, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Assist = !p.Assist
	hints, err := u.Tallier.Hints(ctx, p.Pieces, p.Columns, p.Rows, p.Assist)
	if err != nil {
		return nil, err
	}
	p.Hints = hints
	return snapshot(p), nil
}

// Valid reports whether every selection matches its piece's value.
func (u *Service) Valid(ctx context.Context, id string) (bool, error) {
	if u.Rules == nil {
		return false, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	p, ok := u.sessions[id]
	if !ok {
		return false, ErrNotFound
	}
	eng := u.Rules(p.Assist, p.RevealedLocked)
	return eng.Valid(p.Pieces), nil
}

// Persistence

// Save writes the named session to storage, optionally renaming it.
func (u *Service) Save(ctx context.Context, id, name string) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	u.mu.Lock()
	p, ok := u.sessions[id]
	if ok && name != "" {
		p.Name = name
	}
	var snap *domain.Puzzle
	if ok {
		snap = snapshot(p)
	}
	u.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return u.Storage.Save(ctx, snap)
}

// Load restores a saved puzzle and re-registers it as a live session.
func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	p, err := u.Storage.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	u.sessions[p.ID] = p
	u.mu.Unlock()
	return snapshot(p), nil
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
