package usecase

import (
	"context"
	"reflect"
	"testing"

	"svw.info/picross/internal/domain"
	"svw.info/picross/internal/generator"
	"svw.info/picross/internal/infrastructure/storage"
	"svw.info/picross/internal/ports"
	"svw.info/picross/internal/rules"
	"svw.info/picross/internal/tally"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	// Threshold 1 hides every piece, which keeps the interaction tests
	// deterministic.
	g := &generator.RandomGenerator{RevealProbability: 1}
	rf := func(assist, locked bool) ports.Rules {
		return rules.New(rules.Config{AssistEnabled: assist, RevealedLocked: locked})
	}
	return NewService(g, tally.New(), rf, storage.NewFS(t.TempDir()))
}

func TestNewPuzzle(t *testing.T) {
	u := newTestService(t)
	p, st, err := u.New(context.Background(), 1, 3, 3, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("puzzle has no ID")
	}
	if len(p.Pieces) != 9 || st.Pieces != 9 {
		t.Fatalf("got %d pieces (stats %d), want 9", len(p.Pieces), st.Pieces)
	}
	if want := domain.NumShapes * 6; len(p.Hints) != want {
		t.Fatalf("got %d hints, want %d", len(p.Hints), want)
	}

	got, err := u.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got.Pieces, p.Pieces) {
		t.Fatal("Get returned different pieces")
	}
	if _, err := u.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("Get(nope) err = %v, want ErrNotFound", err)
	}
}

func TestSelectCyclesAndSnapshots(t *testing.T) {
	ctx := context.Background()
	u := newTestService(t)
	p, _, err := u.New(ctx, 2, 2, 2, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	before := p.Pieces
	key := p.Pieces[0].Key

	next, err := u.Select(ctx, p.ID, key)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if next.Pieces[0].SelectedValue != domain.Circle {
		t.Fatalf("first click selected %v, want circle", next.Pieces[0].SelectedValue)
	}
	// The pre-select snapshot must not have been mutated in place.
	if before[0].SelectedValue != domain.ShapeNone {
		t.Fatal("Select mutated an earlier snapshot")
	}
}

func TestSelectUnknownKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	u := newTestService(t)
	p, _, err := u.New(ctx, 3, 2, 2, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	next, err := u.Select(ctx, p.ID, "0,0")
	if err != nil {
		t.Fatalf("Select with unknown key errored: %v", err)
	}
	if !reflect.DeepEqual(next.Pieces, p.Pieces) {
		t.Fatal("unknown key changed the grid")
	}
	if _, err := u.Select(ctx, "nope", "0,0"); err != ErrNotFound {
		t.Fatalf("Select on unknown session err = %v, want ErrNotFound", err)
	}
}

func TestSolveResetValidate(t *testing.T) {
	ctx := context.Background()
	u := newTestService(t)
	p, _, err := u.New(ctx, 4, 2, 2, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if ok, _ := u.Valid(ctx, p.ID); ok {
		t.Fatal("all-hidden puzzle valid before any selection")
	}

	// Clicking a piece value-many times lands its selection on the
	// value (none -> circle -> square -> triangle).
	for _, piece := range p.Pieces {
		for i := 0; i < int(piece.Value); i++ {
			if _, err := u.Select(ctx, p.ID, piece.Key); err != nil {
				t.Fatalf("Select failed: %v", err)
			}
		}
	}
	ok, err := u.Valid(ctx, p.ID)
	if err != nil {
		t.Fatalf("Valid failed: %v", err)
	}
	if !ok {
		t.Fatal("puzzle not valid after matching every selection")
	}

	after, err := u.Reset(ctx, p.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	for _, piece := range after.Pieces {
		if piece.SelectedValue != domain.ShapeNone {
			t.Fatalf("piece %s still selected after reset", piece.Key)
		}
	}
	if ok, _ := u.Valid(ctx, p.ID); ok {
		t.Fatal("puzzle still valid after reset")
	}
}

func TestToggleAssistRecolorsHints(t *testing.T) {
	ctx := context.Background()
	u := newTestService(t)
	p, _, err := u.New(ctx, 5, 2, 2, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, h := range p.Hints {
		if h.Fill != domain.FillIncomplete {
			t.Fatalf("assist off: hint %s fill %q", h.Key, h.Fill)
		}
	}

	on, err := u.ToggleAssist(ctx, p.ID)
	if err != nil {
		t.Fatalf("ToggleAssist failed: %v", err)
	}
	if !on.Assist {
		t.Fatal("assist not enabled after toggle")
	}
	complete := 0
	for _, h := range on.Hints {
		if h.Fill == domain.FillComplete {
			complete++
		}
	}
	// All pieces are hidden, so exactly the zero-count lines read as
	// complete; with 2x2 grids there is always at least one shape
	// absent from some line.
	if complete == 0 {
		t.Fatal("assist on: no hint marked complete on an all-hidden grid")
	}

	off, err := u.ToggleAssist(ctx, p.ID)
	if err != nil {
		t.Fatalf("ToggleAssist failed: %v", err)
	}
	if off.Assist {
		t.Fatal("assist still enabled after second toggle")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	u := newTestService(t)
	p, _, err := u.New(ctx, 6, 3, 2, true, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := u.Save(ctx, p.ID, "lunch break"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := u.Save(ctx, "nope", ""); err != ErrNotFound {
		t.Fatalf("Save on unknown session err = %v, want ErrNotFound", err)
	}

	metas, err := u.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != p.ID || metas[0].Name != "lunch break" {
		t.Fatalf("unexpected listing: %+v", metas)
	}

	got, err := u.Load(ctx, p.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got.Pieces, p.Pieces) {
		t.Fatal("loaded puzzle differs from saved one")
	}
	if got.Assist != true || got.RevealedLocked != false {
		t.Fatalf("policy flags lost in round trip: %+v", got)
	}
	// A loaded puzzle is live again.
	if _, err := u.Select(ctx, got.ID, got.Pieces[0].Key); err != nil {
		t.Fatalf("Select on loaded puzzle failed: %v", err)
	}
}
