package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"svw.info/picross/internal/domain"
)

func samplePuzzle(id string, columns, rows int, createdAt int64) *domain.Puzzle {
	coord := domain.Coord{Col: domain.NumShapes, Row: domain.NumShapes}
	return &domain.Puzzle{
		ID:      id,
		Seed:    7,
		Columns: columns,
		Rows:    rows,
		Pieces: []domain.Piece{{
			Key:   coord.Key(),
			Coord: coord,
			Value: domain.Circle,
			Fill:  domain.FillHidden,
		}},
		CreatedAt: createdAt,
	}
}

func TestSaveLoadBuckets(t *testing.T) {
	ctx := context.Background()
	s := NewFS(t.TempDir())

	cases := []struct {
		name          string
		columns, rows int
		bucket        string
	}{
		{"small", 5, 5, "small"},
		{"medium", 10, 10, "medium"},
		{"large", 15, 15, "large"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := samplePuzzle("p-"+tc.name, tc.columns, tc.rows, 1)
			if err := s.Save(ctx, p); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if _, err := os.Stat(filepath.Join(s.dir, tc.bucket, p.ID+".json")); err != nil {
				t.Fatalf("puzzle not in %s bucket: %v", tc.bucket, err)
			}
			got, err := s.Load(ctx, p.ID)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(got, p) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, p)
			}
		})
	}

	if err := s.Save(ctx, &domain.Puzzle{}); err == nil {
		t.Fatal("Save accepted a puzzle without an ID")
	}
	if _, err := s.Load(ctx, "missing"); !os.IsNotExist(err) {
		t.Fatalf("Load(missing) err = %v, want not-exist", err)
	}
}

func TestListMergesBucketsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewFS(t.TempDir())

	if err := s.Save(ctx, samplePuzzle("old", 5, 5, 10)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, samplePuzzle("new", 12, 12, 30)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Legacy flat file from the pre-bucket layout.
	legacy := `{"id":"legacy","columns":4,"rows":4,"createdAt":20}`
	if err := os.WriteFile(filepath.Join(s.dir, "legacy.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var ids []string
	for _, m := range metas {
		ids = append(ids, m.ID)
	}
	if !reflect.DeepEqual(ids, []string{"new", "legacy", "old"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}
