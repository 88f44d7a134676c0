package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"svw.info/picross/internal/domain"
)

// FS stores puzzles as JSON files bucketed by grid size preset, with a
// legacy flat layout still readable.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func sizeDir(columns, rows int) string {
	switch cells := columns * rows; {
	case cells <= 25:
		return "small"
	case cells <= 100:
		return "medium"
	default:
		return "large"
	}
}

func (s *FS) pathFor(p *domain.Puzzle) string {
	sub := sizeDir(p.Columns, p.Rows)
	return filepath.Join(s.dir, sub, strings.TrimSpace(p.ID)+".json")
}

func (s *FS) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	target := s.pathFor(p)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	candidates := []string{
		filepath.Join(s.dir, "small", id+".json"),
		filepath.Join(s.dir, "medium", id+".json"),
		filepath.Join(s.dir, "large", id+".json"),
		filepath.Join(s.dir, id+".json"), // legacy flat layout
	}
	var data []byte
	for _, path := range candidates {
		if _, statErr := os.Stat(path); statErr == nil {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			data = b
			break
		}
	}
	if data == nil {
		return nil, os.ErrNotExist
	}
	var out domain.Puzzle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	type m struct {
		ID        string `json:"id"`
		Name      string `json:"name,omitempty"`
		Columns   int    `json:"columns"`
		Rows      int    `json:"rows"`
		CreatedAt int64  `json:"createdAt"`
	}

	var out []domain.PuzzleMeta
	dirs := []string{
		filepath.Join(s.dir, "small"),
		filepath.Join(s.dir, "medium"),
		filepath.Join(s.dir, "large"),
		s.dir, // legacy flat files
	}
	for _, dir := range dirs {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var mm m
			if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
				continue
			}
			out = append(out, domain.PuzzleMeta{
				ID:        mm.ID,
				Name:      mm.Name,
				Columns:   mm.Columns,
				Rows:      mm.Rows,
				CreatedAt: mm.CreatedAt,
			})
		}
	}
	slices.SortFunc(out, func(a, b domain.PuzzleMeta) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	return out, nil
}
