// Command picross-sim batch-generates puzzles and reports aggregate
// statistics: reveal rate, shape distribution, and how many lines come
// out of the generator already complete.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"svw.info/picross/internal/domain"
	"svw.info/picross/internal/generator"
	"svw.info/picross/internal/tally"
)

func sum[T constraints.Integer](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}

func percent[T constraints.Integer](part, whole T) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

type aggregate struct {
	mu            sync.Mutex
	pieces        int
	revealed      int
	shapeCounts   []int
	completeLines int
	totalLines    int
}

func (a *aggregate) add(pieces []domain.Piece, columns, rows int) {
	revealed := 0
	shapes := make([]int, domain.NumShapes)
	for i := range pieces {
		if pieces[i].Revealed {
			revealed++
		}
		shapes[int(pieces[i].Value)-1]++
	}

	complete := 0
	lines := 0
	axes := []struct {
		axis domain.Axis
		span int
	}{{domain.Column, columns}, {domain.Row, rows}}
	for _, ax := range axes {
		for coord := domain.NumShapes; coord < domain.NumShapes+ax.span; coord++ {
			lines++
			done := true
			for _, s := range domain.Shapes {
				if tally.Count(pieces, ax.axis, coord, s) != tally.CountSelected(pieces, ax.axis, coord, s) {
					done = false
					break
				}
			}
			if done {
				complete++
			}
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pieces += len(pieces)
	a.revealed += revealed
	for i, n := range shapes {
		a.shapeCounts[i] += n
	}
	a.completeLines += complete
	a.totalLines += lines
}

func main() {
	n := flag.Int("n", 1000, "number of puzzles to generate")
	columns := flag.Int("columns", 10, "puzzle columns")
	rows := flag.Int("rows", 10, "puzzle rows")
	revealProb := flag.Float64("reveal-probability", generator.DefaultRevealProbability,
		"per-piece hide threshold")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent generators")
	seed := flag.Int64("seed", time.Now().UnixNano(), "base seed; puzzle i uses seed+i")
	flag.Parse()

	gen := &generator.RandomGenerator{RevealProbability: *revealProb}
	agg := &aggregate{shapeCounts: make([]int, domain.NumShapes)}
	bar := progressbar.Default(int64(*n), "generating")

	grp, ctx := errgroup.WithContext(context.Background())
	grp.SetLimit(*workers)
	for i := 0; i < *n; i++ {
		i := i
		grp.Go(func() error {
			pieces, _, err := gen.Generate(ctx, *seed+int64(i), *columns, *rows)
			if err != nil {
				return err
			}
			agg.add(pieces, *columns, *rows)
			return bar.Add(1)
		})
	}
	if err := grp.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "generation failed:", err)
		os.Exit(1)
	}

	colorstring.Printf("\n[bold]%d puzzles, %dx%d, reveal threshold %.2f[reset]\n",
		*n, *columns, *rows, *revealProb)
	colorstring.Printf("pieces:    %d ([green]%.1f%%[reset] revealed)\n",
		agg.pieces, percent(agg.revealed, agg.pieces))
	for i, s := range domain.Shapes {
		colorstring.Printf("%-9s  %d ([cyan]%.1f%%[reset])\n",
			s.String()+":", agg.shapeCounts[i], percent(agg.shapeCounts[i], sum(agg.shapeCounts)))
	}
	colorstring.Printf("lines complete at start: %d/%d ([yellow]%.1f%%[reset])\n",
		agg.completeLines, agg.totalLines, percent(agg.completeLines, agg.totalLines))
}
