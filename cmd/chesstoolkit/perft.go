package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chesstoolkit/internal/board"
	"github.com/hailam/chesstoolkit/internal/storage"
)

// perft counts the nodes below pos and writes the result to w.
func perft(w io.Writer, pos *board.Position, depth int, store *storage.Storage) error {
	p := message.NewPrinter(language.English)
	fen := pos.ToFEN()

	if store != nil && !*divide && !*detailed {
		rec, found, err := store.LoadPerft(fen, depth)
		if err != nil {
			return err
		}
		if found {
			p.Fprintf(w, "d=%d nodes=%d (cached %s)\n", depth, rec.Nodes, rec.RecordedAt.Format(time.RFC3339))
			return nil
		}
	}

	var table *board.PerftTable
	if *hashMB > 0 && !*detailed {
		table = board.NewPerftTable(*hashMB)
	}

	start := time.Now()
	stats, roots, err := runPerftParallel(pos, depth, *detailed, table)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if *divide {
		for _, e := range roots {
			p.Fprintf(w, "%s: %d\n", e.Move, e.Nodes)
		}
	}

	rate := 0
	if elapsed > 0 {
		rate = int(float64(stats.Nodes) / elapsed.Seconds())
	}
	if *detailed {
		p.Fprintf(w, "d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)\n",
			depth, stats.Nodes, rate, stats.Captures, stats.EnPassant, stats.Castles, stats.Promotions, stats.Checks, elapsed.Seconds())
	} else {
		p.Fprintf(w, "d=%d nodes=%d rate=%dn/s (%.3fs elapsed)\n", depth, stats.Nodes, rate, elapsed.Seconds())
	}
	if table != nil {
		fmt.Fprintf(w, "hash hit rate %.1f%%\n", table.HitRate())
	}

	if store != nil {
		return store.SavePerft(storage.PerftRecord{FEN: fen, Depth: depth, Nodes: stats.Nodes, Elapsed: elapsed})
	}
	return nil
}

// runPerftParallel searches the subtree of every root move on its own copy
// of the position. The workers share table when it is not nil.
func runPerftParallel(pos *board.Position, depth int, withStats bool, table *board.PerftTable) (board.PerftStats, []board.DivideEntry, error) {
	if depth <= 1 {
		var stats board.PerftStats
		if withStats {
			stats = board.PerftDetailed(pos, depth)
		} else {
			stats.Nodes = board.Perft(pos, depth)
		}
		return stats, board.Divide(pos, depth), nil
	}

	g := pos.MoveGenerator()
	moves := g.PromotionVariants(pos.LegalMoves())

	var (
		mu    sync.Mutex
		total board.PerftStats
		eg    errgroup.Group
	)
	roots := make([]board.DivideEntry, len(moves))
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, m := range moves {
		eg.Go(func() error {
			child := pos.Copy()
			if !child.PlayMove(m, false) {
				return fmt.Errorf("root move %s rejected", m)
			}

			var s board.PerftStats
			if withStats {
				s = board.PerftDetailed(child, depth-1)
			} else {
				s.Nodes = board.PerftHashed(child, depth-1, table)
			}
			roots[i] = board.DivideEntry{Move: m.String(), Nodes: s.Nodes}

			mu.Lock()
			total.Add(s)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return board.PerftStats{}, nil, err
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Move < roots[j].Move })
	return total, roots, nil
}
