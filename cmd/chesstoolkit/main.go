package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/hailam/chesstoolkit/internal/board"
	"github.com/hailam/chesstoolkit/internal/shell"
	"github.com/hailam/chesstoolkit/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to work on")
	perftDepth = flag.Int("perft", 0, "run perft to the given depth and exit")
	divide     = flag.Bool("divide", false, "with -perft, print the node count below every root move")
	detailed   = flag.Bool("stats", false, "with -perft, break the leaf nodes down by move kind")
	listMoves  = flag.Bool("moves", false, "print the legal moves and exit")
	captures   = flag.Bool("captures", false, "print the legal captures and exit")
	useCache   = flag.Bool("cache", false, "with -perft, look up and store results in the database")
	hashMB     = flag.Int("hash", 0, "with -perft, size in MB of the in-memory perft hash table")
	dbDir      = flag.String("db", "", "database directory (default: platform data directory, \"none\" disables)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}
	if err := pos.Validate(); err != nil {
		log.Printf("Warning: %v", err)
	}

	switch {
	case *perftDepth > 0:
		var store *storage.Storage
		if *useCache {
			store = openStorage()
			if store != nil {
				defer store.Close()
			}
		}
		if err := perft(os.Stdout, pos, *perftDepth, store); err != nil {
			log.Print(err)
		}

	case *listMoves || *captures:
		g := pos.MoveGenerator()
		var moves board.MoveList
		if *captures {
			moves = g.GenerateCaptures(pos.SideToMove(), true)
		} else {
			moves = g.GenerateMoves(pos.SideToMove(), true)
		}
		moves = g.PromotionVariants(moves)
		sans := make([]string, len(moves))
		for i, m := range moves {
			sans[i] = pos.SAN(m)
		}
		fmt.Println(strings.Join(sans, " "))

	default:
		runShell(pos)
	}
}

func runShell(pos *board.Position) {
	opts := []shell.Option{shell.WithPosition(pos)}

	store := openStorage()
	if store != nil {
		defer store.Close()
		opts = append(opts, shell.WithStorage(store))

		if first, err := store.IsFirstLaunch(); err == nil && first {
			fmt.Println("Type \"help\" for a list of commands.")
			if err := store.MarkFirstLaunchComplete(); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
	}

	if err := shell.New(os.Stdin, os.Stdout, opts...).Run(); err != nil {
		log.Printf("Error reading input: %v", err)
	}
}

// openStorage opens the database named by -db or CHESSTOOLKIT_DB. Failing
// to open it is not fatal; the tool runs without persistence.
func openStorage() *storage.Storage {
	dir := *dbDir
	if dir == "" {
		dir = os.Getenv("CHESSTOOLKIT_DB")
	}

	var (
		store *storage.Storage
		err   error
	)
	switch dir {
	case "none":
		return nil
	case "":
		store, err = storage.NewStorage()
	default:
		store, err = storage.Open(dir)
	}
	if err != nil {
		log.Printf("Warning: storage not available: %v", err)
		return nil
	}
	return store
}
