package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences   = "preferences"
	keyStats         = "stats"
	keyFirstLaunch   = "first_launch"
	prefixPerft      = "perft/"
	prefixPosition   = "position/"
	defaultPromotion = "q"
	defaultNotation  = "short"
	maxNameLen       = 64
)

// ErrNotFound is returned when a named record does not exist.
var ErrNotFound = errors.New("not found")

// Preferences stores user settings of the shell.
type Preferences struct {
	PromotionPiece string    `json:"promotion_piece"` // q, r, b or n
	Notation       string    `json:"notation"`        // short or long
	ShowBoard      bool      `json:"show_board"`
	LastUsed       time.Time `json:"last_used"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		PromotionPiece: defaultPromotion,
		Notation:       defaultNotation,
		ShowBoard:      false,
		LastUsed:       time.Now(),
	}
}

// Stats stores usage statistics.
type Stats struct {
	Sessions       int           `json:"sessions"`
	MovesPlayed    int           `json:"moves_played"`
	PerftRuns      int           `json:"perft_runs"`
	PerftNodes     uint64        `json:"perft_nodes"`
	PerftTime      time.Duration `json:"perft_time"`
	CacheHits      int           `json:"cache_hits"`
	LongestSession int           `json:"longest_session_moves"`
}

// NewStats returns empty statistics
func NewStats() *Stats {
	return &Stats{}
}

// NodesPerSecond returns the average perft speed over all recorded runs.
func (s *Stats) NodesPerSecond() float64 {
	if s.PerftTime <= 0 {
		return 0
	}
	return float64(s.PerftNodes) / s.PerftTime.Seconds()
}

// SessionResult summarises one shell session.
type SessionResult struct {
	Moves      int
	PerftRuns  int
	PerftNodes uint64
	PerftTime  time.Duration
	CacheHits  int
}

// PerftRecord is a cached perft result.
type PerftRecord struct {
	FEN        string        `json:"fen"`
	Depth      int           `json:"depth"`
	Nodes      uint64        `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// SavedPosition is a position stored under a name.
type SavedPosition struct {
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	Session string    `json:"session"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// putJSON stores v as JSON under key.
func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON loads key into v. found is false when the key does not exist.
func (s *Storage) getJSON(key string, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastUsed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.getJSON(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves usage statistics
func (s *Storage) SaveStats(stats *Stats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads usage statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	_, err := s.getJSON(keyStats, stats)
	return stats, err
}

// RecordSession adds a finished session to the statistics.
func (s *Storage) RecordSession(result SessionResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Sessions++
	stats.MovesPlayed += result.Moves
	stats.PerftRuns += result.PerftRuns
	stats.PerftNodes += result.PerftNodes
	stats.PerftTime += result.PerftTime
	stats.CacheHits += result.CacheHits
	if result.Moves > stats.LongestSession {
		stats.LongestSession = result.Moves
	}

	return s.SaveStats(stats)
}

func perftKey(fen string, depth int) string {
	return fmt.Sprintf("%s%02d/%s", prefixPerft, depth, fen)
}

// SavePerft caches a perft result.
func (s *Storage) SavePerft(rec PerftRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	return s.putJSON(perftKey(rec.FEN, rec.Depth), rec)
}

// LoadPerft returns the cached perft result for fen at depth.
func (s *Storage) LoadPerft(fen string, depth int) (PerftRecord, bool, error) {
	var rec PerftRecord
	found, err := s.getJSON(perftKey(fen, depth), &rec)
	return rec, found, err
}

func validName(name string) error {
	if name == "" || len(name) > maxNameLen || strings.ContainsAny(name, "/ \t\n") {
		return fmt.Errorf("invalid position name %q", name)
	}
	return nil
}

// SavePosition stores a position under its name, replacing any previous one.
func (s *Storage) SavePosition(p SavedPosition) error {
	if err := validName(p.Name); err != nil {
		return err
	}
	if p.SavedAt.IsZero() {
		p.SavedAt = time.Now()
	}
	return s.putJSON(prefixPosition+p.Name, p)
}

// LoadPosition returns the position saved under name.
func (s *Storage) LoadPosition(name string) (SavedPosition, error) {
	var p SavedPosition
	found, err := s.getJSON(prefixPosition+name, &p)
	if err != nil {
		return p, err
	}
	if !found {
		return p, fmt.Errorf("position %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// DeletePosition removes the position saved under name.
func (s *Storage) DeletePosition(name string) error {
	if _, err := s.LoadPosition(name); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixPosition + name))
	})
}

// ListPositions returns all saved positions sorted by name.
func (s *Storage) ListPositions() ([]SavedPosition, error) {
	var out []SavedPosition
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixPosition)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p SavedPosition
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
