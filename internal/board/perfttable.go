package board

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const ptShardCount = 256
const ptShardMask = ptShardCount - 1

// PerftEntry caches the node count of a position at one depth.
type PerftEntry struct {
	Key   uint64 // Full Zobrist hash for verification
	Nodes uint64
	Depth int32
}

// PerftTable is a hash table of perft subtree counts keyed by Zobrist hash.
// Uses sharded locking so parallel perft workers can share it.
type PerftTable struct {
	entries []PerftEntry
	shards  [ptShardCount]sync.RWMutex
	size    uint64
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewPerftTable creates a table with the given size in MB.
func NewPerftTable(sizeMB int) *PerftTable {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries < 1 {
		numEntries = 1
	}

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &PerftTable{
		entries: make([]PerftEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up the node count of the position with the given hash at depth.
func (pt *PerftTable) Probe(hash uint64, depth int) (uint64, bool) {
	pt.probes.Add(1)

	idx := hash & pt.mask
	shard := idx & ptShardMask

	pt.shards[shard].RLock()
	entry := pt.entries[idx]
	pt.shards[shard].RUnlock()

	if entry.Key == hash && int(entry.Depth) == depth && depth > 0 {
		pt.hits.Add(1)
		return entry.Nodes, true
	}
	return 0, false
}

// Store saves a node count. Deeper entries are kept over shallower ones,
// as they save more work when hit.
func (pt *PerftTable) Store(hash uint64, depth int, nodes uint64) {
	idx := hash & pt.mask
	shard := idx & ptShardMask

	pt.shards[shard].Lock()
	entry := &pt.entries[idx]
	if entry.Key != hash || depth >= int(entry.Depth) {
		entry.Key = hash
		entry.Nodes = nodes
		entry.Depth = int32(depth)
	}
	pt.shards[shard].Unlock()
}

// Clear empties the table. It may run while other goroutines probe and
// store.
func (pt *PerftTable) Clear() {
	for shard := uint64(0); shard < ptShardCount; shard++ {
		pt.shards[shard].Lock()
		for i := shard; i < pt.size; i += ptShardCount {
			pt.entries[i] = PerftEntry{}
		}
		pt.shards[shard].Unlock()
	}
	pt.hits.Store(0)
	pt.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (pt *PerftTable) HitRate() float64 {
	probes := pt.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(pt.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (pt *PerftTable) Size() uint64 {
	return pt.size
}

// PerftHashed is Perft with subtree counts cached in pt. A nil table
// falls back to Perft.
func PerftHashed(p *Position, depth int, pt *PerftTable) uint64 {
	if pt == nil || depth <= 1 {
		return Perft(p, depth)
	}
	if nodes, ok := pt.Probe(p.hash, depth); ok {
		return nodes
	}

	var nodes uint64
	for _, m := range p.MoveGenerator().PromotionVariants(p.LegalMoves()) {
		p.apply(m, false)
		nodes += PerftHashed(p, depth-1, pt)
		p.undo()
	}
	pt.Store(p.hash, depth, nodes)
	return nodes
}
