package id

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// ID is 16 bytes, big-endian: [8 bytes unix-ms timestamp][8 bytes sequence].
// Two IDs from the same Generator never compare equal, and later IDs always
// sort after earlier ones.
type ID [16]byte

// Bytes returns the raw 16-byte representation.
func (i ID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, i[:])
	return b
}

// String returns the 32-character lowercase hex form.
func (i ID) String() string { return hex.EncodeToString(i[:]) }

// TimeMs returns the embedded millisecond timestamp.
func (i ID) TimeMs() int64 { return int64(binary.BigEndian.Uint64(i[0:8])) }

// Parse decodes the hex form produced by String.
func Parse(s string) (ID, error) {
	var out ID
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("id: parse %q: %w", s, err)
	}
	if len(b) != 16 {
		return out, fmt.Errorf("id: parse %q: want 16 bytes, got %d", s, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Generator hands out monotonically increasing IDs. Safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    uint64
}

// NewGenerator returns a Generator seeded from the wall clock on first use.
func NewGenerator() *Generator { return &Generator{} }

// nowMs is swapped out in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new ID. A clock that runs backwards is clamped to the last
// observed millisecond so ordering is preserved.
func (g *Generator) Next() ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := nowMs()
	if ms <= g.lastMs {
		ms = g.lastMs
		g.seq++
	} else {
		g.seq = 0
	}
	g.lastMs = ms

	var out ID
	binary.BigEndian.PutUint64(out[0:8], uint64(ms))
	binary.BigEndian.PutUint64(out[8:16], g.seq)
	return out
}
