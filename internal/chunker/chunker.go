package chunker

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// DefaultSize is the number of records per chunk file
	DefaultSize = 1000
	// DefaultSeed makes the shuffle reproducible between runs
	DefaultSeed int64 = 42
	// RecordType is the type label carried by every record
	RecordType = "Аббревиатура"
)

// ErrInvalidSize is returned for a chunk size below one
var ErrInvalidSize = errors.New("chunk size must be positive")

// Record is one entry of a chunk file
type Record struct {
	Origin        string `json:"origin"`
	Transcription string `json:"transcription"`
	Type          string `json:"type"`
}

// NewRecord creates a record with an empty transcription
func NewRecord(origin string) Record {
	return Record{Origin: origin, Type: RecordType}
}

// Shuffle returns a permutation of tokens determined only by seed.
// The input slice is left untouched.
func Shuffle(tokens []string, seed int64) []string {
	out := append([]string(nil), tokens...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Partition splits tokens into consecutive groups of at most size elements
func Partition(tokens []string, size int) ([][]string, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	groups := make([][]string, 0, (len(tokens)+size-1)/size)
	for start := 0; start < len(tokens); start += size {
		end := min(start+size, len(tokens))
		groups = append(groups, tokens[start:end])
	}
	return groups, nil
}

// Records expands a group of tokens into records
func Records(group []string) []Record {
	records := make([]Record, len(group))
	for i, token := range group {
		records[i] = NewRecord(token)
	}
	return records
}
