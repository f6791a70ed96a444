// Package book implements the opening book: a position hash to move lookup
// built offline by replaying named openings.
package book

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/hailam/chessagent/internal/board"
)

// Entry is one book continuation.
type Entry struct {
	Move board.Move
	Name string
}

// Book maps position hashes to the continuations recorded for them.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{
		entries: make(map[uint64][]Entry),
	}
}

// Add records a continuation for the position hash. A move already listed for
// the hash is not added twice.
func (b *Book) Add(hash uint64, e Entry) {
	for _, old := range b.entries[hash] {
		if old.Move == e.Move {
			return
		}
	}
	b.entries[hash] = append(b.entries[hash], e)
}

// Size returns the number of positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entries returns a copy of the continuations recorded for the position.
func (b *Book) Entries(pos *board.Board) []Entry {
	if b == nil {
		return nil
	}
	entries := b.entries[pos.Hash()]
	result := make([]Entry, len(entries))
	copy(result, entries)
	return result
}

// Probe looks up the position and picks one of its legal continuations
// uniformly at random. A nil rng uses the global source.
func (b *Book) Probe(pos *board.Board, rng *rand.Rand) (Entry, bool) {
	if b == nil {
		return Entry{}, false
	}

	entries := b.entries[pos.Hash()]
	legal := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if verify(pos, e.Move) {
			legal = append(legal, e)
		}
	}
	if len(legal) == 0 {
		return Entry{}, false
	}

	var i int
	if rng != nil {
		i = rng.Intn(len(legal))
	} else {
		i = rand.Intn(len(legal))
	}
	return legal[i], true
}

// verify ensures the move is legal for the side to move. The hash does not
// cover the side to move, so this also rejects entries recorded for the other
// side.
func verify(pos *board.Board, m board.Move) bool {
	return pos.IsLegal(m)
}

// jsonEntry is the serialized form of an Entry.
type jsonEntry struct {
	From string `json:"from"`
	To   string `json:"to"`
	Name string `json:"name"`
}

// Save writes the book as JSON: an object keyed by decimal position hash.
func (b *Book) Save(w io.Writer) error {
	out := make(map[string][]jsonEntry, len(b.entries))
	for hash, entries := range b.entries {
		list := make([]jsonEntry, len(entries))
		for i, e := range entries {
			list[i] = jsonEntry{From: e.Move.From.String(), To: e.Move.To.String(), Name: e.Name}
		}
		out[strconv.FormatUint(hash, 10)] = list
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(out)
}

// Load reads a book written by Save.
func Load(r io.Reader) (*Book, error) {
	var in map[string][]jsonEntry
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode book: %w", err)
	}

	book := New()
	for key, list := range in {
		hash, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("book key %q: %w", key, err)
		}
		for _, je := range list {
			from, err := board.ParseLocation(je.From)
			if err != nil {
				return nil, fmt.Errorf("book entry %q: %w", key, err)
			}
			to, err := board.ParseLocation(je.To)
			if err != nil {
				return nil, fmt.Errorf("book entry %q: %w", key, err)
			}
			book.Add(hash, Entry{Move: board.Move{From: from, To: to}, Name: je.Name})
		}
	}
	return book, nil
}

// LoadFile loads a book file written by SaveFile.
func LoadFile(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// SaveFile writes the book to filename.
func (b *Book) SaveFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := b.Save(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
