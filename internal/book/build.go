package book

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessagent/internal/board"
)

// Opening is a named opening line in SAN.
type Opening struct {
	Name  string   `json:"name"`
	Code  string   `json:"code"`
	Moves []string `json:"moves"`
}

// LoadOpenings decodes a JSON array of openings.
func LoadOpenings(r io.Reader) ([]Opening, error) {
	var openings []Opening
	if err := json.NewDecoder(r).Decode(&openings); err != nil {
		return nil, fmt.Errorf("decode openings: %w", err)
	}
	return openings, nil
}

type record struct {
	hash  uint64
	entry Entry
}

// replay plays an opening from the starting position and returns, for every
// prefix position, the move the opening continues with.
func replay(o Opening) ([]record, error) {
	pos := board.NewBoard()
	records := make([]record, 0, len(o.Moves))
	for i, san := range o.Moves {
		m, err := pos.ParseSAN(san)
		if err != nil {
			return nil, fmt.Errorf("opening %q move %d: %w", o.Name, i+1, err)
		}
		records = append(records, record{hash: pos.Hash(), entry: Entry{Move: m, Name: o.Name}})
		pos.MovePiece(m.From, m.To, false)
	}
	return records, nil
}

// Build replays the openings on up to workers goroutines and merges the
// results in input order. The first replay error cancels the build.
func Build(ctx context.Context, openings []Opening, workers int) (*Book, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([][]record, len(openings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, o := range openings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := replay(o)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	book := New()
	for _, records := range results {
		for _, r := range records {
			book.Add(r.hash, r.entry)
		}
	}
	return book, nil
}

//go:embed openings.json
var defaultOpenings []byte

var (
	defaultOnce sync.Once
	defaultBook *Book
)

// Default returns the book built from the embedded openings. It is built on
// first use and shared read-only afterwards.
func Default() *Book {
	defaultOnce.Do(func() {
		openings, err := DefaultOpenings()
		if err == nil {
			defaultBook, err = Build(context.Background(), openings, 4)
		}
		if err != nil {
			log.Printf("[BOOK] default book unavailable: %v", err)
			defaultBook = New()
			return
		}
		log.Printf("[BOOK] loaded %d openings, %d positions", len(openings), defaultBook.Size())
	})
	return defaultBook
}

// DefaultOpenings decodes the embedded openings.
func DefaultOpenings() ([]Opening, error) {
	var openings []Opening
	if err := json.Unmarshal(defaultOpenings, &openings); err != nil {
		return nil, fmt.Errorf("decode embedded openings: %w", err)
	}
	return openings, nil
}
