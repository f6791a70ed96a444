// Command chessplay-book builds an opening book file from a JSON list of
// named openings in SAN.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/hailam/chessagent/internal/book"
	"github.com/hailam/chessagent/internal/storage"
)

var (
	inFlag      = flag.String("in", "", "openings JSON file (default: built-in openings)")
	outFlag     = flag.String("out", "", "book file to write (default: the user data directory)")
	workersFlag = flag.Int("workers", runtime.NumCPU(), "openings replayed in parallel")
)

func main() {
	flag.Parse()

	openings, err := loadOpenings(*inFlag)
	if err != nil {
		log.Fatal(err)
	}

	bk, err := book.Build(context.Background(), openings, *workersFlag)
	if err != nil {
		log.Fatal(err)
	}

	out := *outFlag
	if out == "" {
		if out, err = storage.GetBookPath(); err != nil {
			log.Fatal(err)
		}
	}
	if err := bk.SaveFile(out); err != nil {
		log.Fatal(err)
	}
	log.Printf("[BOOK] %d openings, %d positions written to %s", len(openings), bk.Size(), out)
}

func loadOpenings(path string) ([]book.Opening, error) {
	if path == "" {
		return book.DefaultOpenings()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return book.LoadOpenings(f)
}
