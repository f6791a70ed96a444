// Command chessplay-arena plays agents against each other and reports the
// results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessagent/internal/board"
	"github.com/hailam/chessagent/internal/book"
	"github.com/hailam/chessagent/internal/engine"
	"github.com/hailam/chessagent/internal/storage"
	"github.com/hailam/chessagent/internal/termview"
)

var (
	whiteFlag    = flag.String("white", "minimax", "agent playing White (random, minimax, antimax)")
	blackFlag    = flag.String("black", "random", "agent playing Black (random, minimax, antimax)")
	gamesFlag    = flag.Int("games", 4, "number of games")
	parallelFlag = flag.Int("parallel", 2, "games played at once")
	depthFlag    = flag.Int("depth", 3, "search depth (0 = time only)")
	timeFlag     = flag.Duration("movetime", 500*time.Millisecond, "time per move")
	maxPlyFlag   = flag.Int("maxply", 300, "adjudicate a draw after this many plies")
	bookFlag     = flag.Bool("book", true, "use the opening book")
	seedFlag     = flag.Int64("seed", 0, "random seed (0 = time based)")
	fenFlag      = flag.String("fen", board.StartFEN, "start position")
	statsFlag    = flag.String("stats", "", "badger directory to record White's results in")
	quietFlag    = flag.Bool("quiet", false, "do not print boards")
	verboseFlag  = flag.Bool("verbose", false, "log every search depth")
)

// result is one finished game.
type result struct {
	name  string
	final *board.Board
	sans  []string
	state board.State
	plies int
	took  time.Duration
}

func main() {
	flag.Parse()
	engine.Verbose = *verboseFlag

	white, err := engine.ParseKind(*whiteFlag)
	if err != nil {
		log.Fatal(err)
	}
	black, err := engine.ParseKind(*blackFlag)
	if err != nil {
		log.Fatal(err)
	}
	if white == engine.Control || black == engine.Control {
		log.Fatal("control agents cannot play in the arena")
	}
	if _, err := board.FromFEN(*fenFlag); err != nil {
		log.Fatal(err)
	}

	opts := engine.Options{
		Limits: engine.SearchLimits{Depth: *depthFlag, MoveTime: *timeFlag},
		Seed:   *seedFlag,
	}
	if *bookFlag {
		opts.Book = book.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := match{white: white, black: black, opts: opts, fen: *fenFlag, maxPly: *maxPlyFlag}

	log.Printf("[ARENA] %d games, %s vs %s, %d at a time", *gamesFlag, white, black, *parallelFlag)
	results, err := runArena(ctx, m, *gamesFlag, *parallelFlag)
	if err != nil {
		log.Fatal(err)
	}

	report(results, m)

	if *statsFlag != "" {
		if err := recordStats(*statsFlag, results, white); err != nil {
			log.Fatal(err)
		}
	}
}

// match is the setup shared by every game of an arena run.
type match struct {
	white, black engine.Kind
	opts         engine.Options
	fen          string
	maxPly       int
}

func runArena(ctx context.Context, m match, games, parallel int) ([]result, error) {
	results := make([]result, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < games; i++ {
		g.Go(func() error {
			gm := m
			if gm.opts.Seed != 0 {
				gm.opts.Seed += int64(i) * 2
			}
			r, err := playGame(ctx, gm)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playGame plays one game. Every game owns its agents and board.
func playGame(ctx context.Context, m match) (result, error) {
	name := petname.Generate(2, "-")
	b, err := board.FromFEN(m.fen)
	if err != nil {
		return result{}, err
	}

	blackOpts := m.opts
	if blackOpts.Seed != 0 {
		blackOpts.Seed++
	}
	agents := [2]engine.Agent{
		board.White: engine.New(m.white, m.opts),
		board.Black: engine.New(m.black, blackOpts),
	}

	start := time.Now()
	var sans []string
	for ply := 0; ply < m.maxPly && !b.IsOver(); ply++ {
		if err := ctx.Err(); err != nil {
			return result{}, err
		}
		mv, ok := agents[b.Turn()].GetMove(ctx, b)
		if !ok {
			break
		}
		if !b.IsLegal(mv) {
			return result{}, fmt.Errorf("game %s: %s played illegal move %s in %s", name, b.Turn(), mv, b.ToFEN())
		}
		sans = append(sans, b.SAN(mv))
		b.MovePiece(mv.From, mv.To, true)
	}

	log.Printf("[ARENA] %s finished after %d plies: %s", name, len(sans), b.State())
	return result{
		name:  name,
		final: b,
		sans:  sans,
		state: b.State(),
		plies: len(sans),
		took:  time.Since(start),
	}, nil
}

func report(results []result, m match) {
	white, black := m.white, m.black
	win := color.New(color.FgGreen, color.Bold)
	loss := color.New(color.FgRed, color.Bold)
	draw := color.New(color.FgYellow)

	start := board.MustFromFEN(m.fen)
	var w, l, d int
	for _, r := range results {
		fmt.Printf("\n%s (%d plies, %v)\n", color.CyanString(r.name), r.plies, r.took.Round(time.Millisecond))
		if !*quietFlag {
			termview.Render(os.Stdout, r.final, termview.Options{})
		}
		fmt.Println(termview.MoveList(r.sans, start.FullMoveNumber(), start.Turn() == board.Black))

		switch {
		case r.state.Kind == board.Checkmate && r.state.Color == board.Black:
			w++
			win.Printf("%s (White) wins\n", white)
		case r.state.Kind == board.Checkmate:
			l++
			loss.Printf("%s (Black) wins\n", black)
		default:
			d++
			draw.Printf("draw: %s\n", r.state)
		}
	}

	fmt.Printf("\n%s vs %s: ", white, black)
	win.Printf("+%d ", w)
	loss.Printf("-%d ", l)
	draw.Printf("=%d\n", d)
}

func recordStats(dir string, results []result, white engine.Kind) error {
	db, err := storage.Open(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, r := range results {
		gr := storage.GameResult{
			Won:      r.state.Kind == board.Checkmate && r.state.Color == board.Black,
			Draw:     r.state.Kind != board.Checkmate,
			Agent:    white.String(),
			Duration: r.took,
		}
		if err := db.RecordGame(gr); err != nil {
			return err
		}
	}
	log.Printf("[ARENA] recorded %d games in %s", len(results), dir)
	return nil
}
