// Chessagent - play chess against a search agent in the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/hailam/chessagent/internal/board"
	"github.com/hailam/chessagent/internal/book"
	"github.com/hailam/chessagent/internal/engine"
	"github.com/hailam/chessagent/internal/game"
	"github.com/hailam/chessagent/internal/storage"
	"github.com/hailam/chessagent/internal/termview"
)

var (
	agentFlag      = flag.String("agent", "", "opponent: random, minimax, antimax or control")
	colorFlag      = flag.String("color", "", "your color: white or black")
	difficultyFlag = flag.String("difficulty", "", "easy, medium or hard")
	moveTimeFlag   = flag.Duration("movetime", 0, "agent time per move (overrides difficulty)")
	fenFlag        = flag.String("fen", "", "start position")
	noBookFlag     = flag.Bool("nobook", false, "disable the opening book")
	noSaveFlag     = flag.Bool("nosave", false, "do not read or write preferences and saved games")
	verboseFlag    = flag.Bool("verbose", false, "log search progress")
)

const help = `commands:
  e2e4      move a piece (castle by moving the king two squares or onto the rook)
  Nf3       moves in SAN work too
  undo      take back your last move
  new       start a new game
  moves     list the moves played
  fen       print the position
  save      save the game and quit
  quit      quit (the game is saved)
  help      show this text`

func main() {
	flag.Parse()
	engine.Verbose = *verboseFlag
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	var db *storage.Storage
	if !*noSaveFlag {
		var err error
		if db, err = storage.NewStorage(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: storage unavailable: %v\n", err)
		} else {
			defer db.Close()
		}
	}

	prefs := loadPreferences(db)
	if err := applyFlags(prefs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sess, err := openSession(db, prefs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer sess.Close()

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)
	fmt.Printf("Game %s: you play %s against %s. Type help for commands.\n",
		color.CyanString(sess.ID), sess.Player(), sess.Agent())

	for {
		show(sess)
		if sess.IsOver() {
			finish(db, sess)
			if !ask(in, "Play again? [y/N] ") {
				return
			}
			sess.Reset()
			continue
		}

		if sess.StartAgent(ctx) {
			if _, ok, err := sess.Wait(ctx); err != nil || !ok {
				fmt.Println("the agent has no move")
				return
			}
			continue
		}

		fmt.Print("> ")
		if !in.Scan() {
			save(db, sess)
			return
		}
		if quit := command(db, sess, strings.TrimSpace(in.Text())); quit {
			return
		}
	}
}

// command runs one line of user input and reports whether to quit.
func command(db *storage.Storage, sess *game.Session, line string) bool {
	switch strings.ToLower(line) {
	case "":
	case "help", "?":
		fmt.Println(help)
	case "quit", "exit", "save":
		save(db, sess)
		return true
	case "new":
		sess.Reset()
	case "undo", "takeback":
		if err := sess.Takeback(); err != nil {
			color.Red("%v", err)
		}
	case "moves":
		b := board.MustFromFEN(sess.Save().StartFEN)
		fmt.Println(termview.MoveList(sess.SANMoves(), b.FullMoveNumber(), b.Turn() == board.Black))
	case "fen":
		fmt.Println(sess.Board().ToFEN())
	default:
		m, err := parseMove(sess.Board(), line)
		if err != nil {
			color.Red("%v", err)
			return false
		}
		if err := sess.Move(m.From, m.To); err != nil {
			color.Red("%v", err)
		}
	}
	return false
}

// parseMove accepts coordinate notation or SAN.
func parseMove(b *board.Board, s string) (board.Move, error) {
	if m, err := board.ParseMove(s); err == nil {
		return m, nil
	}
	return b.ParseSAN(s)
}

func show(sess *game.Session) {
	fmt.Println()
	termview.Render(os.Stdout, sess.Board(), termview.Options{
		Flipped:  sess.Player() == board.Black,
		LastMove: sess.LastMove(),
	})
	fmt.Println(sess.Message())
}

func finish(db *storage.Storage, sess *game.Session) {
	if sess.Agent() == engine.Control || db == nil {
		return
	}
	r := sess.GameResult()
	switch {
	case r.Draw:
		color.Yellow("Draw.")
	case r.Won:
		color.Green("You win!")
	default:
		color.Red("You lose.")
	}
	if err := db.RecordGame(r); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record game: %v\n", err)
	}
	if err := db.ClearSavedGame(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not clear saved game: %v\n", err)
	}
	if stats, err := db.LoadStats(); err == nil {
		fmt.Printf("played %d, won %d, lost %d, drawn %d (%.0f%%)\n",
			stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws, stats.GetWinRate())
	}
}

func save(db *storage.Storage, sess *game.Session) {
	if db == nil {
		return
	}
	if sess.IsOver() || len(sess.Moves()) == 0 {
		if err := db.ClearSavedGame(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not clear saved game: %v\n", err)
		}
		return
	}
	if err := db.SaveGame(sess.Save()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save game: %v\n", err)
		return
	}
	fmt.Println("game saved")
}

func ask(in *bufio.Scanner, prompt string) bool {
	fmt.Print(prompt)
	if !in.Scan() {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(in.Text())), "y")
}

func loadPreferences(db *storage.Storage) *storage.UserPreferences {
	if db == nil {
		return storage.DefaultPreferences()
	}
	prefs, err := db.LoadPreferences()
	if err != nil {
		log.Printf("[STORAGE] failed to load preferences: %v", err)
		return storage.DefaultPreferences()
	}
	return prefs
}

// applyFlags overrides stored preferences with the flags given.
func applyFlags(prefs *storage.UserPreferences) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "agent":
			if _, perr := engine.ParseKind(*agentFlag); perr != nil {
				err = perr
			}
			prefs.Agent = *agentFlag
		case "color":
			switch strings.ToLower(*colorFlag) {
			case "white", "w":
				prefs.PlayerColor = storage.ColorWhite
			case "black", "b":
				prefs.PlayerColor = storage.ColorBlack
			default:
				err = fmt.Errorf("unknown color %q", *colorFlag)
			}
		case "difficulty":
			d, perr := engine.ParseDifficulty(*difficultyFlag)
			if perr != nil {
				err = perr
			}
			prefs.Difficulty = storage.Difficulty(d)
		case "movetime":
			prefs.MoveTime = *moveTimeFlag
		case "nobook":
			prefs.UseBook = !*noBookFlag
		}
	})
	return err
}

// openSession resumes the saved game unless a new one was asked for on the
// command line.
func openSession(db *storage.Storage, prefs *storage.UserPreferences) (*game.Session, error) {
	kind, err := engine.ParseKind(prefs.Agent)
	if err != nil {
		kind = engine.Minimax
	}
	cfg := game.Config{
		Agent:      kind,
		Difficulty: engine.Difficulty(prefs.Difficulty),
		Player:     board.White,
		StartFEN:   *fenFlag,
	}
	if prefs.PlayerColor == storage.ColorBlack {
		cfg.Player = board.Black
	}
	if prefs.MoveTime > 0 {
		cfg.Engine.Limits = engine.SearchLimits{MoveTime: prefs.MoveTime}
	}
	if prefs.UseBook {
		cfg.Engine.Book = loadBook()
	}

	if db != nil {
		defer func() {
			if err := db.SavePreferences(prefs); err != nil {
				log.Printf("[STORAGE] failed to save preferences: %v", err)
			}
		}()
		if flag.NFlag() == 0 || (flag.NFlag() == 1 && *verboseFlag) {
			saved, err := db.LoadGame()
			switch {
			case err == nil:
				sess, err := game.Restore(saved, cfg)
				if err == nil {
					fmt.Printf("Resuming the game saved %s.\n", saved.SavedAt.Format(time.DateTime))
					return sess, nil
				}
				log.Printf("[STORAGE] discarding saved game: %v", err)
			case !errors.Is(err, storage.ErrNoSavedGame):
				log.Printf("[STORAGE] failed to load saved game: %v", err)
			}
		}
	}
	return game.NewSession(cfg)
}

// loadBook prefers a book built with chessplay-book over the built-in one.
func loadBook() *book.Book {
	path, err := storage.GetBookPath()
	if err == nil {
		if bk, err := book.LoadFile(path); err == nil {
			log.Printf("[BOOK] loaded %d positions from %s", bk.Size(), path)
			return bk
		}
	}
	return book.Default()
}
