package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != DifficultyMedium {
			t.Errorf("Expected medium difficulty")
		}
		if prefs.Agent != "minimax" {
			t.Errorf("Expected minimax agent, got %q", prefs.Agent)
		}
		if !prefs.UseBook {
			t.Errorf("Expected opening book enabled by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	ignoreTime := cmpopts.IgnoreFields(UserPreferences{}, "LastPlayed")
	if diff := cmp.Diff(DefaultPreferences(), prefs, ignoreTime); diff != "" {
		t.Errorf("empty database preferences (-want +got):\n%s", diff)
	}

	want := &UserPreferences{
		Username:    "alice",
		Agent:       "antimax",
		Difficulty:  DifficultyHard,
		MoveTime:    3 * time.Second,
		PlayerColor: ColorBlack,
	}
	if err := s.SavePreferences(want); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if diff := cmp.Diff(want, got, ignoreTime); diff != "" {
		t.Errorf("preferences (-want +got):\n%s", diff)
	}
	if got.LastPlayed.IsZero() {
		t.Error("LastPlayed not set on save")
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("still first launch after marking complete")
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	results := []GameResult{
		{Won: true, Agent: "random", Difficulty: DifficultyEasy, Duration: time.Minute},
		{Won: true, Agent: "minimax", Difficulty: DifficultyHard, Duration: time.Minute},
		{Draw: true, Agent: "minimax", Duration: time.Minute},
		{Agent: "minimax", Duration: time.Minute},
		{Won: true, Agent: "minimax", Difficulty: DifficultyHard, Duration: time.Minute},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	want := &GameStats{
		GamesPlayed:    5,
		Wins:           3,
		Losses:         1,
		Draws:          1,
		WinsByAgent:    map[string]int{"random": 1, "minimax": 2},
		WinsByDiff:     map[string]int{"easy": 1, "hard": 2},
		TotalPlayTime:  5 * time.Minute,
		LongestWinStrk: 2,
		CurrentStreak:  1,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
}

func TestSavedGame(t *testing.T) {
	s := openTest(t)

	if _, err := s.LoadGame(); !errors.Is(err, ErrNoSavedGame) {
		t.Fatalf("LoadGame on empty database: %v, want ErrNoSavedGame", err)
	}

	saved := &SavedGame{
		StartFEN:    "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:       []string{"e2e4", "e7e5", "g1f3"},
		PlayerColor: ColorBlack,
		Agent:       "minimax",
	}
	if err := s.SaveGame(saved); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadGame()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(saved, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("saved game (-want +got):\n%s", diff)
	}

	if err := s.ClearSavedGame(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadGame(); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("LoadGame after clear: %v, want ErrNoSavedGame", err)
	}
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SavePreferences(&UserPreferences{Username: "bob"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Username != "bob" {
		t.Errorf("Username = %q after reopen", prefs.Username)
	}
}

func TestDataPaths(t *testing.T) {
	t.Run("home override", func(t *testing.T) {
		home := filepath.Join(t.TempDir(), "agent")
		t.Setenv("CHESSAGENT_HOME", home)

		dir, err := GetDataDir()
		if err != nil {
			t.Fatalf("GetDataDir: %v", err)
		}
		if dir != home {
			t.Errorf("GetDataDir = %q, want %q", dir, home)
		}
		if _, err := os.Stat(home); err != nil {
			t.Errorf("data dir not created: %v", err)
		}

		bookPath, err := GetBookPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, "book.json"); bookPath != want {
			t.Errorf("GetBookPath = %q, want %q", bookPath, want)
		}

		dbDir, err := GetDatabaseDir()
		if err != nil {
			t.Fatal(err)
		}
		if fi, err := os.Stat(dbDir); err != nil || !fi.IsDir() {
			t.Errorf("database dir %q missing: %v", dbDir, err)
		}
		if filepath.Dir(dbDir) != home {
			t.Errorf("database dir %q not under %q", dbDir, home)
		}
	})

	t.Run("platform default", func(t *testing.T) {
		t.Setenv("CHESSAGENT_HOME", "")
		t.Setenv("XDG_DATA_HOME", t.TempDir())
		t.Setenv("APPDATA", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		dir, err := GetDataDir()
		if err != nil {
			t.Fatalf("GetDataDir: %v", err)
		}
		if filepath.Base(dir) != "chessagent" {
			t.Errorf("GetDataDir = %q, want a chessagent directory", dir)
		}
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("data dir not created: %v", err)
		}
	})
}
