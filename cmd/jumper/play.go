package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/platform-jumper/internal/platform/tui"
	"github.com/vovakirdan/platform-jumper/internal/storage"
)

var flagRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start an interactive game in the terminal.

Controls:
  space / up / w   jump (up to the configured number of charges)
  left / a         lean left
  right / d        lean right
  down / s         stop leaning
  p / esc          pause
  r                restart
  ctrl+s           save a screenshot
  q                quit

With --record the session is stored in the replays database when you quit,
and can be watched or verified later with the replays command.

Examples:
  jumper play
  jumper play --seed 42
  jumper play --record --config ./hard.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session to the replays database")
}

func runPlay(cmd *cobra.Command, args []string) {
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open the store before playing so a bad --db fails fast.
	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	termW, termH := terminalSize()
	seed := resolveSeed()
	logger.Info("session starting", "seed", seed, "record", flagRecord)

	rec, err := tui.Play(tui.Options{
		Config: cfg,
		Seed:   seed,
		Logger: logger,
		Width:  termW,
		Height: termH,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if store == nil {
		return
	}
	if rec.Frames == 0 {
		fmt.Println("Nothing to record.")
		return
	}
	if err := store.SaveReplay(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save replay: %v\n", err)
		os.Exit(1)
	}
	logger.Info("replay saved", "id", rec.ID, "score", rec.Final.Score)
	fmt.Printf("Saved replay %s (score %d, level %d)\n", shortID(rec.ID), rec.Final.Score, rec.Final.Level)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// resolveSeed returns --seed, or a time based seed when it is zero.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
