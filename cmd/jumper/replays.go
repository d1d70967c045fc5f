package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/platform-jumper/internal/jumper"
	"github.com/vovakirdan/platform-jumper/internal/platform/tui"
	"github.com/vovakirdan/platform-jumper/internal/replay"
	"github.com/vovakirdan/platform-jumper/internal/storage"
)

var (
	flagListLimit int
	flagListOrder string
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Manage recorded runs",
	Long: `List, inspect, watch, verify, export and import recorded runs.

Replays are identified by their id; any unique prefix of an id works.

Examples:
  jumper replays list
  jumper replays list --order score --limit 5
  jumper replays watch 3f2a
  jumper replays run 3f2a
  jumper replays export 3f2a run.yaml
  jumper replays import run.yaml`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	Run:   withStore(runReplaysList),
}

var replaysShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the details of a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   withStore(runReplaysShow),
}

var replaysRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Replay a run headlessly and verify its final state",
	Args:  cobra.ExactArgs(1),
	Run:   withStore(runReplaysRun),
}

var replaysWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Watch a recorded run in the terminal",
	Args:  cobra.ExactArgs(1),
	Run:   withStore(runReplaysWatch),
}

var replaysBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recorded runs and pick one to watch",
	Args:  cobra.NoArgs,
	Run:   withStore(runReplaysBrowse),
}

var replaysExportCmd = &cobra.Command{
	Use:   "export <id> [file]",
	Short: "Write a recorded run as YAML to a file or stdout",
	Args:  cobra.RangeArgs(1, 2),
	Run:   withStore(runReplaysExport),
}

var replaysImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a run exported with replays export",
	Args:  cobra.ExactArgs(1),
	Run:   withStore(runReplaysImport),
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   withStore(runReplaysDelete),
}

func init() {
	replaysListCmd.Flags().IntVar(&flagListLimit, "limit", 20, "Maximum number of runs to list")
	replaysListCmd.Flags().StringVar(&flagListOrder, "order", "recent", "Sort order: recent or score")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysShowCmd)
	replaysCmd.AddCommand(replaysRunCmd)
	replaysCmd.AddCommand(replaysWatchCmd)
	replaysCmd.AddCommand(replaysBrowseCmd)
	replaysCmd.AddCommand(replaysExportCmd)
	replaysCmd.AddCommand(replaysImportCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

// withStore opens the replays database around a subcommand and reports
// its error.
func withStore(fn func(store *storage.Store, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		err = fn(store, args)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func loadReplay(store *storage.Store, prefix string) (replay.Recording, error) {
	id, err := store.ResolveID(prefix)
	if err != nil {
		return replay.Recording{}, err
	}
	return store.Replay(id)
}

func parseOrder(s string) (storage.Order, error) {
	switch strings.ToLower(s) {
	case "recent", "":
		return storage.OrderRecent, nil
	case "score":
		return storage.OrderScore, nil
	default:
		return 0, fmt.Errorf("unknown order %q (want recent or score)", s)
	}
}

func runReplaysList(store *storage.Store, args []string) error {
	order, err := parseOrder(flagListOrder)
	if err != nil {
		return err
	}
	entries, err := store.ListReplays(order, flagListLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No replays recorded yet. Use 'jumper play --record' to record one.")
		return nil
	}

	fmt.Println("Recorded runs:")
	fmt.Println()
	fmt.Printf("  %-8s  %7s  %5s  %8s  %-9s  %s\n", "ID", "SCORE", "LEVEL", "TICKS", "ENDED", "RECORDED")
	for _, e := range entries {
		fmt.Printf("  %-8s  %7s  %5d  %8s  %-9s  %s\n",
			shortID(e.ID),
			humanize.Comma(int64(e.Score)),
			e.Level,
			humanize.Comma(int64(e.Frames)),
			e.Phase,
			humanize.Time(e.CreatedAt),
		)
	}
	return nil
}

func runReplaysShow(store *storage.Store, args []string) error {
	rec, err := loadReplay(store, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Replay %s\n\n", rec.ID)
	fmt.Printf("  %-10s %s (%s)\n", "Recorded:", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(rec.CreatedAt))
	fmt.Printf("  %-10s %d\n", "Seed:", rec.Seed)
	fmt.Printf("  %-10s %s (%s of play)\n", "Ticks:", humanize.Comma(int64(rec.Frames)), rec.Duration())
	fmt.Printf("  %-10s %d\n", "Inputs:", len(rec.Events))
	fmt.Printf("  %-10s %s\n", "Ended:", rec.Final.Phase)
	fmt.Printf("  %-10s %d\n", "Score:", rec.Final.Score)
	fmt.Printf("  %-10s %d\n", "Level:", rec.Final.Level)
	fmt.Printf("  %-10s %dx%d px, %v ms ticks\n", "Screen:",
		rec.Config.Screen.Width, rec.Config.Screen.Height, rec.Config.Screen.TickMS)
	return nil
}

func runReplaysRun(store *storage.Store, args []string) error {
	rec, err := loadReplay(store, args[0])
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr)
	snap, err := replay.Verify(rec, jumper.Options{Logger: logger})
	if errors.Is(err, replay.ErrMismatch) {
		printSnapshot(rec.Seed, snap, rec.Config.Screen.TickMS)
		return err
	}
	if err != nil {
		return err
	}

	printSnapshot(rec.Seed, snap, rec.Config.Screen.TickMS)
	fmt.Printf("\nReplay %s verified: final state matches the recording.\n", shortID(rec.ID))
	return nil
}

func runReplaysWatch(store *storage.Store, args []string) error {
	rec, err := loadReplay(store, args[0])
	if err != nil {
		return err
	}
	return watch(rec)
}

func runReplaysBrowse(store *storage.Store, args []string) error {
	termW, termH := terminalSize()
	for {
		id, err := tui.RunBrowser(store, termW, termH)
		if err != nil {
			return err
		}
		if id == "" {
			return nil
		}

		rec, err := store.Replay(id)
		if err != nil {
			return err
		}
		if err := watch(rec); err != nil {
			return err
		}
	}
}

// watch plays rec back in the terminal, logging to --log-file.
func watch(rec replay.Recording) error {
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	pb, err := replay.NewPlayback(rec, jumper.Options{Logger: logger})
	if err != nil {
		return err
	}
	termW, termH := terminalSize()
	logger.Info("watching replay", "id", rec.ID, "frames", rec.Frames)
	return tui.Watch(pb, tui.Options{Logger: logger, Width: termW, Height: termH})
}

func runReplaysExport(store *storage.Store, args []string) error {
	rec, err := loadReplay(store, args[0])
	if err != nil {
		return err
	}
	data, err := replay.Marshal(rec)
	if err != nil {
		return err
	}

	if len(args) < 2 || args[1] == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", args[1], err)
	}
	fmt.Printf("Exported replay %s to %s\n", shortID(rec.ID), args[1])
	return nil
}

func runReplaysImport(store *storage.Store, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}
	rec, err := replay.Unmarshal(data)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := store.SaveReplay(rec); err != nil {
		return err
	}
	fmt.Printf("Imported replay %s (score %d, level %d)\n", shortID(rec.ID), rec.Final.Score, rec.Final.Level)
	return nil
}

func runReplaysDelete(store *storage.Store, args []string) error {
	id, err := store.ResolveID(args[0])
	if err != nil {
		return err
	}
	if err := store.DeleteReplay(id); err != nil {
		return err
	}
	fmt.Printf("Deleted replay %s\n", shortID(id))
	return nil
}
