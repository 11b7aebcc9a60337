package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cellscope/cmd/cellscope/ui"
	"cellscope/internal/config"
	"cellscope/internal/life"
	"cellscope/internal/pattern"
	"cellscope/internal/store"
)

var (
	// Global flags
	verbose     bool
	cfgPath     string
	patternsDir string
	dataDir     string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cellscope",
	Short: "cellscope - interactive Game of Life with pattern recognition",
	Long: `cellscope is an interactive Conway's Game of Life for the terminal.

As the simulation runs, every isolated group of live cells is matched
against a library of known patterns in all rotations and reflections.
Discoveries show up in the sidebar as they happen, and finished runs can
be saved to a local SQLite database for later browsing.

Run without arguments to start the interactive grid.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive grid owns the terminal; route logs to a file there
		// so they do not corrupt the display.
		interactive := cmd.Use == "cellscope" && cmd.CalledAs() == "cellscope"
		var err error
		logger, err = buildLogger(interactive)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// runsCmd groups the saved-run subcommands
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse and manage saved runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs",
	RunE:  listRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one saved run with its discoveries",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteRun,
}

// statsCmd prints cumulative pattern statistics
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cumulative pattern discovery statistics",
	RunE:  showStats,
}

// patternsCmd lists the loaded pattern library
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the loaded pattern library",
	Long: `Lists every pattern cellscope can recognize: the built-in set plus
any .cells files found in the patterns directory.`,
	RunE: listPatterns,
}

// scanCmd identifies patterns in a .cells file without starting the UI
var scanCmd = &cobra.Command{
	Use:   "scan [file.cells]",
	Short: "Identify known patterns in a .cells file",
	Long: `Parses a .cells file, splits it into 8-connected components, and
reports which components match the pattern library.

Example:
  cellscope scan soup.cells`,
	Args: cobra.ExactArgs(1),
	RunE: scanFile,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "cellscope.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&patternsDir, "patterns", "", "Patterns directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for the run database (overrides config)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)

	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(scanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(interactive bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if interactive {
		if !verbose {
			return zap.NewNop(), nil
		}
		dir, err := loadConfig().ResolveDataDir()
		if err != nil {
			return zap.NewNop(), nil
		}
		cfg.OutputPaths = []string{filepath.Join(dir, "cellscope.log")}
		cfg.ErrorOutputPaths = cfg.OutputPaths
	}
	return cfg.Build()
}

// loadConfig reads the config file and applies flag overrides. A missing
// file yields defaults; a malformed one is reported and defaults apply,
// matching the behavior of every other optional input.
func loadConfig() config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	if patternsDir != "" {
		cfg.PatternsDir = patternsDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return store.Open(dbPath, logger)
}

// runInteractive starts the TUI.
func runInteractive() error {
	cfg := loadConfig()

	lib := pattern.Load(cfg.PatternsDir, cfg.MaxPatternBox, logger)
	logger.Info("pattern library ready",
		zap.String("dir", cfg.PatternsDir),
		zap.Int("patterns", lib.Len()))

	// Live reload only works when the directory exists; without it the
	// static library (built-ins included) serves for the whole session.
	watcher, err := pattern.Watch(cfg.PatternsDir, cfg.MaxPatternBox, logger)
	if err != nil {
		logger.Debug("pattern watcher disabled", zap.Error(err))
		watcher = nil
	} else {
		defer watcher.Close()
	}

	st, err := openStore(cfg)
	if err != nil {
		// The simulation is still useful without persistence.
		fmt.Fprintf(os.Stderr, "warning: persistence disabled: %v\n", err)
		st = nil
	} else {
		defer st.Close()
	}

	app := ui.New(cfg, lib, st, watcher, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}
	fmt.Printf("%-6s %-28s %-20s %10s %10s\n", "ID", "Name", "Saved", "Gen", "Patterns")
	for _, r := range runs {
		fmt.Printf("%-6d %-28s %-20s %10d %10d\n",
			r.ID, r.Name, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.FinalGeneration, r.PatternCount)
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	st, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.LoadRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}

	fmt.Printf("Run #%d  %q\n", run.ID, run.Name)
	fmt.Printf("Saved:      %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Generation: %d\n", run.FinalGeneration)
	fmt.Printf("Speed:      %dms/step\n", run.SpeedMS)
	if len(run.Patterns) == 0 {
		fmt.Println("No patterns discovered.")
		return nil
	}
	fmt.Printf("\nDiscoveries (%d):\n", len(run.Patterns))
	for _, p := range run.Patterns {
		fmt.Printf("  %-24s generation %d\n", p.Name, p.Generation)
	}
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	st, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(id); err != nil {
		return err
	}
	fmt.Printf("Deleted run #%d\n", id)
	return nil
}

func showStats(cmd *cobra.Command, args []string) error {
	st, err := openStore(loadConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.PatternStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No discoveries recorded yet.")
		return nil
	}
	fmt.Printf("%-24s %12s %8s %-20s %-20s\n", "Pattern", "Discovered", "Runs", "First Seen", "Last Seen")
	for _, s := range stats {
		fmt.Printf("%-24s %12d %8d %-20s %-20s\n",
			s.Name, s.TimesDiscovered, s.RunsAppearedIn,
			s.FirstSeenAt.Local().Format("2006-01-02 15:04"),
			s.LastSeenAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func listPatterns(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	lib := pattern.Load(cfg.PatternsDir, cfg.MaxPatternBox, logger)

	fmt.Printf("%d patterns loaded (box limit %dx%d)\n\n", lib.Len(), lib.MaxBox(), lib.MaxBox())
	fmt.Printf("%-24s %8s %12s\n", "Name", "Size", "Orientations")
	for _, e := range lib.Entries() {
		fmt.Printf("%-24s %4dx%-3d %12d\n", e.Name, e.Height, e.Width, e.Orientations)
	}
	return nil
}

func scanFile(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	lib := pattern.Load(cfg.PatternsDir, cfg.MaxPatternBox, logger)

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	base := filepath.Base(args[0])
	name, cells, err := pattern.ParseCells(f, base[:len(base)-len(filepath.Ext(base))])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	if len(cells) == 0 {
		fmt.Printf("%s: no live cells\n", name)
		return nil
	}

	// Lay the cells out on a grid with a dead border so components stay
	// separated exactly as drawn in the file.
	rows, cols := 0, 0
	for c := range cells {
		if c.Row >= rows {
			rows = c.Row + 1
		}
		if c.Col >= cols {
			cols = c.Col + 1
		}
	}
	field := make([][]int, rows)
	for r := range field {
		field[r] = make([]int, cols)
	}
	for c := range cells {
		field[c.Row][c.Col] = 1
	}
	grid := life.FromCells(field)

	scanner := pattern.NewScanner(lib)
	scanner.Scan(grid, 0)
	found := scanner.Discoveries()
	if len(found) == 0 {
		fmt.Printf("%s: no known patterns\n", name)
		return nil
	}
	fmt.Printf("%s:\n", name)
	for _, d := range found {
		fmt.Printf("  %s\n", d.Name)
	}
	return nil
}
