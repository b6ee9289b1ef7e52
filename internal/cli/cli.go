package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/toto-draws/internal/filter"
	"github.com/pfrederiksen/toto-draws/internal/logger"
	"github.com/pfrederiksen/toto-draws/internal/reconcile"
	"github.com/pfrederiksen/toto-draws/internal/scraper"
	"github.com/pfrederiksen/toto-draws/internal/stats"
	"github.com/pfrederiksen/toto-draws/internal/store"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNewDraws = 2
)

var (
	flagDataDir string
	flagStore   string
	flagFormat  string
	flagVerbose bool

	flagDateFrom     string
	flagDateTo       string
	flagContains     int
	flagRolloverOnly bool
	flagLimit        int

	flagTop int
)

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toto-draws",
		Short: "Track Singapore Pools TOTO draw results locally",
		Long: `A CLI tool that keeps a local archive of TOTO draw results.
It reconciles the remote draw archive against the local store, fetches
whatever is missing, back-estimates prize pools, and reports analytics
over the collection.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	defaultDataDir := os.Getenv("TOTO_DATA_DIR")
	if defaultDataDir == "" {
		defaultDataDir = "~/.local/share/toto-draws"
	}
	defaultStore := os.Getenv("TOTO_STORE")
	if defaultStore == "" {
		defaultStore = "json"
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagDataDir, "data-dir", defaultDataDir, "Data directory for the local store")
	pf.StringVar(&flagStore, "store", defaultStore, "Store backend: json or sqlite")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newUpdateCmd(), newListCmd(), newStatsCmd(), newClearCmd(), newDedupeCmd())
	return cmd
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch draws missing from the local store",
		RunE:  runUpdate,
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored draws, newest first",
		RunE:  runList,
	}
	addFilterFlags(cmd)
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Show at most this many draws (0 = all)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the stored draw collection",
		RunE:  runStats,
	}
	addFilterFlags(cmd)
	cmd.Flags().IntVar(&flagTop, "top", 5, "How many hot/cold numbers to show")
	return cmd
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored draw",
		RunE:  runClear,
	}
}

func newDedupeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Rewrite the store, collapsing duplicate draw numbers",
		RunE:  runDedupe,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDateFrom, "from", "", "Only draws on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagDateTo, "to", "", "Only draws on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flagContains, "contains", 0, "Only draws containing this ball")
	cmd.Flags().BoolVar(&flagRolloverOnly, "rollover-only", false, "Only draws with no Group 1 winner")
}

// openStore builds the selected store backend.
func openStore() (store.Store, error) {
	switch strings.ToLower(flagStore) {
	case "json":
		return store.NewJSONStore(flagDataDir)
	case "sqlite":
		return store.NewSQLiteStoreInDir(flagDataDir)
	default:
		return nil, fmt.Errorf("invalid store backend: %s (must be 'json' or 'sqlite')", flagStore)
	}
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// buildFilter assembles a draw filter from the shared filter flags.
func buildFilter() (*filter.Filter, error) {
	f := filter.NewFilter()

	if flagDateFrom != "" {
		from, err := time.Parse("2006-01-02", flagDateFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date: %s", flagDateFrom)
		}
		f.DateFrom = &from
	}
	if flagDateTo != "" {
		to, err := time.Parse("2006-01-02", flagDateTo)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date: %s", flagDateTo)
		}
		f.DateTo = &to
	}
	f.Contains = flagContains
	f.RolloverOnly = flagRolloverOnly
	return f, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer st.Close()

	result, err := reconcile.NewRunner(scraper.New(), st).Update()
	if err != nil {
		return fmt.Errorf("updating draws: %w", err)
	}

	snapshot, err := st.Load()
	if err != nil {
		return fmt.Errorf("reloading store: %w", err)
	}

	out := &UpdateOutput{
		CheckedAt:  time.Now().UTC(),
		Appended:   result.Appended,
		Skipped:    result.Skipped,
		Errors:     result.Errors,
		TotalDraws: len(snapshot.Draws),
	}
	if err := WriteUpdate(os.Stdout, out, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.Appended > 0 {
		os.Exit(ExitNewDraws)
	}
	os.Exit(ExitSuccess)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	f, err := buildFilter()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer st.Close()

	snapshot, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	records := f.Apply(snapshot.Records())

	// Newest first for display.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if flagLimit > 0 && len(records) > flagLimit {
		records = records[:flagLimit]
	}

	out := &ListOutput{Draws: records, Count: len(records)}
	if err := WriteList(os.Stdout, out, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	f, err := buildFilter()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer st.Close()

	snapshot, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	records := f.Apply(snapshot.Records())

	out := &StatsOutput{
		Summary: stats.Summarize(records),
		Hot:     stats.HotNumbers(records, flagTop),
		Cold:    stats.ColdNumbers(records, flagTop),
		Trend:   stats.PrizePoolTrend(records),
	}
	if err := WriteStats(os.Stdout, out, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer st.Close()

	clearer, ok := st.(store.Clearer)
	if !ok {
		return fmt.Errorf("store backend %s cannot be cleared", flagStore)
	}
	if err := clearer.Clear(); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}

	fmt.Println("Store cleared.")
	return nil
}

func runDedupe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer st.Close()

	// Loading keys the draws by draw number, collapsing any duplicates a
	// legacy or hand-edited store carried; saving writes the canonical set.
	snapshot, err := st.Load()
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}
	if err := st.Save(snapshot); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}

	fmt.Printf("Store rewritten: %d draws.\n", len(snapshot.Draws))
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
