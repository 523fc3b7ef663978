package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/christopherklint97/timelog/internal/calendar"
	"github.com/christopherklint97/timelog/internal/config"
	"github.com/christopherklint97/timelog/internal/ledger"
	"github.com/christopherklint97/timelog/internal/model"
	"github.com/christopherklint97/timelog/internal/parse"
	"github.com/christopherklint97/timelog/internal/random"
	"github.com/christopherklint97/timelog/internal/report"
	"github.com/christopherklint97/timelog/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "timelog",
	Short: "Personal plain-text time ledger",
	Long:  "timelog reads a plain-text ledger of dated per-project time ranges and produces weekly billing reports.",
}

var reportCmd = &cobra.Command{
	Use:   "report [first [last]]",
	Short: "Print the billing report for a date range",
	Long:  "Prints the report for the given range. With one date, reports that date's half of the month; with none, today's.",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runReport,
}

var watchCmd = &cobra.Command{
	Use:   "watch [first [last]]",
	Short: "Keep the report on screen, reloading as the ledger changes",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runWatch,
}

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append today's date block to the ledger",
	RunE:  runAppend,
}

var randomCmd = &cobra.Command{
	Use:   "random [first [last]]",
	Short: "Print a randomly generated ledger for a date range",
	RunE:  runRandom,
	Args:  cobra.MaximumNArgs(2),
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "Ledger file (overrides config and TIMELOG_FILE)")
	reportCmd.Flags().Bool("detail", false, "Report subcodes as separate rows")
	watchCmd.Flags().Bool("detail", false, "Report subcodes as separate rows")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func resolveFile(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return file, nil
	}
	if cfg.File != "" {
		return cfg.File, nil
	}
	return "", fmt.Errorf("no ledger file configured — run 'timelog config' or set TIMELOG_FILE")
}

func reportMode(cmd *cobra.Command, cfg *config.Config) report.Mode {
	if detail, _ := cmd.Flags().GetBool("detail"); detail || cfg.Report.Detail {
		return report.Detail
	}
	return report.Summary
}

// parseDateArg accepts either the ledger's MM/DD/YYYY form or a natural
// phrase like "last monday" or "3 days ago".
func parseDateArg(arg string) (calendar.Date, error) {
	if d, err := calendar.ParseDate(arg); err == nil {
		return d, nil
	}
	t, err := naturaldate.Parse(arg, time.Now(), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return calendar.Date{}, fmt.Errorf("unrecognized date %q: %w", arg, err)
	}
	return calendar.NewDate(t.Year(), int(t.Month()), t.Day())
}

// resolveDates maps date arguments to the reporting range: two dates
// span them, one date selects its half of the month, none selects
// today's half.
func resolveDates(args []string) (calendar.DateRange, error) {
	switch len(args) {
	case 2:
		first, err := parseDateArg(args[0])
		if err != nil {
			return calendar.DateRange{}, err
		}
		last, err := parseDateArg(args[1])
		if err != nil {
			return calendar.DateRange{}, err
		}
		return calendar.NewDateRange(first, last)
	case 1:
		d, err := parseDateArg(args[0])
		if err != nil {
			return calendar.DateRange{}, err
		}
		return d.SemimonthForDate(), nil
	default:
		today, err := calendar.Today()
		if err != nil {
			return calendar.DateRange{}, err
		}
		return today.SemimonthForDate(), nil
	}
}

func loadLedger(file string) ([]model.DayEntry, error) {
	fmt.Printf("Loading %s...\n", file)
	entries, warnings, err := parse.ParseFile(file)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Printf("Loaded %d dates from %s\n", len(entries), file)
	return entries, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	file, err := resolveFile(cmd, cfg)
	if err != nil {
		return err
	}
	entries, err := loadLedger(file)
	if err != nil {
		return err
	}
	dates, err := resolveDates(args)
	if err != nil {
		return err
	}

	fmt.Printf("Reporting from %s to %s\n", dates.First(), dates.Last())
	lines, err := report.Create(dates, entries, reportMode(cmd, cfg))
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	file, err := resolveFile(cmd, cfg)
	if err != nil {
		return err
	}
	dates, err := resolveDates(args)
	if err != nil {
		return err
	}

	// with no explicit dates the range tracks the current day, so a
	// session left running overnight rolls into the new half-month
	datesFn := func() calendar.DateRange { return dates }
	if len(args) == 0 {
		datesFn = func() calendar.DateRange {
			if today, err := calendar.Today(); err == nil {
				return today.SemimonthForDate()
			}
			return dates
		}
	}

	poll := time.Duration(cfg.Watch.PollMillis) * time.Millisecond
	app := tui.NewApp(file, datesFn, reportMode(cmd, cfg), cfg.Editor, poll)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runAppend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	file, err := resolveFile(cmd, cfg)
	if err != nil {
		return err
	}
	entries, err := loadLedger(file)
	if err != nil {
		return err
	}

	date, err := calendar.Today()
	if err != nil {
		return err
	}
	if err := ledger.ValidateDate(entries, date); err != nil {
		return err
	}
	minDate, err := date.MinusDays(30)
	if err != nil {
		return err
	}
	recent := ledger.RecentProjects(entries, minDate, 5)
	if err := ledger.AppendDay(file, date, recent); err != nil {
		return err
	}

	fmt.Printf("Appended %s %s to %s\n", date.DayName(), date, file)
	return nil
}

func runRandom(cmd *cobra.Command, args []string) error {
	dates, err := resolveDates(args)
	if err != nil {
		return err
	}
	entries, err := random.New().DayEntries(dates)
	if err != nil {
		return err
	}
	for _, line := range random.Render(entries) {
		fmt.Println(line)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`file = "%s"
editor = "%s"

[report]
detail = %t

[watch]
poll_millis = %d
`,
			cfg.File,
			cfg.Editor,
			cfg.Report.Detail,
			cfg.Watch.PollMillis,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
