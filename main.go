package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/daybattery/internal/config"
	"github.com/sadopc/daybattery/internal/export"
	"github.com/sadopc/daybattery/internal/progress"
	"github.com/sadopc/daybattery/internal/store"
	"github.com/sadopc/daybattery/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds overrides for values that config.Load reads from the
// environment.
type flags struct {
	dbPath   string
	logPath  string
	interval time.Duration
}

func (f flags) load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f.dbPath != "" {
		cfg.DatabasePath = f.dbPath
	}
	if f.logPath != "" {
		cfg.LogPath = f.logPath
	}
	if f.interval != 0 {
		cfg.Interval = f.interval
	}
	return cfg, cfg.Validate()
}

func (f flags) open() (*config.Config, *store.Store, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open settings database: %w", err)
	}
	return cfg, s, nil
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "daybattery",
		Short:         "Show how much of the day, month and year has passed",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*f)
		},
	}
	root.PersistentFlags().StringVar(&f.dbPath, "db", "", "settings database path (default $DAYBATTERY_DB or <config dir>/daybattery/daybattery.db)")
	root.PersistentFlags().StringVar(&f.logPath, "log", "", "log file used by the TUI")
	root.PersistentFlags().DurationVar(&f.interval, "interval", 0, "refresh interval (default 20s)")

	root.AddCommand(newStatusCmd(f))
	root.AddCommand(newSetCmd(f))
	root.AddCommand(newExportCmd(f))
	return root
}

func runTUI(f flags) error {
	cfg, s, err := f.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogPath, "daybattery")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	app := tui.NewApp(s, tui.Options{Interval: cfg.Interval})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newStatusCmd(f *flags) *cobra.Command {
	var mode, format string
	var dayStart int
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the status line once, for external status bars",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, s, err := f.open()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.LoadSettings()
			if err != nil {
				return err
			}
			if mode != "" {
				if st.Mode, err = progress.ParseMode(mode); err != nil {
					return err
				}
			}
			if format != "" {
				if st.Format, err = progress.ParseFormat(format); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("day-start") {
				if !progress.ValidDayStart(dayStart) {
					return fmt.Errorf("day start %d: %w", dayStart, store.ErrInvalidSetting)
				}
				st.DayStart = dayStart
			}

			snap := progress.Take(time.Now(), st.DayStart)
			for _, err := range snap.Errors() {
				log.Printf("progress: %v", err)
			}

			out := cmd.OutOrStdout()
			if all {
				for _, m := range progress.Modes {
					_, _ = fmt.Fprintln(out, snap.Title(m, progress.Long))
				}
				return nil
			}
			_, _ = fmt.Fprintln(out, snap.Title(st.Mode, st.Format))
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "day|month|year (default: stored setting)")
	cmd.Flags().StringVar(&format, "format", "", "percent|short|long (default: stored setting)")
	cmd.Flags().IntVar(&dayStart, "day-start", 0, "hour the day starts at, 0-23 (default: stored setting)")
	cmd.Flags().BoolVar(&all, "all", false, "print every mode in long format")
	return cmd
}

func newSetCmd(f *flags) *cobra.Command {
	set := &cobra.Command{Use: "set", Short: "Change a stored setting"}

	withStore := func(fn func(*store.Store, string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			_, s, err := f.open()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := fn(s, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", cmd.Name(), args[0])
			return nil
		}
	}

	set.AddCommand(&cobra.Command{
		Use:   "mode <day|month|year>",
		Short: "Set the displayed mode",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(s *store.Store, v string) error {
			m, err := progress.ParseMode(v)
			if err != nil {
				return err
			}
			return s.SetMode(m)
		}),
	})
	set.AddCommand(&cobra.Command{
		Use:   "format <percent|short|long>",
		Short: "Set the display format",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(s *store.Store, v string) error {
			ft, err := progress.ParseFormat(v)
			if err != nil {
				return err
			}
			return s.SetFormat(ft)
		}),
	})
	set.AddCommand(&cobra.Command{
		Use:   "day-start <0-23>",
		Short: "Set the hour the day starts at",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(s *store.Store, v string) error {
			h, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parse hour %q: %w", v, err)
			}
			return s.SetDayStart(h)
		}),
	})
	return set
}

func newExportCmd(f *flags) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current progress of every mode to a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := export.ParseKind(format)
			if err != nil {
				return err
			}
			_, s, err := f.open()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.LoadSettings()
			if err != nil {
				return err
			}
			snap := progress.Take(time.Now(), st.DayStart)

			path := out
			if path == "" {
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				path = export.DefaultPath(dir, kind, snap.At)
			}
			if err := export.Write(kind, snap, path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv|json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default ./daybattery-export-<date>.<format>)")
	return cmd
}
