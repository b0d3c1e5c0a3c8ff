// Package main provides the CLI entry point for sheetgrid.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/sheetgrid-go/internal/logging"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/output"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/query"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// defaultSource is read when no file argument or SHEETGRID_FILE is given.
const defaultSource = "Financial Sample.xlsx"

const envPrefix = "SHEETGRID_"

// cliOptions holds the flags shared by every command.
type cliOptions struct {
	format         string
	sheet          string
	rangeRef       string
	delimiter      string
	nullMarkers    []string
	noDefaultNulls bool
	logLevel       string
	seqURL         string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	rootCmd := &cobra.Command{
		Use:   "sheetgrid",
		Short: "Serve spreadsheet data to a browser grid and chart UI",
		Long: `sheetgrid loads a spreadsheet (xlsx, csv, parquet or json) once at startup
and serves its rows as JSON for a browser grid and chart page.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnv(cmd.Flags())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.format, "format", "", "Input format: xlsx, csv, parquet, json (default: from extension)")
	pf.StringVar(&opts.sheet, "sheet", "", "Sheet to read (default: first sheet)")
	pf.StringVar(&opts.rangeRef, "range", "", "Cell range or defined name to read, e.g. A1:F100")
	pf.StringVar(&opts.delimiter, "delimiter", "", `CSV field separator, "tab" for tabs (default: detected)`)
	pf.StringSliceVar(&opts.nullMarkers, "null-markers", nil, "Additional text values treated as missing")
	pf.BoolVar(&opts.noDefaultNulls, "no-default-nulls", false, "Do not treat NA, N/A, NaN and similar as missing")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.seqURL, "seq-url", "", "Seq server URL for structured logs")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newColumnsCmd(opts),
		newRowsCmd(opts),
		newUniqueCmd(opts),
	)
	return rootCmd
}

// applyEnv fills every flag not set on the command line from its
// SHEETGRID_ environment variable.
func applyEnv(flags *pflag.FlagSet) error {
	var firstErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || firstErr != nil {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		v, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := flags.Set(f.Name, v); err != nil {
			firstErr = fmt.Errorf("invalid %s: %w", name, err)
		}
	})
	return firstErr
}

func sourcePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if v := os.Getenv(envPrefix + "FILE"); v != "" {
		return v
	}
	return defaultSource
}

func (o *cliOptions) loadOptions() (sheetgrid.Options, error) {
	opts := sheetgrid.DefaultOptions()
	opts.Format = sheetgrid.Format(strings.ToLower(o.format))
	opts.Sheet = o.sheet
	opts.Range = o.rangeRef
	opts.NullMarkers = o.nullMarkers
	if o.noDefaultNulls {
		keep := false
		opts.KeepDefaultNulls = &keep
	}

	switch {
	case o.delimiter == "":
	case strings.EqualFold(o.delimiter, "tab") || o.delimiter == `\t`:
		opts.Delimiter = '\t'
	case utf8.RuneCountInString(o.delimiter) == 1:
		opts.Delimiter, _ = utf8.DecodeRuneInString(o.delimiter)
	default:
		return opts, fmt.Errorf("invalid delimiter %q: must be a single character", o.delimiter)
	}
	return opts, nil
}

func (o *cliOptions) logger(w io.Writer) (*slog.Logger, func(), error) {
	return logging.Setup(logging.Config{Level: o.logLevel, SeqURL: o.seqURL, Output: w})
}

func (o *cliOptions) load(ctx context.Context, path string, logger *slog.Logger) (*models.Table, error) {
	opts, err := o.loadOptions()
	if err != nil {
		return nil, err
	}
	tbl, err := sheetgrid.LoadContext(ctx, path, opts)
	if err != nil {
		logger.Error("failed to load source", "path", path, "error", err)
		return nil, err
	}
	logger.Debug("source loaded", "path", path, "rows", tbl.RowCount(), "columns", tbl.ColumnCount())
	return tbl, nil
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	cfg := server.DefaultConfig()
	cfg.Version = version
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Load a file and serve it over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			tbl, err := opts.load(cmd.Context(), sourcePath(args), logger)
			if err != nil {
				return err
			}
			srv, err := server.New(tbl, cfg, logger)
			if err != nil {
				return err
			}
			if err := srv.Run(cmd.Context()); err != nil {
				logger.Error("server failed", "error", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	f.StringVar(&cfg.TemplatesDir, "templates", "", "Directory holding an index.html that replaces the built-in page")
	f.StringVar(&cfg.StaticDir, "static", "", "Directory served under /static/")
	f.Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "Maximum request body size in bytes")
	f.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	return cmd
}

type columnsResult struct {
	Source      string          `json:"source"`
	Columns     []string        `json:"columns"`
	DateColumns []string        `json:"dateColumns"`
	Schema      []models.Column `json:"schema"`
}

func newColumnsCmd(opts *cliOptions) *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "columns [file]",
		Short: "Print the column names, date columns and inferred kinds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			tbl, err := opts.load(cmd.Context(), sourcePath(args), logger)
			if err != nil {
				return err
			}
			return output.WriteJSON(cmd.OutOrStdout(), columnsResult{
				Source:      tbl.Source(),
				Columns:     query.Columns(tbl),
				DateColumns: query.DateColumns(tbl),
				Schema:      tbl.Columns(),
			}, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newRowsCmd(opts *cliOptions) *cobra.Command {
	var (
		columns    []string
		where      string
		pretty     bool
		outputPath string
	)
	cmd := &cobra.Command{
		Use:   "rows [file]",
		Short: "Print rows restricted to columns, optionally filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			var filter *query.Filter
			if where != "" {
				if filter, err = query.Compile(where); err != nil {
					return err
				}
			}

			tbl, err := opts.load(cmd.Context(), sourcePath(args), logger)
			if err != nil {
				return err
			}
			p, err := query.Project(tbl, columns)
			if err != nil {
				return err
			}
			if filter != nil {
				if p, err = filter.Select(p, tbl); err != nil {
					return err
				}
				logger.Debug("rows filtered", "where", filter.String(), "matched", len(p.Records))
			}

			w := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return output.WriteJSON(w, p, pretty)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&columns, "columns", nil, "Columns to include (default: all)")
	f.StringVar(&where, "where", "", `Row filter expression, e.g. 'Units > 100 && Segment == "Government"'`)
	f.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	f.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newUniqueCmd(opts *cliOptions) *cobra.Command {
	var (
		column string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "unique [file]",
		Short: "Print the sorted distinct values of a column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			tbl, err := opts.load(cmd.Context(), sourcePath(args), logger)
			if err != nil {
				return err
			}
			u, err := query.UniqueValues(tbl, column)
			if err != nil {
				return fmt.Errorf("%w: %q", err, column)
			}
			return output.WriteJSON(cmd.OutOrStdout(), u, pretty)
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Column to inspect")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
