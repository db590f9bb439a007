package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"furigana/batch"
	"furigana/config"
	"furigana/logger"
	"furigana/projection"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// app holds what every command needs once flags and config are loaded.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *logger.Logger
	proj    *projection.Cache
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "furigana",
		Short: "Work with furigana in the [漢字|かん|じ] bracket encoding",
		Long: fmt.Sprintf(`%s

Every command takes its input from the arguments, one document per argument,
or from stdin, one document per line.

%s
  furigana kana '[音楽|おん|がく]が[好|す]き'     # おんがくがすき
  furigana check < sentences.txt
  furigana normalize --step all < sentences.txt
  furigana compare '[音楽|おん|がく]' '[音|おん][楽|がく]' --literal`,
			bold("furigana"),
			bold("EXAMPLES:")),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "Config file (yaml or json)")
	pf.IntP("workers", "w", 0, "Lines processed in parallel (default number of CPUs)")
	pf.Int("cache-size", 1024, "Projections kept in memory")
	pf.Bool("kanji-fallback", true, "Project blocks without reading to their literal")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("report-dir", "", "Write a JSON report of every run to this directory")

	rootCmd.AddCommand(
		newParseCommand(a),
		newCheckCommand(a),
		newProjectionCommand(a, "kana", "Print the kana reading"),
		newProjectionCommand(a, "kanji", "Print the text without readings"),
		newProjectionCommand(a, "reading", "Print both readings as JSON"),
		newNormalizeCommand(a),
		newCompareCommand(a),
		newInspectCommand(a),
	)
	return rootCmd
}

// initialize loads the config and builds the logger and projection cache.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	var opts []projection.Option
	if !cfg.KanjiFallback {
		opts = append(opts, projection.WithoutKanjiFallback())
	}
	a.proj, err = projection.NewCache(cfg.CacheSize, projection.New(opts...))
	if err != nil {
		return err
	}

	a.log.Debug("config loaded", "workers", cfg.Workers, "cache_size", cfg.CacheSize, "config", a.cfgFile)
	return nil
}

// records turns the arguments into records of b, or reads stdin if there
// are none.
func records(cmd *cobra.Command, b batch.Batch, args []string) ([]batch.Record, error) {
	if len(args) == 0 {
		return b.Read(cmd.InOrStdin())
	}
	return b.Args(args), nil
}

// lineFunc processes a single document and returns the line to print.
type lineFunc func(ctx context.Context, input string) (string, error)

// reportEntry is one record of a JSON run report.
type reportEntry struct {
	ID     string `json:"id"`
	Line   int    `json:"line"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

type report struct {
	Run     string        `json:"run"`
	Command string        `json:"command"`
	Total   int           `json:"total"`
	Failed  int           `json:"failed"`
	Took    string        `json:"took"`
	Records []reportEntry `json:"records"`
}

// run processes every input document with fn and prints the results in
// input order. Failed documents are reported on stderr and make the command
// fail once all documents are done.
func (a *app) run(cmd *cobra.Command, args []string, fn lineFunc) error {
	start := time.Now()
	b := batch.New(start)
	recs, err := records(cmd, b, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := batch.Run(ctx, recs, a.cfg.Workers, func(ctx context.Context, r batch.Record) (string, error) {
		out, err := fn(ctx, r.Input)
		a.log.WithRecord(r.ID, r.Line).LogResult(ctx, err)
		return out, err
	})
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(stderr, "%s %s\n", red(fmt.Sprintf("line %d:", r.Record.Line)), r.Err)
			continue
		}
		fmt.Fprintln(stdout, r.Value)
	}

	failed := batch.Failed(results)
	took := time.Since(start)
	a.log.LogRun(ctx, cmd.Name(), len(results), failed, took)
	if path, err := a.writeReport(cmd.Name(), b, results, failed, took); err != nil {
		a.log.Warn("write report", "error", err)
	} else if path != "" {
		a.log.Debug("report written", "path", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// writeReport saves the run report to the report dir, if one is set, and
// returns its path.
func (a *app) writeReport(command string, b batch.Batch, results []batch.Result[string], failed int, took time.Duration) (string, error) {
	if a.cfg.Log.Dir == "" {
		return "", nil
	}
	rep := report{
		Run:     b.ID,
		Command: command,
		Total:   len(results),
		Failed:  failed,
		Took:    took.String(),
		Records: make([]reportEntry, len(results)),
	}
	for i, r := range results {
		e := reportEntry{ID: r.Record.ID, Line: r.Record.Line, Input: r.Record.Input, Output: r.Value}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		rep.Records[i] = e
	}
	return logger.WriteReport(a.cfg.Log.Dir, command, b.ID, rep)
}

func writeLines(w io.Writer, lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
