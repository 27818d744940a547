package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evgfitil/pleasewait/internal/action"
	"github.com/evgfitil/pleasewait/internal/config"
	"github.com/evgfitil/pleasewait/internal/job"
	"github.com/evgfitil/pleasewait/internal/logging"
	"github.com/evgfitil/pleasewait/internal/picker"
	"github.com/evgfitil/pleasewait/internal/waitdialog"
)

const ExitCodeCancelled = 130

var (
	Version     = "dev"
	showConfig  bool
	labelFlag   string
	titleFlag   string
	noCancel    bool
	copyResult  bool
	jobFlag     string
	timeoutFlag time.Duration
)

// ErrCancelled indicates user cancelled the operation.
var ErrCancelled = errors.New("operation cancelled")

var rootCmd = &cobra.Command{
	Use:   "pleasewait [flags] [--] [command [args...]]",
	Short: "Run a long task behind a modal please-wait dialog",
	Long: `pleasewait runs a long task in the background while a modal dialog shows
what it is doing. Each line the task prints becomes the dialog label. The task
is a shell command, a job named in the config file, or lines piped on stdin.
On success the task output is printed; Esc cancels.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolVar(&showConfig, "config", false, "show config file path")
	rootCmd.Flags().StringVarP(&labelFlag, "label", "l", "", "label template, {status} is replaced by the task status")
	rootCmd.Flags().StringVarP(&titleFlag, "title", "t", "", "dialog title")
	rootCmd.Flags().BoolVar(&noCancel, "no-cancel", false, "disable the cancel button")
	rootCmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "copy the result to the clipboard")
	rootCmd.Flags().StringVarP(&jobFlag, "job", "j", "", "run a job from the config file")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "fail the task after this duration (0 = no limit)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func run(cmd *cobra.Command, args []string) error {
	if showConfig {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	work, err := selectWork(cfg, args, jobFlag, os.Stdin)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog() //nolint:errcheck

	return runDialog(cmd.Context(), work, cfg, logger, cmd.OutOrStdout())
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("label") {
		cfg.Label = labelFlag
	}
	if flags.Changed("title") {
		cfg.Title = titleFlag
	}
	if flags.Changed("no-cancel") {
		cfg.CancelEnabled = !noCancel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}
}

// selectWork picks the task: command args first, then a named job, then piped
// stdin, and finally an interactive pick among configured jobs.
func selectWork(cfg *config.Config, args []string, jobName string, stdin *os.File) (waitdialog.WorkFunc, error) {
	if len(args) > 0 {
		return job.Shell(strings.Join(args, " ")), nil
	}

	if jobName != "" {
		command, ok := cfg.Jobs[strings.ToLower(jobName)]
		if !ok {
			return nil, fmt.Errorf("unknown job %q (in %s)", jobName, config.Path())
		}
		return job.Shell(command), nil
	}

	if isPiped(stdin) {
		return job.Lines(stdin), nil
	}

	if len(cfg.Jobs) > 0 {
		name, err := picker.PickJob(cfg.JobNames(), func(name string) string {
			return cfg.Jobs[name]
		})
		if err != nil {
			if errors.Is(err, picker.ErrAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("failed to pick job: %w", err)
		}
		return job.Shell(cfg.Jobs[name]), nil
	}

	return nil, errors.New("nothing to run: pass a command, --job NAME or pipe input")
}

// runDialog shows the dialog for work and maps its outcome to a result on out
// or an error.
func runDialog(ctx context.Context, work waitdialog.WorkFunc, cfg *config.Config, logger zerolog.Logger, out io.Writer, extra ...waitdialog.Option) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts := []waitdialog.Option{
		waitdialog.WithLabelFormatter(waitdialog.TemplateLabel(cfg.Label)),
		waitdialog.WithTitle(cfg.Title),
		waitdialog.WithTheme(cfg.Theme.ToTheme()),
		waitdialog.WithCancelEnabled(cfg.CancelEnabled),
		waitdialog.WithLogger(logger),
	}
	d := waitdialog.New(work, append(opts, extra...)...)

	stop := cancelOnSignal(d)
	defer stop()

	if _, err := d.ShowModal(ctx); err != nil && d.Outcome() != waitdialog.OutcomeCancelled {
		return err
	}

	switch d.Outcome() {
	case waitdialog.OutcomeSucceeded:
		return action.Deliver(out, d.Result(), copyResult)
	case waitdialog.OutcomeCancelled:
		return ErrCancelled
	default:
		return d.Err()
	}
}

// cancelOnSignal presses the cancel button when the process gets SIGTERM or
// SIGINT. The returned function stops listening.
func cancelOnSignal(d *waitdialog.Dialog) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigs:
			d.RequestCancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
