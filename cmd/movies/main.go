package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/movies/internal/application"
	"github.com/JonMunkholm/movies/internal/config"
	"github.com/JonMunkholm/movies/internal/logging"
	"github.com/JonMunkholm/movies/internal/metrics"
	"github.com/JonMunkholm/movies/internal/movie"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every subcommand needs once startup has finished.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	policyFlag     string
	policyFileFlag string

	cfg     *config.Config
	policy  movie.Policy
	metrics *metrics.Metrics
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	a.flushMetrics()

	if err == nil {
		return 0
	}

	var argErr *ArgError
	if errors.As(err, &argErr) {
		fmt.Fprintf(errOut, "Error: %v\n", argErr)
		fmt.Fprintf(errOut, "Usage: %s\n", argErr.Usage)
		return 1
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	if application.IsUserFacing(err) {
		fmt.Fprintln(errOut, application.FormatUserError(err))
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "movies",
		Short: "Query and organize CSV movie catalogs",
		Long: `movies loads a CSV catalog of movies (Title, Year, Languages, Rating Value),
skipping rows that fail validation, and either answers questions about it
interactively or splits it into one text file of titles per release year.

Configuration comes from the environment (or a .env file in the working
directory). See MOVIES_* and LOG_* variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.policyFlag, "policy", "", "validation policy name (overrides MOVIES_POLICY)")
	root.PersistentFlags().StringVar(&a.policyFileFlag, "policy-file", "", "YAML policy file (overrides MOVIES_POLICY_FILE)")

	root.AddCommand(a.queryCmd(), a.organizeCmd(), a.policiesCmd())
	return root
}

// setup runs before every subcommand: .env, config, logging, policy, metrics.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.policyFlag != "" {
		cfg.Loader.Policy = a.policyFlag
	}
	if a.policyFileFlag != "" {
		cfg.Loader.PolicyFile = a.policyFileFlag
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, a.errOut)
	if envErr == nil {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}
	slog.Debug("configuration loaded", "config", cfg.String(), "command", cmd.Name())

	a.policy, err = resolvePolicy(cfg.Loader)
	if err != nil {
		return err
	}
	a.metrics = metrics.New()
	return nil
}

// resolvePolicy picks the named policy and layers the policy file over it.
func resolvePolicy(lc config.LoaderConfig) (movie.Policy, error) {
	p, err := movie.PolicyByName(lc.Policy)
	if err != nil {
		return movie.Policy{}, err
	}
	if lc.PolicyFile == "" {
		return p, nil
	}
	return movie.LoadPolicyFile(lc.PolicyFile, p)
}

func (a *app) flushMetrics() {
	if a.cfg == nil || a.metrics == nil {
		return
	}
	if err := a.metrics.WriteFile(a.cfg.Metrics.File); err != nil {
		slog.Warn("failed to write metrics", "file", a.cfg.Metrics.File, "error", err)
	}
}
