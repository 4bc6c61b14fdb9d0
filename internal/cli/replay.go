package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marsbound/rover/internal/store"
	"github.com/marsbound/rover/internal/trace"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunToken string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunToken      string       `json:"run_token"`
	Outcome       string       `json:"outcome"`
	Steps         int          `json:"steps"`
	Deterministic bool         `json:"deterministic"`
	Diffs         []trace.Diff `json:"diffs,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journaled runs and verify determinism",
		Long: `Replay journaled runs and verify that the decision function reproduces
them exactly.

Each journaled event is parsed back and folded through the pure decision
function from the initial state. Every resulting state and effect must
match what was journaled; any divergence is reported as a diff.

Exit codes:
  0 - All runs are deterministic
  1 - Divergence detected
  2 - Command error (journal not found, etc.)

Examples:
  rover replay --db runs.db
  rover replay --db runs.db --run 0190a8e2-...
  rover replay --db runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "replay a specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run journal", err)
	}
	defer st.Close()

	var runs []trace.Run
	if opts.RunToken != "" {
		run, err := st.ReadRun(ctx, opts.RunToken)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read run %s", opts.RunToken), err)
		}
		runs = []trace.Run{run}
	} else {
		runs, err = st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if len(runs) == 0 {
		if opts.Format == "json" {
			return formatter.Success(ReplayResult{Runs: []ReplayRunResult{}, AllDeterministic: true})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in journal.")
		return nil
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runs)),
		TotalRuns:        len(runs),
		AllDeterministic: true,
	}

	for _, run := range runs {
		steps, err := st.ReadSteps(ctx, run.Token)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read steps for %s", run.Token), err)
		}

		v := trace.VerifySteps(steps)
		result.Runs = append(result.Runs, ReplayRunResult{
			RunToken:      run.Token,
			Outcome:       run.Outcome,
			Steps:         v.Steps,
			Deterministic: v.Deterministic,
			Diffs:         v.Diffs,
		})
		if !v.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd, result, opts.Verbose)
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay detected divergence")
	}
	return nil
}

func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) {
	out := cmd.OutOrStdout()
	for _, run := range result.Runs {
		status := "deterministic"
		if !run.Deterministic {
			status = "DIVERGED"
		}
		fmt.Fprintf(out, "%s  outcome=%s steps=%d  %s\n", run.RunToken, run.Outcome, run.Steps, status)
		for _, diff := range run.Diffs {
			fmt.Fprintf(out, "  seq %d %s:\n    journaled: %s\n    replayed:  %s\n",
				diff.Seq, diff.Aspect, diff.Want, diff.Got)
		}
	}
	fmt.Fprintf(out, "%d run(s) verified\n", result.TotalRuns)
}
