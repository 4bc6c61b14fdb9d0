package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marsbound/rover/internal/store"
	"github.com/marsbound/rover/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunToken string
}

// TraceStep is one timeline entry in the trace output.
type TraceStep struct {
	Seq    int64        `json:"seq"`
	Event  trace.Record `json:"event"`
	State  string       `json:"state"`
	Effect trace.Record `json:"effect"`
}

// TraceResult holds the complete trace output for one run.
type TraceResult struct {
	RunToken  string      `json:"run_token"`
	PlanetRef string      `json:"planet_ref"`
	RoverRef  string      `json:"rover_ref"`
	Outcome   string      `json:"outcome"`
	Timeline  []TraceStep `json:"timeline"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the step timeline of a journaled run",
		Long: `Show the full step timeline of a journaled run: each event, the state it
produced, and the effect that followed.

Examples:
  rover trace --db runs.db --run 0190a8e2-...
  rover trace --db runs.db --run 0190a8e2-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTraceCmd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to trace (required)")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func runTraceCmd(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run journal", err)
	}
	defer st.Close()

	run, err := st.ReadRun(ctx, opts.RunToken)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read run %s", opts.RunToken), err)
	}
	steps, err := st.ReadSteps(ctx, opts.RunToken)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read steps for %s", opts.RunToken), err)
	}

	result := TraceResult{
		RunToken:  run.Token,
		PlanetRef: run.PlanetRef,
		RoverRef:  run.RoverRef,
		Outcome:   run.Outcome,
		Timeline:  make([]TraceStep, 0, len(steps)),
	}
	for _, step := range steps {
		result.Timeline = append(result.Timeline, TraceStep{
			Seq:    step.Seq,
			Event:  step.Event,
			State:  step.State,
			Effect: step.Effect,
		})
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s)\n", run.Token, run.Outcome)
	fmt.Fprintf(out, "Sources: planet=%s rover=%s\n", run.PlanetRef, run.RoverRef)
	for _, step := range result.Timeline {
		fmt.Fprintf(out, "  %2d  %-24s -> %-8s %s\n",
			step.Seq, formatRecord(step.Event), step.State, formatRecord(step.Effect))
	}
	return nil
}

// formatRecord renders a record as Kind(k=v, ...) with stable field order.
func formatRecord(rec trace.Record) string {
	if len(rec.Fields) == 0 {
		return rec.Kind
	}
	keys := make([]string, 0, len(rec.Fields))
	for k := range rec.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + rec.Fields[k]
	}
	return rec.Kind + "(" + strings.Join(pairs, ", ") + ")"
}
