package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marsbound/rover/internal/missionfile"
	"github.com/marsbound/rover/internal/runtime"
	"github.com/marsbound/rover/internal/shell"
	"github.com/marsbound/rover/internal/sim"
	"github.com/marsbound/rover/internal/store"
	"github.com/marsbound/rover/internal/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	PlanetPath  string
	RoverPath   string
	MissionPack string
	MissionName string
	Database    string

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens runtime.RunTokenGenerator
}

// RunSummary is the run command's JSON payload.
type RunSummary struct {
	RunToken   string   `json:"run_token"`
	Outcome    string   `json:"outcome"`
	FinalState string   `json:"final_state"`
	Steps      int64    `json:"steps"`
	Reports    []string `json:"reports"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one rover mission",
		Long: `Run one rover mission: load the planet and rover sources, prompt for a
command batch, and print the final pose report.

Sources come either from two-line text files (--planet and --rover) or from
a CUE mission pack (--mission, with --name when the pack declares several).
A pack mission with a scripted command batch runs without prompting.

With --db, every run is journaled to a SQLite file for later replay.

Examples:
  rover run --planet planet.txt --rover rover.txt
  rover run --mission missions.cue --name demo
  rover run --planet planet.txt --rover rover.txt --db runs.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMission(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PlanetPath, "planet", "", "path to two-line planet file")
	cmd.Flags().StringVar(&opts.RoverPath, "rover", "", "path to two-line rover file")
	cmd.Flags().StringVar(&opts.MissionPack, "mission", "", "path to CUE mission pack")
	cmd.Flags().StringVar(&opts.MissionName, "name", "", "mission name inside the pack")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run journal (optional)")

	return cmd
}

func runMission(opts *RunOptions, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts.Verbose)

	loader, planetRef, roverRef, console, err := resolveSources(opts, cmd)
	if err != nil {
		return err
	}

	var recorder trace.Recorder
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("closing run journal", "error", closeErr)
			}
		}()
		recorder = st
	}

	// In text mode reports stream straight to the terminal. In JSON mode
	// they are captured and embedded in the response payload.
	var sink shell.ReportSink
	var capture *captureSink
	if opts.Format == "json" {
		capture = &captureSink{}
		sink = capture
	} else {
		sink = shell.WriterSink{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	}

	result, err := shell.RunMission(cmd.Context(), shell.MissionConfig{
		PlanetRef:   planetRef,
		RoverRef:    roverRef,
		Interpreter: shell.NewInterpreter(loader, console, sink, logger),
		Recorder:    recorder,
		Tokens:      opts.Tokens,
		Logger:      logger,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "mission aborted", err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		if err := formatter.Success(RunSummary{
			RunToken:   result.RunToken,
			Outcome:    result.Outcome,
			FinalState: result.FinalState.String(),
			Steps:      result.Steps,
			Reports:    capture.lines(),
		}); err != nil {
			return err
		}
	}

	if result.Outcome == trace.OutcomeError {
		return NewExitError(ExitFailure, "mission failed")
	}
	return nil
}

// resolveSources picks the mission sources from the flag combination: text
// files with an interactive console, or a pack mission that may carry its
// own scripted command batch.
func resolveSources(opts *RunOptions, cmd *cobra.Command) (shell.SourceLoader, string, string, shell.LineReader, error) {
	// In JSON mode the prompt moves to stderr so stdout stays parseable.
	promptOut := cmd.OutOrStdout()
	if opts.Format == "json" {
		promptOut = cmd.ErrOrStderr()
	}
	interactive := shell.NewConsoleReader(cmd.InOrStdin(), promptOut)

	if opts.MissionPack != "" {
		if opts.PlanetPath != "" || opts.RoverPath != "" {
			return nil, "", "", nil, NewExitError(ExitCommandError, "--mission and --planet/--rover are mutually exclusive")
		}
		pack, errs := missionfile.LoadPack(opts.MissionPack)
		if len(errs) > 0 {
			return nil, "", "", nil, WrapExitError(ExitCommandError, "failed to load mission pack", errs[0])
		}
		mission, err := pickMission(pack, opts.MissionName)
		if err != nil {
			return nil, "", "", nil, err
		}

		src := missionfile.NewSource(*mission)
		console := shell.LineReader(interactive)
		if mission.Scripted {
			console = &scriptedBatch{line: commandLine(mission.Commands)}
		}
		return src, src.PlanetRef(), src.RoverRef(), console, nil
	}

	if opts.PlanetPath == "" || opts.RoverPath == "" {
		return nil, "", "", nil, NewExitError(ExitCommandError, "either --mission or both --planet and --rover are required")
	}
	return shell.FileLoader{}, opts.PlanetPath, opts.RoverPath, interactive, nil
}

func pickMission(pack *missionfile.Pack, name string) (*missionfile.Mission, error) {
	if name == "" {
		if len(pack.Missions) == 1 {
			return &pack.Missions[0], nil
		}
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("pack declares %d missions, pick one with --name", len(pack.Missions)))
	}
	mission, ok := pack.Lookup(name)
	if !ok {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("no mission %q in pack", name))
	}
	return mission, nil
}

// newLogger builds the command logger. Diagnostics always go to stderr so
// report lines and JSON output stay clean.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if !verbose {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}

// scriptedBatch answers the command prompt once with a pack-scripted batch.
type scriptedBatch struct {
	line string
	used bool
}

func (s *scriptedBatch) PromptAndRead(string) (string, error) {
	if s.used {
		return "", fmt.Errorf("scripted command batch already consumed")
	}
	s.used = true
	return s.line, nil
}

func commandLine(cmds []sim.Command) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteString(c.String())
	}
	return b.String()
}

// captureSink collects report lines for the JSON payload.
type captureSink struct {
	reports []string
}

func (s *captureSink) Info(line string) { s.reports = append(s.reports, line) }

func (s *captureSink) Error(line string) { s.reports = append(s.reports, line) }

func (s *captureSink) lines() []string {
	if s.reports == nil {
		return []string{}
	}
	return s.reports
}
