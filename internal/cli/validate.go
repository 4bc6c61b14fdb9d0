package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/marsbound/rover/internal/core"
	"github.com/marsbound/rover/internal/missionfile"
	"github.com/marsbound/rover/internal/parse"
	"github.com/marsbound/rover/internal/shell"
)

// ValidationIssue is one reason a source failed validation.
type ValidationIssue struct {
	Source  string `json:"source"`           // "planet", "rover" or "mission.<name>"
	Code    string `json:"code"`             // mission error code or "DECODE"
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`    // offending raw value
	Reason  string `json:"reason,omitempty"` // reason tag (InvalidSize, ...)
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate mission sources without running",
		Long: `Validate mission sources without starting a run.

Checks the same grammar the run command trusts: planet size and obstacle
list, rover position and direction. Works on two-line text files
(--planet and --rover) or on a CUE mission pack (--mission).

Exit codes:
  0 - Sources are valid
  1 - Validation failed
  2 - Command error (missing flags, unreadable files)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PlanetPath, "planet", "", "path to two-line planet file")
	cmd.Flags().StringVar(&opts.RoverPath, "rover", "", "path to two-line rover file")
	cmd.Flags().StringVar(&opts.MissionPack, "mission", "", "path to CUE mission pack")

	return cmd
}

func runValidate(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var issues []ValidationIssue
	var err error

	switch {
	case opts.MissionPack != "":
		issues, err = validatePack(opts.MissionPack, formatter)
	case opts.PlanetPath != "" && opts.RoverPath != "":
		issues, err = validateTextSources(opts.PlanetPath, opts.RoverPath, formatter)
	default:
		return NewExitError(ExitCommandError, "either --mission or both --planet and --rover are required")
	}
	if err != nil {
		return err
	}

	result := ValidationResult{Valid: len(issues) == 0, Issues: issues}
	if !result.Valid {
		if opts.Format == "json" {
			if err := formatter.Success(result); err != nil {
				return err
			}
		} else {
			for _, issue := range issues {
				_ = formatter.Error(issue.Code, issue.Source+": "+issue.Message, nil)
			}
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success("Sources are valid.")
}

func validateTextSources(planetPath, roverPath string, formatter *OutputFormatter) ([]ValidationIssue, error) {
	loader := shell.FileLoader{}
	var issues []ValidationIssue

	sizeLine, obstaclesLine, err := loader.Load(planetPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read planet source", err)
	}
	formatter.VerboseLog("planet source: %q / %q", sizeLine, obstaclesLine)
	if _, perr := parse.Planet(sizeLine, obstaclesLine); perr != nil {
		issues = append(issues, issueFrom("planet", perr))
	}

	posLine, dirLine, err := loader.Load(roverPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read rover source", err)
	}
	formatter.VerboseLog("rover source: %q / %q", posLine, dirLine)
	if _, perr := parse.Rover(posLine, dirLine); perr != nil {
		issues = append(issues, issueFrom("rover", perr))
	}

	return issues, nil
}

func validatePack(path string, formatter *OutputFormatter) ([]ValidationIssue, error) {
	pack, errs := missionfile.LoadPack(path)
	if pack == nil && len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, "failed to load mission pack", errs[0])
	}

	var issues []ValidationIssue
	for _, err := range errs {
		var derr *missionfile.DecodeError
		if errors.As(err, &derr) {
			issues = append(issues, ValidationIssue{
				Source:  "mission." + derr.Field,
				Code:    "DECODE",
				Message: derr.Error(),
			})
			continue
		}
		issues = append(issues, ValidationIssue{
			Source:  "mission",
			Code:    "DECODE",
			Message: err.Error(),
		})
	}

	if pack != nil {
		formatter.VerboseLog("pack declares %d valid mission(s)", len(pack.Missions))
	}
	return issues, nil
}

func issueFrom(source string, err *core.Error) ValidationIssue {
	return ValidationIssue{
		Source:  source,
		Code:    string(err.Code),
		Message: err.Message,
		Raw:     err.RawValue,
		Reason:  err.Reason,
	}
}
