package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/genome"
)

// ValidationIssue describes one problem found while validating genomes.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <genomes-dir>",
		Short: "Validate genomes without producing output",
		Long: `Validate CUE genome definitions without producing output.

Performs syntax checking, gene seed validation, and constant override
checks against the kernel configuration. Faster feedback than compile
during genome development.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, genomesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Collect-all mode so a single pass reports every problem
	loadResult, loadErrors := genome.LoadGenomes(genomesDir, genome.LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *genome.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, genome.ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, genomesDir)

	var issues []ValidationIssue
	for _, err := range loadErrors {
		issues = append(issues, issueFromError(err))
	}

	// Compiled genomes still need a semantic pass: constant override values
	// must yield a configuration the kernel accepts.
	for i := range loadResult.Genomes {
		spec := loadResult.Genomes[i]
		formatter.VerboseLog("Validating genome: %s", spec.Name)

		if _, _, err := genome.Build(&spec, crsm.DefaultConfig()); err != nil {
			issues = append(issues, ValidationIssue{
				Code:    genome.ErrCodeConstant,
				Message: err.Error(),
			})
		}
	}

	if len(issues) > 0 {
		return outputValidationIssues(formatter, issues)
	}

	// Output success
	return outputValidateSuccess(formatter)
}

// issueFromError converts a load or compile error into a validation issue.
func issueFromError(err error) ValidationIssue {
	var compileErr *genome.CompileError
	if errors.As(err, &compileErr) {
		issue := ValidationIssue{
			Code:    genome.MapFieldToErrorCode(compileErr.Field),
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
		}
		if compileErr.Pos.IsValid() {
			issue.File = compileErr.Pos.Filename()
			issue.Line = compileErr.Pos.Line()
		}
		return issue
	}

	var loadErr *genome.LoadError
	if errors.As(err, &loadErr) {
		issue := ValidationIssue{
			Code:    loadErr.Code,
			Message: loadErr.Message,
		}
		if loadErr.Pos.IsValid() {
			issue.File = loadErr.Pos.Filename()
			issue.Line = loadErr.Pos.Line()
		}
		return issue
	}

	return ValidationIssue{Code: genome.ErrCodeGeneric, Message: err.Error()}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ All genomes valid")
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Directory-level errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationIssues outputs multiple validation issues.
func outputValidationIssues(formatter *OutputFormatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Issues: issues,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.File != "" {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", issue.File, issue.Line)
		} else if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", issue.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
}
