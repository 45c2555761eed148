package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ENKI-420/dnalang/internal/genome"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledGenome is a genome spec plus the fingerprint of its canonical form.
type CompiledGenome struct {
	genome.GenomeSpec
	Fingerprint string `json:"fingerprint"`
}

// CompilationResult holds the compiled genomes.
type CompilationResult struct {
	Genomes []CompiledGenome `json:"genomes"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	GenomeCount    int
	TotalGenes     int
	TotalOperators int
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <genomes-dir>",
		Short: "Compile CUE genomes to canonical form",
		Long: `Compile CUE genome definitions to their canonical form.

The compiler parses CUE files, validates gene seeds and constant
overrides, and outputs canonical JSON with a fingerprint per genome.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, genomesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Use shared loader with collect-all mode
	loadResult, loadErrors := genome.LoadGenomes(genomesDir, genome.LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *genome.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, genome.ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, genomesDir)

	for i := range loadResult.Genomes {
		formatter.VerboseLog("Compiling genome: %s", loadResult.Genomes[i].Name)
	}

	// Handle compilation errors
	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	// Fingerprint each genome
	result := &CompilationResult{
		Genomes: make([]CompiledGenome, 0, len(loadResult.Genomes)),
	}
	for i := range loadResult.Genomes {
		spec := loadResult.Genomes[i]
		fp, err := genome.Fingerprint(&spec)
		if err != nil {
			return outputCompileError(formatter, genome.ErrCodeGeneric,
				fmt.Sprintf("fingerprinting genome %s: %v", spec.Name, err), nil)
		}
		result.Genomes = append(result.Genomes, CompiledGenome{
			GenomeSpec:  spec,
			Fingerprint: fp,
		})
	}

	// Calculate statistics
	stats := calculateStats(result)

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeGenomesToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, genome.ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	// Output success
	return outputCompileSuccess(formatter, result, stats, opts.Output)
}

// calculateStats computes summary statistics from compilation result.
func calculateStats(result *CompilationResult) CompilationStats {
	stats := CompilationStats{
		GenomeCount: len(result.Genomes),
	}

	for _, g := range result.Genomes {
		stats.TotalGenes += len(g.Genes)
		stats.TotalOperators += len(g.Operators)
	}

	return stats
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, stats CompilationStats, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d genome(s), %d gene(s)\n\n",
		stats.GenomeCount, stats.TotalGenes)

	if len(result.Genomes) > 0 {
		fmt.Fprintln(formatter.Writer, "Genomes:")
		for _, g := range result.Genomes {
			opCount := len(g.Operators)
			opSuffix := "operators"
			if opCount == 1 {
				opSuffix = "operator"
			}
			fmt.Fprintf(formatter.Writer, "  %s: %d gene(s), %d %s\n",
				g.Name, len(g.Genes), opCount, opSuffix)
			fmt.Fprintf(formatter.Writer, "    fingerprint: %s\n", g.Fingerprint[:12])
		}
		fmt.Fprintln(formatter.Writer)
	}

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote compiled genomes to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		// JSON format - use CLIResponse with first error
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{
				Code:    code,
				Message: message,
			}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Compilation errors are command-level errors (exit code 2)
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		var compileErr *genome.CompileError
		if errors.As(err, &compileErr) && compileErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				compileErr.Pos.Filename(),
				compileErr.Pos.Line(),
				compileErr.Pos.Column())
		}
		var loadErr *genome.LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	// Compilation errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var compileErr *genome.CompileError
	if errors.As(err, &compileErr) {
		code := genome.MapFieldToErrorCode(compileErr.Field)
		return code, compileErr.Message
	}
	var loadErr *genome.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return genome.ErrCodeGeneric, err.Error()
}

// writeGenomesToFile writes the compilation result to a file in canonical JSON format.
func writeGenomesToFile(result *CompilationResult, filename string) error {
	// Indented JSON for readability (the unindented canonical form is used
	// only for fingerprinting)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling genomes: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
