package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/genome"
	"github.com/ENKI-420/dnalang/internal/organism"
	"github.com/ENKI-420/dnalang/internal/runtime"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	GenomesDir    string
	GenomeName    string
	Standard      bool
	Iterations    int
	Dt            float64
	ConfigFile    string
	ToSovereignty bool

	// TokenGenerator allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	TokenGenerator runtime.TokenGenerator
}

// RunSummary is the run command's result payload.
type RunSummary struct {
	Organism string            `json:"organism"`
	Report   runtime.RunReport `json:"report"`
	DMA      float64           `json:"dma"`
	Ticks    int64             `json:"ticks"`
	Epoch    float64           `json:"epoch"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}
	defaults := DefaultRunConfig()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve an organism and report the final manifold",
		Long: `Evolve an organism through suppress/elevate cycles and report the
final manifold.

The organism comes from a CUE genome directory or the built-in standard
mesh. Each iteration evolves the aggregate state, suppresses
decoherence, elevates coherence, and checks collapse conditions; a seal
stops the run early.

Example:
  dna run --standard --iterations 25
  dna run --genomes ./genomes --genome CRSM7_Z3MESH --to-sovereignty`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GenomesDir, "genomes", "", "directory of CUE genome definitions")
	cmd.Flags().StringVar(&opts.GenomeName, "genome", "", "genome to run (defaults to the only genome in the directory)")
	cmd.Flags().BoolVar(&opts.Standard, "standard", false, "run the standard organism")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", defaults.Iterations, "number of evolution cycles")
	cmd.Flags().Float64Var(&opts.Dt, "dt", defaults.Dt, "time step per cycle")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to a YAML run configuration file")
	cmd.Flags().BoolVar(&opts.ToSovereignty, "to-sovereignty", false, "cycle until sovereignty, bounded by the iteration budget")

	return cmd
}

func runRun(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Exactly one organism source
	if opts.Standard && opts.GenomesDir != "" {
		return NewExitError(ExitCommandError, "--standard and --genomes are mutually exclusive")
	}
	if !opts.Standard && opts.GenomesDir == "" {
		return NewExitError(ExitCommandError, "one of --standard or --genomes is required")
	}
	if opts.GenomeName != "" && opts.GenomesDir == "" {
		return NewExitError(ExitCommandError, "--genome requires --genomes")
	}

	runCfg, err := LoadRunConfig(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load run config", err)
	}

	// Flags set on the command line win over file and environment layers
	if cmd.Flags().Changed("iterations") {
		runCfg.Iterations = opts.Iterations
	}
	if cmd.Flags().Changed("dt") {
		runCfg.Dt = opts.Dt
	}

	if err := runCfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid run config", err)
	}

	// Runtime logs go to stderr; debug level when verbose
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	var org *organism.Organism
	kernelCfg := crsm.DefaultConfig()
	if opts.Standard {
		org = organism.NewStandard(runCfg.apply(kernelCfg))
	} else {
		var err error
		org, kernelCfg, err = loadGenomeOrganism(opts.GenomesDir, opts.GenomeName)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load genome", err)
		}
		kernelCfg = runCfg.apply(kernelCfg)
	}
	formatter.VerboseLog("Loaded organism %s with %d gene(s)", org.Name, org.GeneCount())

	rtOpts := []runtime.Option{
		runtime.WithConfig(kernelCfg),
		runtime.WithMaxIterations(runCfg.MaxIterations),
		runtime.WithLogger(logger),
	}
	if opts.TokenGenerator != nil {
		rtOpts = append(rtOpts, runtime.WithTokenGenerator(opts.TokenGenerator))
	}
	rt, err := runtime.New(rtOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize runtime", err)
	}
	if _, err := rt.LoadOrganism(org); err != nil {
		return WrapExitError(ExitCommandError, "failed to load organism", err)
	}

	var report runtime.RunReport
	var budgetErr *runtime.IterationsExceededError
	if opts.ToSovereignty {
		var runErr error
		report, runErr = rt.RunToSovereignty(org, runCfg.Dt)
		if runErr != nil && !errors.As(runErr, &budgetErr) {
			return WrapExitError(ExitCommandError, "run failed", runErr)
		}
	} else {
		report = rt.Run(org, runCfg.Iterations, runCfg.Dt)
	}

	summary := RunSummary{
		Organism: org.Name,
		Report:   report,
		DMA:      rt.ExecuteDMA(org),
		Ticks:    rt.Ticks(),
		Epoch:    rt.Epoch(),
	}

	if budgetErr != nil {
		return outputRunBudgetExceeded(formatter, summary, budgetErr)
	}
	return outputRunSummary(formatter, summary)
}

// resolveOrganism returns the standard organism when dir is empty, else
// builds one from the genome directory.
func resolveOrganism(dir, name string) (*organism.Organism, error) {
	if dir == "" {
		return organism.NewStandard(crsm.DefaultConfig()), nil
	}
	org, _, err := loadGenomeOrganism(dir, name)
	return org, err
}

// loadGenomeOrganism builds an organism from a genome directory. With an
// empty name the directory must hold exactly one genome.
func loadGenomeOrganism(dir, name string) (*organism.Organism, crsm.Config, error) {
	loadResult, loadErrors := genome.LoadGenomes(dir, genome.LoadModeFailFast)
	if loadResult == nil && len(loadErrors) > 0 {
		return nil, crsm.Config{}, loadErrors[0]
	}
	if len(loadErrors) > 0 {
		return nil, crsm.Config{}, loadErrors[0]
	}

	var spec *genome.GenomeSpec
	if name == "" {
		if len(loadResult.Genomes) != 1 {
			return nil, crsm.Config{}, fmt.Errorf("multiple genomes in %s; select one with --genome", dir)
		}
		spec = &loadResult.Genomes[0]
	} else {
		spec = loadResult.Genome(name)
		if spec == nil {
			return nil, crsm.Config{}, fmt.Errorf("genome %q not found in %s", name, dir)
		}
	}

	return genome.Build(spec, crsm.DefaultConfig())
}

// outputRunSummary outputs the final run state.
func outputRunSummary(formatter *OutputFormatter, summary RunSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	writeRunText(formatter, summary)
	return nil
}

// outputRunBudgetExceeded reports a sovereignty run that exhausted its
// iteration budget. The partial summary is still emitted.
func outputRunBudgetExceeded(formatter *OutputFormatter, summary RunSummary, budgetErr *runtime.IterationsExceededError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   summary,
			Error: &CLIError{
				Code:    "E_BUDGET_EXCEEDED",
				Message: budgetErr.Error(),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, budgetErr.Error())
	}

	writeRunText(formatter, summary)
	fmt.Fprintf(formatter.Writer, "✗ Sovereignty not reached within %d iteration(s)\n", budgetErr.Limit)

	return NewExitError(ExitFailure, budgetErr.Error())
}

// writeRunText renders the human-readable run block.
func writeRunText(formatter *OutputFormatter, summary RunSummary) {
	w := formatter.Writer

	fmt.Fprintf(w, "Organism %s: %d iteration(s) at dt=%g\n", summary.Organism, summary.Report.Iterations, summary.Report.Dt)
	fmt.Fprintf(w, "Run token: %s\n\n", summary.Report.Token)
	fmt.Fprintln(w, summary.Report.Manifold.Report())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sovereignty: %.6f (sovereign: %t)\n", summary.Report.Sovereignty, summary.Report.Sovereign)
	fmt.Fprintf(w, "DMA gradient: %.6f\n", summary.DMA)
	fmt.Fprintf(w, "Ticks: %d\n", summary.Ticks)

	if summary.Report.Collapse.GammaCollapsed {
		fmt.Fprintln(w, "Γ collapse: aggregate polarity inverted")
	}
	if summary.Report.Sealed {
		fmt.Fprintln(w, "Λ·Φ seal reached: evolution halted")
	}
}
