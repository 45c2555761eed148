package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ENKI-420/dnalang/internal/organism"
)

// BifurcateOptions holds flags for the bifurcate command.
type BifurcateOptions struct {
	*RootOptions
	GenomesDir string
	GenomeName string
}

// BifurcationResult holds the two polarity branches of an aggregate state.
type BifurcationResult struct {
	Organism string                 `json:"organism"`
	Source   organism.ManifoldState `json:"source"`
	Plus     organism.ManifoldState `json:"plus"`
	Minus    organism.ManifoldState `json:"minus"`
}

// NewBifurcateCommand creates the bifurcate command.
func NewBifurcateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BifurcateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bifurcate",
		Short: "Split an organism into its polarity branches",
		Long: `Split an organism's aggregate state into its two polarity branches.

The Π± projections yield an identical manifold with ρ = +1 and one with
ρ = −1. The source organism is untouched. Without --genomes the standard
organism is bifurcated.

Example:
  dna bifurcate
  dna bifurcate --genomes ./genomes --genome CRSM7_Z3MESH`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBifurcate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.GenomesDir, "genomes", "", "directory of CUE genome definitions (defaults to the standard organism)")
	cmd.Flags().StringVar(&opts.GenomeName, "genome", "", "genome to bifurcate (defaults to the only genome in the directory)")

	return cmd
}

func runBifurcate(opts *BifurcateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.GenomeName != "" && opts.GenomesDir == "" {
		return NewExitError(ExitCommandError, "--genome requires --genomes")
	}

	org, err := resolveOrganism(opts.GenomesDir, opts.GenomeName)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load genome", err)
	}
	formatter.VerboseLog("Bifurcating organism %s", org.Name)

	plus, minus := org.State.Bifurcate()

	result := BifurcationResult{
		Organism: org.Name,
		Source:   org.Manifold(),
		Plus:     organism.FromState(plus),
		Minus:    organism.FromState(minus),
	}

	return outputBifurcation(formatter, result)
}

// outputBifurcation outputs both polarity branches.
func outputBifurcation(formatter *OutputFormatter, result BifurcationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Bifurcation of %s\n\n", result.Organism)
	fmt.Fprintln(w, "Π+ branch:")
	fmt.Fprintln(w, result.Plus.Report())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Π− branch:")
	fmt.Fprintln(w, result.Minus.Report())

	return nil
}
