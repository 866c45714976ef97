// Package summarize implements the core pipeline: load the raw pytest
// JSON report, extract the outcome counts, derive status and advisories,
// and write the summary artifact.
//
// The command exits zero whenever the summary was written, regardless of
// the test outcome it describes: a failing test run is still a successful
// summarization. Non-zero exits are reserved for faults in the pipeline
// itself (malformed input, write failure).
package summarize

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pytest-kit/testsum/internal/summary"
)

type Input struct {
	input       string
	output      string
	catalog     string
	withRuntime bool
}

// NewInput builds a pipeline input for wrappers that already resolved
// the artifact locations, such as the run command.
func NewInput(input, output string) *Input {
	return &Input{input: input, output: output}
}

func NewCmdSummarize() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Create the summary artifact from a raw pytest JSON report.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := Process(&data); err != nil {
				log.Error(errors.Wrap(err, "could not summarize raw report"))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(
		&data.input, "input", "i", "raw_results.json",
		"Raw pytest JSON report. Compressed artifacts (.gz, .xz) are decoded transparently",
	)
	cmd.Flags().StringVarP(
		&data.output, "output", "o", "output.json",
		"Destination of the summary artifact. Overwritten on every run",
	)
	cmd.Flags().StringVar(
		&data.catalog, "catalog", "",
		"YAML file replacing the built-in known-issue catalog",
	)
	cmd.Flags().BoolVar(
		&data.withRuntime, "with-runtime", false,
		"Include duration statistics mined from the tests list",
	)
	return cmd
}

// Process runs the pipeline end to end. A missing input artifact is
// recovered locally (zero counts, unknown status, output still written);
// anything else is returned to the caller.
func Process(in *Input) error {
	raw, err := summary.Load(in.input)
	if err != nil {
		if !summary.IsNotFound(err) {
			return err
		}
		log.Warnf("raw report %s not found, reporting unknown status", in.input)
		raw = nil
	}

	catalog := summary.DefaultCatalog()
	if in.catalog != "" {
		if catalog, err = summary.LoadCatalog(in.catalog); err != nil {
			return err
		}
	}

	result := summary.NewSummary()
	result.Populate(raw)
	result.AttachAdvisories(catalog)
	if in.withRuntime {
		result.AttachRuntime(raw)
	}

	if err := summary.Write(result, in.output); err != nil {
		return err
	}
	log.Infof("Results saved to %s", in.output)
	return nil
}
