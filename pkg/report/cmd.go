// Package report renders a previously written summary artifact for
// humans: terminal view, standalone HTML page, or spreadsheet.
package report

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pytest-kit/testsum/internal/summary"
)

type Input struct {
	summaryFile string
	format      string
	saveTo      string
}

func NewCmdReport() *cobra.Command {
	data := Input{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a written summary artifact.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := processReport(&data); err != nil {
				log.Error(errors.Wrapf(err, "could not render summary %s", data.summaryFile))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(
		&data.summaryFile, "summary", "s", "output.json",
		"Summary artifact written by the summarize command",
	)
	cmd.Flags().StringVarP(
		&data.format, "format", "f", summary.FormatText,
		"Output format: text, html or xlsx",
	)
	cmd.Flags().StringVar(
		&data.saveTo, "save-to", "",
		"Target file for html/xlsx output. Defaults to summary.<format>",
	)
	return cmd
}

func processReport(in *Input) error {
	s, err := summary.Read(in.summaryFile)
	if err != nil {
		return err
	}

	switch in.format {
	case summary.FormatText:
		return summary.RenderText(s, os.Stdout)
	case summary.FormatHTML:
		saveTo := in.saveTo
		if saveTo == "" {
			saveTo = "summary.html"
		}
		if err := summary.RenderHTML(s, saveTo); err != nil {
			return err
		}
		log.Infof("Results saved to %s", saveTo)
	case summary.FormatXLSX:
		saveTo := in.saveTo
		if saveTo == "" {
			saveTo = "summary.xlsx"
		}
		if err := summary.RenderXLSX(s, saveTo); err != nil {
			return err
		}
		log.Infof("Results saved to %s", saveTo)
	default:
		return errors.Errorf("unsupported report format: %s", in.format)
	}
	return nil
}
