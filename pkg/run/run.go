// Package run wraps the external test runner. It is orchestration only:
// the summarizer core never invokes the runner itself, it consumes the
// artifact the runner leaves behind.
package run

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/pytest-kit/testsum/pkg/summarize"
)

type Options struct {
	suite  string
	raw    string
	output string
}

func NewCmdRun() *cobra.Command {
	o := Options{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the test suite, then summarize its JSON report.",
		Long: `Invokes the configured test runner with the pytest-json-report plugin
enabled, waits for completion, and summarizes the raw report. The process
exit code propagates the runner's exit code after the summary is written,
so CI gates on the suite outcome; use the summarize command alone for an
exit code reflecting only the summarizer.`,
		Run: func(cmd *cobra.Command, args []string) {
			exitCode, err := runSuite(&o)
			if err != nil {
				log.Error(errors.Wrap(err, "could not run test suite"))
				os.Exit(1)
			}
			if err := summarize.Process(summarize.NewInput(o.raw, o.output)); err != nil {
				log.Error(errors.Wrap(err, "could not summarize raw report"))
				os.Exit(1)
			}
			if exitCode != 0 {
				log.Warnf("test suite finished with failures (exit code %d)", exitCode)
				os.Exit(exitCode)
			}
		},
	}

	cmd.Flags().StringVar(&o.suite, "suite", "test_models.py", "Test suite passed to the runner")
	cmd.Flags().StringVar(&o.raw, "raw", "raw_results.json", "Raw report file the runner is asked to write")
	cmd.Flags().StringVarP(&o.output, "output", "o", "output.json", "Destination of the summary artifact")
	cmd.Flags().String("runner", "python3", "Interpreter used to launch pytest")
	_ = viper.BindPFlag("runner", cmd.Flags().Lookup("runner"))
	return cmd
}

// runSuite launches the runner and streams its output through the logger,
// returning the runner's exit code. A non-zero exit is not an error here:
// the suite failing is a valid result to summarize.
func runSuite(o *Options) (int, error) {
	runner := viper.GetString("runner")
	args := []string{
		"-m", "pytest", o.suite, "-v",
		"--json-report", "--json-report-file=" + o.raw,
	}
	log.Infof("Running %s %v", runner, args)

	cmd := exec.Command(runner, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, errors.Wrap(err, "unable to open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, errors.Wrap(err, "unable to open stderr pipe")
	}
	if err := cmd.Start(); err != nil {
		return 0, errors.Wrapf(err, "unable to start runner %s", runner)
	}

	eg := &errgroup.Group{}
	eg.Go(func() error { return streamLines(stdout, log.Info) })
	eg.Go(func() error { return streamLines(stderr, log.Warn) })
	if err := eg.Wait(); err != nil {
		log.Warnf("error draining runner output: %v", err)
	}

	if err := cmd.Wait(); err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, errors.Wrapf(err, "runner %s did not complete", runner)
	}
	return 0, nil
}

func streamLines(r io.Reader, logFn func(...interface{})) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logFn(scanner.Text())
	}
	return scanner.Err()
}
