package pwlab

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/engine"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
)

var (
	flagBatchFile    string
	flagBatchPolicy  string
	flagBatchThreads int
	flagBatchJSON    bool
	flagBatchFailOn  string
	flagBatchAudit   bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Assess one password per line from a file",
		Long: "Each line of --file is assessed as a password. Use '-' to read stdin. " +
			"Output lists the line number, masked sample, strength, entropy and verdict.",
		Args: cobra.NoArgs,
		RunE: runBatch,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagBatchFile, "file", "", "file with one password per line ('-' for stdin)")
	cmd.Flags().StringVarP(&flagBatchPolicy, "policy", "p", "", "policy name")
	cmd.Flags().IntVar(&flagBatchThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&flagBatchJSON, "json", false, "emit JSON")
	cmd.Flags().StringVar(&flagBatchFailOn, "fail-on", "", "exit 1 when any verdict reaches: never|warn|fail (default never)")
	cmd.Flags().BoolVar(&flagBatchAudit, "audit", false, "append results to the audit log")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.RegisterFlagCompletionFunc("policy", completePolicies)
	_ = cmd.RegisterFlagCompletionFunc("fail-on", completeFailOn)
}

// readLines splits r into lines, dropping line endings and a trailing
// empty line.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

func runBatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, cliFlags{
		policy:  flagBatchPolicy,
		failOn:  flagBatchFailOn,
		threads: flagBatchThreads,
		audit:   flagBatchAudit,
	})
	if err != nil {
		return err
	}
	if err := report.ValidateFailOn(a.FailOn); err != nil {
		return err
	}
	// A batch is a survey, so it only gates when asked to.
	if a.FailOn == "" {
		a.FailOn = report.FailOnNever
	}

	var in io.Reader = cmd.InOrStdin()
	if flagBatchFile != "-" {
		f, err := os.Open(flagBatchFile)
		if err != nil {
			return fmt.Errorf("batch: %w", err)
		}
		defer f.Close()
		in = f
	}
	lines, err := readLines(in)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	showProgress := !flagBatchJSON && writerIsTerminal(stderr) && len(lines) > 0
	var done atomic.Int64
	eng := a.engine
	if showProgress {
		total := int64(len(lines))
		eng = engine.New(engine.Config{
			Registry: a.registry,
			Threads:  a.Threads,
			Logger:   a.logger,
			Progress: func() {
				n := done.Add(1)
				if n%100 == 0 || n == total {
					fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", n, total, float64(n)/float64(total)*100)
				}
			},
		})
	}

	p := a.registry.Default()
	results, err := eng.AssessBatch(cmd.Context(), lines, &p)
	if showProgress {
		fmt.Fprintln(stderr)
	}
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	var buf bytes.Buffer
	if flagBatchJSON {
		err = report.WriteJSON(&buf, results, report.JSONOptions{})
	} else {
		noColor := a.NoColor || !writerIsTerminal(cmd.OutOrStdout())
		err = report.PrintBatch(&buf, results, report.PrintOptions{NoColor: noColor})
	}
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, "", buf.Bytes()); err != nil {
		return err
	}

	if a.Audit {
		a.record(results, "batch")
	}
	if report.ShouldFail(results, a.FailOn) {
		exitFunc(1)
	}
	return nil
}
