package harness

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("harness")

// ErrMismatch is returned by Run when results differ from the expected output
var ErrMismatch = errors.New("results differ from expected output")

// Stats summarizes a finished (or aborted) run
type Stats struct {
	// Cases is the number of test cases solved
	Cases int
	// Tokens is the number of input tokens consumed, including the test count
	Tokens int
	// Mismatches is the number of results that differ from the expected output
	Mismatches int
	// Duration is the wall time of the run
	Duration time.Duration
}

func (s Stats) String() string {
	if s.Mismatches > 0 {
		return fmt.Sprintf("%d cases (%d mismatched), %d tokens in %s", s.Cases, s.Mismatches, s.Tokens, s.Duration)
	}
	return fmt.Sprintf("%d cases, %d tokens in %s", s.Cases, s.Tokens, s.Duration)
}

// Runner executes the multi-case test loop: it reads the number of test cases
// T and then calls the solution T times, terminating each result with a newline.
//
// The zero value writes the canonical format and logs to the package logger.
type Runner struct {
	// Name labels the metrics of the run, usually the solution name
	Name string
	// Format of the written results
	Format codec.Format
	// Logger overrides the package logger
	Logger logger.ILogger
	// Expect holds the expected results, one line per test case written in
	// Format. If set, every result line is compared with it.
	Expect io.Reader
}

// Run reads the test cases from in and writes one result line per case to out.
// The first error aborts the run; it is wrapped with the 1-based number of the
// failing case. Results of the cases before it are still flushed to out.
//
// With Expect set, mismatching results do not abort the run. They are
// collected and returned together as an ErrMismatch after the last case.
func (rn *Runner) Run(in io.Reader, out io.Writer, sol Solution) (Stats, error) {
	log := rn.Logger
	if log == nil {
		log = Logger
	}
	m := metricsFor(rn.Name)
	start := time.Now()

	r := codec.NewReader(in)

	// with expectations every result is written to caseOut first, compared
	// and then moved to bw
	var (
		exp     *expectation
		caseOut bytes.Buffer
		bw      *bufio.Writer
		w       *codec.Writer
	)
	if rn.Expect != nil {
		exp = newExpectation(rn.Expect)
		bw = bufio.NewWriter(out)
		w = codec.NewWriter(&caseOut, rn.Format)
	} else {
		w = codec.NewWriter(out, rn.Format)
	}

	var stats Stats
	finish := func(err error) (Stats, error) {
		stats.Tokens = r.Consumed()
		stats.Duration = time.Since(start)
		m.tokens.Add(stats.Tokens)
		flushErr := w.Flush()
		if flushErr == nil && bw != nil {
			flushErr = bw.Flush()
		}
		if err == nil && flushErr != nil {
			err = errors.Wrap(flushErr, "write results")
		}
		if err != nil {
			m.errors.Inc()
			log.Errorf("run %s failed after %s: %v", rn.Name, stats, err)
		}
		return stats, err
	}

	t, err := r.Count()
	if err != nil {
		return finish(errors.Wrap(err, "read number of test cases"))
	}
	log.Infof("run %s: %d test cases (%s)", rn.Name, t, rn.Format)

	for i := 1; i <= t; i++ {
		caseStart := time.Now()
		if err := sol.Solve(r, w); err != nil {
			return finish(errors.Wrapf(err, "test case %d of %d", i, t))
		}
		w.Newline()
		if err := w.Err(); err != nil {
			return finish(errors.Wrapf(err, "write result of test case %d", i))
		}

		if exp != nil {
			if err := w.Flush(); err != nil {
				return finish(errors.Wrapf(err, "write result of test case %d", i))
			}
			got := strings.TrimSuffix(caseOut.String(), "\n")
			if _, err := caseOut.WriteTo(bw); err != nil {
				return finish(errors.Wrapf(err, "write result of test case %d", i))
			}
			if err := exp.check(i, got); err != nil {
				return finish(err)
			}
		}

		elapsed := time.Since(caseStart)
		m.observeCase(elapsed)
		stats.Cases++
		log.Debugf("test case %d of %d solved in %s", i, t, elapsed)
	}

	if exp != nil {
		if err := exp.finish(t); err != nil {
			return finish(err)
		}
		stats.Mismatches = len(exp.mismatches)
		m.mismatches.Add(stats.Mismatches)
		for _, msg := range exp.mismatches {
			log.Warningf("run %s: %s", rn.Name, msg)
		}
		if stats.Mismatches > 0 {
			return finish(errors.Mark(errors.Newf("%d of %d test cases differ from the expected output:\n%s",
				stats.Mismatches, t, strings.Join(exp.mismatches, "\n")), ErrMismatch))
		}
	}

	stats, err = finish(nil)
	if err == nil {
		log.Infof("run %s finished: %s", rn.Name, stats)
	}
	return stats, err
}

// --------------------------------------------------------------------------
// Expected output
// --------------------------------------------------------------------------

// expectation reads the expected result lines and collects mismatches
type expectation struct {
	br         *bufio.Reader
	mismatches []string
}

func newExpectation(r io.Reader) *expectation {
	return &expectation{br: bufio.NewReader(r)}
}

// next returns the next expected line. ok is false at the end of the input.
func (e *expectation) next() (line string, ok bool, err error) {
	line, err = e.br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "read expected output")
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// check compares the result of test case i with the next expected line
func (e *expectation) check(i int, got string) error {
	want, ok, err := e.next()
	if err != nil {
		return err
	}
	switch {
	case !ok:
		e.mismatches = append(e.mismatches, fmt.Sprintf("test case %d: no expected output, got %s", i, got))
	case want != got:
		e.mismatches = append(e.mismatches, fmt.Sprintf("test case %d: expected %s, got %s", i, want, got))
	}
	return nil
}

// finish records expected lines left over after t test cases. Trailing blank
// lines are ignored.
func (e *expectation) finish(t int) error {
	extra := 0
	for {
		line, ok, err := e.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if strings.TrimSpace(line) != "" {
			extra++
		}
	}
	if extra > 0 {
		e.mismatches = append(e.mismatches, fmt.Sprintf("expected output has %d more lines than the %d test cases", extra, t))
	}
	return nil
}
