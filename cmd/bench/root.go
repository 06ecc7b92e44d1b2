package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/tcio/cmd/util"
	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/ValentinKolb/tcio/lib/testcase"
	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/panjf2000/ants/v2"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Logger = logger.GetLogger("bench")

	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Throughput testing tool for the codec",
		Long: `Throughput testing tool for the codec. Every scenario generates random test cases, converts them like "tcio convert" does and runs them through the harness for --rounds rounds on --threads workers. The results are discarded.

Scenarios: ` + strings.Join(ScenarioNames(), ", "),
		PreRunE: processConfig,
		RunE:    run,
	}

	benchSize    = 1000
	benchRounds  = 100
	benchThreads = 4
	benchSkip    = make([]string, 0)
	benchFormat  = codec.FormatCanonical
)

const (
	// benchCases is the number of test cases per round
	benchCases = 4
	benchSeed  = 42
)

func init() {
	key := "size"
	BenchCmd.Flags().Int(key, 1000, util.WrapString("Number of elements (or nodes) per test case"))

	key = "rounds"
	BenchCmd.Flags().Int(key, 100, util.WrapString("How many times the input of every scenario is run"))

	key = "threads"
	BenchCmd.Flags().Int(key, 4, util.WrapString("Number of workers running rounds at the same time"))

	key = "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Scenarios to skip (comma separated - e.g. tree,list)"))

	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processConfig(cmd *cobra.Command, args []string) error {
	if err := util.PrepareCommand(cmd, args); err != nil {
		return err
	}

	format, err := util.GetFormat()
	if err != nil {
		return err
	}
	benchFormat = format
	benchSize = viper.GetInt("size")
	benchRounds = viper.GetInt("rounds")
	benchThreads = viper.GetInt("threads")
	benchSkip = lo.Compact(strings.Split(viper.GetString("skip"), ","))

	if benchSize < 2 {
		return errors.Newf("--size must be at least 2, got %d", benchSize)
	}
	if benchRounds <= 0 || benchThreads <= 0 {
		return errors.New("--rounds and --threads must be positive")
	}
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Throughput testing tool for the codec")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "  %-22s: %s\n", "Format", benchFormat)
	fmt.Fprintf(out, "  %-22s: %d\n", "Size", benchSize)
	fmt.Fprintf(out, "  %-22s: %d x %d cases\n", "Rounds", benchRounds, benchCases)
	fmt.Fprintf(out, "  %-22s: %d\n", "Threads", benchThreads)
	fmt.Fprintln(out)

	rng := rand.New(rand.NewPCG(benchSeed, benchSeed))
	var results []Result
	for _, s := range scenarios {
		if lo.Contains(benchSkip, s.name) {
			results = append(results, Result{Scenario: s.name, Skipped: true})
			printResult(out, results[len(results)-1])
			continue
		}

		input, err := s.Input(benchSize, benchCases, rng)
		if err != nil {
			return errors.Wrapf(err, "generate input of %s", s.name)
		}
		res, err := runScenario(s, input)
		if err != nil {
			return errors.Wrapf(err, "scenario %s", s.name)
		}
		results = append(results, res)
		printResult(out, res)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return errors.Wrap(err, "export results to CSV")
		}
		fmt.Fprintln(out, "Export complete")
	}
	return nil
}

// --------------------------------------------------------------------------
// Scenarios
// --------------------------------------------------------------------------

// scenario is one benchmarked solution together with its input generator
type scenario struct {
	name     string
	solution harness.Solution
	// literals returns the arguments of one test case
	literals func(size int, rng *rand.Rand) []any
}

var scenarios = []scenario{
	{
		name:     "ints",
		solution: identity[[]int](),
		literals: func(size int, rng *rand.Rand) []any {
			return []any{randomInts(size, rng)}
		},
	},
	{
		name:     "strings",
		solution: identity[[]string](),
		literals: func(size int, rng *rand.Rand) []any {
			words := make([]string, size)
			for i := range words {
				words[i] = randomWord(rng)
			}
			return []any{words}
		},
	},
	{
		name:     "matrix",
		solution: identity[[][]int](),
		literals: func(size int, rng *rand.Rand) []any {
			side := max(1, isqrt(size))
			rows := make([][]int, side)
			for i := range rows {
				rows[i] = randomInts(side, rng)
			}
			return []any{rows}
		},
	},
	{
		name:     "list",
		solution: identity[*codec.ListNode](),
		literals: func(size int, rng *rand.Rand) []any {
			return []any{randomInts(size, rng)}
		},
	},
	{
		name:     "tree",
		solution: identity[*codec.TreeNode](),
		literals: func(size int, rng *rand.Rand) []any {
			slots := make([]any, size)
			for i := range slots {
				// the root always exists, every other slot is null with p = 0.2
				if i > 0 && rng.IntN(5) == 0 {
					continue
				}
				slots[i] = rng.IntN(2000) - 1000
			}
			return []any{slots}
		},
	},
	{
		name:     "two-sum",
		solution: registered("two-sum"),
		literals: func(size int, rng *rand.Rand) []any {
			nums := randomInts(size, rng)
			i := rng.IntN(size)
			j := (i + 1 + rng.IntN(size-1)) % size
			return []any{nums, nums[i] + nums[j]}
		},
	},
}

// ScenarioNames returns the names of all scenarios in run order
func ScenarioNames() []string {
	return lo.Map(scenarios, func(s scenario, _ int) string { return s.name })
}

// Input generates the multi-case input of the scenario. The test cases are
// written as LeetCode literals and converted with testcase.Convert.
func (s scenario) Input(size, cases int, rng *rand.Rand) (string, error) {
	var sb strings.Builder
	params := 0
	for c := 0; c < cases; c++ {
		literals := s.literals(size, rng)
		params = len(literals)
		for _, lit := range literals {
			text, err := sonic.MarshalString(lit)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	return testcase.Convert(sb.String(), params)
}

func identity[T any]() harness.Solution {
	return harness.Func1(func(v T) T { return v })
}

// registered defers the lookup of a registered solution to the first run
func registered(name string) harness.Solution {
	return harness.SolutionFunc(func(r *codec.Reader, w *codec.Writer) error {
		sol, err := harness.Lookup(name)
		if err != nil {
			return err
		}
		return sol.Solve(r, w)
	})
}

// --------------------------------------------------------------------------
// Runner
// --------------------------------------------------------------------------

// Result of one scenario
type Result struct {
	Scenario string
	Skipped  bool
	Rounds   int
	// Tokens is the number of input tokens of one round
	Tokens int
	Wall   time.Duration
	// Mean, P50, P95 and P99 are the durations of a single round
	Mean, P50, P95, P99 time.Duration
}

// TokensPerSec is the input throughput over all workers
func (r Result) TokensPerSec() float64 {
	if r.Wall <= 0 {
		return 0
	}
	return float64(r.Tokens*r.Rounds) / r.Wall.Seconds()
}

func runScenario(s scenario, input string) (Result, error) {
	res := Result{Scenario: s.name, Rounds: benchRounds}
	runner := harness.Runner{Name: "bench-" + s.name, Format: benchFormat}

	// warm up and validate the input once
	stats, err := runner.Run(strings.NewReader(input), io.Discard, s.solution)
	if err != nil {
		return res, err
	}
	res.Tokens = stats.Tokens

	pool, err := ants.NewPool(benchThreads, ants.WithPreAlloc(true))
	if err != nil {
		return res, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	timer := gometrics.NewTimer()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		runErr   error
	)

	start := time.Now()
	for i := 0; i < benchRounds; i++ {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			roundStart := time.Now()
			if _, err := runner.Run(strings.NewReader(input), io.Discard, s.solution); err != nil {
				mu.Lock()
				runErr = errors.CombineErrors(runErr, err)
				mu.Unlock()
				return
			}
			timer.UpdateSince(roundStart)
		})
		if submitErr != nil {
			wg.Done()
			return res, errors.Wrap(submitErr, "submit round")
		}
	}
	wg.Wait()
	res.Wall = time.Since(start)

	if runErr != nil {
		return res, runErr
	}

	snap := timer.Snapshot()
	ps := snap.Percentiles([]float64{0.5, 0.95, 0.99})
	res.Mean = time.Duration(snap.Mean())
	res.P50, res.P95, res.P99 = time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2])

	Logger.Debugf("%s: %d rounds of %d tokens in %s", s.name, res.Rounds, res.Tokens, res.Wall)
	return res, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func randomInts(n int, rng *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(2000) - 1000
	}
	return out
}

func randomWord(rng *rand.Rand) string {
	b := make([]byte, 3+rng.IntN(8))
	for i := range b {
		b[i] = byte('a' + rng.IntN(26))
	}
	return string(b)
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// printResult prints the result of a scenario in a formatted way
func printResult(out io.Writer, r Result) {
	if r.Skipped {
		fmt.Fprintf(out, "%-12sskipped\n", r.Scenario)
		return
	}
	fmt.Fprintf(out, "%-12smean %s\tp50 %s\tp95 %s\tp99 %s\t%.0f tokens/sec\n",
		r.Scenario, r.Mean, r.P50, r.P95, r.P99, r.TokensPerSec())
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results []Result) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return errors.Wrap(err, "create CSV file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"Scenario", "Skipped", "Rounds", "TokensPerRound", "WallNs",
		"MeanNs", "P50Ns", "P95Ns", "P99Ns", "TokensPerSec",
		"Size", "Threads", "Format",
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write CSV header")
	}

	for _, r := range results {
		row := []string{
			r.Scenario,
			strconv.FormatBool(r.Skipped),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Tokens),
			strconv.FormatInt(r.Wall.Nanoseconds(), 10),
			strconv.FormatInt(r.Mean.Nanoseconds(), 10),
			strconv.FormatInt(r.P50.Nanoseconds(), 10),
			strconv.FormatInt(r.P95.Nanoseconds(), 10),
			strconv.FormatInt(r.P99.Nanoseconds(), 10),
			fmt.Sprintf("%.0f", r.TokensPerSec()),
			strconv.Itoa(benchSize),
			strconv.Itoa(benchThreads),
			benchFormat.String(),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "write row for scenario %s", r.Scenario)
		}
	}

	writer.Flush()
	return writer.Error()
}
