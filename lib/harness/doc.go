// Package harness runs solutions against multi-case test input.
//
// The input starts with the number of test cases T followed by the inputs of
// each case in the codec token format. The runner calls the solution once per
// case and terminates each result with a newline:
//
//	2          ->  [0,1]
//	4 2 7 11 15    [1,2]
//	9
//	3 3 2 4
//	6
//
// Key Components:
//
//   - Solution: One case of a problem. Func1, Func2, Func3 and Proc1 turn an
//     ordinary Go function into a Solution, resolving the codec rules for its
//     argument and result types once.
//
//   - Runner: The test loop. Reports Stats, logs through the "harness" logger and
//     counts cases, errors, tokens and case durations with VictoriaMetrics.
//
//   - Registry: Solutions registered by name with Register, looked up by the
//     command line tool with Lookup.
//
// Thread Safety:
//
//	A Runner may be used from several goroutines as long as every call to Run
//	gets its own input and output. The registry is safe for concurrent use.
//
// Usage:
//
//	harness.Register("two-sum", harness.Func2(twoSum))
//
//	sol, err := harness.Lookup("two-sum")
//	if err != nil {
//	  return err
//	}
//	runner := harness.Runner{Name: "two-sum", Format: codec.FormatCanonical}
//	stats, err := runner.Run(os.Stdin, os.Stdout, sol)
package harness
