package harness

import (
	"github.com/ValentinKolb/tcio/lib/codec"
)

// Solution solves one test case: it reads the inputs of the case from r and
// writes the result to w. The runner terminates every case with a newline.
type Solution interface {
	Solve(r *codec.Reader, w *codec.Writer) error
}

// SolutionFunc adapts a plain function to the Solution interface
type SolutionFunc func(r *codec.Reader, w *codec.Writer) error

// Solve calls f(r, w)
func (f SolutionFunc) Solve(r *codec.Reader, w *codec.Writer) error {
	return f(r, w)
}

// Params returns the number of arguments sol reads per test case. It is known
// for the typed adapters (Func1, Func2, Func3, Proc1) and reported as false
// for everything else.
func Params(sol Solution) (int, bool) {
	if a, ok := sol.(adapted); ok {
		return a.params, true
	}
	return 0, false
}

// Design marks sol as a design problem: every test case is a sequence of
// operations on one object, as written by testcase.ConvertDesign
func Design(sol Solution) Solution {
	return design{Solution: sol}
}

// IsDesign reports whether sol was marked with Design
func IsDesign(sol Solution) bool {
	_, ok := sol.(design)
	return ok
}

// adapted is the Solution returned by the typed adapters
type adapted struct {
	solve  SolutionFunc
	params int
}

func (a adapted) Solve(r *codec.Reader, w *codec.Writer) error {
	return a.solve(r, w)
}

type design struct {
	Solution
}
