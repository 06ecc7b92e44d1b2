package solutions

import (
	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("solutions")

func init() {
	harness.Register("min-stack", harness.Design(harness.SolutionFunc(solveMinStack)))
}

// MinStack is a stack that returns its minimum in constant time
type MinStack struct {
	values []int
	mins   []int
}

func (s *MinStack) Push(v int) {
	s.values = append(s.values, v)
	if n := len(s.mins); n == 0 || v <= s.mins[n-1] {
		s.mins = append(s.mins, v)
	}
}

func (s *MinStack) Pop() {
	n := len(s.values)
	if s.values[n-1] == s.mins[len(s.mins)-1] {
		s.mins = s.mins[:len(s.mins)-1]
	}
	s.values = s.values[:n-1]
}

func (s *MinStack) Top() int {
	return s.values[len(s.values)-1]
}

func (s *MinStack) GetMin() int {
	return s.mins[len(s.mins)-1]
}

func (s *MinStack) Len() int {
	return len(s.values)
}

// operation is one call of a design problem. result is nil for void calls.
type operation struct {
	name   string
	args   []int
	result *int
}

var opArgs = codec.SliceOf(codec.Int)

// readOperations reads the count-prefixed list of operation names and arguments
// written by the design converter
func readOperations(r *codec.Reader) ([]operation, error) {
	n, err := r.Count()
	if err != nil {
		return nil, errors.Wrap(err, "number of operations")
	}
	ops := make([]operation, n)
	for i := range ops {
		if ops[i].name, err = codec.String.Decode(r); err != nil {
			return nil, errors.Wrapf(err, "name of operation %d", i+1)
		}
		if ops[i].args, err = opArgs.Decode(r); err != nil {
			return nil, errors.Wrapf(err, "arguments of %s", ops[i].name)
		}
	}
	return ops, nil
}

// writeResults writes the results as a sequence, void calls as null
func writeResults(w *codec.Writer, ops []operation) {
	w.WriteSequence(len(ops), func(i int) {
		if ops[i].result == nil {
			w.WriteString("null")
			return
		}
		codec.Int.Encode(w, *ops[i].result)
	})
}

func solveMinStack(r *codec.Reader, w *codec.Writer) error {
	ops, err := readOperations(r)
	if err != nil {
		return err
	}

	var stack *MinStack
	for i := range ops {
		op := &ops[i]
		if i == 0 {
			if op.name != "MinStack" {
				return errors.Newf("first operation must be MinStack, got %q", op.name)
			}
			stack = &MinStack{}
			continue
		}

		want := 0
		if op.name == "push" {
			want = 1
		}
		if len(op.args) != want {
			return errors.Newf("operation %d: %s takes %d arguments, got %d", i+1, op.name, want, len(op.args))
		}
		if op.name != "push" && op.name != "MinStack" && stack.Len() == 0 {
			return errors.Newf("operation %d: %s on empty stack", i+1, op.name)
		}

		switch op.name {
		case "push":
			stack.Push(op.args[0])
		case "pop":
			stack.Pop()
		case "top":
			v := stack.Top()
			op.result = &v
		case "getMin":
			v := stack.GetMin()
			op.result = &v
		default:
			return errors.Newf("operation %d: unknown operation %q", i+1, op.name)
		}
	}

	Logger.Debugf("min-stack: %d operations", len(ops))
	writeResults(w, ops)
	return nil
}
