package harness

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// ErrUnknownSolution is returned by Lookup for names that were never registered
var ErrUnknownSolution = errors.New("unknown solution")

var solutions = xsync.NewMapOf[string, Solution]()

// Register makes sol available under name. Registering the same name twice panics.
func Register(name string, sol Solution) {
	if sol == nil {
		panic("harness: Register solution is nil")
	}
	if _, loaded := solutions.LoadOrStore(name, sol); loaded {
		panic(fmt.Sprintf("harness: Register called twice for solution %q", name))
	}
}

// Lookup returns the solution registered under name
func Lookup(name string) (Solution, error) {
	sol, ok := solutions.Load(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSolution, "%q", name)
	}
	return sol, nil
}

// Names returns the names of all registered solutions in sorted order
func Names() []string {
	names := make([]string, 0, solutions.Size())
	solutions.Range(func(name string, _ Solution) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}
