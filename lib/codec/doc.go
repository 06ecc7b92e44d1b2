// Package codec reads and writes typed test-case values as text. Input is a
// stream of whitespace-delimited tokens in which every container is prefixed by
// its element count; output is a compact, human-readable rendering whose shape
// is controlled by a Format.
//
// The package focuses on:
//   - Decoding values of any supported Go type from a count-prefixed token stream
//   - Encoding the same values in one of several output formats
//   - Resolving the rule for a type once, recursing into element, key and value types
//   - Staying open for new types without touching the existing rules
//
// Key Components:
//
//   - Rule: Core interface that every decode/encode pair satisfies. Built-in rules
//     exist for bool, Char, string, every integer and float width, *ListNode and
//     *TreeNode. SliceOf, PairOf, MapOf and SetOf combine rules into rules for
//     containers.
//
//   - RuleFor: Derives the rule for a Go type through reflection, caches it and
//     consults the rules added with Register. Decode and Encode are shortcuts on top.
//
//   - Reader: Token stream with position tracking. Decode failures are *DecodeError
//     values that unwrap to ErrFormat, ErrTruncatedStream or ErrInvalidCount.
//
//   - Writer: Buffered output carrying the Format and the current nesting depth.
//
// Input Grammar:
//
//	bool        1 | 0 | true | false | True | False
//	integer     -12
//	character   one rune, leading whitespace skipped
//	string      rest of the line, leading whitespace skipped
//	sequence    N e1 ... eN
//	pair        first second
//	mapping     N k1 v1 ... kN vN
//	set         N k1 ... kN
//	list        N v1 ... vN
//	tree        N t1 ... tN     (ti is an integer or null, level order)
//
// Output Formats:
//
//   - canonical (default): [1,2], [a,"b c"] for nested strings, lists as [1,2,3]
//
//   - leetcode: every string quoted, [1,2]; sequences, lists and trees of ints
//     and strings are valid JSON
//
//   - debug: nothing quoted, [1, 2], lists as 1 -> 2 -> 3
//
//     Pairs are always (a, b), mappings {k1: v1, k2: v2} and sets {a, b}, both in
//     ascending key order. Trees are level-order arrays with null placeholders
//     where trailing all-null levels are cut: [3,9,20,null,null,15,7].
//
// Thread Safety:
//
//	Rules are stateless and safe for concurrent use. A Reader or Writer must be
//	owned by a single goroutine.
//
// Usage:
//
//	r := codec.NewReader(os.Stdin)
//	w := codec.NewWriter(os.Stdout, codec.FormatCanonical)
//
//	nums, err := codec.SliceOf(codec.Int).Decode(r)
//	// or: nums, err := codec.Decode[[]int](r)
//	if err != nil {
//	  return err
//	}
//	codec.Tree.Encode(w, buildTree(nums))
//	w.Newline()
//	return w.Flush()
package codec
