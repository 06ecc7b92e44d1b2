// Package testcase converts LeetCode style example inputs into the
// count-prefixed token stream that the harness and codec read.
//
// Every non-blank input line is one literal in JSON syntax: a number, a
// boolean, null, a string or a (nested) list. Numbers and booleans are copied
// as they are, strings lose their quotes and lists are written as their
// length followed by their elements:
//
//   - lists of lists: each inner list recursively
//   - lists of strings: one string per line, so strings may contain spaces
//   - other lists: all elements on one line, separated by spaces
//
// Design problems (a class with several operations) use ConvertDesign, which
// expects a line of operation names followed by a line with the argument list
// of every operation.
package testcase
