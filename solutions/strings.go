package solutions

import (
	"slices"
	"strings"
	"unicode"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
)

func init() {
	harness.Register("reverse-string", harness.Proc1(ReverseString))
	harness.Register("word-count", harness.Func1(WordCount))
	harness.Register("unique-chars", harness.Func1(UniqueChars))
	harness.Register("is-palindrome", harness.Func1(IsPalindrome))
	harness.Register("first-unique-char", harness.Func1(FirstUniqueChar))
}

// ReverseString reverses the characters in place
func ReverseString(s []codec.Char) {
	slices.Reverse(s)
}

// WordCount counts how often each whitespace separated word occurs
func WordCount(text string) map[string]int {
	counts := make(map[string]int)
	for _, word := range strings.Fields(text) {
		counts[word]++
	}
	return counts
}

// UniqueChars returns the distinct characters of s
func UniqueChars(s string) codec.Set[codec.Char] {
	set := codec.NewSet[codec.Char]()
	for _, c := range s {
		set.Insert(codec.Char(c))
	}
	return set
}

// IsPalindrome reports whether s reads the same in both directions, looking
// only at letters and digits and ignoring case
func IsPalindrome(s string) bool {
	var clean []rune
	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			clean = append(clean, unicode.ToLower(c))
		}
	}
	for i, j := 0, len(clean)-1; i < j; i, j = i+1, j-1 {
		if clean[i] != clean[j] {
			return false
		}
	}
	return true
}

// FirstUniqueChar returns the index of the first character that occurs only once, or -1
func FirstUniqueChar(s []codec.Char) int {
	counts := make(map[codec.Char]int, len(s))
	for _, c := range s {
		counts[c]++
	}
	for i, c := range s {
		if counts[c] == 1 {
			return i
		}
	}
	return -1
}
