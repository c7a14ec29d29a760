package application

import (
	"iter"
	"slices"
	"strings"
)

// present maps blank values to "", the absent marker used throughout name
// resolution. Non-blank values are returned untouched.
func present(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

// firstPresent returns the first non-blank value, in argument order.
func firstPresent(values ...string) string {
	return firstMatching(slices.Values(values), nil)
}

// firstMatching returns the first non-blank value of candidates accepted by
// keep. A nil keep accepts every present value. The sequence is consumed lazily
// and stops at the first match.
func firstMatching(candidates iter.Seq[string], keep func(string) bool) string {
	for c := range candidates {
		c = present(c)
		if c == "" {
			continue
		}
		if keep == nil || keep(c) {
			return c
		}
	}
	return ""
}

// concat chains sequences one after another.
func concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
