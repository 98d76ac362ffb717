package util

import (
	"golang.org/x/exp/slices"
)

// TrimString hard-cuts s to at most length characters. The cut is not
// word-aware.
func TrimString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	return string(runes[:length])
}

// UniqueSortedStrings returns the distinct non-empty values of strings in
// ascending order.
func UniqueSortedStrings(strings []string) []string {
	presentStrings := make(map[string]bool)
	var list []string

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}

	slices.Sort(list)

	return list
}
