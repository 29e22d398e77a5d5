package similartext

import (
	"fmt"
	"reflect"
	"strings"
)

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// distance between two strings using the Levenshtein algorithm.
func distance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(min(curr[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

// Find returns a string with suggestions for name(s) in `names`
// similar to the string `src` until a max distance of len(src)/2.
// An empty string is returned when there is no similar enough name.
func Find(names []string, src string) string {
	if len(src) == 0 {
		return ""
	}

	minDistance := -1
	var matches []string
	for _, name := range names {
		d := distance(name, src)
		switch {
		case minDistance == -1 || d < minDistance:
			minDistance = d
			matches = []string{name}
		case d == minDistance:
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 || minDistance > len(src)/2 {
		return ""
	}

	return fmt.Sprintf(", maybe you mean %s?", strings.Join(matches, " or "))
}

// FindFromMap does the same as Find but taking a map instead of a string
// slice as first argument.
func FindFromMap(names interface{}, src string) string {
	rnames := reflect.ValueOf(names)
	if rnames.Kind() != reflect.Map {
		panic("Implementation error: non map used as first argument " +
			"of FindFromMap")
	}
	keys := rnames.MapKeys()
	strs := make([]string, len(keys))
	for i, k := range keys {
		if k.Kind() != reflect.String {
			panic("Implementation error: non string key for map used as " +
				"first argument of FindFromMap")
		}
		strs[i] = k.String()
	}

	return Find(strs, src)
}
