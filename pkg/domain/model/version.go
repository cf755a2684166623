package model

import (
	"strconv"
	"strings"
)

// CompareVersions orders two dotted version numbers segment by segment as
// integers, the shorter side padded with zeros. "1.6.1.10" sorts above
// "1.6.1.9" even though it is lexically smaller. Returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av := versionSegment(as, i)
		bv := versionSegment(bs, i)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// versionSegment reads segment i as an integer. Missing or non-numeric
// segments count as zero.
func versionSegment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}
