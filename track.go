package sceneline

import (
	"fmt"
	"strconv"
)

// Track keys of the hardware format are the decimal track numbers, starting
// from 1. Keys that are not numbers are tolerated, but get no number.

// TrackNumber returns the number of the track key, or false if the key is
// not a positive decimal number.
func TrackNumber(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// NextTrackKey returns the smallest track number not used by any of the
// given keys.
func NextTrackKey(used []string) string {
	taken := make(map[int]bool, len(used))
	for _, k := range used {
		if n, ok := TrackNumber(k); ok {
			taken[n] = true
		}
	}
	n := 1
	for taken[n] {
		n++
	}
	return strconv.Itoa(n)
}

// PatternName returns the name of the counter:th generated pattern of a
// track, e.g. T3_P3_007.
func PatternName(trackNumber int, t PatternType, counter int) string {
	return fmt.Sprintf("T%d_%s_%03d", trackNumber, t, counter)
}
