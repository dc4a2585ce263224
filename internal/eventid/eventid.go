// Package eventid derives identifiers for event instances.
//
// Key is the stable identifier: template id plus the start instant. The
// numeric LegacyID is still emitted so that links shared before the switch
// keep resolving; it can collide and must not be used as a primary key.
package eventid

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

const keySep = "@"

// Key returns "<templateID>@<RFC3339 start in UTC>".
func Key(templateID string, start time.Time) string {
	return templateID + keySep + start.UTC().Format(time.RFC3339)
}

// ParseKey splits a Key. It splits on the last separator so template ids may
// contain "@" themselves.
func ParseKey(s string) (string, time.Time, bool) {
	idx := strings.LastIndex(s, keySep)
	if idx <= 0 || idx == len(s)-1 {
		return "", time.Time{}, false
	}
	start, err := time.Parse(time.RFC3339, s[idx+1:])
	if err != nil {
		return "", time.Time{}, false
	}
	return s[:idx], start.UTC(), true
}

// Hash folds the UTF-16 code units of s the way the site's first client did:
// h = c + int32(h<<6) + int32(h<<16) - h.
func Hash(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		h32 := int32(h)
		h = int64(c) + int64(h32<<6) + int64(h32<<16) - h
	}
	return h
}

// LegacyID is the numeric id of one event instance. Numeric template ids are
// returned unchanged.
func LegacyID(templateID string, start time.Time) int64 {
	if n, ok := numeric(templateID); ok {
		return n
	}
	timeComponent := start.Unix() % 10000
	return abs(Hash(templateID))%100000 + timeComponent
}

// LegacyTemplateID is the numeric id used for template-level records such as
// past events and premiere updates.
func LegacyTemplateID(templateID string) int64 {
	if n, ok := numeric(templateID); ok {
		return n
	}
	return abs(Hash(templateID)) % 1000000
}

func numeric(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
