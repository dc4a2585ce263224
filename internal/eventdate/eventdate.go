// Package eventdate normalizes the date encodings found in the event
// collections into time.Time.
//
// Documents written by different tools store the same instant as a BSON
// datetime, as extended JSON ({"$date": ...}), as an ISO-8601 string or as
// epoch milliseconds. Parse accepts all of them.
package eventdate

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse converts v to a UTC time. The second result is false when v is nil,
// empty, or not a recognised date encoding.
func Parse(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d.UTC(), true
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return Parse(*d)
	case primitive.DateTime:
		return d.Time().UTC(), true
	case primitive.Timestamp:
		return time.Unix(int64(d.T), 0).UTC(), true
	case string:
		return ParseString(d)
	case int32:
		return fromMillis(float64(d))
	case int64:
		return fromMillis(float64(d))
	case int:
		return fromMillis(float64(d))
	case float64:
		return fromMillis(d)
	case primitive.M:
		return parseExtended(map[string]any(d))
	case map[string]any:
		return parseExtended(d)
	case primitive.D:
		return parseExtended(d.Map())
	}
	return time.Time{}, false
}

// ParseString parses ISO-8601 strings. Strings without a zone are read as UTC.
func ParseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromMillis(float64(ms))
	}
	return time.Time{}, false
}

// Field reads key from a document and parses it.
func Field(doc bson.M, key string) (time.Time, bool) {
	if doc == nil {
		return time.Time{}, false
	}
	return Parse(doc[key])
}

func parseExtended(m map[string]any) (time.Time, bool) {
	raw, ok := m["$date"]
	if !ok {
		return time.Time{}, false
	}
	switch d := raw.(type) {
	case primitive.M:
		return parseNumberLong(map[string]any(d))
	case map[string]any:
		return parseNumberLong(d)
	case primitive.D:
		return parseNumberLong(d.Map())
	}
	return Parse(raw)
}

func parseNumberLong(m map[string]any) (time.Time, bool) {
	s, ok := m["$numberLong"].(string)
	if !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return fromMillis(float64(ms))
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

// Normalize walks a decoded document and rewrites BSON datetimes and
// extended-JSON {"$date": ...} values as RFC3339 strings. Ordered documents
// become maps so the result marshals as plain JSON objects.
func Normalize(v any) any {
	switch d := v.(type) {
	case primitive.DateTime, time.Time, *time.Time:
		if t, ok := Parse(d); ok {
			return t.Format(time.RFC3339)
		}
		return nil
	case primitive.M:
		return normalizeMap(map[string]any(d))
	case map[string]any:
		return normalizeMap(d)
	case primitive.D:
		return normalizeMap(d.Map())
	case primitive.A:
		return normalizeSlice([]any(d))
	case []any:
		return normalizeSlice(d)
	}
	return v
}

func normalizeMap(m map[string]any) any {
	if _, ok := m["$date"]; ok && len(m) == 1 {
		if t, ok := parseExtended(m); ok {
			return t.Format(time.RFC3339)
		}
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = Normalize(val)
	}
	return out
}

func normalizeSlice(s []any) []any {
	out := make([]any, len(s))
	for i, val := range s {
		out[i] = Normalize(val)
	}
	return out
}
