package types

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a numeric document field. Hand-edited documents store prices
// and sort keys as doubles, ints, decimals or strings like "25.-".
type Number float64

var numberPattern = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// UnmarshalBSONValue never fails: values that carry no number decode as 0.
func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*n = Number(raw.Double())
	case bsontype.Int32:
		*n = Number(raw.Int32())
	case bsontype.Int64:
		*n = Number(raw.Int64())
	case bsontype.Decimal128:
		*n = ParseNumber(raw.Decimal128().String())
	case bsontype.String:
		*n = ParseNumber(raw.StringValue())
	default:
		*n = 0
	}
	return nil
}

// ParseNumber reads the first number in s, accepting a decimal comma.
func ParseNumber(s string) Number {
	match := numberPattern.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return Number(f)
}

func (n Number) Float() float64 { return float64(n) }

func (n Number) Int() int { return int(n) }
