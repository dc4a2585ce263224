package main

import (
	"testing"
	"time"

	"github.com/petruschka/site-api/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("TRUE"))
	assert.Equal(t, false, parseValue(" false "))
	assert.Equal(t, int64(3), parseValue("3"))
	assert.Equal(t, "Co-Leitung", parseValue("Co-Leitung"))
}

func TestCloneWithDate(t *testing.T) {
	existing := bson.M{"start": primitive.NewDateTimeFromTime(time.Date(2024, 10, 12, 13, 0, 0, 0, time.UTC))}
	template := bson.M{
		"_id":        "2024h",
		"name":       "D'Mondfee",
		"eventDates": primitive.A{existing},
	}
	start := time.Date(2025, time.March, 1, 13, 0, 0, 0, time.UTC)

	clone := cloneWithDate(template, "2024h-test", start, locale.NewFormatter("Europe/Zurich"))

	assert.Equal(t, "2024h-test", clone["_id"])
	assert.Equal(t, "D'Mondfee - TESTING", clone["name"])
	assert.Equal(t, "2024h", template["_id"])

	dates, ok := clone["eventDates"].(primitive.A)
	require.True(t, ok)
	require.Len(t, dates, 2)
	assert.Len(t, template["eventDates"], 1)

	added := dates[1].(bson.M)
	assert.Equal(t, primitive.NewDateTimeFromTime(start), added["start"])
	assert.Equal(t, primitive.NewDateTimeFromTime(start.Add(time.Hour)), added["end"])
	assert.Equal(t, "Samstag, 1. März 2025 um 14:00", added["eventDateString"])
}
