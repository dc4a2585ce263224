package gigs

import (
	"testing"
	"time"

	"github.com/petruschka/site-api/internal/locale"
	"github.com/petruschka/site-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	autumnShow  = time.Date(2024, time.October, 12, 13, 0, 0, 0, time.UTC)
	autumnLater = time.Date(2024, time.October, 19, 8, 30, 0, 0, time.UTC)
	autumnEarly = time.Date(2024, time.October, 5, 13, 0, 0, 0, time.UTC)
	testNow     = time.Date(2024, time.October, 8, 9, 0, 0, 0, time.UTC)
)

func testBuilder() *Builder {
	return NewBuilder(locale.NewFormatter("Europe/Zurich"))
}

func autumnTemplate() types.GigTemplateDoc {
	return types.GigTemplateDoc{
		ID:                     "2024h",
		Name:                   "D'Mondfee",
		Location:               "Kellertheater Bern",
		URL:                    "eventfrog.ch/mondfee",
		Artists:                "Regula & Benjamin",
		ShortDescription:       "Ein Märchen für Kinder ab 4 Jahren",
		GoogleAnalyticsTracker: "Premiere",
		NotificationEmail:      "info@petruschka.ch",
		TicketDetails: []types.TicketDetailDoc{
			{Name: "Erwachsene", Price: 25},
			{Price: 15, Currency: "EUR", Description: "Kinder"},
		},
		EventDates: []types.EventDateDoc{
			{Start: bson.M{"$date": "2024-10-19T08:30:00.000Z"}},
			{
				Start:     primitive.NewDateTimeFromTime(autumnShow),
				End:       primitive.NewDateTimeFromTime(autumnShow.Add(75 * time.Minute)),
				TicketURL: "https://tickets.example/12",
			},
			{Start: autumnEarly.UnixMilli()},
			{Start: "not a date"},
		},
	}
}

func TestExpandUpcoming(t *testing.T) {
	gigs := testBuilder().ExpandUpcoming([]types.GigTemplateDoc{autumnTemplate()}, testNow)

	require.Len(t, gigs, 2)
	first, second := gigs[0], gigs[1]

	assert.Equal(t, "2024h@2024-10-12T13:00:00Z", first.ID)
	assert.Equal(t, int64(69304), first.LegacyID)
	assert.Equal(t, "2024h", first.TemplateID)
	assert.Equal(t, types.GigDate{Day: 12, Month: "OKT", Year: 2024}, first.Date)
	assert.Equal(t, "15:00", first.Time)
	assert.Equal(t, "Samstag", first.DayOfWeek)
	assert.Equal(t, "https://tickets.example/12", first.TicketURL)
	assert.Equal(t, "ca. 1h 15min", first.Duration)
	assert.Equal(t, "ab 4 Jahr", first.AgeRecommendation)
	assert.Equal(t, "Kellertheater Bern", first.Venue)
	assert.Equal(t, autumnShow.UnixMilli(), first.StartTimestamp)
	assert.Equal(t, "Samstag, 12. Oktober 2024 um 15:00", first.EventDateString)
	assert.Equal(t, []types.TicketType{
		{Name: "Erwachsene", Price: 25, Currency: "CHF"},
		{Name: "Ticket", Price: 15, Currency: "EUR", Description: "Kinder"},
	}, first.TicketTypes)

	assert.Equal(t, "2024h@2024-10-19T08:30:00Z", second.ID)
	assert.Equal(t, int64(67904), second.LegacyID)
	assert.Equal(t, "10:30", second.Time)
	assert.Equal(t, "https://eventfrog.ch/mondfee", second.TicketURL)
	assert.Empty(t, second.Duration)
}

func TestExpandAll(t *testing.T) {
	gigs := testBuilder().ExpandAll([]types.GigTemplateDoc{autumnTemplate(), {ID: "nameless"}})

	require.Len(t, gigs, 3)
	assert.Equal(t, autumnEarly.UnixMilli(), gigs[0].StartTimestamp)
	assert.Equal(t, int64(64504), gigs[0].LegacyID)
	assert.Equal(t, autumnLater.UnixMilli(), gigs[2].StartTimestamp)
}

func TestExpandDefaults(t *testing.T) {
	tmpl := types.GigTemplateDoc{
		ID:         int32(77),
		Name:       "Konzert",
		EventDates: []types.EventDateDoc{{Start: "2024-10-12T13:00:00Z"}},
	}

	gigs := testBuilder().ExpandAll([]types.GigTemplateDoc{tmpl})
	require.Len(t, gigs, 1)
	assert.Equal(t, "77@2024-10-12T13:00:00Z", gigs[0].ID)
	assert.Equal(t, int64(77), gigs[0].LegacyID)
	assert.Equal(t, "Venue TBA", gigs[0].Venue)
	assert.Equal(t, "Location TBA", gigs[0].Location)
	assert.Equal(t, DefaultDescription, gigs[0].Description)
	assert.Equal(t, "#", gigs[0].TicketURL)
	assert.Empty(t, gigs[0].TicketTypes)
}

func TestDetailFromTemplate(t *testing.T) {
	b := testBuilder()
	tmpl := autumnTemplate()

	t.Run("matching target within a second", func(t *testing.T) {
		target := autumnLater.Add(400 * time.Millisecond)
		gig, err := b.DetailFromTemplate(tmpl, &target, testNow)
		require.NoError(t, err)
		assert.Equal(t, "2024h@2024-10-19T08:30:00Z", gig.ID)
	})

	t.Run("unmatched target falls back to first upcoming", func(t *testing.T) {
		target := autumnLater.Add(time.Hour)
		gig, err := b.DetailFromTemplate(tmpl, &target, testNow)
		require.NoError(t, err)
		assert.Equal(t, "2024h@2024-10-19T08:30:00Z", gig.ID)
	})

	t.Run("nothing upcoming falls back to first date", func(t *testing.T) {
		later := autumnLater.Add(24 * time.Hour)
		gig, err := b.DetailFromTemplate(tmpl, nil, later)
		require.NoError(t, err)
		assert.Equal(t, autumnLater.UnixMilli(), gig.StartTimestamp)
	})

	t.Run("no usable dates", func(t *testing.T) {
		_, err := b.DetailFromTemplate(types.GigTemplateDoc{ID: "x", Name: "x"}, nil, testNow)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestDetailFromLegacy(t *testing.T) {
	doc := types.EventDetailDoc{
		ID:    int32(4711),
		Start: bson.M{"$date": "2024-10-12T13:00:00Z"},
		Begin: "2024-10-12T13:00:00Z",
		End:   "2024-10-12T13:45:00Z",
		EventInfos: []types.EventInfoDoc{
			{LanguageID: int32(1), Name: "The Moon Fairy"},
			{LanguageID: int32(0), Name: "D'Mondfee", URL: "www.petruschka.ch", Artist: "Regula", ShortDescription: "ab 5 Jahren"},
		},
		TicketTypes: []types.TicketTypeDoc{
			{Price: 20, TicketTypeInfos: []types.TicketTypeInfoDoc{{}, {Name: "Erwachsene", Description: "ab 16"}}},
			{Price: 10},
		},
	}

	gig, err := testBuilder().DetailFromLegacy(doc, false)
	require.NoError(t, err)
	assert.Equal(t, "4711", gig.ID)
	assert.Equal(t, int64(4711), gig.LegacyID)
	assert.Equal(t, "D'Mondfee", gig.Title)
	assert.Equal(t, "https://www.petruschka.ch", gig.TicketURL)
	assert.Equal(t, "Regula", gig.Artists)
	assert.Equal(t, "ca. 45min", gig.Duration)
	assert.Equal(t, "ab 5 Jahr", gig.AgeRecommendation)
	assert.Equal(t, "Venue TBA", gig.Venue)
	assert.Equal(t, []types.TicketType{
		{Name: "Erwachsene", Price: 20, Currency: "CHF", Description: "ab 16"},
		{Name: "Ticket", Price: 10, Currency: "CHF"},
	}, gig.TicketTypes)

	past, err := testBuilder().DetailFromLegacy(doc, true)
	require.NoError(t, err)
	assert.Equal(t, "Petruschka Theater", past.Venue)

	_, err = testBuilder().DetailFromLegacy(types.EventDetailDoc{ID: "x", Start: "2024-10-12"}, false)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPastDetailFromTemplate(t *testing.T) {
	tmpl := autumnTemplate()
	tmpl.Location = ""
	tmpl.PremiereDate = primitive.NewDateTimeFromTime(autumnShow)

	gig, err := testBuilder().PastDetailFromTemplate(tmpl)
	require.NoError(t, err)
	assert.Equal(t, "2024h", gig.ID)
	assert.Equal(t, int64(361304), gig.LegacyID)
	assert.Equal(t, "Petruschka Theater", gig.Venue)
	assert.Equal(t, "ca. 1h 15min", gig.Duration)

	tmpl.PremiereDate = nil
	_, err = testBuilder().PastDetailFromTemplate(tmpl)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAnnotateSeats(t *testing.T) {
	gigs := testBuilder().ExpandUpcoming([]types.GigTemplateDoc{autumnTemplate()}, testNow)
	AnnotateSeats(gigs, map[int64]int{autumnShow.Unix(): 12, 1: 3})

	require.NotNil(t, gigs[0].AvailableSeats)
	assert.Equal(t, 12, *gigs[0].AvailableSeats)
	assert.Nil(t, gigs[1].AvailableSeats)
}
