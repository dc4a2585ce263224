package gigs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/petruschka/site-api/internal/eventdate"
	"github.com/petruschka/site-api/internal/eventid"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
)

const (
	noDescription  = "Keine Beschreibung verfügbar."
	pastImageWidth = 145
	thumbWidth     = 105
	maxUpdates     = 3
	updateWindow   = 2 * 365 * 24 * time.Hour
	moreInfo       = "Mehr erfahren"
)

var seasonPattern = regexp.MustCompile(`(\d{4})([swfh])`)

var seasonNames = map[string]string{
	"s": "Sommer",
	"w": "Winter",
	"h": "Herbst",
	"f": "Frühling",
}

// seasonRank orders seasons within a year, latest first. Unknown seasons rank 0.
var seasonRank = map[string]int{
	"Winter":   4,
	"Herbst":   3,
	"Sommer":   2,
	"Frühling": 1,
}

// FallbackUpdate is shown when there are no premieres to announce.
var FallbackUpdate = types.Update{
	ID:          1001,
	Title:       "Neue Stücke in Vorbereitung",
	Description: "Das Figurentheater PETRUSCHKA arbeitet an neuen musikalischen Märchen für die kommende Saison.",
	CtaText:     moreInfo,
	CtaURL:      "https://www.petruschka.ch",
	MediaType:   "image",
	MediaThumb:  "/images/image-thumb-1.jpg",
}

// Season derives year and season name from ids like "2024s".
func Season(templateID string, fallbackYear int) (string, string) {
	m := seasonPattern.FindStringSubmatch(templateID)
	if m == nil {
		return strconv.Itoa(fallbackYear), ""
	}
	return m[1], seasonNames[m[2]]
}

// PastEvents lists productions whose premiere lies before now, newest year
// first and latest season first within a year.
func (b *Builder) PastEvents(templates []types.GigTemplateDoc, now time.Time, imageProxy string) []types.PastEvent {
	events := []types.PastEvent{}
	for _, t := range templates {
		premiere, ok := eventdate.Parse(t.PremiereDate)
		if !ok || !premiere.Before(now) {
			continue
		}

		templateID := t.TemplateID()
		year, season := Season(templateID, b.fmt.In(premiere).Year())

		var image string
		if t.FlyerImagePath != "" {
			image = imageProxy + t.FlyerImagePath + "&nf_resize=fit&w=" + strconv.Itoa(pastImageWidth)
		}

		events = append(events, types.PastEvent{
			ID:          templateID,
			Title:       t.Name,
			Image:       image,
			Description: utils.FirstNonEmpty(t.ShortDescription, noDescription),
			Date:        b.fmt.MonthYear(premiere),
			Year:        year,
			Season:      season,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		yi, _ := strconv.Atoi(events[i].Year)
		yj, _ := strconv.Atoi(events[j].Year)
		if yi != yj {
			return yi > yj
		}
		return seasonRank[events[i].Season] > seasonRank[events[j].Season]
	})
	return events
}

type datedUpdate struct {
	update types.Update
	start  time.Time
}

// Updates announces premieres from the last two years, newest first, at most
// three. running reports whether a production still has upcoming dates.
func (b *Builder) Updates(premieres []types.PremiereDoc, now time.Time, imageProxy string, running func(id, name string) bool) []types.Update {
	cutoff := now.Add(-updateWindow)

	dated := []datedUpdate{}
	for _, doc := range premieres {
		if doc.EventDetail == nil {
			continue
		}
		info, ok := doc.EventDetail.GermanInfo()
		if !ok {
			continue
		}
		start, ok := eventdate.Parse(doc.EventDetail.Start)
		if !ok || start.Before(cutoff) {
			continue
		}

		id := types.IDString(doc.ID)
		update := types.Update{
			ID:          eventid.LegacyTemplateID(id),
			Title:       `Premiere: "` + info.Name + `"`,
			Description: utils.FirstNonEmpty(info.ShortDescription, DefaultDescription),
			CtaText:     moreInfo,
			CtaURL:      utils.EnsureScheme(info.URL),
			MediaType:   "image",
			MediaThumb:  thumbnail(imageProxy, utils.FirstNonEmpty(info.FlyerImagePath, info.BannerImagePath)),
		}
		if start.After(now) {
			update.IsCountdown = true
			update.CountdownDate = b.fmt.Countdown(start)
		} else if running != nil && running(id, info.Name) {
			update.IsCurrentlyRunning = true
		}
		dated = append(dated, datedUpdate{update: update, start: start})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].start.After(dated[j].start)
	})

	if len(dated) > maxUpdates {
		dated = dated[:maxUpdates]
	}
	updates := make([]types.Update, 0, len(dated))
	for _, d := range dated {
		updates = append(updates, d.update)
	}
	return updates
}

func thumbnail(imageProxy, path string) string {
	if path == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return imageProxy + path + sep + "nf_resize=fit&w=" + strconv.Itoa(thumbWidth)
}
