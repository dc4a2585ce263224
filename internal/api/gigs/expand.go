package gigs

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/petruschka/site-api/internal/eventdate"
	"github.com/petruschka/site-api/internal/eventid"
	"github.com/petruschka/site-api/internal/locale"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
)

const (
	DefaultDescription     = "Ein musikalisches Märchen vom Figurentheater PETRUSCHKA"
	DefaultPastDescription = "Ein vergangenes musikalisches Märchen vom Figurentheater PETRUSCHKA"

	defaultVenue     = "Venue TBA"
	defaultLocation  = "Location TBA"
	pastVenue        = "Petruschka Theater"
	defaultTicket    = "Ticket"
	defaultCurrency  = "CHF"
	selectTolerance  = time.Second
	premiereDistance = 24 * time.Hour
)

var agePattern = regexp.MustCompile(`ab (\d+) Jahr`)

// Builder turns stored templates and legacy documents into Gig DTOs.
type Builder struct {
	fmt *locale.Formatter
}

func NewBuilder(f *locale.Formatter) *Builder {
	return &Builder{fmt: f}
}

// instance is one parsed event date of a template.
type instance struct {
	date  types.EventDateDoc
	start time.Time
}

func instances(t types.GigTemplateDoc) []instance {
	out := make([]instance, 0, len(t.EventDates))
	for _, ed := range t.EventDates {
		start, ok := eventdate.Parse(ed.Start)
		if !ok {
			continue
		}
		out = append(out, instance{date: ed, start: start})
	}
	return out
}

// ExpandUpcoming returns one Gig per event date starting after now, earliest first.
func (b *Builder) ExpandUpcoming(templates []types.GigTemplateDoc, now time.Time) []types.Gig {
	return b.expand(templates, func(start time.Time) bool { return start.After(now) })
}

// ExpandAll returns one Gig per parseable event date, earliest first.
func (b *Builder) ExpandAll(templates []types.GigTemplateDoc) []types.Gig {
	return b.expand(templates, func(time.Time) bool { return true })
}

func (b *Builder) expand(templates []types.GigTemplateDoc, keep func(time.Time) bool) []types.Gig {
	gigs := []types.Gig{}
	for _, t := range templates {
		if t.Name == "" {
			continue
		}
		for _, in := range instances(t) {
			if keep(in.start) {
				gigs = append(gigs, b.fromTemplate(t, in))
			}
		}
	}
	sort.SliceStable(gigs, func(i, j int) bool {
		if gigs[i].StartTimestamp != gigs[j].StartTimestamp {
			return gigs[i].StartTimestamp < gigs[j].StartTimestamp
		}
		return gigs[i].ID < gigs[j].ID
	})
	return gigs
}

// DetailFromTemplate picks the event date within a second of target, else the
// first upcoming one, else the first one.
func (b *Builder) DetailFromTemplate(t types.GigTemplateDoc, target *time.Time, now time.Time) (*types.Gig, error) {
	all := instances(t)
	if t.Name == "" || len(all) == 0 {
		return nil, types.ErrNotFound
	}

	selected := -1
	if target != nil {
		for i, in := range all {
			if absDuration(in.start.Sub(*target)) < selectTolerance {
				selected = i
				break
			}
		}
	}
	if selected < 0 {
		for i, in := range all {
			if in.start.After(now) {
				selected = i
				break
			}
		}
	}
	if selected < 0 {
		selected = 0
	}

	gig := b.fromTemplate(t, all[selected])
	return &gig, nil
}

func (b *Builder) fromTemplate(t types.GigTemplateDoc, in instance) types.Gig {
	templateID := t.TemplateID()
	start := in.start

	gig := b.dateFields(start)
	gig.ID = eventid.Key(templateID, start)
	gig.LegacyID = eventid.LegacyID(templateID, start)
	gig.TemplateID = templateID
	gig.Title = t.Name
	gig.Venue = utils.FirstNonEmpty(t.Location, defaultVenue)
	gig.Location = utils.FirstNonEmpty(t.Location, defaultLocation)
	gig.Description = utils.FirstNonEmpty(t.ShortDescription, DefaultDescription)
	gig.TicketURL = utils.EnsureScheme(utils.FirstNonEmpty(in.date.TicketURL, t.URL))
	gig.LongDescription = t.LongDescription
	gig.ShortDescription = t.ShortDescription
	gig.Artists = t.Artists
	gig.FlyerImagePath = t.FlyerImagePath
	gig.BannerImagePath = t.BannerImagePath
	gig.EventDateString = utils.FirstNonEmpty(in.date.EventDateString, b.fmt.Long(start))
	gig.TicketTypes = ticketTypesFromDetails(t.TicketDetails)
	gig.AgeRecommendation = AgeRecommendation(t.ShortDescription)
	gig.ImportantNotes = t.ImportantNotes
	gig.NotificationEmail = t.NotificationEmail
	if end, ok := eventdate.Parse(in.date.End); ok {
		gig.Duration = locale.Duration(start, end)
	}
	return gig
}

// DetailFromLegacy builds a Gig from an EventDetails document using its
// German event info.
func (b *Builder) DetailFromLegacy(doc types.EventDetailDoc, past bool) (*types.Gig, error) {
	info, ok := doc.GermanInfo()
	if !ok || info.Name == "" {
		return nil, types.ErrNotFound
	}
	start, ok := eventdate.Parse(doc.Start)
	if !ok {
		return nil, types.ErrNotFound
	}

	venue, location, description := defaultVenue, defaultLocation, DefaultDescription
	if past {
		venue, location, description = pastVenue, pastVenue, DefaultPastDescription
	}

	id := types.IDString(doc.ID)
	gig := b.dateFields(start)
	gig.ID = id
	gig.LegacyID = legacyNumber(id)
	gig.Title = info.Name
	gig.Venue = utils.FirstNonEmpty(info.Location, venue)
	gig.Location = utils.FirstNonEmpty(info.Location, location)
	gig.Description = utils.FirstNonEmpty(info.ShortDescription, description)
	gig.TicketURL = utils.EnsureScheme(info.URL)
	gig.LongDescription = info.LongDescription
	gig.ShortDescription = info.ShortDescription
	gig.Artists = utils.FirstNonEmpty(info.Artists, info.Artist)
	gig.FlyerImagePath = info.FlyerImagePath
	gig.BannerImagePath = info.BannerImagePath
	gig.EventDateString = utils.FirstNonEmpty(doc.EventDateString, b.fmt.Long(start))
	gig.TicketTypes = ticketTypesFromLegacy(doc.TicketTypes)
	gig.AgeRecommendation = AgeRecommendation(info.ShortDescription)
	gig.ImportantNotes = info.ImportantNotes

	begin, ok := eventdate.Parse(doc.Begin)
	if !ok {
		begin = start
	}
	if end, ok := eventdate.Parse(doc.End); ok {
		gig.Duration = locale.Duration(begin, end)
	}
	return &gig, nil
}

// PastDetailFromTemplate builds the detail of a past production from its
// premiere date.
func (b *Builder) PastDetailFromTemplate(t types.GigTemplateDoc) (*types.Gig, error) {
	premiere, ok := eventdate.Parse(t.PremiereDate)
	if t.Name == "" || !ok {
		return nil, types.ErrNotFound
	}

	templateID := t.TemplateID()
	gig := b.dateFields(premiere)
	gig.ID = templateID
	gig.LegacyID = eventid.LegacyTemplateID(templateID)
	gig.TemplateID = templateID
	gig.Title = t.Name
	gig.Venue = utils.FirstNonEmpty(t.Location, pastVenue)
	gig.Location = utils.FirstNonEmpty(t.Location, pastVenue)
	gig.Description = utils.FirstNonEmpty(t.ShortDescription, DefaultPastDescription)
	gig.TicketURL = utils.EnsureScheme(t.URL)
	gig.LongDescription = t.LongDescription
	gig.ShortDescription = t.ShortDescription
	gig.Artists = t.Artists
	gig.FlyerImagePath = t.FlyerImagePath
	gig.BannerImagePath = t.BannerImagePath
	gig.EventDateString = b.fmt.Long(premiere)
	gig.TicketTypes = ticketTypesFromDetails(t.TicketDetails)
	gig.AgeRecommendation = AgeRecommendation(t.ShortDescription)
	gig.ImportantNotes = t.ImportantNotes
	gig.NotificationEmail = t.NotificationEmail

	for _, in := range instances(t) {
		if absDuration(in.start.Sub(premiere)) >= premiereDistance {
			continue
		}
		if end, ok := eventdate.Parse(in.date.End); ok {
			gig.Duration = locale.Duration(premiere, end)
		}
		break
	}
	return &gig, nil
}

// AnnotateSeats sets AvailableSeats on gigs whose start matches a seat record.
func AnnotateSeats(gigs []types.Gig, seatsByStart map[int64]int) {
	for i := range gigs {
		if seats, ok := seatsByStart[gigs[i].StartTimestamp/1000]; ok {
			gigs[i].AvailableSeats = &seats
		}
	}
}

// AgeRecommendation extracts e.g. "ab 4 Jahr" from a description.
func AgeRecommendation(text string) string {
	return agePattern.FindString(text)
}

func (b *Builder) dateFields(start time.Time) types.Gig {
	local := b.fmt.In(start)
	return types.Gig{
		Date: types.GigDate{
			Day:   local.Day(),
			Month: b.fmt.MonthShort(start),
			Year:  local.Year(),
		},
		Time:           b.fmt.Clock(start),
		DayOfWeek:      b.fmt.Weekday(start),
		StartTimestamp: start.UnixMilli(),
	}
}

func ticketTypesFromDetails(details []types.TicketDetailDoc) []types.TicketType {
	out := make([]types.TicketType, 0, len(details))
	for _, d := range details {
		out = append(out, types.TicketType{
			Name:        utils.FirstNonEmpty(d.Name, defaultTicket),
			Price:       d.Price.Float(),
			Currency:    utils.FirstNonEmpty(d.Currency, defaultCurrency),
			Description: d.Description,
		})
	}
	return out
}

func ticketTypesFromLegacy(tts []types.TicketTypeDoc) []types.TicketType {
	out := make([]types.TicketType, 0, len(tts))
	for _, tt := range tts {
		var info types.TicketTypeInfoDoc
		for _, candidate := range tt.TicketTypeInfos {
			if candidate.Name != "" {
				info = candidate
				break
			}
		}
		out = append(out, types.TicketType{
			Name:        utils.FirstNonEmpty(info.Name, defaultTicket),
			Price:       tt.Price.Float(),
			Currency:    utils.FirstNonEmpty(tt.Currency, defaultCurrency),
			Description: info.Description,
		})
	}
	return out
}

func legacyNumber(id string) int64 {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return eventid.LegacyTemplateID(id)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
