package types

import "time"

type GigDate struct {
	Day   int    `json:"day"`
	Month string `json:"month"`
	Year  int    `json:"year"`
}

type TicketType struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

// Gig is one displayable event instance.
type Gig struct {
	ID                string       `json:"id"`
	LegacyID          int64        `json:"legacyId"`
	TemplateID        string       `json:"templateId,omitempty"`
	Date              GigDate      `json:"date"`
	Title             string       `json:"title"`
	Venue             string       `json:"venue"`
	Location          string       `json:"location"`
	Time              string       `json:"time"`
	DayOfWeek         string       `json:"dayOfWeek"`
	Description       string       `json:"description"`
	TicketURL         string       `json:"ticketUrl"`
	LongDescription   string       `json:"longDescription,omitempty"`
	ShortDescription  string       `json:"shortDescription,omitempty"`
	Artists           string       `json:"artists,omitempty"`
	FlyerImagePath    string       `json:"flyerImagePath,omitempty"`
	BannerImagePath   string       `json:"bannerImagePath,omitempty"`
	EventDateString   string       `json:"eventDateString,omitempty"`
	StartTimestamp    int64        `json:"startTimestamp,omitempty"`
	AvailableSeats    *int         `json:"availableSeats,omitempty"`
	TicketTypes       []TicketType `json:"ticketTypes,omitempty"`
	Duration          string       `json:"duration,omitempty"`
	AgeRecommendation string       `json:"ageRecommendation,omitempty"`
	ImportantNotes    string       `json:"importantNotes,omitempty"`
	NotificationEmail string       `json:"notificationEmail,omitempty"`
}

// Start returns the instant the gig begins.
func (g Gig) Start() time.Time {
	return time.UnixMilli(g.StartTimestamp).UTC()
}

type PastEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Year        string `json:"year"`
	Season      string `json:"season"`
}

type Update struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	CtaText            string `json:"ctaText"`
	CtaURL             string `json:"ctaUrl"`
	MediaType          string `json:"mediaType,omitempty"`
	MediaURL           string `json:"mediaUrl,omitempty"`
	MediaThumb         string `json:"mediaThumb,omitempty"`
	IsCountdown        bool   `json:"isCountdown,omitempty"`
	CountdownDate      string `json:"countdownDate,omitempty"`
	IsCurrentlyRunning bool   `json:"isCurrentlyRunning,omitempty"`
}

// MuluSeat is one entry of the MULU seat availability feed.
type MuluSeat struct {
	From   int64 `json:"from"`
	AvPart int   `json:"av_part"`
}
