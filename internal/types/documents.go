package types

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ====== DATABASE MODELS ======
//
// Date fields are typed any because the collections mix BSON datetimes,
// extended JSON and strings; read them through eventdate.Parse.

type TicketDetailDoc struct {
	Name        string `bson:"name" json:"name"`
	Price       Number `bson:"price" json:"price"`
	Currency    string `bson:"currency" json:"currency"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

type EventDateDoc struct {
	Start                  any    `bson:"start" json:"start"`
	End                    any    `bson:"end,omitempty" json:"end,omitempty"`
	EventDateString        string `bson:"eventDateString,omitempty" json:"eventDateString,omitempty"`
	GoogleAnalyticsTracker string `bson:"googleAnalyticsTracker,omitempty" json:"googleAnalyticsTracker,omitempty"`
	TicketURL              string `bson:"ticketUrl,omitempty" json:"ticketUrl,omitempty"`
}

// GigTemplateDoc is one document of the optimized eventDb.Gigs view.
type GigTemplateDoc struct {
	ID                     any               `bson:"_id" json:"_id"`
	Name                   string            `bson:"name" json:"name"`
	Location               string            `bson:"location,omitempty" json:"location,omitempty"`
	URL                    string            `bson:"url,omitempty" json:"url,omitempty"`
	Artists                string            `bson:"artists,omitempty" json:"artists,omitempty"`
	ShortDescription       string            `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	LongDescription        string            `bson:"longDescription,omitempty" json:"longDescription,omitempty"`
	FlyerImagePath         string            `bson:"flyerImagePath,omitempty" json:"flyerImagePath,omitempty"`
	BannerImagePath        string            `bson:"bannerImagePath,omitempty" json:"bannerImagePath,omitempty"`
	ImageURL               string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ImportantNotes         string            `bson:"importantNotes,omitempty" json:"importantNotes,omitempty"`
	GoogleAnalyticsTracker string            `bson:"googleAnalyticsTracker,omitempty" json:"googleAnalyticsTracker,omitempty"`
	PremiereDate           any               `bson:"premiereDate,omitempty" json:"premiereDate,omitempty"`
	NotificationEmail      string            `bson:"notificationEmail,omitempty" json:"notificationEmail,omitempty"`
	TicketDetails          []TicketDetailDoc `bson:"ticketDetails,omitempty" json:"ticketDetails,omitempty"`
	EventDates             []EventDateDoc    `bson:"eventDates,omitempty" json:"eventDates,omitempty"`
}

// TemplateID is the template's _id as a string.
func (d GigTemplateDoc) TemplateID() string {
	return IDString(d.ID)
}

type TicketTypeInfoDoc struct {
	Name        string `bson:"name,omitempty"`
	Description string `bson:"description,omitempty"`
}

type TicketTypeDoc struct {
	Price           Number              `bson:"price"`
	Currency        string              `bson:"currency,omitempty"`
	TicketTypeInfos []TicketTypeInfoDoc `bson:"ticketTypeInfos,omitempty"`
}

type EventInfoDoc struct {
	LanguageID       any    `bson:"languageId"`
	Name             string `bson:"name"`
	Location         string `bson:"location,omitempty"`
	URL              string `bson:"url,omitempty"`
	ShortDescription string `bson:"shortDescription,omitempty"`
	LongDescription  string `bson:"longDescription,omitempty"`
	Artists          string `bson:"artists,omitempty"`
	Artist           string `bson:"artist,omitempty"`
	FlyerImagePath   string `bson:"flyerImagePath,omitempty"`
	BannerImagePath  string `bson:"bannerImagePath,omitempty"`
	ImportantNotes   string `bson:"importantNotes,omitempty"`
}

// EventDetailDoc is one document of the legacy eventDb.EventDetails collection.
type EventDetailDoc struct {
	ID              any             `bson:"_id"`
	Start           any             `bson:"start"`
	Begin           any             `bson:"begin,omitempty"`
	End             any             `bson:"end,omitempty"`
	EventDateString string          `bson:"eventDateString,omitempty"`
	EventInfos      []EventInfoDoc  `bson:"eventInfos,omitempty"`
	TicketTypes     []TicketTypeDoc `bson:"ticketTypes,omitempty"`
}

// GermanInfo returns the eventInfos entry whose languageId is the number 0.
// Missing, null and string ids do not count.
func (d EventDetailDoc) GermanInfo() (EventInfoDoc, bool) {
	for _, info := range d.EventInfos {
		if isZeroNumber(info.LanguageID) {
			return info, true
		}
	}
	return EventInfoDoc{}, false
}

func isZeroNumber(v any) bool {
	switch n := v.(type) {
	case int32:
		return n == 0
	case int64:
		return n == 0
	case int:
		return n == 0
	case float64:
		return n == 0
	}
	return false
}

// PremiereDoc is one document of eventDb.UpcomingPremieres_all.
type PremiereDoc struct {
	ID          any             `bson:"_id"`
	EventDetail *EventDetailDoc `bson:"eventDetail,omitempty"`
}

// StaffDoc is one team member. Older documents use role/description/order,
// newer ones topic/bio (HTML)/sortOrder.
type StaffDoc struct {
	ID          any    `bson:"_id"`
	Name        string `bson:"name"`
	Role        string `bson:"role,omitempty"`
	Topic       string `bson:"topic,omitempty"`
	Instrument  string `bson:"instrument,omitempty"`
	Description string `bson:"description,omitempty"`
	Bio         string `bson:"bio,omitempty"`
	Image       string `bson:"image,omitempty"`
	Order       Number `bson:"order,omitempty"`
	SortOrder   Number `bson:"sortOrder,omitempty"`
	Active      *bool  `bson:"active,omitempty"`
}

type LocationDoc struct {
	ID         any    `bson:"_id"`
	Name       string `bson:"name"`
	Street     string `bson:"street,omitempty"`
	PostalCode string `bson:"postalCode,omitempty"`
	City       string `bson:"city,omitempty"`
	Directions string `bson:"directions,omitempty"`
	Info       string `bson:"info,omitempty"`
	EfID       any    `bson:"ef_id,omitempty"`
}

type PressDoc struct {
	ID            any    `bson:"_id"`
	Nr            string `bson:"nr"`
	Desc          string `bson:"desc"`
	Source        string `bson:"source"`
	Date          any    `bson:"date"`
	Author        string `bson:"author"`
	FileExtension string `bson:"fileExtension"`
	Link          string `bson:"link,omitempty"`
	Quote         string `bson:"quote,omitempty"`
}

type SponsorDoc struct {
	ID     any            `bson:"_id"`
	Name   string         `bson:"name"`
	URL    string         `bson:"url,omitempty"`
	Image  string         `bson:"image,omitempty"`
	Events []SponsorEvent `bson:"events,omitempty"`
}

type NewsletterDoc struct {
	Email        string `bson:"email"`
	FirstName    string `bson:"firstName"`
	LastName     string `bson:"lastName"`
	SubscribedAt any    `bson:"subscribedAt"`
	JobID        string `bson:"jobId"`
}

// IDString renders a Mongo _id (string, number or ObjectID) as a string.
func IDString(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		if oid, ok := v["$oid"].(string); ok {
			return oid
		}
	case primitive.M:
		if oid, ok := v["$oid"].(string); ok {
			return oid
		}
	}
	return fmt.Sprint(id)
}
