package types

type Track struct {
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}

type Album struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	CoverImage        string   `json:"coverImage"`
	Status            string   `json:"status"`
	Price             *float64 `json:"price,omitempty"`
	PurchaseURL       string   `json:"purchaseUrl"`
	Description       string   `json:"description,omitempty"`
	ReleaseDate       string   `json:"releaseDate,omitempty"`
	Artists           string   `json:"artists,omitempty"`
	NotificationEmail string   `json:"notificationEmail,omitempty"`
	Tracks            []Track  `json:"tracks,omitempty"`
}

type BandMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Instrument  string `json:"instrument"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

const (
	MerchTypeTournee = "tournee"
	MerchTypeRegular = "regular"
)

type MerchItem struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Price             float64  `json:"price"`
	Image             string   `json:"image"`
	Description       string   `json:"description"`
	PurchaseURL       string   `json:"purchaseUrl"`
	LongDescription   string   `json:"longDescription,omitempty"`
	Details           []string `json:"details,omitempty"`
	PerformanceDates  []string `json:"performanceDates,omitempty"`
	Type              string   `json:"type,omitempty"`
	NotificationEmail string   `json:"notificationEmail,omitempty"`
}

type MerchResponse struct {
	Merchandise []MerchItem `json:"merchandise"`
	Updates     []Update    `json:"updates"`
}

type ContactInfo struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Email string `json:"email"`
	Icon  string `json:"icon"`
}

type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

type ContactResponse struct {
	ContactInfo   []ContactInfo `json:"contactInfo"`
	MusicChannels []SocialLink  `json:"musicChannels"`
	SocialMedia   []SocialLink  `json:"socialMedia"`
}

type Press struct {
	ID            string `json:"id"`
	Nr            string `json:"nr"`
	Desc          string `json:"desc"`
	Source        string `json:"source"`
	Date          string `json:"date"`
	Author        string `json:"author"`
	FileExtension string `json:"fileExtension"`
	Link          string `json:"link,omitempty"`
	Quote         string `json:"quote,omitempty"`
}

type SponsorEvent struct {
	Event string  `json:"event" bson:"event"`
	Share float64 `json:"share" bson:"share"`
}

type Sponsor struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	Image      string         `json:"image"`
	Events     []SponsorEvent `json:"events"`
	TotalShare float64        `json:"totalShare"`
	SizeClass  string         `json:"sizeClass"`
}

type ObjectIDRef struct {
	OID string `json:"$oid"`
}

type Location struct {
	ID         ObjectIDRef `json:"_id"`
	Name       string      `json:"name"`
	Street     string      `json:"street"`
	PostalCode string      `json:"postalCode"`
	City       string      `json:"city"`
	Directions string      `json:"directions"`
	Info       string      `json:"info"`
	EfID       string      `json:"ef_id,omitempty"`
}

type NewsletterSubscription struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	PrivacyConsent bool   `json:"privacyConsent"`
}

type NewsletterResponse struct {
	JobID   string `json:"jobId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
