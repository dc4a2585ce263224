package catalog

import (
	"context"
	"strings"

	"github.com/petruschka/site-api/internal/api/gigs"
	"github.com/petruschka/site-api/internal/clock"
	"github.com/petruschka/site-api/internal/eventid"
	"github.com/petruschka/site-api/internal/queries"
	"github.com/petruschka/site-api/internal/types"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

const (
	trackerCD      = "CD"
	trackerTournee = "Tournee"

	merchSummaryLen = 150
)

// productTickets name the ticket types that are the product itself rather
// than a track.
var productTickets = map[string]bool{"CD": true, "Hörspiel": true}

// trackExclusions mark shipping and subscription ticket types.
var trackExclusions = []string{"Versand", "Postversand", "Abo"}

// Store is the subset of the queries package the catalog reads from.
type Store interface {
	Staff(ctx context.Context) ([]types.StaffDoc, error)
	Templates(ctx context.Context, pattern string) ([]types.GigTemplateDoc, error)
}

// UpdateSource supplies the premiere updates shown next to the merchandise.
type UpdateSource interface {
	Updates(ctx context.Context) ([]types.Update, error)
}

type Service struct {
	store   Store
	updates UpdateSource
	catalog *Catalog
	builder *gigs.Builder
	clock   clock.Clock
}

func NewService(store Store, updates UpdateSource, catalog *Catalog, builder *gigs.Builder, clk clock.Clock) *Service {
	return &Service{store: store, updates: updates, catalog: catalog, builder: builder, clock: clk}
}

func (s *Service) Contact() types.ContactResponse {
	return s.catalog.Contact
}

// BandMembers lists active staff in display order, or the embedded members
// when the collection is empty or unreachable.
func (s *Service) BandMembers(ctx context.Context) []types.BandMember {
	staff, err := s.store.Staff(ctx)
	if err != nil {
		utils.Zlog.Warn("Failed to load staff, using embedded band members", zap.Error(err))
		return s.catalog.BandMembers
	}
	if len(staff) == 0 {
		return s.catalog.BandMembers
	}

	members := make([]types.BandMember, 0, len(staff))
	for i, doc := range staff {
		members = append(members, types.BandMember{
			ID:          int64(i + 1),
			Name:        doc.Name,
			Instrument:  utils.FirstNonEmpty(doc.Role, doc.Topic, doc.Instrument),
			Image:       doc.Image,
			Description: utils.StripTags(utils.FirstNonEmpty(doc.Description, doc.Bio)),
		})
	}
	return members
}

// Albums builds one album per CD template and falls back to the embedded
// albums when there are none.
func (s *Service) Albums(ctx context.Context) []types.Album {
	templates, err := s.store.Templates(ctx, trackerCD)
	if err != nil {
		utils.Zlog.Warn("Failed to load CD templates, using embedded albums", zap.Error(err))
		return s.catalog.Albums
	}

	albums := []types.Album{}
	for _, t := range templates {
		if !strings.Contains(t.GoogleAnalyticsTracker, trackerCD) {
			continue
		}
		if album, ok := s.albumFromTemplate(t); ok {
			albums = append(albums, album)
		}
	}
	if len(albums) == 0 {
		return s.catalog.Albums
	}
	return albums
}

func (s *Service) albumFromTemplate(t types.GigTemplateDoc) (types.Album, bool) {
	detail, err := s.builder.DetailFromTemplate(t, nil, s.clock.Now())
	if err != nil {
		return types.Album{}, false
	}

	album := types.Album{
		ID:                eventid.LegacyTemplateID(t.TemplateID()),
		Title:             t.Name,
		CoverImage:        utils.FirstNonEmpty(t.ImageURL, t.FlyerImagePath),
		Status:            "available",
		PurchaseURL:       detail.TicketURL,
		Description:       utils.FirstNonEmpty(detail.LongDescription, detail.Description),
		ReleaseDate:       detail.EventDateString,
		Artists:           detail.Artists,
		NotificationEmail: detail.NotificationEmail,
		Tracks:            []types.Track{},
	}

	for _, tt := range detail.TicketTypes {
		if productTickets[tt.Name] {
			price := tt.Price
			album.Price = &price
			album.Artists = utils.FirstNonEmpty(tt.Description, album.Artists)
			continue
		}
		if isTrack(tt.Name) {
			album.Tracks = append(album.Tracks, types.Track{Title: tt.Name, Duration: tt.Description})
		}
	}
	return album, true
}

func isTrack(name string) bool {
	for _, ex := range trackExclusions {
		if strings.Contains(name, ex) {
			return false
		}
	}
	return true
}

// Merch lists CD and Tournee productions as merchandise, with the embedded
// items as fallback, and the premiere updates alongside.
func (s *Service) Merch(ctx context.Context) types.MerchResponse {
	updates, err := s.updates.Updates(ctx)
	if err != nil {
		utils.Zlog.Warn("Failed to load updates for merch", zap.Error(err))
		updates = nil
	}
	if updates == nil {
		updates = []types.Update{}
	}

	templates, err := s.store.Templates(ctx, trackerCD+"|"+trackerTournee)
	if err != nil {
		utils.Zlog.Warn("Failed to load merch templates, using embedded merchandise", zap.Error(err))
		return types.MerchResponse{Merchandise: s.catalog.Merchandise, Updates: updates}
	}

	items := []types.MerchItem{}
	for _, t := range templates {
		if item, ok := s.merchFromTemplate(t); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		items = s.catalog.Merchandise
	}
	return types.MerchResponse{Merchandise: items, Updates: updates}
}

func (s *Service) merchFromTemplate(t types.GigTemplateDoc) (types.MerchItem, bool) {
	tournee := strings.Contains(t.GoogleAnalyticsTracker, trackerTournee)
	if !tournee && !strings.Contains(t.GoogleAnalyticsTracker, trackerCD) {
		return types.MerchItem{}, false
	}

	now := s.clock.Now()
	detail, err := s.builder.DetailFromTemplate(t, nil, now)
	if err != nil {
		return types.MerchItem{}, false
	}

	item := types.MerchItem{
		ID:                eventid.LegacyTemplateID(t.TemplateID()),
		Title:             t.Name,
		Price:             merchPrice(detail.TicketTypes),
		Image:             utils.FirstNonEmpty(t.ImageURL, t.FlyerImagePath),
		Description:       utils.Truncate(detail.Description, merchSummaryLen),
		PurchaseURL:       detail.TicketURL,
		Type:              types.MerchTypeRegular,
		NotificationEmail: detail.NotificationEmail,
	}
	if !tournee {
		return item, true
	}

	item.Type = types.MerchTypeTournee
	item.LongDescription = utils.FirstNonEmpty(detail.LongDescription, detail.Description)
	if detail.Duration != "" {
		item.Details = append(item.Details, "Dauer: "+detail.Duration)
	}
	if detail.Venue != "" {
		item.Details = append(item.Details, "Ort: "+detail.Venue)
	}
	if detail.Artists != "" {
		item.Details = append(item.Details, "Künstler: "+detail.Artists)
	}
	if detail.ImportantNotes != "" {
		item.Details = append(item.Details, detail.ImportantNotes)
	}
	for _, gig := range s.builder.ExpandUpcoming([]types.GigTemplateDoc{t}, now) {
		item.PerformanceDates = append(item.PerformanceDates, gig.EventDateString)
	}
	return item, true
}

// merchPrice prefers the CD ticket, then the first ticket.
func merchPrice(tts []types.TicketType) float64 {
	for _, tt := range tts {
		if productTickets[tt.Name] {
			return tt.Price
		}
	}
	if len(tts) > 0 {
		return tts[0].Price
	}
	return 0
}

var _ Store = (*storeAdapter)(nil)

// storeAdapter joins the static and gig queries behind Store.
type storeAdapter struct {
	static *queries.StaticQueries
	gigs   *queries.GigQueries
}

func NewStore(static *queries.StaticQueries, gigQueries *queries.GigQueries) Store {
	return &storeAdapter{static: static, gigs: gigQueries}
}

func (a *storeAdapter) Staff(ctx context.Context) ([]types.StaffDoc, error) {
	return a.static.Staff(ctx)
}

func (a *storeAdapter) Templates(ctx context.Context, pattern string) ([]types.GigTemplateDoc, error) {
	return a.gigs.Templates(ctx, pattern)
}
