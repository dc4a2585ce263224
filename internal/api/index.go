package api

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/api/catalog"
	"github.com/petruschka/site-api/internal/api/gigs"
	"github.com/petruschka/site-api/internal/api/health"
	"github.com/petruschka/site-api/internal/api/locations"
	"github.com/petruschka/site-api/internal/api/newsletter"
	"github.com/petruschka/site-api/internal/api/press"
	"github.com/petruschka/site-api/internal/api/seats"
	"github.com/petruschka/site-api/internal/api/sponsors"
	"github.com/petruschka/site-api/internal/clock"
	"github.com/petruschka/site-api/internal/config"
	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/locale"
	"github.com/petruschka/site-api/internal/mulu"
	"github.com/petruschka/site-api/internal/queries"
	"github.com/petruschka/site-api/internal/shared"
)

// SetupRoutes registers every feature router on engine. The returned func
// stops the background workers and must be called on shutdown.
func SetupRoutes(engine *gin.Engine, db *loaders.MongoClient, cfg *config.Config) (func(context.Context), error) {
	cat, err := catalog.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	clk := clock.NewSystem()
	builder := gigs.NewBuilder(locale.NewFormatter(cfg.TimeZone))
	muluClient := mulu.NewClient(cfg.MuluBaseURL, cfg.MuluTourID, cfg.MuluRateLimit)

	gigQueries := queries.NewGigQueries(db, cfg.EventDB)
	staticQueries := queries.NewStaticQueries(db, cfg.StaticDB, cfg.SponsorsDB)
	newsletterQueries := queries.NewNewsletterQueries(db, cfg.StaticDB)

	health.RegisterRoutes(engine, db, cfg.ServiceName)

	v1 := engine.Group(shared.APIPrefix)

	gigService := gigs.NewService(gigQueries, muluClient, builder, clk, cfg.ImageProxyURL)
	gigs.RegisterRoutes(v1, gigService)

	catalogService := catalog.NewService(catalog.NewStore(staticQueries, gigQueries), gigService, cat, builder, clk)
	catalog.RegisterRoutes(v1, catalogService)

	press.RegisterRoutes(v1, press.NewService(staticQueries))
	sponsors.RegisterRoutes(v1, sponsors.NewService(staticQueries, cfg.SponsorImageURL))
	locations.RegisterRoutes(v1, locations.NewService(staticQueries))
	seats.RegisterRoutes(v1, muluClient)

	workers := newsletter.RegisterRoutes(v1, newsletterQueries, cfg)

	return workers.Stop, nil
}
