package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"campreg/internal/domain"
	checkoutsvc "campreg/internal/service/checkout"
)

// Deps carries the services the routes dispatch to.
type Deps struct {
	CatalogSvc      catalogService
	PromoSvc        promoService
	CheckoutSvc     checkoutService
	RegistrationSvc registrationService
	AthleteRepo     athleteRepo
}

type catalogService interface {
	ListCamps(ctx context.Context) ([]domain.CampSession, error)
	GetCamp(ctx context.Context, slug string) (*domain.CampSession, error)
	ListAddOns(ctx context.Context, campSlug string) ([]domain.AddOn, error)
}

type promoService interface {
	Validate(ctx context.Context, code string) (*domain.PromoCode, error)
}

type checkoutService interface {
	Load(ctx context.Context, sessionKey, campSlug string) *checkoutsvc.Result
	Apply(ctx context.Context, sessionKey, campSlug string, actions []checkoutsvc.Action) (*checkoutsvc.Result, error)
}

type registrationService interface {
	Submit(ctx context.Context, sessionKey, campSlug string) (*domain.Registration, error)
	Get(ctx context.Context, id string) (*domain.Registration, error)
}

type athleteRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Athlete, error)
	ListByParentEmail(ctx context.Context, email string) ([]domain.Athlete, error)
}

// buildRouter wires routes for the API. The checkout SPA is served from a
// different origin, so CORS is part of the route stack.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/camps", listCampsHandler(deps.CatalogSvc))
		api.GET("/camps/:slug", getCampHandler(deps.CatalogSvc))
		api.GET("/camps/:slug/addons", listAddOnsHandler(deps.CatalogSvc))

		api.POST("/promos/validate", validatePromoHandler(deps.PromoSvc))

		api.GET("/athletes", listAthletesHandler(deps.AthleteRepo))
		api.GET("/athletes/:id", getAthleteHandler(deps.AthleteRepo))

		api.GET("/checkout/:sessionKey", getCheckoutHandler(deps.CheckoutSvc))
		api.POST("/checkout/:sessionKey/actions", checkoutActionsHandler(deps.CheckoutSvc))
		api.POST("/checkout/:sessionKey/submit", submitHandler(deps.RegistrationSvc))
		api.GET("/registrations/:id", getRegistrationHandler(deps.RegistrationSvc))
	}

	return router
}
