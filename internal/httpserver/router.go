package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquorhole/internal/cart"
	"liquorhole/internal/domain"
	productrepo "liquorhole/internal/repository/product"
	"liquorhole/internal/service/collection"
	ordersvc "liquorhole/internal/service/order"
	"liquorhole/internal/service/suggest"
)

// ProductCatalog is the read surface handlers need for product pages.
type ProductCatalog interface {
	List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type CategoryCatalog interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
}

type BrandCatalog interface {
	ListAll(ctx context.Context) ([]domain.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)
}

type CollectionResolver interface {
	Menu(ctx context.Context) ([]*domain.MenuNode, error)
	Resolve(ctx context.Context, slug string, discountOnly bool) (*collection.Result, error)
}

type Suggester interface {
	Suggest(ctx context.Context, clientID, query string) ([]suggest.Suggestion, error)
}

type OrderSubmitter interface {
	Submit(ctx context.Context, in ordersvc.SubmitInput) (*ordersvc.Result, error)
}

type AdminOrderStore interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type AdminAuth interface {
	Login(password string) (string, error)
	VerifyToken(token string) error
}

// Deps carries everything the router needs.
type Deps struct {
	Products    ProductCatalog
	Categories  CategoryCatalog
	Brands      BrandCatalog
	Collections CollectionResolver
	Suggest     Suggester
	Orders      OrderSubmitter
	AdminOrders AdminOrderStore
	Admin       AdminAuth
	Carts       *cart.Manager
}

// Options tunes router behavior per environment.
type Options struct {
	CORSAllowOrigins []string
	SecureCookies    bool
}

// buildRouter wires the public storefront API and the admin surface.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSAllowOrigins) == 1 && opts.CORSAllowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.CORSAllowOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger, secureCookies: opts.SecureCookies}

	api := router.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:slug", h.getProduct)
		api.GET("/categories", h.listCategories)
		api.GET("/brands", h.listBrands)
		api.GET("/brands/:slug", h.getBrand)
		api.GET("/menu", h.getMenu)
		api.GET("/collections/:slug", h.getCollection)

		withCart := api.Group("", cartSessionMiddleware(opts.SecureCookies))
		{
			// session-scoped so one client's lookups cannot stale another's
			withCart.GET("/search/suggestions", h.suggestions)
			withCart.GET("/cart", h.getCart)
			withCart.POST("/cart/items", h.addCartItem)
			withCart.PATCH("/cart/items/:id", h.updateCartItem)
			withCart.DELETE("/cart/items/:id", h.removeCartItem)
			withCart.DELETE("/cart", h.clearCart)
			withCart.POST("/cart/quick-add", h.quickAdd)
			withCart.POST("/orders", h.submitOrder)
		}

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", h.adminLogin)
			adminGroup.POST("/logout", h.adminLogout)

			protected := adminGroup.Group("", adminAuthMiddleware(deps.Admin))
			{
				protected.GET("/orders", h.adminListOrders)
				protected.PATCH("/orders/:id", h.adminUpdateOrderStatus)
			}
		}
	}

	return router, nil
}

type handlers struct {
	deps          Deps
	logger        *log.Logger
	secureCookies bool
}
