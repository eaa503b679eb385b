package router

import (
	"net/http"

	"github.com/erp/passbook/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one resource before they are mounted
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:   name,
		prefix: prefix,
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the endpoints the passbook service exposes
type Handlers struct {
	Accounts *handler.AccountHandler
	Passbook *handler.PassbookHandler
	Health   *handler.HealthHandler
	// Metrics serves the prometheus scrape; nil leaves /metrics unregistered
	Metrics http.Handler
	// WriteMiddleware wraps the POST routes, e.g. a body limit
	WriteMiddleware []gin.HandlerFunc
}

// LedgerAccountRoutes builds the /ledger-accounts group
func LedgerAccountRoutes(h Handlers) *DomainGroup {
	accounts := NewDomainGroup("ledger-accounts", "/ledger-accounts")
	accounts.GET("", h.Accounts.List)
	accounts.POST("", withMiddleware(h.WriteMiddleware, h.Accounts.Create)...)
	accounts.GET("/:id", h.Accounts.Get)

	account := accounts.Group("passbook", "/:id")
	account.GET("/passbook", h.Passbook.GetPassbook)
	account.GET("/summary", h.Passbook.GetSummary)
	account.GET("/vouchers", h.Passbook.ListVouchers)
	account.POST("/vouchers", withMiddleware(h.WriteMiddleware, h.Passbook.RecordVoucher)...)
	account.POST("/challans", withMiddleware(h.WriteMiddleware, h.Passbook.RecordChallan)...)
	return accounts
}

// Setup mounts every passbook route on engine
func Setup(engine *gin.Engine, h Handlers, opts ...RouterOption) {
	engine.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(h.Metrics))
	}

	NewRouter(engine, opts...).
		Register(LedgerAccountRoutes(h)).
		Setup()
}

func withMiddleware(middleware []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(middleware)+1)
	chain = append(chain, middleware...)
	return append(chain, final)
}
