package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every queued registrar
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// RouteGroup is a list of routes sharing a path prefix, e.g. everything
// under /vendors
type RouteGroup struct {
	prefix string
	routes []route
}

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

func NewRouteGroup(prefix string) *RouteGroup {
	return &RouteGroup{prefix: prefix}
}

func (g *RouteGroup) add(method, path string, h gin.HandlerFunc) *RouteGroup {
	g.routes = append(g.routes, route{method: method, path: path, handler: h})
	return g
}

func (g *RouteGroup) GET(path string, h gin.HandlerFunc) *RouteGroup {
	return g.add(http.MethodGet, path, h)
}

func (g *RouteGroup) POST(path string, h gin.HandlerFunc) *RouteGroup {
	return g.add(http.MethodPost, path, h)
}

func (g *RouteGroup) PUT(path string, h gin.HandlerFunc) *RouteGroup {
	return g.add(http.MethodPut, path, h)
}

// RegisterRoutes implements RouteRegistrar
func (g *RouteGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix)
	for _, r := range g.routes {
		group.Handle(r.method, r.path, r.handler)
	}
}
