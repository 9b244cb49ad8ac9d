package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the plain handler func routes are registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Delete(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))
}

// AdaptChi exposes a chi router as a Router
func AdaptChi(r chi.Router) Router { return chiRouter{r: r} }

type chiRouter struct{ r chi.Router }

func (c chiRouter) Get(p string, h Handler)                     { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)                    { c.r.Post(p, h) }
func (c chiRouter) Put(p string, h Handler)                     { c.r.Put(p, h) }
func (c chiRouter) Delete(p string, h Handler)                  { c.r.Delete(p, h) }
func (c chiRouter) Handle(p string, h http.Handler)             { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(g chi.Router) { fn(chiRouter{r: g}) })
}

func (c chiRouter) Route(p string, fn func(Router)) {
	c.r.Route(p, func(s chi.Router) { fn(chiRouter{r: s}) })
}
