package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is a plain handler func; modules never see chi types
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))
}

// AdaptChi wraps a chi router, root mux or sub router alike
func AdaptChi(r chi.Router) Router { return chiRouter{r: r} }

type chiRouter struct{ r chi.Router }

func (c chiRouter) on(method, p string, h Handler) { c.r.Method(method, p, http.HandlerFunc(h)) }

func (c chiRouter) Get(p string, h Handler)     { c.on(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)    { c.on(http.MethodPost, p, h) }
func (c chiRouter) Put(p string, h Handler)     { c.on(http.MethodPut, p, h) }
func (c chiRouter) Patch(p string, h Handler)   { c.on(http.MethodPatch, p, h) }
func (c chiRouter) Delete(p string, h Handler)  { c.on(http.MethodDelete, p, h) }
func (c chiRouter) Options(p string, h Handler) { c.on(http.MethodOptions, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(AdaptChi(sub)) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(AdaptChi(sub)) })
}
