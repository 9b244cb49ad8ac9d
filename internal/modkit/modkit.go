// Package modkit builds API modules from shared deps and options
package modkit

import (
	"net/http"
	"strings"

	"scribe/internal/modkit/httpkit"
	"scribe/internal/modkit/module"
)

// Module is the contract every API module satisfies
type Module = module.Module

// Option adjusts a module under construction
type Option func(*Built)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// WithName names the module in logs and panics
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the route prefix the module mounts under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares adds middleware scoped to the module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes. The type is owned by the consumer
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Build applies opts in order. It panics on a blank name or prefix
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		panic("modkit: module name required")
	}
	b.Prefix = "/" + strings.Trim(strings.TrimSpace(b.Prefix), "/")
	if b.Prefix == "/" {
		panic("modkit: module " + b.Name + " needs a route prefix")
	}
	return b
}

// Base implements Module for a Built and a route registrar. Modules embed it
type Base struct {
	built  Built
	ports  any
	routes func(httpkit.Router)
}

// NewBase binds routes and the ports the module exposes to b
func NewBase(b Built, ports any, routes func(httpkit.Router)) Base {
	return Base{built: b, ports: ports, routes: routes}
}

// Name returns the module name
func (m Base) Name() string { return m.built.Name }

// Prefix returns the route prefix
func (m Base) Prefix() string { return m.built.Prefix }

// Ports returns the exposed port bundle
func (m Base) Ports() any { return m.ports }

// MountRoutes registers the module under its prefix with its middleware
func (m Base) MountRoutes(r httpkit.Router) {
	r.Route(m.built.Prefix, func(rr httpkit.Router) {
		if len(m.built.Mw) > 0 {
			rr.Use(m.built.Mw...)
		}
		if m.routes != nil {
			m.routes(rr)
		}
	})
}
