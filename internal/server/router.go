package server

import (
	"net/http"
	"strings"
)

// BasicRouter mounts the backup surface's handlers on an [http.ServeMux]
// and threads every request through a shared middleware chain. Handlers
// describe their own URL layout via [Handler.Routes], so the serve and
// auth login commands mount a surface without repeating its paths.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	paths       []string
}

// NewBasicRouter creates an empty router.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use appends middleware to the chain. Requests pass through middleware in
// registration order, outermost first.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle mounts a handler on one path, restricted to a single HTTP method.
// Requests with any other method answer 405 before the handler runs.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	wrapped := r.Apply(handler)

	r.mount(path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wrapped.ServeHTTP(w, req)
	}))
}

// Handler mounts a [Handler] on every path it reports. Method dispatch is
// left to the handler, which sees all verbs on its paths.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, path := range handler.Routes() {
		r.mount(path, wrapped)
	}
}

func (r *BasicRouter) mount(path string, handler http.Handler) {
	r.paths = append(r.paths, path)
	r.mux.Handle(path, handler)
}

// Paths lists every mounted path in registration order.
func (r *BasicRouter) Paths() []string {
	paths := make([]string, len(r.paths))
	copy(paths, r.paths)
	return paths
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler in the registered middleware. The chain is built
// inside out so the first registered middleware observes the request first.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
