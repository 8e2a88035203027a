package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"partsite/internal/catalog"
	"partsite/internal/logging"
)

// Catalog is the read side of catalog.Store plus the view counter.
type Catalog interface {
	Systems(ctx context.Context) ([]string, error)
	Devices(ctx context.Context, system string) ([]string, error)
	Models(ctx context.Context, system, device string) ([]string, error)
	HasSystem(ctx context.Context, system string) (bool, error)
	List(ctx context.Context, filter catalog.Filter) ([]*catalog.Part, error)
	FindByKey(ctx context.Context, key catalog.NaturalKey) (*catalog.Part, error)
	Counter(ctx context.Context, id string) (*catalog.Counter, error)
	RecordView(ctx context.Context, id string) error
}

// errNotFound carries the message shown on a 404 page.
type errNotFound struct {
	message string
}

func (e errNotFound) Error() string { return e.message }

type handler struct {
	store   Catalog
	logger  *slog.Logger
	render  *renderer
	metrics *metrics
}

// NewHandler builds the catalog router.
func NewHandler(store Catalog, logger *slog.Logger) (http.Handler, error) {
	if store == nil {
		return nil, errors.New("web: catalog is required")
	}
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	h := &handler{
		store:   store,
		logger:  logging.NewComponentLogger(logger, "web"),
		render:  r,
		metrics: newMetrics(),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(headToGet)
	router.Use(h.metrics.instrument)
	router.Use(requestLogger(h.logger))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	router.Method(http.MethodGet, "/metrics", h.metrics.handler())

	router.Group(func(r chi.Router) {
		r.Use(noCache)
		r.Get("/", h.wrap(h.index))
		r.Get("/system/{system}/", h.wrap(h.system))
		r.Get("/device/{system}/{device}", h.wrap(h.device))
		r.Get("/model/{system}/{model}", h.wrap(h.model))
		r.Get("/part/{system}/{device}/{part}", h.wrap(h.part))
	})
	router.NotFound(noCache(h.wrap(func(*http.Request) (string, page, error) {
		return "", page{}, errNotFound{message: "Page not found"}
	})).ServeHTTP)
	return router, nil
}

type pageFunc func(r *http.Request) (string, page, error)

// wrap renders the page a pageFunc returns, or the error page for a
// not-found or internal error.
func (h *handler) wrap(fn pageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, data, err := fn(r)
		status := http.StatusOK
		if err != nil {
			var nf errNotFound
			if errors.As(err, &nf) {
				status = http.StatusNotFound
				data = page{Title: "Not found", Message: nf.message}
			} else {
				h.logger.Error("page failed",
					logging.String(logging.FieldPath, r.URL.Path),
					logging.Error(err),
				)
				status = http.StatusInternalServerError
				data = page{Title: "Error", Message: "The catalog is unavailable right now."}
			}
			name = "error"
			// Navigation on error pages is best effort.
			if nav, navErr := h.navigation(r.Context(), "", ""); navErr == nil {
				data.Nav = nav
			}
		}
		if err := h.render.render(w, status, name, data); err != nil {
			h.logger.Error("render failed", logging.String(logging.FieldPath, r.URL.Path), logging.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// navigation lists all systems, the devices of system and the models fitted
// by parts of device.
func (h *handler) navigation(ctx context.Context, system, device string) (navigation, error) {
	var nav navigation
	systems, err := h.store.Systems(ctx)
	if err != nil {
		return nav, err
	}
	for _, s := range systems {
		nav.Systems = append(nav.Systems, link{Title: titleize(s), URL: systemURL(s), Active: s == system})
	}
	if system == "" {
		return nav, nil
	}

	devices, err := h.store.Devices(ctx, system)
	if err != nil {
		return nav, err
	}
	for _, d := range devices {
		nav.Devices = append(nav.Devices, link{Title: titleize(d), URL: deviceURL(system, d), Active: d == device})
	}
	if device == "" {
		return nav, nil
	}

	models, err := h.store.Models(ctx, system, device)
	if err != nil {
		return nav, err
	}
	for _, m := range models {
		nav.Models = append(nav.Models, link{Title: m, URL: modelURL(system, m)})
	}
	return nav, nil
}

func (h *handler) requireSystem(ctx context.Context, system string) error {
	ok, err := h.store.HasSystem(ctx, system)
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound{message: fmt.Sprintf("System %s unknown", system)}
	}
	return nil
}

func (h *handler) index(r *http.Request) (string, page, error) {
	nav, err := h.navigation(r.Context(), "", "")
	if err != nil {
		return "", page{}, err
	}
	return "index", page{Title: "Index", Nav: nav}, nil
}

// pathParams returns the decoded route parameters. chi matches on the raw
// path when the request escapes a reserved character such as %2F, leaving
// the parameters escaped.
func pathParams(r *http.Request, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		value := chi.URLParam(r, name)
		if r.URL.RawPath != "" {
			decoded, err := url.PathUnescape(value)
			if err != nil {
				return nil, errNotFound{message: "Page not found"}
			}
			value = decoded
		}
		values[i] = value
	}
	return values, nil
}

func (h *handler) system(r *http.Request) (string, page, error) {
	params, err := pathParams(r, "system")
	if err != nil {
		return "", page{}, err
	}
	system := params[0]
	return h.listing(r.Context(), titleize(system), system, "", catalog.Filter{System: system})
}

func (h *handler) device(r *http.Request) (string, page, error) {
	params, err := pathParams(r, "system", "device")
	if err != nil {
		return "", page{}, err
	}
	system, device := params[0], params[1]
	title := titleize(system) + " " + titleize(device)
	return h.listing(r.Context(), title, system, device, catalog.Filter{System: system, Device: device})
}

func (h *handler) model(r *http.Request) (string, page, error) {
	params, err := pathParams(r, "system", "model")
	if err != nil {
		return "", page{}, err
	}
	system, model := params[0], params[1]
	title := fmt.Sprintf("Parts fitting %s %s", titleize(system), model)
	return h.listing(r.Context(), title, system, "", catalog.Filter{System: system, Model: model})
}

func (h *handler) listing(ctx context.Context, title, system, device string, filter catalog.Filter) (string, page, error) {
	if err := h.requireSystem(ctx, system); err != nil {
		return "", page{}, err
	}
	nav, err := h.navigation(ctx, system, device)
	if err != nil {
		return "", page{}, err
	}
	parts, err := h.store.List(ctx, filter)
	if err != nil {
		return "", page{}, err
	}
	data := page{Title: title, Nav: nav, Parts: make([]partView, 0, len(parts))}
	for _, p := range parts {
		data.Parts = append(data.Parts, h.render.partView(p))
	}
	return "listing", data, nil
}

func (h *handler) part(r *http.Request) (string, page, error) {
	ctx := r.Context()
	params, err := pathParams(r, "system", "device", "part")
	if err != nil {
		return "", page{}, err
	}
	key := catalog.NaturalKey{System: params[0], Device: params[1], Part: params[2]}
	found, err := h.store.FindByKey(ctx, key)
	if err != nil {
		return "", page{}, err
	}
	if found == nil {
		return "", page{}, errNotFound{message: "Part not found"}
	}

	if !isHeadRequest(r) {
		h.recordView(ctx, found.UUID)
	}
	counter, err := h.store.Counter(ctx, found.UUID)
	if err != nil {
		return "", page{}, err
	}
	nav, err := h.navigation(ctx, key.System, key.Device)
	if err != nil {
		return "", page{}, err
	}

	view := h.render.partView(found)
	return "part", page{Title: view.Title, Nav: nav, Part: &view, Counter: counter}, nil
}

// recordView counts a page view. A failed increment is logged and the page
// still renders.
func (h *handler) recordView(ctx context.Context, id string) {
	if err := h.store.RecordView(ctx, id); err != nil {
		h.logger.Warn("record view failed",
			logging.String(logging.FieldUUID, id),
			logging.Error(err),
		)
		return
	}
	h.metrics.views.Inc()
}
