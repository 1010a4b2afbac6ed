package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/komapc/yearwheel/pkg/errors"
	"github.com/komapc/yearwheel/pkg/pipeline"
	"github.com/komapc/yearwheel/pkg/render/sink"
	"github.com/komapc/yearwheel/pkg/wheel"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"json": "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleRender renders a wheel from query parameters in the given format.
func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Layout-Hash", result.LayoutHash)
		if result.CacheInfo.RenderHit {
			w.Header().Set("X-Cache", "hit")
		}
		_, _ = w.Write(result.Artifacts[format])
	}
}

// saveWheelRequest is the POST /v1/wheels body: either a full layout to
// store as-is, or pipeline options to compute one server-side.
type saveWheelRequest struct {
	Name    string            `json:"name,omitempty"`
	Layout  *wheel.Layout     `json:"layout,omitempty"`
	Options *pipeline.Options `json:"options,omitempty"`
}

func (s *Server) handleSaveWheel(w http.ResponseWriter, r *http.Request) {
	var req saveWheelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	var l wheel.Layout
	switch {
	case req.Layout != nil:
		if len(req.Layout.Markers) == 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "layout must contain markers"))
			return
		}
		l = *req.Layout
	case req.Options != nil:
		opts := *req.Options
		opts.Formats = []string{"json"}
		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, err)
			return
		}
		l = result.Layout
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request needs a layout or options"))
		return
	}

	id, err := s.store.Save(r.Context(), req.Name, l)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

func (s *Server) handleListWheels(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	wheels, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Strip marker detail from listings; clients fetch the full wheel by id.
	type listItem struct {
		ID        string `json:"id"`
		Name      string `json:"name,omitempty"`
		Year      int    `json:"year,omitempty"`
		CreatedAt string `json:"created_at"`
	}
	items := make([]listItem, len(wheels))
	for i, wh := range wheels {
		items[i] = listItem{
			ID:        wh.ID,
			Name:      wh.Name,
			Year:      wh.Layout.Year,
			CreatedAt: wh.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (s *Server) handleGetWheel(w http.ResponseWriter, r *http.Request) {
	wh, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(wh)
}

// handleRenderSaved renders a stored wheel's layout as SVG, with the same
// presentation toggles the live render endpoint accepts.
func (s *Server) handleRenderSaved(w http.ResponseWriter, r *http.Request) {
	wh, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	svgOpts := []sink.SVGOption{}
	if queryBool(q.Get("outline")) {
		svgOpts = append(svgOpts, sink.WithOutline())
	}
	if queryBool(q.Get("legend")) {
		svgOpts = append(svgOpts, sink.WithSeasonLegend())
	}
	if queryBool(q.Get("popups")) {
		svgOpts = append(svgOpts, sink.WithPopups())
	}
	if title := q.Get("title"); title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}

	w.Header().Set("Content-Type", contentTypes["svg"])
	_, _ = w.Write(sink.RenderSVG(wh.Layout, svgOpts...))
}

func (s *Server) handleDeleteWheel(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// optionsFromQuery builds pipeline options from render query parameters.
// Unparseable numbers are invalid input; the pipeline's own validation
// covers semantic errors.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		CornerUI: pipeline.DefaultCornerUI,
		Style:    q.Get("style"),
		FeedURL:  q.Get("feed"),
		Title:    q.Get("title"),
		Refresh:  queryBool(q.Get("refresh")),
		Outline:  queryBool(q.Get("outline")),
		Legend:   queryBool(q.Get("legend")),
		Popups:   queryBool(q.Get("popups")),
	}

	intFields := map[string]*int{
		"year":  &opts.Year,
		"weeks": &opts.Weeks,
	}
	for name, dst := range intFields {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not an integer", name, v)
			}
			*dst = n
		}
	}

	floatFields := map[string]*float64{
		"width":  &opts.Width,
		"height": &opts.Height,
		"corner": &opts.CornerUI,
	}
	for name, dst := range floatFields {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not a number", name, v)
			}
			*dst = f
		}
	}

	// An absent start parameter keeps the default; 0 is a valid angle.
	if v := q.Get("start"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "parameter %q: %q is not a number", "start", v)
		}
		opts.StartAngle = &f
	}

	switch q.Get("direction") {
	case "", "cw", "clockwise":
		opts.Direction = wheel.Clockwise
	case "ccw", "counterclockwise":
		opts.Direction = wheel.CounterClockwise
	default:
		return opts, errors.New(errors.ErrCodeInvalidInput, "parameter \"direction\": want cw or ccw")
	}

	if v := q.Get("seasons"); v != "" {
		opts.Seasons = strings.Split(v, ",")
		if len(opts.Seasons) != 4 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "parameter \"seasons\": want exactly 4 comma-separated labels")
		}
	}

	return opts, nil
}

func queryBool(v string) bool {
	return v == "1" || v == "true" || v == "yes"
}

// writeError maps structured error codes to HTTP statuses and writes a
// JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidYear,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidFeed:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeWheelNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
