package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/choropleth"
	"github.com/sells-group/wavemap/internal/fips"
)

const (
	contentJSON    = "application/json"
	contentGeoJSON = "application/geo+json"
)

type healthResponse struct {
	Status   string `json:"status"`
	Dataset  string `json:"dataset"`
	Records  int    `json:"records"`
	Features int    `json:"features"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Dataset:  s.ds.ID.String(),
		Records:  len(s.ds.Records),
		Features: len(s.ds.Features),
	})
}

// handleCounties serves the joined FeatureCollection, optionally limited to
// one state. Encoded collections are cached per state.
func (s *Server) handleCounties(w http.ResponseWriter, r *http.Request) {
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state != "" {
		state = fips.NormalizeState(state)
		if !fips.ValidState(state) {
			s.writeError(w, http.StatusBadRequest, "state must be a 2-digit FIPS code")
			return
		}
	}

	key := "counties:" + state
	if cached, ok := s.cache.Get(key); ok {
		w.Header().Set("Content-Type", contentGeoJSON)
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(cached.([]byte))
		return
	}

	fc := s.ds.Render(choropleth.RenderOptions{State: state})
	body, err := json.Marshal(fc)
	if err != nil {
		s.log.Error("encode counties", zap.String("state", state), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "encode counties failed")
		return
	}

	s.cache.SetDefault(key, body)
	w.Header().Set("Content-Type", contentGeoJSON)
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(body)
}

// handleLookup answers with the matched record, or 204 when the input is
// blank or matches nothing.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ds.Classifier.Resolve(r.URL.Query().Get("fips"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	opts := choropleth.AutocompleteOptions{Query: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = limit
	}

	s.writeJSON(w, http.StatusOK, s.ds.Autocomplete(opts))
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ds.Classifier.Scale().Legend())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
