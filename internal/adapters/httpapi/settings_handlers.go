package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/cobra/internal/ports/primary"
)

func (s *Server) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.ListSettings(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) upsertSetting(w http.ResponseWriter, r *http.Request) {
	var req primary.UpsertSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	setting, err := s.settings.UpsertSetting(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (s *Server) getSetting(w http.ResponseWriter, r *http.Request) {
	reveal := r.URL.Query().Get("reveal") == "true"

	setting, err := s.settings.GetSetting(r.Context(), chi.URLParam(r, "key"), reveal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (s *Server) integrationStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.settings.IntegrationStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}
