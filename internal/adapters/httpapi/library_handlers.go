package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/cobra/internal/ports/primary"
)

func (s *Server) listLibraryEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, err := s.library.ListEntries(r.Context(), primary.LibraryFilters{
		Category: q.Get("category"),
		Limit:    limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) createLibraryEntry(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateLibraryEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := s.library.CreateEntry(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) getLibraryEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.library.GetEntry(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) updateLibraryEntry(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateLibraryEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.EntryID = chi.URLParam(r, "entryID")

	entry, err := s.library.UpdateEntry(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteLibraryEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.library.DeleteEntry(r.Context(), chi.URLParam(r, "entryID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
