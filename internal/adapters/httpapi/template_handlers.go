package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/cobra/internal/ports/primary"
)

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	templates, err := s.templates.ListTemplates(r.Context(), primary.TemplateFilters{
		Category:        q.Get("category"),
		Name:            q.Get("name"),
		ActiveOnly:      q.Get("activeOnly") == "true",
		IncludeArchived: q.Get("includeArchived") == "true",
		Limit:           limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	template, err := s.templates.CreateTemplate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := s.templates.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.TemplateID = chi.URLParam(r, "templateID")

	template, err := s.templates.UpdateTemplate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, template)
}

func (s *Server) archiveTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.ArchiveTemplate(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) restoreTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.RestoreTemplate(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) addTemplateItem(w http.ResponseWriter, r *http.Request) {
	var req primary.AddTemplateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.TemplateID = chi.URLParam(r, "templateID")

	item, err := s.templates.AddItem(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateTemplateItem(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateTemplateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.TemplateID = chi.URLParam(r, "templateID")
	req.ItemID = chi.URLParam(r, "itemID")

	item, err := s.templates.UpdateItem(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) removeTemplateItem(w http.ResponseWriter, r *http.Request) {
	err := s.templates.RemoveItem(r.Context(), chi.URLParam(r, "templateID"), chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) reorderTemplateItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemIDs []string `json:"itemIds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := s.templates.ReorderItems(r.Context(), chi.URLParam(r, "templateID"), req.ItemIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) insertLibraryItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LibraryItemID string `json:"libraryItemId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := s.templates.InsertLibraryItem(r.Context(), chi.URLParam(r, "templateID"), req.LibraryItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}
