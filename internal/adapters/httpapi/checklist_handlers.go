package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/cobra/internal/ports/primary"
)

func (s *Server) listChecklists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	checklists, err := s.checklists.ListChecklists(r.Context(), primary.ChecklistFilters{
		TemplateID:      q.Get("templateId"),
		EventRef:        q.Get("eventRef"),
		IncludeArchived: q.Get("includeArchived") == "true",
		ShowAll:         q.Get("showAll") == "true",
		Limit:           limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklists)
}

func (s *Server) instantiateChecklist(w http.ResponseWriter, r *http.Request) {
	var req primary.InstantiateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.checklists.Instantiate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) getChecklist(w http.ResponseWriter, r *http.Request) {
	result, err := s.checklists.GetChecklist(r.Context(), chi.URLParam(r, "checklistID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) archiveChecklist(w http.ResponseWriter, r *http.Request) {
	if err := s.checklists.ArchiveChecklist(r.Context(), chi.URLParam(r, "checklistID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) restoreChecklist(w http.ResponseWriter, r *http.Request) {
	if err := s.checklists.RestoreChecklist(r.Context(), chi.URLParam(r, "checklistID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) cloneChecklist(w http.ResponseWriter, r *http.Request) {
	var req primary.CloneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ChecklistID = chi.URLParam(r, "checklistID")

	result, err := s.checklists.CloneChecklist(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) updateChecklistPositions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Positions []string `json:"positions"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := s.checklists.UpdateAssignedPositions(r.Context(), chi.URLParam(r, "checklistID"), req.Positions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) updateItemCompletion(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateCompletionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ChecklistID = chi.URLParam(r, "checklistID")
	req.ItemID = chi.URLParam(r, "itemID")

	item, err := s.checklists.UpdateCompletion(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) updateItemStatus(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ChecklistID = chi.URLParam(r, "checklistID")
	req.ItemID = chi.URLParam(r, "itemID")

	item, err := s.checklists.UpdateStatus(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) updateItemNotes(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ChecklistID = chi.URLParam(r, "checklistID")
	req.ItemID = chi.URLParam(r, "itemID")

	item, err := s.checklists.UpdateNotes(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
