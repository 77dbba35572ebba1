package http

import (
	"encoding/json"
	"net/http"

	"github.com/syutarojp/novel-forge/internal/core/domain"
	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

func (s *Server) handleListCodexEntries(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	entryType := domain.CodexEntryType(r.URL.Query().Get("type"))
	entries, err := s.codexService.ListEntries(r.Context(), authCtx.UserID, r.PathValue("id"), entryType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateCodexEntry(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req driving.CreateCodexEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.codexService.CreateEntry(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetCodexEntry(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	entry, err := s.codexService.GetEntry(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("entryId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleUpdateCodexEntry(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req driving.UpdateCodexEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.codexService.UpdateEntry(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("entryId"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteCodexEntry(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	if err := s.codexService.DeleteEntry(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("entryId")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListCodexRelations(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	relations, err := s.codexService.ListRelations(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("entryId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, relations)
}

func (s *Server) handleCreateCodexRelation(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req driving.CreateCodexRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	relation, err := s.codexService.CreateRelation(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, relation)
}

func (s *Server) handleDeleteCodexRelation(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	if err := s.codexService.DeleteRelation(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("relationId")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
