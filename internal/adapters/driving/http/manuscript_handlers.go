package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/syutarojp/novel-forge/internal/core/domain"
)

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	content, err := s.manuscriptService.GetContent(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req struct {
		Content *domain.Document `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := s.manuscriptService.UpdateContent(r.Context(), authCtx.UserID, r.PathValue("id"), req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	outline, err := s.manuscriptService.Outline(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if outline == nil {
		outline = []*domain.Section{}
	}
	writeJSON(w, http.StatusOK, outline)
}

func (s *Server) handleImportMarkdown(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req struct {
		Markdown string `json:"markdown"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := s.manuscriptService.ImportMarkdown(r.Context(), authCtx.UserID, r.PathValue("id"), req.Markdown)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

// Section operations. Operations that resolve to a no-op return the
// unchanged document with 200.

// pathOrdinal parses the {ordinal} path segment
func pathOrdinal(w http.ResponseWriter, r *http.Request) (int, bool) {
	ordinal, err := strconv.Atoi(r.PathValue("ordinal"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid section ordinal")
		return 0, false
	}
	return ordinal, true
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}
	ordinal, ok := pathOrdinal(w, r)
	if !ok {
		return
	}

	var req struct {
		Direction domain.MoveDirection `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Direction != domain.MoveUp && req.Direction != domain.MoveDown {
		writeError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}

	content, err := s.manuscriptService.MoveSection(r.Context(), authCtx.UserID, r.PathValue("id"), ordinal, req.Direction)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleSwapSections(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := s.manuscriptService.SwapSections(r.Context(), authCtx.UserID, r.PathValue("id"), req.A, req.B)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleChangeSectionLevel(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}
	ordinal, ok := pathOrdinal(w, r)
	if !ok {
		return
	}

	var req struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := s.manuscriptService.ChangeSectionLevel(r.Context(), authCtx.UserID, r.PathValue("id"), ordinal, req.Level)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleTrashSection(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}
	ordinal, ok := pathOrdinal(w, r)
	if !ok {
		return
	}

	content, err := s.manuscriptService.TrashSection(r.Context(), authCtx.UserID, r.PathValue("id"), ordinal)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

// Trash endpoints

func (s *Server) handleListTrash(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	entries, err := s.manuscriptService.ListTrash(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if entries == nil {
		entries = []*domain.TrashedSection{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRestoreSection(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	content, err := s.manuscriptService.RestoreSection(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("trashId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleDeleteTrashEntry(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	if err := s.manuscriptService.DeleteTrashEntry(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("trashId")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
