package http

import (
	"encoding/json"
	"net/http"

	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

func (s *Server) handleListBinderItems(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	items, err := s.binderService.List(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateBinderItem(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req driving.CreateBinderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.binderService.Create(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetBinderItem(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	item, err := s.binderService.Get(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("itemId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateBinderItem(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req driving.UpdateBinderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.binderService.Update(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("itemId"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleMoveBinderItem(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	var req driving.MoveBinderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.binderService.Move(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("itemId"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteBinderItem(w http.ResponseWriter, r *http.Request) {
	authCtx := requireAuth(w, r)
	if authCtx == nil {
		return
	}

	if err := s.binderService.Delete(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("itemId")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
