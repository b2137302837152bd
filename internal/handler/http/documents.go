package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var pushRequest models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.DocumentService.Push(ctx, pushRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("error processing push batch")
		http.Error(w, "error processing push batch", statusFromError(err))
		return
	}

	deviceID, _ := utils.GetDeviceIDFromContext(ctx)
	log.Debug().
		Str("func", "*Handler.push").
		Str("device_id", deviceID).
		Int("documents", pushRequest.Length).
		Int("outcomes", response.Length).
		Msg("push batch processed")

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) writeAuthoritative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var writeRequest models.AuthoritativeWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&writeRequest); err != nil {
		log.Err(err).Str("func", "*Handler.writeAuthoritative").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.DocumentService.WriteAuthoritative(ctx, writeRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.writeAuthoritative").Msg("error applying authoritative write")
		http.Error(w, "error applying authoritative write", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var fetchRequest models.FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&fetchRequest); err != nil {
		log.Err(err).Str("func", "*Handler.fetch").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	documents, err := h.services.DocumentService.Fetch(ctx, fetchRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.fetch").Msg("error fetching documents")
		http.Error(w, "error fetching documents", statusFromError(err))
		return
	}

	response := models.FetchResponse{
		Documents: documents,
		Length:    len(documents),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) states(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	states, err := h.services.DocumentService.States(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.states").Msg("error getting document states")
		http.Error(w, "error getting document states", statusFromError(err))
		return
	}

	response := models.StatesResponse{
		States: states,
		Length: len(states),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
