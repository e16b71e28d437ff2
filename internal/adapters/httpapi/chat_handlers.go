package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/cobra/internal/ports/primary"
)

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.chat.ListChannels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

func (s *Server) createChannel(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	channel, err := s.chat.CreateChannel(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, channel)
}

func (s *Server) getChannel(w http.ResponseWriter, r *http.Request) {
	channel, err := s.chat.GetChannel(r.Context(), chi.URLParam(r, "channelID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, channel)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := s.chat.ListMessages(r.Context(), chi.URLParam(r, "channelID"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var req primary.PostMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ChannelID = chi.URLParam(r, "channelID")

	message, err := s.chat.PostMessage(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// teamsWebhookPayload is the inbound shape posted by the Teams connector.
type teamsWebhookPayload struct {
	ID         string `json:"id"`
	From       string `json:"from"`
	Text       string `json:"text"`
	ChannelRef string `json:"channelRef"`
}

func (s *Server) teamsWebhook(w http.ResponseWriter, r *http.Request) {
	var payload teamsWebhookPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	message, err := s.chat.IngestInbound(r.Context(), primary.InboundMessage{
		Platform:    "teams",
		ExternalRef: payload.ChannelRef,
		ExternalID:  payload.ID,
		Sender:      payload.From,
		Body:        payload.Text,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if message == nil {
		// Duplicate delivery; acknowledge so the platform stops retrying.
		writeJSON(w, http.StatusOK, map[string]string{"status": "duplicate"})
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// groupMeWebhookPayload is the inbound shape posted by the GroupMe bot
// callback.
type groupMeWebhookPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	BotID string `json:"bot_id"`
}

func (s *Server) groupMeWebhook(w http.ResponseWriter, r *http.Request) {
	var payload groupMeWebhookPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	message, err := s.chat.IngestInbound(r.Context(), primary.InboundMessage{
		Platform:    "groupme",
		ExternalRef: payload.BotID,
		ExternalID:  payload.ID,
		Sender:      payload.Name,
		Body:        payload.Text,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if message == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "duplicate"})
		return
	}
	writeJSON(w, http.StatusCreated, message)
}
