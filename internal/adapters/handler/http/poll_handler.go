package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/musetix/polls/internal/core/domain"
	"github.com/musetix/polls/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
	logger  *slog.Logger
}

func NewPollHandler(service ports.PollService, logger *slog.Logger) *PollHandler {
	return &PollHandler{
		service: service,
		logger:  logger,
	}
}

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Duration int      `json:"duration"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreatePollInput{
		Question:        req.Question,
		Options:         req.Options,
		DurationMinutes: req.Duration,
	}

	pollID, err := h.service.Create(r.Context(), input)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			respondError(w, http.StatusBadRequest, ve.Reason)
			return
		}

		h.logger.Error("failed to create poll", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create poll")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true, "pollId": pollID})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := h.service.GetPoll(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			respondError(w, http.StatusNotFound, "poll not found")
			return
		}

		h.logger.Error("failed to get poll", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get poll")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"poll": poll})
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	pollType := r.URL.Query().Get("type")
	if pollType == "" {
		pollType = "active"
	}

	var (
		polls []*domain.Poll
		err   error
	)
	switch pollType {
	case "active":
		polls, err = h.service.ListActive(r.Context())
	case "completed":
		polls, err = h.service.ListCompleted(r.Context())
	default:
		respondError(w, http.StatusBadRequest, "invalid poll type")
		return
	}

	if err != nil {
		h.logger.Error("failed to list polls", "type", pollType, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list polls")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"polls": polls})
}

type voteRequest struct {
	PollID string `json:"pollId"`
	Option string `json:"option"`
}

func (h *PollHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.VoteInput{
		PollID: req.PollID,
		Option: req.Option,
	}

	if err := h.service.Vote(r.Context(), input); err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			respondError(w, http.StatusBadRequest, ve.Reason)
		case errors.Is(err, domain.ErrInvalidOption):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrPollEnded):
			// Kept as a server error with the message text so existing
			// clients keep seeing the same responses.
			respondError(w, http.StatusInternalServerError, err.Error())
		default:
			h.logger.Error("failed to submit vote", "pollId", req.PollID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to submit vote")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
