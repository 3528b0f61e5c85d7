package v1handler

import (
	"errors"
	"net/http"
	"pen/internal/assistant"
	"pen/pkg/logger"
	"pen/pkg/serrors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	chatReadLimit    = 4096
	chatWriteTimeout = 10 * time.Second
	// chatIdleTimeout closes chats without a question for that long.
	chatIdleTimeout = 5 * time.Minute
)

type AssistantIntroResponse struct {
	Greeting    assistant.Message `json:"greeting"`
	Suggestions []string          `json:"suggestions"`
}

// AssistantIntro returns what an empty chat shows.
func (h *Handler) AssistantIntro(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, AssistantIntroResponse{
		Greeting:    h.deps.Assistant.Greeting(),
		Suggestions: h.deps.Assistant.Suggestions(),
	})
}

type QuestionRequest struct {
	Question string `json:"question"`
}

// AssistantMessage answers one question.
func (h *Handler) AssistantMessage(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.WriteError(w, r, err)

		return
	}

	msg, err := h.deps.Assistant.Reply(r.Context(), req.Question)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, msg)
}

// ChatFrame is written on the assistant websocket: either a message or an
// error for the last question.
type ChatFrame struct {
	Message *assistant.Message `json:"message,omitempty"`
	Error   *ErrorBody         `json:"error,omitempty"`
}

// AssistantChat upgrades to a websocket, sends the greeting, then answers
// every {"question": "..."} frame in order until the client goes away.
func (h *Handler) AssistantChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already replied
		logger.Debug(ctx, "websocket upgrade failed", zap.Error(err))

		return
	}
	defer conn.Close()
	conn.SetReadLimit(chatReadLimit)

	greeting := h.deps.Assistant.Greeting()
	if err := writeFrame(conn, ChatFrame{Message: &greeting}); err != nil {
		return
	}

	for {
		// replaces the server read deadline inherited from the upgrade request
		if err := conn.SetReadDeadline(time.Now().Add(chatIdleTimeout)); err != nil {
			return
		}

		var req QuestionRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug(ctx, "assistant chat closed", zap.Error(err))
			}

			return
		}

		msg, err := h.deps.Assistant.Reply(ctx, req.Question)
		if err != nil {
			if errors.Is(err, serrors.ErrTimeout) {
				return
			}
			res := h.NewError(ctx, err)
			if err := writeFrame(conn, ChatFrame{Error: &res.Response}); err != nil {
				return
			}

			continue
		}

		if err := writeFrame(conn, ChatFrame{Message: &msg}); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, frame ChatFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(chatWriteTimeout)); err != nil {
		return err //nolint: wrapcheck
	}

	return conn.WriteJSON(frame) //nolint: wrapcheck
}
