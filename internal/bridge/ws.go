package bridge

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/examsys/exam-core/internal/auth"
	"github.com/examsys/exam-core/internal/config"
	"github.com/examsys/exam-core/internal/question"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// maxFrameBytes caps inbound frames; a full drawing batch stays well
	// under this.
	maxFrameBytes = 1 << 20
)

type WSHandler struct {
	sink      AnswerSink
	shapes    ShapeLoader
	questions question.QuestionRepository
	registry  *Registry
	upgrader  websocket.Upgrader
}

func NewWSHandler(sink AnswerSink, shapes ShapeLoader, questions question.QuestionRepository, registry *Registry) *WSHandler {
	return &WSHandler{
		sink:      sink,
		shapes:    shapes,
		questions: questions,
		registry:  registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the connection and runs the bridge for one session.
// The URL carries the session id; the JWT identifies the learner.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	learnerID := uuid.MustParse(claims.UserID)

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("Failed to upgrade drawing surface connection")
		return
	}

	host := NewHost(sessionID, learnerID, h.sink, h.shapes, h.questions)
	if old := h.registry.Register(host); old != nil {
		old.Close()
	}
	defer func() {
		h.registry.Unregister(host)
		host.Close()
		conn.Close()
	}()

	log = log.WithField("session_id", sessionID)
	log.Info("Drawing surface connected")

	go h.writeLoop(conn, host)

	// Ask the surface for an initial LoadQuestion via query parameter when
	// the client reconnects mid-question.
	if raw := r.URL.Query().Get("questionId"); raw != "" {
		if qid, err := uuid.Parse(raw); err == nil {
			if err := host.LoadQuestion(r.Context(), qid); err != nil {
				log.WithError(err).Warn("Failed to push initial question to surface")
			}
		}
	}

	conn.SetReadLimit(maxFrameBytes)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("Drawing surface connection dropped")
			}
			break
		}
		// Errors are already logged and reported back to the surface; the
		// connection survives bad frames.
		_ = host.HandleIncoming(r.Context(), raw)
	}

	log.Info("Drawing surface disconnected")
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, host *Host) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-host.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case env := <-host.Out():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
