// Package ws implements the live vitals feed: a websocket endpoint where a
// client requests a patient and an interval tag, and the server pushes
// fabricated vitals samples at the mapped cadence until the request is
// replaced or the connection drops. The samples are synthetic demo data and
// are not derived from stored observations.
package ws

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/icuchart/icuchart/internal/domain/vitals"
)

// Request is the one inbound message type: a subscription to a patient's
// synthetic feed at a given interval tag.
type Request struct {
	Type      string `json:"type"`
	PatientID int64  `json:"patientId"`
	Interval  string `json:"interval"`
}

// envelope is the outbound message wrapper.
type envelope struct {
	Type string                 `json:"type"`
	Data vitals.SyntheticSample `json:"data"`
}

// intervalFor maps a client interval tag to an emit cadence. The "1m" tag
// deliberately maps to two seconds, a fast demo cadence rather than a literal
// minute; unknown tags get the same treatment.
func intervalFor(tag string) time.Duration {
	switch tag {
	case "1h":
		return time.Hour
	case "24h":
		return 24 * time.Hour
	default:
		return 2 * time.Second
	}
}

// Conn abstracts a websocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// Feed handles HTTP-to-websocket upgrades for the vitals feed.
type Feed struct {
	logger zerolog.Logger
}

func NewFeed(logger zerolog.Logger) *Feed {
	return &Feed{logger: logger}
}

// RegisterRoutes registers the websocket endpoint.
func (f *Feed) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", f.HandleConnect)
}

// HandleConnect upgrades the connection, starts the write pump, and runs the
// read loop until the client disconnects.
func (f *Feed) HandleConnect(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	s := newSession(&gorillaConnAdapter{ws}, f.logger)
	f.logger.Info().Str("session_id", s.id).Msg("vitals feed connected")

	go s.writePump()
	go s.readPump()

	return nil
}

// session is the per-connection state: the outbound buffer and at most one
// running emitter. The emitter is owned by the connection's lifecycle; it is
// cancelled on replacement and on disconnect, never leaked.
type session struct {
	id     string
	conn   Conn
	send   chan []byte
	logger zerolog.Logger

	mu       sync.Mutex
	stopEmit chan struct{} // non-nil while an emitter runs
	emitDone chan struct{} // closed by the emitter goroutine on exit
}

func newSession(conn Conn, logger zerolog.Logger) *session {
	return &session{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan []byte, 64),
		logger: logger,
	}
}

// readPump consumes client requests until the connection errors, then tears
// down the emitter and the write pump.
func (s *session) readPump() {
	defer func() {
		s.stopEmitter()
		close(s.send)
		s.conn.Close()
		s.logger.Info().Str("session_id", s.id).Msg("vitals feed disconnected")
	}()

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			continue // Ignore malformed messages.
		}
		if req.Type != "requestVitals" {
			continue
		}

		s.startEmitter(req.PatientID, intervalFor(req.Interval))
	}
}

// writePump drains the send buffer onto the wire.
func (s *session) writePump() {
	for message := range s.send {
		if err := s.conn.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			return
		}
	}
}

// startEmitter replaces any running emitter with a new one at the given
// cadence. Replacement is synchronous: the old emitter has fully exited
// before the new one starts, so at most one emitter is live per session and
// no emitter can outlive the send channel. The wait is bounded because the
// emitter never blocks on a full send buffer.
func (s *session) startEmitter(patientID int64, interval time.Duration) {
	stop := make(chan struct{})
	done := make(chan struct{})

	s.mu.Lock()
	if s.stopEmit != nil {
		close(s.stopEmit)
		<-s.emitDone
	}
	s.stopEmit = stop
	s.emitDone = done
	s.mu.Unlock()

	gen := vitals.NewSampleGenerator(rand.NewSource(time.Now().UnixNano()))
	s.logger.Debug().
		Str("session_id", s.id).
		Int64("patient_id", patientID).
		Dur("interval", interval).
		Msg("starting vitals emitter")

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				data, err := json.Marshal(envelope{Type: "vitals", Data: gen.Next()})
				if err != nil {
					s.logger.Error().Err(err).Msg("marshal vitals sample")
					continue
				}
				select {
				case s.send <- data:
				default:
					// Client buffer full; skip to avoid blocking the timer.
				}
			}
		}
	}()
}

// stopEmitter cancels the running emitter, if any, and waits for it to exit.
func (s *session) stopEmitter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopEmit != nil {
		close(s.stopEmit)
		<-s.emitDone
		s.stopEmit = nil
		s.emitDone = nil
	}
}

// gorillaConnAdapter wraps a gorilla/websocket.Conn to satisfy Conn.
type gorillaConnAdapter struct {
	conn *gorillawebsocket.Conn
}

func (a *gorillaConnAdapter) ReadMessage() (int, []byte, error) {
	return a.conn.ReadMessage()
}

func (a *gorillaConnAdapter) WriteMessage(messageType int, data []byte) error {
	return a.conn.WriteMessage(messageType, data)
}

func (a *gorillaConnAdapter) Close() error {
	return a.conn.Close()
}
