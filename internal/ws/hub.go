package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/internal/models"
)

// Client é uma aba conectada; várias abas podem dividir a mesma sessão.
type Client struct {
	ID      string
	Session string
	Send    chan []byte
}

// sessionMsg: session preenchida = só essa sessão; except = todas menos essa.
type sessionMsg struct {
	session string
	except  string
	msg     []byte
}

// Event é o que o script da página recebe.
type Event struct {
	Kind    string          `json:"kind"` // toast | posted | loaded
	Show    bool            `json:"show,omitempty"`
	Message string          `json:"message,omitempty"`
	Success bool            `json:"success,omitempty"`
	Company *models.Company `json:"company,omitempty"`
}

func ToastEvent(t board.Toast) Event {
	return Event{Kind: "toast", Show: t.Show, Message: t.Message, Success: t.Success}
}

func PostedEvent(c models.Company) Event {
	return Event{Kind: "posted", Company: &c}
}

// LoadedEvent avisa a página que o fetch em segundo plano terminou.
func LoadedEvent() Event {
	return Event{Kind: "loaded"}
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	sendAll   chan sessionMsg // envio para todos (menos except)
	toSession chan sessionMsg // envio para as abas de uma sessão

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:   make(map[string]*Client),
		register:  make(chan *Client),
		unreg:     make(chan *Client),
		sendAll:   make(chan sessionMsg, 1024),
		toSession: make(chan sessionMsg, 1024),
		log:       log.With("cmp", "ws.hub"),
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "session", c.Session, "total", total)

		case c := <-h.unreg:
			h.mu.Lock()
			h.dropLocked(c)
			total := len(h.clients)
			h.mu.Unlock()
			if c != nil {
				h.log.Info("client_unregistered", "id", c.ID, "total", total)
			}

		case m := <-h.sendAll:
			h.mu.Lock()
			for _, c := range h.clients {
				if m.except != "" && c.Session == m.except {
					continue
				}
				h.deliverLocked(c, m.msg)
			}
			h.mu.Unlock()

		case m := <-h.toSession:
			h.mu.Lock()
			n := 0
			for _, c := range h.clients {
				if c.Session == m.session {
					h.deliverLocked(c, m.msg)
					n++
				}
			}
			h.mu.Unlock()
			if n == 0 {
				h.log.Debug("send_session_miss", "session", m.session)
			}

		case <-h.stop:
			h.mu.Lock()
			for _, c := range h.clients {
				h.dropLocked(c)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

// cliente lento -> remove para não travar o hub
func (h *Hub) deliverLocked(c *Client, msg []byte) {
	select {
	case c.Send <- msg:
	default:
		h.dropLocked(c)
		h.log.Warn("client_dropped_slow", "id", c.ID, "session", c.Session)
	}
}

func (h *Hub) dropLocked(c *Client) {
	if c == nil || c.ID == "" {
		return
	}
	if cur, ok := h.clients[c.ID]; ok && cur == c {
		delete(h.clients, c.ID)
		close(c.Send)
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Depois do Stop as chamadas abaixo viram no-op em vez de travar.

// Register devolve false quando o hub já parou (o cliente não foi aceito).
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stop:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stop:
	}
}

func (h *Hub) Broadcast(b []byte) {
	h.BroadcastExcept("", b)
}

// BroadcastExcept envia para todas as abas, menos as da sessão informada.
func (h *Hub) BroadcastExcept(session string, b []byte) {
	select {
	case h.sendAll <- sessionMsg{except: session, msg: b}:
	case <-h.stop:
	}
}

func (h *Hub) SendToSession(session string, b []byte) {
	select {
	case h.toSession <- sessionMsg{session: session, msg: b}:
	case <-h.stop:
	}
}

// BroadcastEvent / SendEvent serializam o Event antes de enfileirar.
func (h *Hub) BroadcastEvent(ev Event) {
	h.BroadcastEventExcept("", ev)
}

func (h *Hub) BroadcastEventExcept(session string, ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("event_marshal_error", "kind", ev.Kind, "err", err)
		return
	}
	h.BroadcastExcept(session, b)
}

func (h *Hub) SendEvent(session string, ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("event_marshal_error", "kind", ev.Kind, "err", err)
		return
	}
	h.SendToSession(session, b)
}

// Notifier liga o toast de um board às abas da sessão.
func (h *Hub) Notifier(session string) board.Notifier {
	return board.NotifierFunc(func(t board.Toast) {
		h.SendEvent(session, ToastEvent(t))
	})
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
