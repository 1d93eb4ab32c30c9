// Package session guarda um board por navegador, identificado por cookie.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/lista-empresas/internal/board"
)

const CookieName = "board_session"

// Factory cria o board de uma sessão nova (liga notifier, publisher, etc).
type Factory func(id string) *board.Board

type entry struct {
	board    *board.Board
	lastSeen time.Time
}

type Store struct {
	mu    sync.Mutex
	items map[string]*entry

	ttl      time.Duration
	newBoard Factory
	now      func() time.Time
	log      *slog.Logger
}

func NewStore(ttl time.Duration, f Factory, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		items:    make(map[string]*entry),
		ttl:      ttl,
		newBoard: f,
		now:      time.Now,
		log:      log.With("cmp", "session"),
	}
}

// Get devolve o board existente e renova o último acesso.
func (s *Store) Get(id string) (*board.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.board, true
}

func (s *Store) GetOrCreate(id string) (b *board.Board, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.items[id]; ok {
		e.lastSeen = s.now()
		return e.board, false
	}
	b = s.newBoard(id)
	s.items[id] = &entry{board: b, lastSeen: s.now()}
	s.log.Debug("session_created", "session", id, "total", len(s.items))
	return b, true
}

// Resolve lê (ou emite) o cookie e devolve o board da sessão.
func (s *Store) Resolve(w http.ResponseWriter, r *http.Request) (id string, b *board.Board, created bool) {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   r.TLS != nil,
		})
	}
	b, created = s.GetOrCreate(id)
	return id, b, created
}

// Sweep remove sessões paradas há mais que o TTL.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*board.Board
	for id, e := range s.items {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.board)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()

	for _, b := range expired {
		b.Close()
	}
	if len(expired) > 0 {
		s.log.Info("sessions_evicted", "count", len(expired))
	}
	return len(expired)
}

// Run varre periodicamente até o ctx ser cancelado.
func (s *Store) Run(ctx context.Context) error {
	every := s.ttl / 2
	if every < time.Second {
		every = time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
