package handlers

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/internal/models"
	"github.com/Werneck0live/lista-empresas/internal/session"
	"github.com/Werneck0live/lista-empresas/internal/utils"
	"github.com/Werneck0live/lista-empresas/internal/view"
	"github.com/Werneck0live/lista-empresas/internal/ws"
	"github.com/Werneck0live/lista-empresas/web"
)

type BoardHandler struct {
	Sessions *session.Store
	Hub      *ws.Hub
	Views    *view.Engine
	Log      *slog.Logger
}

func NewBoardHandler(sessions *session.Store, hub *ws.Hub, views *view.Engine, log *slog.Logger) *BoardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BoardHandler{Sessions: sessions, Hub: hub, Views: views, Log: log.With("cmp", "handlers")}
}

// Router monta as rotas; submitPerMinute limita POST /companies por IP.
func (h *BoardHandler) Router(submitPerMinute int) http.Handler {
	r := chi.NewRouter()
	r.Use(LogRequests(h.Log))

	r.Get("/healthz", h.Health)
	r.Get("/", h.Page)
	r.Get("/api/board", h.State)
	r.Post("/filter", h.Filter)
	r.Post("/modal", h.Modal)
	r.With(httprate.Limit(submitPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
		Post("/companies", h.Submit)
	r.Get("/ws", h.WS)

	static, err := fs.Sub(web.Static, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}
	return r
}

func (h *BoardHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Page renderiza a tela na hora; o primeiro acesso da sessão (ou ?reload)
// dispara o fetch em segundo plano e a página sai com "加载中...".
func (h *BoardHandler) Page(w http.ResponseWriter, r *http.Request) {
	id, b, _ := h.Sessions.Resolve(w, r)
	h.startLoad(r, id, b, r.URL.Query().Has("reload"))
	if err := h.Views.Render(w, "board.html", view.NewPageData(b.View())); err != nil {
		h.Log.Error("render_board", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *BoardHandler) State(w http.ResponseWriter, r *http.Request) {
	id, b, _ := h.Sessions.Resolve(w, r)
	h.startLoad(r, id, b, false)
	utils.WriteJSON(w, http.StatusOK, b.View())
}

// startLoad: o fetch sobrevive ao fim do request; ao terminar a página é
// avisada pelo websocket ("loaded"). Falha já vira toast no board.
func (h *BoardHandler) startLoad(r *http.Request, id string, b *board.Board, force bool) {
	if !force && b.Loaded() {
		return
	}
	b.StartLoad(context.WithoutCancel(r.Context()), force, func(error) {
		h.Hub.SendEvent(id, ws.LoadedEvent())
	})
}

func (h *BoardHandler) Filter(w http.ResponseWriter, r *http.Request) {
	_, b, _ := h.Sessions.Resolve(w, r)

	var industry string
	if utils.IsJSONBody(r) {
		var dto FilterDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		industry = dto.Industry
	} else {
		if err := r.ParseForm(); err != nil {
			utils.BadRequest(w, err.Error())
			return
		}
		industry = r.PostForm.Get("industry")
	}

	err := b.SetFilter(r.Context(), models.Industry(industry))
	if errors.Is(err, board.ErrUnknownIndustry) {
		utils.BadRequest(w, err.Error())
		return
	}
	// falha de rede: toast já foi mostrado, segue o fluxo normal
	h.respond(w, r, b, http.StatusOK)
}

func (h *BoardHandler) Modal(w http.ResponseWriter, r *http.Request) {
	_, b, _ := h.Sessions.Resolve(w, r)
	b.ToggleModal()
	h.respond(w, r, b, http.StatusOK)
}

func (h *BoardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	_, b, _ := h.Sessions.Resolve(w, r)

	values, err := readSubmit(r)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if err := applyForm(b, values); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	err = b.Submit(r.Context())
	var verr *board.ValidationError
	switch {
	case err == nil:
		h.respond(w, r, b, http.StatusCreated)
	case errors.As(err, &verr):
		if utils.WantsJSON(r) {
			utils.Invalid(w, verr.Fields)
			return
		}
		h.redirect(w, r)
	default:
		if utils.WantsJSON(r) {
			utils.WriteJSON(w, http.StatusBadGateway, map[string]string{"error": board.MsgPostFailed})
			return
		}
		h.redirect(w, r)
	}
}

func (h *BoardHandler) WS(w http.ResponseWriter, r *http.Request) {
	id, _, _ := h.Sessions.Resolve(w, r)
	ws.Serve(h.Hub, w, r, id, h.Log)
}

// respond: fetch/JSON recebe o estado; form HTML volta para a página (PRG).
func (h *BoardHandler) respond(w http.ResponseWriter, r *http.Request, b *board.Board, code int) {
	if utils.WantsJSON(r) {
		utils.WriteJSON(w, code, b.View())
		return
	}
	h.redirect(w, r)
}

func (h *BoardHandler) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
