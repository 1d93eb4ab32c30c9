// Package board mantém o estado da tela do 红黑榜 de uma sessão:
// lista, filtro, modal, formulário e toast.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Werneck0live/lista-empresas/internal/models"
)

// API é o contrato do serviço remoto (implementado por apiclient.Client).
type API interface {
	List(ctx context.Context, industry models.Industry) ([]models.Company, error)
	Create(ctx context.Context, in models.CompanyInput) (*models.Company, error)
}

// Publisher avisa outros espectadores que um registro foi publicado.
type Publisher interface {
	PublishPosted(ctx context.Context, c models.Company) error
}

type Board struct {
	api API
	pub Publisher
	ntf Notifier
	log *slog.Logger

	toastDelay time.Duration
	afterFunc  AfterFunc

	mu        sync.Mutex
	companies []models.Company
	loading   bool
	loaded    bool
	filter    models.Industry
	modalOpen bool
	form      Form
	errors    map[string]string
	toast     Toast

	fetchSeq   uint64 // último fetch disparado
	inflight   int    // fetches ainda sem resposta
	toastSeq   uint64
	toastTimer Timer
}

type Option func(*Board)

func WithNotifier(n Notifier) Option { return func(b *Board) { b.ntf = n } }
func WithPublisher(p Publisher) Option { return func(b *Board) { b.pub = p } }
func WithLogger(l *slog.Logger) Option { return func(b *Board) { b.log = l } }
func WithAfterFunc(f AfterFunc) Option { return func(b *Board) { b.afterFunc = f } }
func WithToastDelay(d time.Duration) Option { return func(b *Board) { b.toastDelay = d } }

func New(api API, opts ...Option) *Board {
	b := &Board{
		api:        api,
		log:        slog.Default(),
		toastDelay: DefaultToastTTL,
		afterFunc:  realAfterFunc,
		filter:     models.IndustryAll,
		form:       DefaultForm(),
		companies:  []models.Company{},
		loading:    true, // a tela abre já carregando
	}
	for _, o := range opts {
		o(b)
	}
	b.log = b.log.With("cmp", "board")
	return b
}

// Loaded indica se algum fetch já terminou (com sucesso ou não).
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Load busca a lista com o filtro atual. O resultado só é aplicado se
// nenhum fetch mais novo foi disparado nesse meio tempo.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	seq, industry := b.beginFetchLocked()
	b.mu.Unlock()

	return b.fetch(ctx, seq, industry)
}

// StartLoad marca loading na hora e busca em segundo plano, para a página
// já sair com "加载中...". Sem force não faz nada se a lista já carregou ou
// se outro fetch está em andamento. done roda depois do resultado aplicado.
func (b *Board) StartLoad(ctx context.Context, force bool, done func(error)) bool {
	b.mu.Lock()
	if !force && (b.loaded || b.inflight > 0) {
		b.mu.Unlock()
		return false
	}
	seq, industry := b.beginFetchLocked()
	b.mu.Unlock()

	go func() {
		err := b.fetch(ctx, seq, industry)
		if done != nil {
			done(err)
		}
	}()
	return true
}

func (b *Board) beginFetchLocked() (uint64, models.Industry) {
	b.fetchSeq++
	b.inflight++
	b.loading = true
	return b.fetchSeq, b.filter
}

func (b *Board) fetch(ctx context.Context, seq uint64, industry models.Industry) error {
	list, err := b.api.List(ctx, industry)

	b.mu.Lock()
	b.inflight--
	if seq != b.fetchSeq {
		b.mu.Unlock()
		b.log.Debug("fetch_superseded", "industry", industry, "seq", seq)
		return nil
	}
	b.loading = false
	b.loaded = true
	if err != nil {
		t := b.showToastLocked(MsgLoadFailed, false)
		b.mu.Unlock()
		b.log.Error("fetch_companies_failed", "industry", industry, "err", err)
		b.notify(t)
		return fmt.Errorf("list companies: %w", err)
	}
	b.companies = list
	b.mu.Unlock()

	b.log.Info("fetch_companies_done", "industry", industry, "count", len(list))
	return nil
}

// SetFilter troca o setor e recarrega. Mesmo valor não dispara novo fetch.
func (b *Board) SetFilter(ctx context.Context, industry models.Industry) error {
	if !industry.ValidFilter() {
		return fmt.Errorf("%w: %q", ErrUnknownIndustry, industry)
	}
	b.mu.Lock()
	if b.filter == industry && b.loaded {
		b.mu.Unlock()
		return nil
	}
	b.filter = industry
	b.mu.Unlock()

	return b.Load(ctx)
}

// ToggleModal abre/fecha o modal; ao abrir o formulário volta ao padrão.
func (b *Board) ToggleModal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.modalOpen {
		b.form = DefaultForm()
		b.errors = nil
	}
	b.modalOpen = !b.modalOpen
}

func (b *Board) SetField(field, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form.Set(field, value)
}

// Submit valida (nome e comentário obrigatórios) e cria o registro.
// Sucesso: registro no topo da lista, modal fechado, toast verde.
// Falha de rede/status: toast vermelho, lista e formulário ficam como estão.
func (b *Board) Submit(ctx context.Context) error {
	b.mu.Lock()
	form := b.form
	if err := form.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			b.errors = verr.Fields
		}
		b.mu.Unlock()
		return err
	}
	b.errors = nil
	b.mu.Unlock()

	created, err := b.api.Create(ctx, form.Input())

	b.mu.Lock()
	if err != nil {
		t := b.showToastLocked(MsgPostFailed, false)
		b.mu.Unlock()
		b.log.Error("create_company_failed", "name", form.Name, "err", err)
		b.notify(t)
		return fmt.Errorf("create company: %w", err)
	}
	b.companies = append([]models.Company{*created}, b.companies...)
	b.modalOpen = false
	t := b.showToastLocked(MsgPostOK, true)
	b.mu.Unlock()

	b.log.Info("company_posted", "id", created.ID, "name", created.Name, "type", created.Type)
	b.notify(t)
	b.publishPosted(*created)
	return nil
}

func (b *Board) publishPosted(c models.Company) {
	if b.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := b.pub.PublishPosted(ctx, c); err != nil {
		b.log.Warn("publish_posted_failed", "id", c.ID, "err", err)
	}
}

// RedList devolve os registros 红榜 (recomendados).
func (b *Board) RedList() []models.Company {
	b.mu.Lock()
	defer b.mu.Unlock()
	red, _ := Partition(b.companies)
	return red
}

// BlackList devolve os registros 黑榜 (evitar).
func (b *Board) BlackList() []models.Company {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, black := Partition(b.companies)
	return black
}

// Partition separa pelo campo type. Tipos desconhecidos não entram em nenhuma.
func Partition(list []models.Company) (red, black []models.Company) {
	red, black = []models.Company{}, []models.Company{}
	for _, c := range list {
		switch c.Type {
		case models.TypeRed:
			red = append(red, c)
		case models.TypeBlack:
			black = append(black, c)
		}
	}
	return red, black
}

// ShowToast mostra uma mensagem avulsa (mesmo auto-dismiss das demais).
func (b *Board) ShowToast(msg string, success bool) {
	b.mu.Lock()
	t := b.showToastLocked(msg, success)
	b.mu.Unlock()
	b.notify(t)
}

// showToastLocked exige b.mu. Cada toast novo reinicia o prazo;
// o timer de um toast antigo não esconde o atual.
func (b *Board) showToastLocked(msg string, success bool) Toast {
	b.toastSeq++
	seq := b.toastSeq
	b.toast = Toast{Show: true, Message: msg, Success: success}
	if b.toastTimer != nil {
		b.toastTimer.Stop()
	}
	b.toastTimer = b.afterFunc(b.toastDelay, func() { b.hideToast(seq) })
	return b.toast
}

func (b *Board) hideToast(seq uint64) {
	b.mu.Lock()
	if seq != b.toastSeq || !b.toast.Show {
		b.mu.Unlock()
		return
	}
	b.toast.Show = false
	b.toastTimer = nil
	t := b.toast
	b.mu.Unlock()
	b.notify(t)
}

func (b *Board) notify(t Toast) {
	if b.ntf != nil {
		b.ntf.Toast(t)
	}
}

// Close para o timer pendente (sessão expirada).
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.toastTimer != nil {
		b.toastTimer.Stop()
		b.toastTimer = nil
	}
}
