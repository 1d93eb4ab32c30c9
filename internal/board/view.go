package board

import "github.com/Werneck0live/lista-empresas/internal/models"

// View é um retrato imutável do estado, usado pelo template e por /api/board.
type View struct {
	Loading    bool              `json:"loading"`
	Filter     models.Industry   `json:"filter"`
	Filters    []models.Industry `json:"filters"`
	Industries []models.Industry `json:"industries"`
	Red        []models.Company  `json:"red"`
	Black      []models.Company  `json:"black"`
	Total      int               `json:"total"`
	ModalOpen  bool              `json:"modal_open"`
	Form       Form              `json:"form"`
	Errors     map[string]string `json:"errors,omitempty"`
	Toast      Toast             `json:"toast"`
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	red, black := Partition(b.companies)
	var errs map[string]string
	if len(b.errors) > 0 {
		errs = make(map[string]string, len(b.errors))
		for k, v := range b.errors {
			errs[k] = v
		}
	}
	return View{
		Loading:    b.loading,
		Filter:     b.filter,
		Filters:    models.FilterOptions(),
		Industries: append([]models.Industry(nil), models.Industries...),
		Red:        red,
		Black:      black,
		Total:      len(b.companies),
		ModalOpen:  b.modalOpen,
		Form:       b.form,
		Errors:     errs,
		Toast:      b.toast,
	}
}
