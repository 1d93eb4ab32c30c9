package handlers

import (
	"net/http"

	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/internal/utils"
)

// readSubmit lê o formulário (HTML ou JSON) como nome-do-campo -> valor.
func readSubmit(r *http.Request) (map[string]string, error) {
	if utils.IsJSONBody(r) {
		var dto SubmitDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			return nil, err
		}
		return dto.values(), nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, f := range formFields {
		if vs, ok := r.PostForm[f]; ok && len(vs) > 0 {
			out[f] = vs[0]
		}
	}
	return out, nil
}

// applyForm copia os valores para o formulário do board; industry/type
// fora da lista do <select> são rejeitados.
func applyForm(b *board.Board, values map[string]string) error {
	for _, f := range formFields {
		v, ok := values[f]
		if !ok {
			continue
		}
		if err := b.SetField(f, v); err != nil {
			return err
		}
	}
	return nil
}
