package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/internal/models"
)

//go:embed seeds/companies.json
var companiesJSON []byte

type seedItem struct {
	Name     string  `json:"name"`
	Industry string  `json:"industry"`
	Type     string  `json:"type"`
	Rating   float64 `json:"rating"`
	Tags     string  `json:"tags"`
	Comment  string  `json:"comment"`
}

func (s seedItem) form() (board.Form, error) {
	f := board.DefaultForm()
	fields := []struct{ name, value string }{
		{"name", s.Name},
		{"industry", s.Industry},
		{"type", s.Type},
		{"rating", strconv.FormatFloat(s.Rating, 'f', -1, 64)},
		{"tags", s.Tags},
		{"comment", s.Comment},
	}
	for _, fv := range fields {
		if err := f.Set(fv.name, fv.value); err != nil {
			return f, err
		}
	}
	return f, nil
}

// API é o pedaço do apiclient usado pelo seed.
type API interface {
	List(ctx context.Context, industry models.Industry) ([]models.Company, error)
	Create(ctx context.Context, in models.CompanyInput) (*models.Company, error)
}

// SeedCompanies publica os exemplos embutidos que ainda não existem (por nome).
// Idempotente: rodar de novo não duplica. Serve para API local/mock.
func SeedCompanies(ctx context.Context, api API, log *slog.Logger) (int, error) {
	var items []seedItem
	if err := json.Unmarshal(companiesJSON, &items); err != nil {
		return 0, err
	}

	existing, err := api.List(ctx, models.IndustryAll)
	if err != nil {
		return 0, fmt.Errorf("list existing: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, c := range existing {
		names[c.Name] = true
	}

	created := 0
	for _, s := range items {
		if names[s.Name] {
			log.Info("seed_company_exists", "name", s.Name)
			continue
		}

		// mesmas regras do formulário
		form, err := s.form()
		if err == nil {
			err = form.Validate()
		}
		if err != nil {
			log.Warn("seed_skip_invalid", "name", s.Name, "err", err)
			continue
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 5*time.Second)
		_, err = api.Create(ictx, form.Input())
		cancel()
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", s.Name, err)
		}
		names[s.Name] = true
		created++
		log.Info("seed_company_created", "name", s.Name)
	}

	log.Info("seed_companies_done", "count", len(items), "created", created)
	return created, nil
}
