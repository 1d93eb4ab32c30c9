package board

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Werneck0live/lista-empresas/internal/models"
	"github.com/Werneck0live/lista-empresas/internal/utils"
)

var (
	ErrInvalidForm     = errors.New("invalid form")
	ErrUnknownField    = errors.New("unknown form field")
	ErrUnknownIndustry = errors.New("unknown industry")
	ErrUnknownType     = errors.New("unknown list type")
)

// Form guarda os valores crus do modal, como o usuário digitou.
type Form struct {
	Name     string          `json:"name" validate:"notblank"`
	Industry models.Industry `json:"industry"`
	Type     models.ListType `json:"type"`
	Rating   string          `json:"rating"`
	Tags     string          `json:"tags"`
	Comment  string          `json:"comment" validate:"notblank"`
}

func DefaultForm() Form {
	return Form{
		Industry: models.IndustryInternet,
		Type:     models.TypeRed,
		Rating:   "5",
	}
}

// ValidationError lista os campos rejeitados (nome do campo -> motivo).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid form: %s", strings.Join(keys, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidForm }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Set altera um campo pelo nome usado no <form>.
func (f *Form) Set(field, value string) error {
	switch field {
	case "name":
		f.Name = value
	case "industry":
		ind := models.Industry(value)
		if !ind.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownIndustry, value)
		}
		f.Industry = ind
	case "type":
		lt := models.ListType(value)
		if !lt.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownType, value)
		}
		f.Type = lt
	case "rating":
		f.Rating = value
	case "tags":
		f.Tags = value
	case "comment":
		f.Comment = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Validate só exige nome e comentário; o resto é regra do serviço remoto.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "required"
	}
	return &ValidationError{Fields: fields}
}

// Input monta o payload do POST: tags separadas por "," ou "，", rating como número.
func (f Form) Input() models.CompanyInput {
	return models.CompanyInput{
		Name:     f.Name,
		Industry: f.Industry,
		Type:     f.Type,
		Rating:   utils.ParseRating(f.Rating),
		Tags:     utils.SplitTags(f.Tags),
		Comment:  f.Comment,
	}
}
