package models

import (
	"encoding/json"
	"time"
)

// Industry é o rótulo de setor usado pelo serviço remoto (valores em chinês).
type Industry string

const (
	IndustryAll         Industry = "全部" // sentinela do filtro, nunca vai para a API
	IndustryInternet    Industry = "互联网"
	IndustryFinance     Industry = "金融"
	IndustryLogistics   Industry = "物流"
	IndustryEducation   Industry = "教育"
	IndustryDesign      Industry = "设计"
	IndustryManufacture Industry = "制造"
	IndustryOther       Industry = "其他"
)

// Industries lista os setores na ordem exibida no formulário.
var Industries = []Industry{
	IndustryInternet,
	IndustryFinance,
	IndustryLogistics,
	IndustryEducation,
	IndustryDesign,
	IndustryManufacture,
	IndustryOther,
}

// FilterOptions = "全部" + setores
func FilterOptions() []Industry {
	out := make([]Industry, 0, len(Industries)+1)
	out = append(out, IndustryAll)
	return append(out, Industries...)
}

func (i Industry) Valid() bool {
	for _, v := range Industries {
		if v == i {
			return true
		}
	}
	return false
}

// ValidFilter aceita também o "全部".
func (i Industry) ValidFilter() bool {
	return i == IndustryAll || i.Valid()
}

// ListType é o discriminante entre 红榜 e 黑榜.
type ListType string

const (
	TypeRed   ListType = "red"   // recomendada
	TypeBlack ListType = "black" // evitar
)

func (t ListType) Valid() bool {
	return t == TypeRed || t == TypeBlack
}

// Company é o registro devolvido pelo serviço remoto.
// Campos desconhecidos são ignorados no decode; o id pode vir como "_id" ou "id".
type Company struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Industry  Industry  `json:"industry"`
	Type      ListType  `json:"type"`
	Rating    float64   `json:"rating"`
	Tags      []string  `json:"tags"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (c *Company) UnmarshalJSON(data []byte) error {
	type plain Company
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Company(aux.plain)
	if c.ID == "" {
		c.ID = aux.AltID
	}
	return nil
}

// CompanyInput é o payload do POST. Rating nil vira null (o serviço decide).
type CompanyInput struct {
	Name     string   `json:"name"`
	Industry Industry `json:"industry"`
	Type     ListType `json:"type"`
	Rating   *float64 `json:"rating"`
	Tags     []string `json:"tags"`
	Comment  string   `json:"comment"`
}
