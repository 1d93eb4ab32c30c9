package handlers

import "encoding/json"

// somente os campos do formulário; rating aceita número ou string numérica
type SubmitDTO struct {
	Name     string      `json:"name"`
	Industry string      `json:"industry,omitempty"`
	Type     string      `json:"type,omitempty"`
	Rating   json.Number `json:"rating,omitempty"`
	Tags     string      `json:"tags,omitempty"`
	Comment  string      `json:"comment"`
}

type FilterDTO struct {
	Industry string `json:"industry"`
}

// ordem de aplicação dos campos no board
var formFields = []string{"name", "industry", "type", "rating", "tags", "comment"}

func (d SubmitDTO) values() map[string]string {
	v := map[string]string{"name": d.Name, "comment": d.Comment}
	if d.Industry != "" {
		v["industry"] = d.Industry
	}
	if d.Type != "" {
		v["type"] = d.Type
	}
	if d.Rating != "" {
		v["rating"] = d.Rating.String()
	}
	if d.Tags != "" {
		v["tags"] = d.Tags
	}
	return v
}
