package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompany_DecodeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"underscore id", `{"_id":"m1","name":"A"}`, "m1"},
		{"plain id", `{"id":"abc","name":"A"}`, "abc"},
		{"both prefer underscore", `{"_id":"m1","id":"abc","name":"A"}`, "m1"},
		{"none", `{"name":"A"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Company
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.want, c.ID)
			assert.Equal(t, "A", c.Name)
		})
	}
}

func TestCompany_DecodeFields(t *testing.T) {
	raw := `{"id":"x","name":"示例科技","industry":"互联网","type":"red","rating":4.5,
		"tags":["双休"],"comment":"好","createdAt":"2024-05-01T10:00:00Z","extra":true}`
	var c Company
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, IndustryInternet, c.Industry)
	assert.Equal(t, TypeRed, c.Type)
	assert.Equal(t, 4.5, c.Rating)
	assert.Equal(t, []string{"双休"}, c.Tags)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), c.CreatedAt.UTC())
}

func TestCompany_EncodeOmitsZeroCreatedAt(t *testing.T) {
	var c Company
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","name":"A"}`), &c))

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "createdAt")
	assert.Contains(t, string(b), `"_id":"x"`)
}
