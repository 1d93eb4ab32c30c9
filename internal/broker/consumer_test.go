package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/lista-empresas/internal/models"
)

func TestDecodePosted(t *testing.T) {
	body, err := json.Marshal(PostedMessage{
		Company:  models.Company{Name: "ACME", Type: models.TypeBlack, Industry: models.IndustryOther},
		PostedAt: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	msg, err := DecodePosted(body)
	require.NoError(t, err)
	assert.Equal(t, "ACME", msg.Company.Name)
	assert.Equal(t, models.TypeBlack, msg.Company.Type)

	_, err = DecodePosted([]byte(`{"company":{}}`))
	assert.Error(t, err)
	_, err = DecodePosted([]byte(`oops`))
	assert.Error(t, err)
}

func TestEncodePosted_CarriesOrigin(t *testing.T) {
	body, err := encodePosted("sess-1", models.Company{ID: "abc", Name: "ACME", Type: models.TypeRed})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "createdAt")

	msg, err := DecodePosted(body)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", msg.Origin)
	assert.Equal(t, "abc", msg.Company.ID)
	assert.False(t, msg.PostedAt.IsZero())

	body, err = encodePosted("", models.Company{Name: "ACME"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "origin")
}

func TestPostedHeaders(t *testing.T) {
	h := PostedHeaders(models.Company{Industry: models.IndustryFinance, Type: models.TypeRed})
	assert.Equal(t, amqp.Table{"action": "posted", "industry": "金融", "type": "red"}, h)
}

// Consumer sem conexão: alimenta o canal direto
func TestConsumer_Run(t *testing.T) {
	ch := make(chan amqp.Delivery, 3)
	c := &Consumer{deliveries: ch, log: discardLogger()}

	ch <- amqp.Delivery{Body: []byte(`lixo`)}
	ch <- amqp.Delivery{Body: []byte(`{"company":{"name":"ACME","type":"red"}}`)}
	close(ch)

	var got []PostedMessage
	err := c.Run(context.Background(), func(m PostedMessage) { got = append(got, m) })
	assert.ErrorIs(t, err, ErrDeliveriesClosed)
	require.Len(t, got, 1)
	assert.Equal(t, "ACME", got[0].Company.Name)
}

func TestConsumer_RunStopsOnCancel(t *testing.T) {
	c := &Consumer{deliveries: make(chan amqp.Delivery), log: discardLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Run(ctx, func(PostedMessage) {}))
}
