package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer lê a fila de "publicado" e entrega cada mensagem ao handler.
type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
	log        *slog.Logger
}

func NewConsumer(uri, queue string, prefetch int, log *slog.Logger) (*Consumer, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, ch, err := dial(uri, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = closeAll(ch, conn)
		return nil, fmt.Errorf("rabbit qos: %w", err)
	}
	deliveries, err := ch.Consume(
		queue,
		"board-web",
		true, false, false, false, nil,
	)
	if err != nil {
		_ = closeAll(ch, conn)
		return nil, fmt.Errorf("rabbit consume %q: %w", queue, err)
	}
	log = log.With("cmp", "broker.consumer")
	log.Info("rabbit_consumer_started", "queue", queue, "prefetch", prefetch)
	return &Consumer{conn: conn, ch: ch, deliveries: deliveries, log: log}, nil
}

var ErrDeliveriesClosed = errors.New("rabbit deliveries channel closed")

// Run bloqueia até o ctx acabar ou o canal de entregas fechar.
func (c *Consumer) Run(ctx context.Context, handle func(PostedMessage)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				c.log.Warn("deliveries_channel_closed")
				return ErrDeliveriesClosed
			}
			msg, err := DecodePosted(d.Body)
			if err != nil {
				c.log.Warn("posted_decode_error", "err", err)
				continue
			}
			handle(msg)
		}
	}
}

func DecodePosted(body []byte) (PostedMessage, error) {
	var msg PostedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, err
	}
	if msg.Company.Name == "" {
		return msg, errors.New("posted message without company name")
	}
	return msg, nil
}

func (c *Consumer) Close() error {
	return closeAll(c.ch, c.conn)
}
