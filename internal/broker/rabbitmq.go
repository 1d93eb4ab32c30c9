package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/lista-empresas/internal/models"
)

// PostedMessage vai na fila a cada registro publicado com sucesso.
// Origin é a sessão que publicou; ela já viu o próprio toast e não recebe o aviso.
type PostedMessage struct {
	Company  models.Company `json:"company"`
	Origin   string         `json:"origin,omitempty"`
	PostedAt time.Time      `json:"posted_at"`
}

func dial(uri, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbit dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbit channel: %w", err)
	}

	// Garante que a fila exista (durável)
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbit queue declare %q: %w", queue, err)
	}
	return conn, ch, nil
}

func closeAll(ch *amqp.Channel, conn *amqp.Connection) error {
	var errCh, errConn error
	if ch != nil {
		errCh = ch.Close()
	}
	if conn != nil {
		errConn = conn.Close()
	}
	return errors.Join(errCh, errConn)
}

type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(uri, queue string) (*Publisher, error) {
	conn, ch, err := dial(uri, queue)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) Publish(ctx context.Context, body []byte, headers amqp.Table) error {
	if ctx == nil {
		c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ctx = c
	}
	return p.ch.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key = nome da fila
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers:      headers,
		},
	)
}

// PublishPosted publica sem sessão de origem (todas as páginas recebem).
func (p *Publisher) PublishPosted(ctx context.Context, c models.Company) error {
	return p.PublishPostedFrom(ctx, "", c)
}

func (p *Publisher) PublishPostedFrom(ctx context.Context, origin string, c models.Company) error {
	body, err := encodePosted(origin, c)
	if err != nil {
		return err
	}
	return p.Publish(ctx, body, PostedHeaders(c))
}

// ForSession devolve o board.Publisher de uma sessão.
func (p *Publisher) ForSession(id string) *SessionPublisher {
	return &SessionPublisher{pub: p, session: id}
}

type SessionPublisher struct {
	pub     *Publisher
	session string
}

func (s *SessionPublisher) PublishPosted(ctx context.Context, c models.Company) error {
	return s.pub.PublishPostedFrom(ctx, s.session, c)
}

func encodePosted(origin string, c models.Company) ([]byte, error) {
	body, err := json.Marshal(PostedMessage{Company: c, Origin: origin, PostedAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("encode posted: %w", err)
	}
	return body, nil
}

func PostedHeaders(c models.Company) amqp.Table {
	return amqp.Table{
		"action":   "posted",
		"industry": string(c.Industry),
		"type":     string(c.Type),
	}
}

func (p *Publisher) Close() error {
	return closeAll(p.ch, p.conn)
}
