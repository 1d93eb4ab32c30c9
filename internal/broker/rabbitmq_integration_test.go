//go:build integration
// +build integration

package broker

/*
	Para rodar: go test -tags=integration -v ./internal/broker -run TestRabbitMQ_ -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Werneck0live/lista-empresas/internal/models"
)

func startRabbit(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "rabbitmq:3.13",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start rabbit: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5672/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

// Sobe RabbitMQ real, publica com o Publisher e recebe pelo Consumer
func TestRabbitMQ_PublishPostedAndConsume(t *testing.T) {
	t.Parallel()
	uri := startRabbit(t)
	queue := "board_posted_test"

	pub, err := NewPublisher(uri, queue)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	cons, err := NewConsumer(uri, queue, 10, discardLogger())
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	t.Cleanup(func() { _ = cons.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan PostedMessage, 1)
	go func() { _ = cons.Run(ctx, func(m PostedMessage) { got <- m }) }()

	company := models.Company{ID: "abc", Name: "ACME", Industry: models.IndustryDesign, Type: models.TypeRed}
	if err := pub.ForSession("sess-1").PublishPosted(ctx, company); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case m := <-got:
		if m.Company.ID != "abc" || m.Company.Name != "ACME" {
			t.Fatalf("message mismatch: %#v", m)
		}
		if m.Origin != "sess-1" {
			t.Fatalf("origin = %q", m.Origin)
		}
		if m.PostedAt.IsZero() {
			t.Fatal("posted_at not set")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout esperando mensagem")
	}
}
