// Package kafka runs the background consumer that turns committed order
// events into outbound notifications.
package kafka

import (
	"context"
	"crypto/tls"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/database"
	orderevents "github.com/orderhub/orderhub-backend/events/modules/orders"
)

// RunEventProcessor starts the order-event consumer loop in the background.
// It returns an error only when the initial broker check fails.
func RunEventProcessor(ctx context.Context, log *zap.Logger) error {
	brokersEnv := os.Getenv("KAFKA_BROKERS")
	var brokers []string
	if brokersEnv != "" {
		brokers = strings.Split(brokersEnv, ",")
	} else {
		brokers = []string{"localhost:9092"}
	}

	username := os.Getenv("KAFKA_API_KEY")
	password := os.Getenv("KAFKA_API_SECRET")

	var dialer *kafka.Dialer

	// SASL/TLS only when credentials are provided; plain dialer for local dev.
	if username != "" && password != "" {
		mechanism := plain.Mechanism{
			Username: username,
			Password: password,
		}
		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			SASLMechanism: mechanism,
			TLS:           &tls.Config{},
		}
	} else {
		dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
		}
	}

	topic := database.GetEnvDefault("KAFKA_ORDER_TOPIC", "order-events")

	var conn *kafka.Conn
	var err error
	for i := 1; i <= 3; i++ {
		log.Info("kafka connection attempt", zap.Int("attempt", i))
		conn, err = dialer.DialContext(ctx, "tcp", brokers[0])
		if err == nil {
			conn.Close()
			break
		}
		if i < 3 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "orderhub-backend-worker",
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	go func() {
		defer reader.Close()
		dispatcher := orderevents.LogDispatcher{Log: log}

		log.Info("order event processor started", zap.String("topic", topic))

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				if err := orderevents.HandleOrderEvent(ctx, msg.Value, dispatcher, log); err != nil {
					log.Warn("order event rejected", zap.Error(err))
				}
			}
		}
	}()

	return nil
}
