package queue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-list/internal/logging"
)

// ActivityLogName is the file the consumer appends to inside its directory.
const ActivityLogName = "activity.log"

// StartActivityConsumer connects to the broker, declares the activity queue
// (durable) and appends one line per event to dir/activity.log.  It keeps
// reconnecting with backoff until ctx is cancelled, then returns ctx.Err().
// Messages that cannot be handled are rejected without requeue.
func StartActivityConsumer(ctx context.Context, url, dir string) error {
	log := logging.Logger().With().Str("component", "activity-consumer").Logger()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("failed to dial broker")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, dir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, dir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logging.Logger().Warn().Err(err).Msg("set QoS failed")
	}
	if _, err := ch.QueueDeclare(ActivityQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, ActivityQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(dir, d.Body); err != nil {
			logging.Logger().Error().Err(err).Msg("handle activity message failed")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event and appends its log line to dir/activity.log.
func HandleMessage(dir string, body []byte) error {
	var ev ActivityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, ActivityLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders an event as a single human-friendly line.
func FormatLine(ev ActivityEvent) string {
	rating, ranking := "-", "-"
	if ev.Rating != nil {
		rating = strconv.FormatFloat(*ev.Rating, 'f', -1, 64)
	}
	if ev.Ranking != nil {
		ranking = strconv.Itoa(*ev.Ranking)
	}
	return fmt.Sprintf("[%s] %s | entry_id=%d | account_id=%d | title=%q | rating=%s | ranking=%s\n",
		ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.EntryID, ev.AccountID, ev.Title, rating, ranking)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
