package rabbitmq

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/ports/in"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangeListener consumes backend change events and marks the open
// screens that show the changed resource as stale.
type ChangeListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.RefreshUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewChangeListener(useCase in.RefreshUseCase, cfg *config.Config, logger out.LoggerPort) (*ChangeListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return newChangeListener(useCase, cfg, logger, conn, channel), nil
}

func newChangeListener(useCase in.RefreshUseCase, cfg *config.Config, logger out.LoggerPort, conn *amqp.Connection, channel *amqp.Channel) *ChangeListener {
	return &ChangeListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (l *ChangeListener) Start(ctx context.Context) error {
	if l == nil {
		return nil
	}

	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("rabbitmq.deliveries.closed", out.LogFields{
						"queue": queue.Name,
					})
					return
				}
				l.handle(ctx, msg)
			}
		}
	}()

	l.logger.Info("rabbitmq.queue.started", out.LogFields{
		"queue":    queue.Name,
		"exchange": l.cfg.RabbitMQ.Exchange,
		"bind":     l.cfg.RabbitMQ.Bind,
	})
	return nil
}

// handle acks every well-formed event. A malformed routing key is nacked
// without requeue since redelivery cannot fix it.
func (l *ChangeListener) handle(ctx context.Context, msg amqp.Delivery) {
	key, err := ParseChangeRoutingKey(msg.RoutingKey)
	if err != nil {
		l.logger.Warn("rabbitmq.message.invalid", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		if err := msg.Nack(false, false); err != nil {
			l.logger.Error("rabbitmq.message.nack_failed", out.LogFields{
				"error": err.Error(),
			})
		}
		return
	}

	marked := l.useCase.MarkStale(ctx, key.Resource)
	l.logger.Debug("rabbitmq.message.processed", out.LogFields{
		"source":   key.Source,
		"resource": key.Resource,
		"action":   key.Action,
		"screens":  marked,
	})

	if err := msg.Ack(false); err != nil {
		l.logger.Error("rabbitmq.message.ack_failed", out.LogFields{
			"error": err.Error(),
		})
	}
}

func (l *ChangeListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
