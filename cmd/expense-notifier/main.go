package main

import (
	"context"
	"errors"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/cli"
	"expensetracker/internal/log"
	"expensetracker/internal/notify"
	"expensetracker/internal/worker"
)

func main() {
	cfg, logger := cli.MustSetup(log.ComponentNotify)

	if cfg.AMQPURL == "" {
		cli.Fatal(logger, "Cannot start notifier", errors.New("AMQP_URL is required"), log.ErrorTypeConfiguration)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	consumer := amqp.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, cfg.AMQPQueue, logger)
	defer consumer.Close()

	w := worker.NewNotificationWorker(0, logger)

	logger.Info("Starting expense notifier",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	if err := consumer.Run(ctx, w.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err.Error())
	}

	recent := w.Recent()
	for _, e := range recent {
		logger.Debug("Recent notification",
			log.FieldEvent, string(e.Kind),
			"message", e.Message,
			"at", e.At.Format(time.RFC3339))
	}

	logger.Info("Expense notifier stopped",
		"added", w.Count(notify.KindExpenseAdded),
		"updated", w.Count(notify.KindExpenseUpdated),
		"deleted", w.Count(notify.KindExpenseDeleted),
		"recent", len(recent))
}
