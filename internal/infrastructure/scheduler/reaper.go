package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"foodswap/internal/usecase"
	"foodswap/pkg/logger"
)

// ChatReaper periodically sweeps completed swaps whose chat retention
// window has elapsed. The sweep itself is idempotent, so overlapping or
// repeated runs are harmless.
type ChatReaper struct {
	transactionUseCase *usecase.TransactionUseCase
	interval           time.Duration
	cron               *cron.Cron
}

func NewChatReaper(transactionUseCase *usecase.TransactionUseCase, interval time.Duration) *ChatReaper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &ChatReaper{
		transactionUseCase: transactionUseCase,
		interval:           interval,
		cron:               cron.New(),
	}
}

func (r *ChatReaper) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", r.interval)

	_, err := r.cron.AddFunc(spec, func() {
		r.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule chat reaper: %w", err)
	}

	r.cron.Start()
	logger.Info("Chat reaper scheduled every %s", r.interval)

	return nil
}

func (r *ChatReaper) RunOnce(ctx context.Context) {
	reaped, err := r.transactionUseCase.CleanupExpiredChats(ctx)
	if err != nil {
		logger.Error("Chat reaper sweep failed: %v", err)
		return
	}

	if reaped > 0 {
		logger.Info("Chat reaper removed %d expired chat room(s)", reaped)
	}
}

func (r *ChatReaper) Stop() {
	r.cron.Stop()
}
