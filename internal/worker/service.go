package worker

import (
	"context"
	"errors"
	"time"

	"github.com/catalog-next/internal/config"
	"github.com/catalog-next/internal/logger"
	"github.com/catalog-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// RollupScheduler 周期性推送库存回填任务的调度服务
type RollupScheduler struct {
	client   *queue.Client
	interval time.Duration
}

// NewRollupScheduler 创建回填调度器；interval <= 0 时取 5 分钟
func NewRollupScheduler(client *queue.Client, interval time.Duration) *RollupScheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RollupScheduler{client: client, interval: interval}
}

// Name 服务名称
func (s *RollupScheduler) Name() string {
	return "stock-rollup-scheduler"
}

// Start 启动调度循环，立即触发一次后按周期触发
func (s *RollupScheduler) Start(ctx context.Context) error {
	if s == nil || !s.client.Enabled() {
		logger.Debugw("stock_rollup_scheduler_disabled")
		<-ctx.Done()
		return nil
	}

	enqueue := func() {
		err := s.client.EnqueueStockStatusRollup(queue.StockStatusRollupPayload{Reason: "periodic"})
		if err != nil {
			logger.Warnw("stock_rollup_enqueue_failed", "error", err)
		}
	}
	enqueue()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			enqueue()
		}
	}
}

// Stop 停止调度
func (s *RollupScheduler) Stop(ctx context.Context) error {
	_ = ctx
	return nil
}
