package worker

import (
	"context"
	"encoding/json"

	"github.com/catalog-next/internal/logger"
	"github.com/catalog-next/internal/provider"
	"github.com/catalog-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskStockStatusRollup, c.handleStockStatusRollup)
}

// handleStockStatusRollup 根据启用变体库存回填商品库存状态
func (c *Consumer) handleStockStatusRollup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stock_rollup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.StockStatusRollupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stock_rollup_unmarshal_failed", "error", err)
		return err
	}
	if c.CatalogRepo == nil {
		logger.Warnw("worker_stock_rollup_skip_repo_nil")
		return nil
	}
	affected, err := c.CatalogRepo.RollupStockStatus()
	if err != nil {
		logger.Warnw("worker_stock_rollup_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_stock_rollup_done", "reason", payload.Reason, "affected", affected)
	return nil
}
