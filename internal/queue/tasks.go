package queue

import (
	"encoding/json"

	"github.com/catalog-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskStockStatusRollup 商品库存状态回填任务
	TaskStockStatusRollup = constants.TaskStockStatusRollup
)

// StockStatusRollupPayload 库存状态回填任务载荷
type StockStatusRollupPayload struct {
	Reason string `json:"reason"`
}

// NewStockStatusRollupTask 创建库存状态回填任务
func NewStockStatusRollupTask(payload StockStatusRollupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockStatusRollup, body), nil
}
