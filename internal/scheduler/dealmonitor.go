package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
)

// DealMonitor 限时特惠巡检器，独立于调度器、可由管理端启停
type DealMonitor struct {
	handler    *TaskHandler
	interval   time.Duration
	maxRetries int
	retryDelay time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDealMonitor 创建特惠巡检器
func NewDealMonitor(handler *TaskHandler, interval time.Duration, maxRetries int, retryDelay time.Duration) *DealMonitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return &DealMonitor{
		handler:    handler,
		interval:   interval,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Start 启动巡检。启动时先执行一次探测清理，失败则按固定间隔重试，
// 重试耗尽仍失败时返回启动失败且不进入运行状态。
func (m *DealMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.ErrMonitorRunning
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if lastErr = m.handler.ExpireDeals(ctx); lastErr == nil {
			break
		}
		logger.Warn("特惠巡检启动探测失败",
			logger.Module("scheduler"),
			logger.Int("attempt", attempt),
			logger.Err(lastErr),
		)
		if attempt < m.maxRetries {
			select {
			case <-time.After(m.retryDelay):
			case <-ctx.Done():
				return errors.ErrMonitorStartFail.WithError(ctx.Err())
			}
		}
	}
	if lastErr != nil {
		return errors.ErrMonitorStartFail.WithError(lastErr)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true

	m.wg.Add(1)
	go m.loop(runCtx)

	logger.Info("特惠巡检已启动", logger.Module("scheduler"), logger.Duration("interval", m.interval))
	return nil
}

// Stop 停止巡检
func (m *DealMonitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return errors.ErrMonitorNotRunning
	}

	m.cancel()
	m.wg.Wait()
	m.running = false
	m.cancel = nil

	logger.Info("特惠巡检已停止", logger.Module("scheduler"))
	return nil
}

// IsRunning 返回巡检是否在运行
func (m *DealMonitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// loop 周期执行特惠清理
func (m *DealMonitor) loop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, taskTimeout)
			if err := m.handler.ExpireDeals(runCtx); err != nil {
				logger.Error("特惠巡检执行失败", logger.Module("scheduler"), logger.Err(err))
			}
			cancel()
		}
	}
}
