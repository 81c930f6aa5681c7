// Package scheduler 提供定时任务调度
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
)

// 单次任务执行超时
const taskTimeout = 5 * time.Minute

// Scheduler 定时任务调度器
type Scheduler struct {
	tasks  []*Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Task 定时任务
type Task struct {
	Name     string
	Interval time.Duration
	Handler  func(ctx context.Context) error
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		tasks:  make([]*Task, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(name string, interval time.Duration, handler func(ctx context.Context) error) {
	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Handler:  handler,
	})
}

// Start 启动调度器
func (s *Scheduler) Start() {
	logger.Info("调度器启动", logger.Module("scheduler"), logger.Int("tasks", len(s.tasks)))

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(task)
	}
}

// Stop 停止调度器并等待任务退出
func (s *Scheduler) Stop() {
	logger.Info("调度器停止中", logger.Module("scheduler"))
	s.cancel()
	s.wg.Wait()
	logger.Info("调度器已停止", logger.Module("scheduler"))
}

// runTask 运行单个任务
func (s *Scheduler) runTask(task *Task) {
	defer s.wg.Done()

	logger.Info("定时任务启动",
		logger.Module("scheduler"),
		logger.TaskName(task.Name),
		logger.Duration("interval", task.Interval),
	)

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	// 立即执行一次
	s.executeTask(task)

	for {
		select {
		case <-s.ctx.Done():
			logger.Info("定时任务退出", logger.Module("scheduler"), logger.TaskName(task.Name))
			return
		case <-ticker.C:
			s.executeTask(task)
		}
	}
}

// executeTask 执行任务并记录指标
func (s *Scheduler) executeTask(task *Task) {
	ctx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	start := time.Now()
	if err := task.Handler(ctx); err != nil {
		metrics.GetMetrics().RecordSchedulerRun(task.Name, "error")
		logger.Error("定时任务执行失败",
			logger.Module("scheduler"),
			logger.TaskName(task.Name),
			logger.Err(err),
		)
		return
	}

	metrics.GetMetrics().RecordSchedulerRun(task.Name, "success")
	logger.Debug("定时任务执行完成",
		logger.Module("scheduler"),
		logger.TaskName(task.Name),
		logger.Latency(time.Since(start)),
	)
}
