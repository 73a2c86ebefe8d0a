package job

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	spec          string
	outboxCleanup *OutboxCleanupJob
}

func NewCronManager(spec string, outboxCleanup *OutboxCleanupJob) *Manager {
	if spec == "" {
		spec = "@daily"
	}
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		spec:          spec,
		outboxCleanup: outboxCleanup,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.spec, s.outboxCleanup); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}
