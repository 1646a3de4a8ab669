package reminderworker

import (
	"context"
	"time"

	interviewhandler "hr-pipeline-backend/lib/interview"
	baseworker "hr-pipeline-backend/lib/utils/base-worker"
)

func StartWorker(ctx context.Context, handler interviewhandler.Provider, spec string, lead time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("InterviewReminderWorker", spec),
		handler:  handler,
		lead:     lead,
	}
	go func() {
		if err := i.Run(ctx, i.handle); err != nil {
			i.GetLogger().WithError(err).Error("Ошибка запуска задачи напоминаний")
		}
	}()
}

type impl struct {
	baseworker.BaseImpl
	handler interviewhandler.Provider
	lead    time.Duration
}

func (i impl) handle(ctx context.Context) {
	sent, err := i.handler.SendReminders(ctx, time.Now(), i.lead)
	if err != nil {
		i.GetLogger().WithError(err).Error("Ошибка отправки напоминаний о собеседованиях")
		return
	}
	if sent > 0 {
		i.GetLogger().Infof("Отправлено напоминаний о собеседованиях: %v", sent)
	}
}
