package baseworker

import (
	"context"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/lib/utils/lock"
)

type BaseImpl struct {
	WorkerName string
	spec       string
}

func NewInstance(WorkerName, spec string) *BaseImpl {
	return &BaseImpl{
		WorkerName: WorkerName,
		spec:       spec,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Run запускает задачу по расписанию cron и блокируется до завершения контекста
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) error {
	logger := i.GetLogger()
	scheduler := cron.New()
	_, err := scheduler.AddFunc(i.spec, func() {
		i.RunOnce(ctx, jobFunc)
	})
	if err != nil {
		return errors.Wrapf(err, "некорректное расписание задачи: %q", i.spec)
	}
	scheduler.Start()
	logger.WithField("spec", i.spec).Info("Задача поставлена в расписание")
	<-ctx.Done()
	// ждём завершения запущенной задачи
	<-scheduler.Stop().Done()
	logger.Info("Задача остановлена")
	return nil
}

// RunOnce выполняет задачу, если предыдущий запуск уже завершён
func (i BaseImpl) RunOnce(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	started, _ := lock.WithDelay(ctx, i.WorkerName, 0, func() error {
		logger.Info("Задача запущена")
		jobFunc(ctx)
		logger.Info("Задача выполнена")
		return nil
	})
	if !started {
		logger.Warn("Предыдущий запуск задачи ещё не завершён")
	}
}
