// SPDX-License-Identifier: GPL-3.0-or-later
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const sendTimeout = 2 * time.Minute

// Scheduler runs reminder tasks. Every run mails the task content to its
// recipients and records the run in the ScheduleStore.
type Scheduler struct {
	store    domain.ScheduleStore
	sender   domain.MailSender
	fromName string

	cron *cron.Cron
	loc  *time.Location
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cron.EntryID

	l *logrus.Logger
}

func NewScheduler(store domain.ScheduleStore, sender domain.MailSender, fromName string, loc *time.Location) *Scheduler {
	l := log.Logger(log.LOG_SCHEDULER)
	return &Scheduler{
		store:    store,
		sender:   sender,
		fromName: fromName,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(&cronLogger{l}),
		),
		loc:     loc,
		now:     time.Now,
		entries: map[string]cron.EntryID{},
		l:       l,
	}
}

// Start registers all active tasks and starts executing them. One-shot tasks
// whose time has passed while the process was down are marked expired.
func (s *Scheduler) Start() error {
	tasks, err := s.store.ScheduledTasks(domain.ScheduleActive)
	if err != nil {
		return fmt.Errorf("could not load active tasks: %w", err)
	}

	now := s.now().In(s.loc)
	registered := 0
	for _, task := range tasks {
		schedule, err := parseSchedule(task, s.loc)
		if err != nil {
			s.l.WithFields(logrus.Fields{"taskId": task.TaskId, "error": err}).Warn("Skipping task with invalid schedule")
			continue
		}

		next := schedule.Next(now)
		if next.IsZero() {
			s.l.WithField("taskId", task.TaskId).Info("One-shot task expired")
			err = s.store.UpdateScheduledTaskStatus(task.TaskId, domain.ScheduleExpired)
			if err != nil {
				return fmt.Errorf("could not expire task %s: %w", task.TaskId, err)
			}
			continue
		}

		task.NextRun = &next
		err = s.store.SaveScheduledTask(task)
		if err != nil {
			return fmt.Errorf("could not update next run of %s: %w", task.TaskId, err)
		}

		s.register(task.TaskId, schedule)
		registered++
	}

	s.cron.Start()
	s.l.WithFields(logrus.Fields{"tasks": registered}).Info("Started")
	return nil
}

// Stop stops triggering tasks and waits up to timeout for running ones.
func (s *Scheduler) Stop(timeout time.Duration) {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		s.l.Info("Stopped")
	case <-time.After(timeout):
		s.l.WithField("timeout", timeout).Warn("Running tasks did not finish in time")
	}
}

func (s *Scheduler) Add(task *domain.ScheduledTask) error {
	err := validate(task)
	if err != nil {
		return err
	}

	schedule, err := parseSchedule(task, s.loc)
	if err != nil {
		return err
	}

	next := schedule.Next(s.now().In(s.loc))
	if next.IsZero() {
		return invalid("run_date %s %s is in the past", task.RunDate, task.RunTime)
	}

	if len(task.TaskId) == 0 {
		task.TaskId = uuid.NewString()
	} else {
		existing, err := s.store.FindScheduledTask(task.TaskId)
		if err != nil {
			return fmt.Errorf("could not look up task %s: %w", task.TaskId, err)
		}
		if existing != nil && existing.Status != domain.ScheduleRemoved {
			return invalid("a task with id %s already exists", task.TaskId)
		}
	}

	task.Status = domain.ScheduleActive
	task.NextRun = &next
	err = s.store.SaveScheduledTask(task)
	if err != nil {
		return fmt.Errorf("could not save task %s: %w", task.TaskId, err)
	}

	s.register(task.TaskId, schedule)
	s.l.WithFields(logrus.Fields{
		"taskId":  task.TaskId,
		"type":    task.ScheduleType,
		"nextRun": next,
	}).Info("Added task")
	return nil
}

// Tasks lists every task that was not removed.
func (s *Scheduler) Tasks() ([]*domain.ScheduledTask, error) {
	tasks, err := s.store.ScheduledTasks(
		domain.ScheduleActive,
		domain.SchedulePaused,
		domain.ScheduleCompleted,
		domain.ScheduleExpired,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Scheduler) Pause(taskId string) error {
	task, err := s.find(taskId)
	if err != nil {
		return err
	}
	if task.Status != domain.ScheduleActive {
		return invalid("task %s is %s, only active tasks can be paused", taskId, task.Status)
	}

	s.unregister(taskId)
	err = s.store.UpdateScheduledTaskStatus(taskId, domain.SchedulePaused)
	if err != nil {
		return fmt.Errorf("could not pause task %s: %w", taskId, err)
	}
	return nil
}

func (s *Scheduler) Resume(taskId string) error {
	task, err := s.find(taskId)
	if err != nil {
		return err
	}
	if task.Status != domain.SchedulePaused {
		return invalid("task %s is %s, only paused tasks can be resumed", taskId, task.Status)
	}

	schedule, err := parseSchedule(task, s.loc)
	if err != nil {
		return err
	}

	next := schedule.Next(s.now().In(s.loc))
	if next.IsZero() {
		err = s.store.UpdateScheduledTaskStatus(taskId, domain.ScheduleExpired)
		if err != nil {
			return fmt.Errorf("could not expire task %s: %w", taskId, err)
		}
		return invalid("task %s expired while paused", taskId)
	}

	task.Status = domain.ScheduleActive
	task.NextRun = &next
	err = s.store.SaveScheduledTask(task)
	if err != nil {
		return fmt.Errorf("could not resume task %s: %w", taskId, err)
	}

	s.register(taskId, schedule)
	return nil
}

func (s *Scheduler) Remove(taskId string) error {
	_, err := s.find(taskId)
	if err != nil {
		return err
	}

	s.unregister(taskId)
	err = s.store.UpdateScheduledTaskStatus(taskId, domain.ScheduleRemoved)
	if err != nil {
		return fmt.Errorf("could not remove task %s: %w", taskId, err)
	}
	return nil
}

func (s *Scheduler) find(taskId string) (*domain.ScheduledTask, error) {
	task, err := s.store.FindScheduledTask(taskId)
	if err != nil {
		return nil, fmt.Errorf("could not look up task %s: %w", taskId, err)
	}
	if task == nil || task.Status == domain.ScheduleRemoved {
		return nil, invalid("task %s does not exist", taskId)
	}
	return task, nil
}

func (s *Scheduler) register(taskId string, schedule cron.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[taskId]; ok {
		s.cron.Remove(id)
	}
	s.entries[taskId] = s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.run(taskId, schedule)
	}))
}

func (s *Scheduler) unregister(taskId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[taskId]; ok {
		s.cron.Remove(id)
		delete(s.entries, taskId)
	}
}

func (s *Scheduler) registered(taskId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[taskId]
	return ok
}

// run executes a single firing of taskId. The task is reloaded so that
// pausing or removing it from another goroutine is honoured.
func (s *Scheduler) run(taskId string, schedule cron.Schedule) {
	l := s.l.WithField("taskId", taskId)

	task, err := s.store.FindScheduledTask(taskId)
	if err != nil {
		l.WithError(err).Error("Could not load task")
		return
	}
	if task == nil || task.Status != domain.ScheduleActive {
		l.Info("Task is no longer active, unregistering")
		s.unregister(taskId)
		return
	}

	startedAt := s.now()
	run := &domain.TaskRun{
		TaskId:    taskId,
		StartedAt: startedAt,
		Success:   true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	err = s.sender.Send(ctx, &domain.OutgoingMail{
		FromName: s.fromName,
		To:       task.Recipients,
		Subject:  task.Subject,
		Body:     task.Content,
		BodyKind: domain.BodyPlain,
	})
	cancel()
	if err != nil {
		run.Success = false
		run.Error = err.Error()
		l.WithError(err).Warn("Could not send scheduled mail")
	}

	once := task.ScheduleType == domain.ScheduleOnce
	if !once {
		next := schedule.Next(startedAt.In(s.loc))
		if !next.IsZero() {
			run.NextRun = &next
		}
	}

	err = s.store.RecordTaskRun(run)
	if err != nil {
		l.WithError(err).Error("Could not record task run")
	}

	if once {
		s.unregister(taskId)
		err = s.store.UpdateScheduledTaskStatus(taskId, domain.ScheduleCompleted)
		if err != nil {
			l.WithError(err).Error("Could not complete one-shot task")
		}
	}

	l.WithFields(logrus.Fields{
		"success":  run.Success,
		"duration": time.Since(startedAt),
	}).Info("Executed task")
}

func validate(task *domain.ScheduledTask) error {
	if len(strings.TrimSpace(task.TaskName)) == 0 {
		return invalid("task_name must not be empty")
	}
	if len(task.Recipients) == 0 {
		return invalid("at least one recipient is required")
	}
	if len(strings.TrimSpace(task.Subject)) == 0 {
		return invalid("subject must not be empty")
	}
	if len(strings.TrimSpace(task.Content)) == 0 {
		return invalid("content must not be empty")
	}
	return nil
}

// cronLogger forwards cron's internal logging to logrus.
type cronLogger struct {
	l *logrus.Logger
}

func (c *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.WithFields(fields(keysAndValues)).Debug(msg)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
