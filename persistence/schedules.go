// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type dbScheduledTask struct {
	TaskId          string       `db:"task_id"`
	TaskName        string       `db:"task_name"`
	ScheduleType    string       `db:"schedule_type"`
	Status          string       `db:"status"`
	RunDate         string       `db:"run_date"`
	RunTime         string       `db:"run_time"`
	DayOfWeek       string       `db:"day_of_week"`
	IntervalSeconds int          `db:"interval_seconds"`
	CronExpression  string       `db:"cron_expression"`
	Recipients      string       `db:"recipients"`
	Subject         string       `db:"subject"`
	Content         string       `db:"content"`
	Description     string       `db:"description"`
	RunCount        int          `db:"run_count"`
	LastRun         sql.NullTime `db:"last_run"`
	NextRun         sql.NullTime `db:"next_run"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

const scheduledTaskColumns = `task_id, task_name, schedule_type, status, run_date, run_time, day_of_week,
	interval_seconds, cron_expression, recipients, subject, content, description, run_count,
	last_run, next_run, created_at, updated_at`

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func (t *dbScheduledTask) toDomain() (*domain.ScheduledTask, error) {
	recipients := []string{}
	err := json.Unmarshal([]byte(t.Recipients), &recipients)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode recipients of %s: %w", domain.ErrSerialization, t.TaskId, err)
	}

	return &domain.ScheduledTask{
		TaskId:          t.TaskId,
		TaskName:        t.TaskName,
		ScheduleType:    domain.ScheduleType(t.ScheduleType),
		Status:          domain.ScheduleStatus(t.Status),
		RunDate:         t.RunDate,
		RunTime:         t.RunTime,
		DayOfWeek:       t.DayOfWeek,
		IntervalSeconds: t.IntervalSeconds,
		CronExpression:  t.CronExpression,
		Recipients:      recipients,
		Subject:         t.Subject,
		Content:         t.Content,
		Description:     t.Description,
		RunCount:        t.RunCount,
		LastRun:         timePtr(t.LastRun),
		NextRun:         timePtr(t.NextRun),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}, nil
}

// SaveScheduledTask inserts task or replaces the definition of an existing
// task with the same id. Run statistics of an existing task are kept.
func (p *Persistence) SaveScheduledTask(task *domain.ScheduledTask) error {
	recipients, err := json.Marshal(task.Recipients)
	if err != nil {
		return fmt.Errorf("%w: could not encode recipients: %w", domain.ErrSerialization, err)
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err = p.db.NamedExec(
		`INSERT INTO scheduled_tasks (`+scheduledTaskColumns+`) VALUES (
			:task_id, :task_name, :schedule_type, :status, :run_date, :run_time, :day_of_week,
			:interval_seconds, :cron_expression, :recipients, :subject, :content, :description, :run_count,
			:last_run, :next_run, :created_at, :updated_at)
		ON CONFLICT(task_id) DO UPDATE SET
			task_name = excluded.task_name,
			schedule_type = excluded.schedule_type,
			status = excluded.status,
			run_date = excluded.run_date,
			run_time = excluded.run_time,
			day_of_week = excluded.day_of_week,
			interval_seconds = excluded.interval_seconds,
			cron_expression = excluded.cron_expression,
			recipients = excluded.recipients,
			subject = excluded.subject,
			content = excluded.content,
			description = excluded.description,
			next_run = excluded.next_run,
			updated_at = excluded.updated_at`,
		&dbScheduledTask{
			TaskId:          task.TaskId,
			TaskName:        task.TaskName,
			ScheduleType:    string(task.ScheduleType),
			Status:          string(task.Status),
			RunDate:         task.RunDate,
			RunTime:         task.RunTime,
			DayOfWeek:       task.DayOfWeek,
			IntervalSeconds: task.IntervalSeconds,
			CronExpression:  task.CronExpression,
			Recipients:      string(recipients),
			Subject:         task.Subject,
			Content:         task.Content,
			Description:     task.Description,
			RunCount:        task.RunCount,
			LastRun:         nullTime(task.LastRun),
			NextRun:         nullTime(task.NextRun),
			CreatedAt:       task.CreatedAt,
			UpdatedAt:       task.UpdatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("could not save scheduled task: %w", err)
	}

	p.l.WithFields(logrus.Fields{"taskId": task.TaskId, "type": task.ScheduleType}).Info("Persisted scheduled task")
	return nil
}

// FindScheduledTask returns nil without error for unknown ids.
func (p *Persistence) FindScheduledTask(taskId string) (*domain.ScheduledTask, error) {
	t := dbScheduledTask{}
	err := p.db.Get(
		&t,
		`SELECT `+scheduledTaskColumns+` FROM scheduled_tasks WHERE task_id = ?`,
		taskId,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	return t.toDomain()
}

// ScheduledTasks lists tasks in creation order, all of them when no status is
// given.
func (p *Persistence) ScheduledTasks(statuses ...domain.ScheduleStatus) ([]*domain.ScheduledTask, error) {
	qry := `SELECT ` + scheduledTaskColumns + ` FROM scheduled_tasks ORDER BY id`
	args := []interface{}{}
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}

		var err error
		qry, args, err = sqlx.In(
			`SELECT `+scheduledTaskColumns+` FROM scheduled_tasks WHERE status IN (?) ORDER BY id`,
			values,
		)
		if err != nil {
			return nil, fmt.Errorf("could not replace IN in query: %w", err)
		}
	}

	dbTasks := []dbScheduledTask{}
	err := p.db.Select(&dbTasks, qry, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	tasks := []*domain.ScheduledTask{}
	for i := range dbTasks {
		task, err := dbTasks[i].toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (p *Persistence) UpdateScheduledTaskStatus(taskId string, status domain.ScheduleStatus) error {
	result, err := p.db.Exec(
		"UPDATE scheduled_tasks SET status = ?, updated_at = ? WHERE task_id = ?",
		string(status), time.Now().UTC(), taskId,
	)
	if err != nil {
		return fmt.Errorf("could not update status: %w", err)
	}

	err = expectAffected(result, 1)
	if err != nil {
		return fmt.Errorf("scheduled task %s %w: %w", taskId, ErrNotFound, err)
	}

	p.l.WithFields(logrus.Fields{"taskId": taskId, "status": status}).Info("Updated scheduled task status")
	return nil
}

// RecordTaskRun stores the run history row and updates the run statistics of
// the task in one transaction.
func (p *Persistence) RecordTaskRun(run *domain.TaskRun) error {
	tx, err := p.db.BeginTxx(context.TODO(), nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO task_runs (task_id, started_at, success, error) VALUES (?, ?, ?, ?)",
		run.TaskId, run.StartedAt.UTC(), run.Success, run.Error,
	)
	if err != nil {
		return txEnd(tx, fmt.Errorf("could not save task run: %w", err))
	}

	result, err := tx.Exec(
		`UPDATE scheduled_tasks SET run_count = run_count + 1, last_run = ?, next_run = ?, updated_at = ?
		WHERE task_id = ?`,
		run.StartedAt.UTC(), nullTime(run.NextRun), time.Now().UTC(), run.TaskId,
	)
	if err != nil {
		return txEnd(tx, fmt.Errorf("could not update run statistics: %w", err))
	}

	err = expectAffected(result, 1)
	if err != nil {
		return txEnd(tx, fmt.Errorf("scheduled task %s %w: %w", run.TaskId, ErrNotFound, err))
	}

	return txEnd(tx, nil)
}
