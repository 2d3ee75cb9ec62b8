// SPDX-License-Identifier: GPL-3.0-or-later
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
)

var createScheduledTaskSpec = domain.ToolSpec{
	Name: "create-scheduled-task",
	Description: "Create a scheduled task that mails subject and content to the recipients. " +
		"schedule_type once needs run_date and run_time, daily needs run_time, weekly needs day_of_week and run_time, " +
		"interval needs interval_seconds, cron needs a five field cron_expression.",
	Parameters: schema(`{
		"type": "object",
		"properties": {
			"task_id": {"type": "string", "description": "optional unique id, generated when missing"},
			"task_name": {"type": "string"},
			"schedule_type": {"type": "string", "enum": ["once", "daily", "weekly", "interval", "cron"]},
			"run_date": {"type": "string", "description": "YYYY-MM-DD"},
			"run_time": {"type": "string", "description": "HH:MM"},
			"day_of_week": {"type": "string", "description": "0-6 with 0 being sunday, or mon..sun"},
			"interval_seconds": {"type": "integer", "minimum": 60},
			"cron_expression": {"type": "string"},
			"recipients": {"type": "array", "items": {"type": "string"}},
			"subject": {"type": "string"},
			"content": {"type": "string"},
			"description": {"type": "string"}
		},
		"required": ["task_name", "schedule_type", "recipients", "subject", "content"]
	}`),
}

var listScheduledTasksSpec = domain.ToolSpec{
	Name:        "list-scheduled-tasks",
	Description: "List all scheduled tasks with their status, last and next run.",
	Parameters:  schema(`{"type": "object", "properties": {}}`),
}

type createScheduledTaskArgs struct {
	TaskId          string   `json:"task_id"`
	TaskName        string   `json:"task_name"`
	ScheduleType    string   `json:"schedule_type"`
	RunDate         string   `json:"run_date"`
	RunTime         string   `json:"run_time"`
	DayOfWeek       string   `json:"day_of_week"`
	IntervalSeconds int      `json:"interval_seconds"`
	CronExpression  string   `json:"cron_expression"`
	Recipients      []string `json:"recipients"`
	Subject         string   `json:"subject"`
	Content         string   `json:"content"`
	Description     string   `json:"description"`
}

func createScheduledTask(scheduler domain.TaskScheduler) handler {
	return func(_ context.Context, raw json.RawMessage) (*domain.ToolResult, error) {
		args := &createScheduledTaskArgs{}
		err := decodeArgs(createScheduledTaskSpec.Name, raw, args)
		if err != nil {
			return nil, err
		}

		recipients, err := parseAddresses(args.Recipients)
		if err != nil {
			return failed("%s", err), nil
		}

		task := &domain.ScheduledTask{
			TaskId:          args.TaskId,
			TaskName:        args.TaskName,
			ScheduleType:    domain.ScheduleType(args.ScheduleType),
			RunDate:         args.RunDate,
			RunTime:         args.RunTime,
			DayOfWeek:       args.DayOfWeek,
			IntervalSeconds: args.IntervalSeconds,
			CronExpression:  args.CronExpression,
			Recipients:      recipients,
			Subject:         args.Subject,
			Content:         args.Content,
			Description:     args.Description,
		}

		err = scheduler.Add(task)
		if errors.Is(err, domain.ErrInvalidTask) {
			return failed("%s", err), nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: could not create scheduled task: %w", domain.ErrToolExecution, err)
		}

		return succeeded(describeTask(task), "scheduled task %s created", task.TaskId), nil
	}
}

func listScheduledTasks(scheduler domain.TaskScheduler) handler {
	return func(_ context.Context, raw json.RawMessage) (*domain.ToolResult, error) {
		err := decodeArgs(listScheduledTasksSpec.Name, raw, &struct{}{})
		if err != nil {
			return nil, err
		}

		tasks, err := scheduler.Tasks()
		if err != nil {
			return nil, fmt.Errorf("%w: could not list scheduled tasks: %w", domain.ErrToolExecution, err)
		}

		described := make([]map[string]interface{}, 0, len(tasks))
		for _, t := range tasks {
			described = append(described, describeTask(t))
		}

		return succeeded(described, "found %d scheduled tasks", len(tasks)), nil
	}
}

func describeTask(t *domain.ScheduledTask) map[string]interface{} {
	d := map[string]interface{}{
		"task_id":       t.TaskId,
		"task_name":     t.TaskName,
		"schedule_type": string(t.ScheduleType),
		"status":        string(t.Status),
		"recipients":    t.Recipients,
		"subject":       t.Subject,
		"run_count":     t.RunCount,
	}

	switch t.ScheduleType {
	case domain.ScheduleOnce:
		d["run_date"] = t.RunDate
		d["run_time"] = t.RunTime
	case domain.ScheduleDaily:
		d["run_time"] = t.RunTime
	case domain.ScheduleWeekly:
		d["day_of_week"] = t.DayOfWeek
		d["run_time"] = t.RunTime
	case domain.ScheduleInterval:
		d["interval_seconds"] = t.IntervalSeconds
	case domain.ScheduleCron:
		d["cron_expression"] = t.CronExpression
	}

	if t.LastRun != nil {
		d["last_run"] = t.LastRun.Format(time.RFC3339)
	}
	if t.NextRun != nil {
		d["next_run"] = t.NextRun.Format(time.RFC3339)
	}
	if len(t.Description) > 0 {
		d["description"] = t.Description
	}

	return d
}
