// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

//go:generate mockgen -destination=mocks/persistence.go -package=mocks . TaskStore,ContactStore,ScheduleStore
type TaskStatus string

const (
	TaskReceived      = TaskStatus("received")
	TaskDeciding      = TaskStatus("deciding")
	TaskToolExecuting = TaskStatus("tool_executing")
	TaskReplying      = TaskStatus("replying")
	TaskRecorded      = TaskStatus("recorded")
)

type TaskOutcome string

const (
	OutcomeNone       = TaskOutcome("")
	OutcomeReplied    = TaskOutcome("replied")
	OutcomeIgnored    = TaskOutcome("ignored")
	OutcomeSendFailed = TaskOutcome("send_failed")
)

// TaskRecord is the durable part of a reply workflow run.
type TaskRecord struct {
	MessageId  string
	Subject    string
	Sender     string
	Status     TaskStatus
	Outcome    TaskOutcome
	Replied    bool
	LastError  string
	Iterations int
	UpdatedAt  time.Time
}

type TaskStore interface {
	FindTaskRecord(messageId string) (*TaskRecord, error)
	SaveTaskRecord(record *TaskRecord) error
}

type Contact struct {
	Id        int64
	Name      string
	Email     string
	Remark    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactStore interface {
	SaveContact(contact *Contact) (bool, error)
	SearchContacts(keyword string, limit int) ([]*Contact, error)
}

type ScheduleType string

const (
	ScheduleOnce     = ScheduleType("once")
	ScheduleDaily    = ScheduleType("daily")
	ScheduleWeekly   = ScheduleType("weekly")
	ScheduleInterval = ScheduleType("interval")
	ScheduleCron     = ScheduleType("cron")
)

type ScheduleStatus string

const (
	ScheduleActive    = ScheduleStatus("active")
	SchedulePaused    = ScheduleStatus("paused")
	ScheduleCompleted = ScheduleStatus("completed")
	ScheduleExpired   = ScheduleStatus("expired")
	ScheduleRemoved   = ScheduleStatus("removed")
)

type ScheduledTask struct {
	TaskId          string
	TaskName        string
	ScheduleType    ScheduleType
	Status          ScheduleStatus
	RunDate         string
	RunTime         string
	DayOfWeek       string
	IntervalSeconds int
	CronExpression  string

	Recipients  []string
	Subject     string
	Content     string
	Description string

	RunCount  int
	LastRun   *time.Time
	NextRun   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaskRun struct {
	TaskId    string
	StartedAt time.Time
	Success   bool
	Error     string
	NextRun   *time.Time
}

type ScheduleStore interface {
	SaveScheduledTask(task *ScheduledTask) error
	FindScheduledTask(taskId string) (*ScheduledTask, error)
	ScheduledTasks(statuses ...ScheduleStatus) ([]*ScheduledTask, error)
	UpdateScheduledTaskStatus(taskId string, status ScheduleStatus) error
	RecordTaskRun(run *TaskRun) error
}
