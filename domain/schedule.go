// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/schedule.go -package=mocks . TaskScheduler

// TaskScheduler registers reminder tasks for execution. Add validates the
// task, fills in defaults such as the id and next run and persists it.
type TaskScheduler interface {
	Add(task *ScheduledTask) error
	Tasks() ([]*ScheduledTask, error)
}
