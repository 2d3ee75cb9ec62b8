// SPDX-License-Identifier: GPL-3.0-or-later
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/robfig/cron/v3"
)

const minInterval = 60

var weekdays = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// onceSchedule fires a single time at at. Next returns the zero time once at
// has passed which keeps the entry parked in cron.
type onceSchedule struct {
	at time.Time
}

func (o onceSchedule) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidTask, fmt.Sprintf(format, args...))
}

// parseSchedule turns the schedule fields of task into a cron schedule
// evaluated in loc.
func parseSchedule(task *domain.ScheduledTask, loc *time.Location) (cron.Schedule, error) {
	switch task.ScheduleType {
	case domain.ScheduleOnce:
		if len(task.RunDate) == 0 || len(task.RunTime) == 0 {
			return nil, invalid("once tasks need run_date and run_time")
		}
		at, err := time.ParseInLocation("2006-01-02 15:04", task.RunDate+" "+task.RunTime, loc)
		if err != nil {
			return nil, invalid("could not parse run_date %q and run_time %q, expected YYYY-MM-DD and HH:MM", task.RunDate, task.RunTime)
		}
		return onceSchedule{at: at}, nil

	case domain.ScheduleDaily:
		hour, minute, err := parseClock(task.RunTime)
		if err != nil {
			return nil, err
		}
		return parseSpec(fmt.Sprintf("%d %d * * *", minute, hour))

	case domain.ScheduleWeekly:
		hour, minute, err := parseClock(task.RunTime)
		if err != nil {
			return nil, err
		}
		day, err := parseWeekday(task.DayOfWeek)
		if err != nil {
			return nil, err
		}
		return parseSpec(fmt.Sprintf("%d %d * * %d", minute, hour, day))

	case domain.ScheduleInterval:
		if task.IntervalSeconds < minInterval {
			return nil, invalid("interval_seconds must be at least %d", minInterval)
		}
		return cron.Every(time.Duration(task.IntervalSeconds) * time.Second), nil

	case domain.ScheduleCron:
		if len(strings.TrimSpace(task.CronExpression)) == 0 {
			return nil, invalid("cron tasks need a cron_expression")
		}
		return parseSpec(task.CronExpression)
	}

	return nil, invalid("unsupported schedule_type %q", task.ScheduleType)
}

func parseSpec(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, invalid("could not parse cron expression %q: %s", spec, err)
	}
	return schedule, nil
}

func parseClock(clock string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return 0, 0, invalid("could not parse run_time %q, expected HH:MM", clock)
	}
	return t.Hour(), t.Minute(), nil
}

func parseWeekday(day string) (int, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if d, ok := weekdays[day]; ok {
		return d, nil
	}

	d, err := strconv.Atoi(day)
	if err != nil || d < 0 || d > 6 {
		return 0, invalid("day_of_week %q must be 0-6 or mon..sun", day)
	}
	return d, nil
}
