// SPDX-License-Identifier: GPL-3.0-or-later
package watcher

import (
	"fmt"
	"time"
)

type ConfigFunc func(c *configuration) error

func PollInterval(interval time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if interval <= 0 {
			return fmt.Errorf("PollInterval must be positive, got %v", interval)
		}
		c.PollInterval = interval
		return nil
	}
}

func Heartbeat(heartbeat time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if heartbeat <= 0 {
			return fmt.Errorf("Heartbeat must be positive, got %v", heartbeat)
		}
		c.Heartbeat = heartbeat
		return nil
	}
}

func RetryDelay(delay time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if delay < minRetryDelay {
			return fmt.Errorf("RetryDelay must be at least %v, got %v", minRetryDelay, delay)
		}
		c.RetryDelay = delay
		return nil
	}
}

func MaxFailures(failures int) ConfigFunc {
	return func(c *configuration) error {
		if failures < 1 {
			return fmt.Errorf("MaxFailures must be at least 1, got %d", failures)
		}
		c.MaxFailures = failures
		return nil
	}
}

func DedupCapacity(capacity int) ConfigFunc {
	return func(c *configuration) error {
		if capacity < 1 {
			return fmt.Errorf("DedupCapacity must be at least 1, got %d", capacity)
		}
		c.DedupCapacity = capacity
		return nil
	}
}

func InitialSync(count int) ConfigFunc {
	return func(c *configuration) error {
		if count < 0 {
			return fmt.Errorf("InitialSync cannot be negative")
		}
		c.InitialSync = count
		return nil
	}
}

func ForcePolling() ConfigFunc {
	return func(c *configuration) error {
		c.ForcePolling = true
		return nil
	}
}

func Archive(folder string) ConfigFunc {
	return func(c *configuration) error {
		if len(folder) == 0 {
			return fmt.Errorf("ArchiveFolder cannot be empty")
		}
		if folder == c.Mailbox {
			return fmt.Errorf("ArchiveFolder cannot be the watched mailbox")
		}
		c.ArchiveFolder = folder
		return nil
	}
}

type configuration struct {
	Mailbox string

	PollInterval time.Duration
	Heartbeat    time.Duration
	RetryDelay   time.Duration

	MaxFailures   int
	DedupCapacity int
	InitialSync   int

	ForcePolling  bool
	ArchiveFolder string
}

func defaultConfiguration(mailbox string) *configuration {
	return &configuration{
		Mailbox:       mailbox,
		PollInterval:  60 * time.Second,
		Heartbeat:     240 * time.Second,
		RetryDelay:    5 * time.Second,
		MaxFailures:   3,
		DedupCapacity: 1000,
		InitialSync:   20,
	}
}
