// SPDX-License-Identifier: GPL-3.0-or-later
package workflow

import (
	"fmt"
	"strings"
	"time"
)

type ConfigFunc func(c *configuration) error

func MaxIterations(iterations int) ConfigFunc {
	return func(c *configuration) error {
		if iterations < 1 {
			return fmt.Errorf("MaxIterations must be at least 1, got %d", iterations)
		}
		c.MaxIterations = iterations
		return nil
	}
}

func SenderName(name string) ConfigFunc {
	return func(c *configuration) error {
		if len(strings.TrimSpace(name)) == 0 {
			return fmt.Errorf("SenderName cannot be empty")
		}
		c.SenderName = name
		return nil
	}
}

// SendTimeout bounds sending the final reply.
func SendTimeout(timeout time.Duration) ConfigFunc {
	return func(c *configuration) error {
		if timeout <= 0 {
			return fmt.Errorf("SendTimeout must be positive, got %v", timeout)
		}
		c.SendTimeout = timeout
		return nil
	}
}

type configuration struct {
	AuthorizedSender string
	OwnAddress       string
	SenderName       string
	MaxIterations    int
	SendTimeout      time.Duration
}
