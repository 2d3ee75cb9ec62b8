// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration decodes TOML strings such as "60s" or "4m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("could not parse duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

type Imap struct {
	Host     string
	User     string
	Password string

	Mailbox       string
	Compress      bool
	ArchiveFolder string
	Timeout       Duration
}

type Smtp struct {
	Host     string
	StartTLS bool
	User     string
	Password string
	Timeout  Duration
}

type Watcher struct {
	PollInterval  Duration
	Heartbeat     Duration
	RetryDelay    Duration
	StopTimeout   Duration
	MaxFailures   int
	DedupCapacity int
	InitialSync   int
	ForcePolling  bool
}

type Dispatcher struct {
	Workers      int
	DrainTimeout Duration
}

type Workflow struct {
	MaxIterations int
}

type Llm struct {
	BaseUrl string
	Model   string
	ApiKey  string
	Timeout Duration
}

type Config struct {
	Database string

	Imap Imap
	Smtp Smtp

	Address          string
	DisplayName      string
	AuthorizedSender string

	Watcher    Watcher
	Dispatcher Dispatcher
	Workflow   Workflow
	Llm        Llm

	NotifyOnline bool
	Timezone     string

	Loglevel *string
}

func defaultConfig() *Config {
	return &Config{
		Database:    "assistant.db",
		DisplayName: "Email Assistant",
		Imap: Imap{
			Mailbox: "INBOX",
			Timeout: Duration{2 * time.Minute},
		},
		Smtp: Smtp{
			Timeout: Duration{time.Minute},
		},
		Watcher: Watcher{
			PollInterval:  Duration{60 * time.Second},
			Heartbeat:     Duration{240 * time.Second},
			RetryDelay:    Duration{5 * time.Second},
			StopTimeout:   Duration{5 * time.Second},
			MaxFailures:   3,
			DedupCapacity: 1000,
			InitialSync:   20,
		},
		Dispatcher: Dispatcher{
			Workers:      3,
			DrainTimeout: Duration{30 * time.Second},
		},
		Workflow: Workflow{
			MaxIterations: 10,
		},
		Llm: Llm{
			BaseUrl: "https://api.deepseek.com",
			Model:   "deepseek-chat",
			Timeout: Duration{120 * time.Second},
		},
		NotifyOnline: true,
		Timezone:     "Local",
	}
}

func ReadConfig(filename string) (*Config, error) {
	config := defaultConfig()

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	config.applyFallbacks()

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Location resolves Timezone for the scheduler.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("could not load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) applyFallbacks() {
	if len(strings.TrimSpace(c.Smtp.User)) == 0 {
		c.Smtp.User = c.Imap.User
	}
	if len(strings.TrimSpace(c.Smtp.Password)) == 0 {
		c.Smtp.Password = c.Imap.Password
	}
	if len(strings.TrimSpace(c.Address)) == 0 {
		c.Address = c.Imap.User
	}
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Imap.Host, "Imap.Host must not be empty, set to host:port of the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Imap.User, "Imap.User must not be empty, set to username on the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Imap.Password, "Imap.Password must not be empty, set to password of User on the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Imap.Mailbox, "Imap.Mailbox must not be empty, set to the folder to watch"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Smtp.Host, "Smtp.Host must not be empty, set to host:port of the smtp server"); err != nil {
		return err
	}

	if err := validateAddressField(c.Address, "Address must be the mail address replies are sent from"); err != nil {
		return err
	}

	if err := validateAddressField(c.AuthorizedSender, "AuthorizedSender must be the only mail address the assistant accepts instructions from"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Llm.ApiKey, "Llm.ApiKey must not be empty"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Llm.Model, "Llm.Model must not be empty"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Llm.BaseUrl, "Llm.BaseUrl must not be empty"); err != nil {
		return err
	}

	for name, d := range map[string]Duration{
		"Imap.Timeout":            c.Imap.Timeout,
		"Smtp.Timeout":            c.Smtp.Timeout,
		"Watcher.PollInterval":    c.Watcher.PollInterval,
		"Watcher.Heartbeat":       c.Watcher.Heartbeat,
		"Watcher.RetryDelay":      c.Watcher.RetryDelay,
		"Watcher.StopTimeout":     c.Watcher.StopTimeout,
		"Dispatcher.DrainTimeout": c.Dispatcher.DrainTimeout,
		"Llm.Timeout":             c.Llm.Timeout,
	} {
		if d.Duration <= 0 {
			return fmt.Errorf("%s must be a positive duration", name)
		}
	}

	for name, v := range map[string]int{
		"Watcher.MaxFailures":    c.Watcher.MaxFailures,
		"Watcher.DedupCapacity":  c.Watcher.DedupCapacity,
		"Dispatcher.Workers":     c.Dispatcher.Workers,
		"Workflow.MaxIterations": c.Workflow.MaxIterations,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be at least 1", name)
		}
	}

	if c.Watcher.InitialSync < 0 {
		return fmt.Errorf("Watcher.InitialSync must not be negative")
	}

	if strings.EqualFold(c.Address, c.AuthorizedSender) {
		return fmt.Errorf("AuthorizedSender must differ from Address, mails from Address are never answered")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}

func validateAddressField(field string, err string) error {
	if err := validateNonEmptyStringField(field, err); err != nil {
		return err
	}

	if _, parseErr := mail.ParseAddress(field); parseErr != nil {
		return fmt.Errorf("%s: %w", err, parseErr)
	}

	return nil
}
