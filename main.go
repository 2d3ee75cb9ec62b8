// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CrawX/go-imap-assistant/config"
	"github.com/CrawX/go-imap-assistant/dispatcher"
	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/imapconnection"
	"github.com/CrawX/go-imap-assistant/llm"
	"github.com/CrawX/go-imap-assistant/log"
	"github.com/CrawX/go-imap-assistant/persistence"
	"github.com/CrawX/go-imap-assistant/scheduler"
	"github.com/CrawX/go-imap-assistant/smtpconnection"
	"github.com/CrawX/go-imap-assistant/tools"
	"github.com/CrawX/go-imap-assistant/watcher"
	"github.com/CrawX/go-imap-assistant/workflow"

	"github.com/sirupsen/logrus"
)

const shutdownGrace = 5 * time.Second

func main() {
	configFile := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig(*configFile)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	loc, err := conf.Location()
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load timezone")
	}

	p, err := persistence.NewPersistence(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer p.Close()

	sender := smtpconnection.NewSender(conf.Smtp.Host, conf.Smtp.StartTLS, conf.Smtp.User, conf.Smtp.Password, conf.Address, conf.Smtp.Timeout.Duration)

	sched := scheduler.NewScheduler(p, sender, conf.DisplayName, loc)
	err = sched.Start()
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start scheduler")
	}

	registry := tools.NewAssistantRegistry(sender, sched, p, conf.DisplayName)
	model := llm.NewClient(conf.Llm.BaseUrl, conf.Llm.Model, conf.Llm.ApiKey, conf.Llm.Timeout.Duration)

	wf, err := workflow.NewWorkflow(model, registry, sender, p, conf.AuthorizedSender, conf.Address,
		workflow.MaxIterations(conf.Workflow.MaxIterations),
		workflow.SenderName(conf.DisplayName),
		workflow.SendTimeout(2*conf.Smtp.Timeout.Duration),
	)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create reply workflow")
	}

	disp, err := dispatcher.NewDispatcher(wf, conf.Dispatcher.Workers)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create dispatcher")
	}
	disp.OnComplete(func(domain.Completion) {
		logger.WithFields(logrus.Fields{
			"pending":   disp.Pending(),
			"completed": disp.Completed(),
			"failed":    disp.Failed(),
		}).Debug("Dispatcher progress")
	})

	configs := []watcher.ConfigFunc{
		watcher.PollInterval(conf.Watcher.PollInterval.Duration),
		watcher.Heartbeat(conf.Watcher.Heartbeat.Duration),
		watcher.RetryDelay(conf.Watcher.RetryDelay.Duration),
		watcher.MaxFailures(conf.Watcher.MaxFailures),
		watcher.DedupCapacity(conf.Watcher.DedupCapacity),
		watcher.InitialSync(conf.Watcher.InitialSync),
	}
	if conf.Watcher.ForcePolling {
		configs = append(configs, watcher.ForcePolling())
	}
	if len(conf.Imap.ArchiveFolder) > 0 {
		configs = append(configs, watcher.Archive(conf.Imap.ArchiveFolder))
	}

	dialer := imapconnection.NewDialer(conf.Imap.Host, conf.Imap.User, conf.Imap.Password, conf.Imap.Compress, conf.Imap.Timeout.Duration)
	w, err := watcher.NewWatcher(dialer, disp, conf.Imap.Mailbox, configs...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create mailbox watcher")
	}

	err = w.Start()
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start mailbox watcher")
	}

	logger.WithFields(logrus.Fields{
		"mailbox":    conf.Imap.Mailbox,
		"address":    conf.Address,
		"authorized": conf.AuthorizedSender,
		"workers":    conf.Dispatcher.Workers,
	}).Info("Email assistant started")

	if conf.NotifyOnline {
		notifyOnline(sender, conf, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("Shutting down")
	err = w.Stop(conf.Watcher.StopTimeout.Duration)
	if err != nil {
		logger.WithField("error", err).Warn("Mailbox watcher did not stop cleanly")
	}
	if !disp.Drain(conf.Dispatcher.DrainTimeout.Duration) {
		// cancelled workflows still store their task record
		if !disp.Wait(shutdownGrace) {
			logger.WithField("pending", disp.Pending()).Warn("Abandoning running workflows, their task records are lost")
		}
	}
	sched.Stop(conf.Dispatcher.DrainTimeout.Duration)
	logger.WithFields(logrus.Fields{"completed": disp.Completed(), "failed": disp.Failed()}).Info("Email assistant stopped")
}

func notifyOnline(sender domain.MailSender, conf *config.Config, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err := sender.Send(ctx, &domain.OutgoingMail{
		FromName: conf.DisplayName,
		To:       []string{conf.AuthorizedSender},
		Subject:  "Email assistant online",
		Body:     "The email assistant is online and watching " + conf.Imap.Mailbox + ".",
		BodyKind: domain.BodyPlain,
	})
	if err != nil {
		logger.WithField("error", err).Warn("Could not send online notice")
	}
}
