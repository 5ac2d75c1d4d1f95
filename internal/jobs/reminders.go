package jobs

import (
	"time"

	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/services"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// ReminderJob periodically reminds participants of meetings happening today
type ReminderJob struct {
	store    storage.Store
	meetings *services.MeetingService
	notifier services.Notifier
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
}

// NewReminderJob creates a new meeting reminder job
func NewReminderJob(store storage.Store, meetings *services.MeetingService, notifier services.Notifier, interval time.Duration, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{
		store:    store,
		meetings: meetings,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start begins the reminder loop
func (j *ReminderJob) Start() {
	j.logger.Info("starting meeting reminder job", zap.Duration("interval", j.interval))
	go j.run()
}

// Stop halts the reminder loop
func (j *ReminderJob) Stop() {
	close(j.stop)
}

func (j *ReminderJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			j.logger.Info("meeting reminder job stopped")
			return
		case <-ticker.C:
			j.remindToday()
		}
	}
}

// remindToday notifies about approved meetings scheduled for the current day
func (j *ReminderJob) remindToday() {
	meetings, err := j.store.GetMeetingsByStatus(models.MeetingStatusApproved)
	if err != nil {
		j.logger.Error("failed to fetch approved meetings", zap.Error(err))
		return
	}

	count := 0
	for _, m := range meetings {
		if j.meetings.BucketFor(m.Time) != models.TimeBucketToday {
			continue
		}
		if m.Time.Before(time.Now()) {
			continue
		}
		j.notifier.Notify(services.EventMeetingReminder, m)
		count++
	}

	if count > 0 {
		j.logger.Info("meeting reminders sent", zap.Int("count", count))
	}
}
