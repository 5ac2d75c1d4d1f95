package services

import "go.uber.org/zap"

// Event names a notification trigger point
type Event string

const (
	EventProjectCreated        Event = "project_created"
	EventCommentAdded          Event = "comment_added"
	EventEvaluationAdded       Event = "evaluation_added"
	EventMeetingScheduled      Event = "meeting_scheduled"
	EventMeetingStatusChanged  Event = "meeting_status_changed"
	EventMeetingReminder       Event = "meeting_reminder"
	EventProjectStageCompleted Event = "project_stage_completed"
)

// Notifier receives fire-and-continue triggers with the changed entity.
// Delivery is someone else's problem: a failing notifier must never roll
// back or fail the mutation that triggered it, so the interface returns
// nothing.
type Notifier interface {
	Notify(event Event, entity interface{})
}

// ZapNotifier records triggers in the log. It stands in for a real delivery
// channel (mail, push) behind the same interface.
type ZapNotifier struct {
	logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

func (n *ZapNotifier) Notify(event Event, entity interface{}) {
	n.logger.Info("notification trigger",
		zap.String("event", string(event)),
		zap.Any("entity", entity))
}
