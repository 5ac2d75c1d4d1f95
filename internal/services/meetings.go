package services

import (
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/internal/models"
	"github.com/projetakip/projetakip-backend/internal/storage"
)

// Errors surfaced by the meeting negotiation rules
var (
	// ErrNotAuthorized: the actor's role or ownership does not cover the action
	ErrNotAuthorized = errors.New("not authorized for this meeting")
	// ErrOutOfTurn: the reciprocity gate refused the action, state unchanged
	ErrOutOfTurn = errors.New("cannot perform this action now")
	// ErrInvalidDecision: the decision value is neither approve nor reject
	ErrInvalidDecision = errors.New("invalid decision")
	// ErrMeetingLocked: the meeting is no longer in a pending state
	ErrMeetingLocked = errors.New("meeting is not open for changes")
)

// MeetingService owns the approval lifecycle of advisory meetings
type MeetingService struct {
	store          storage.Store
	notifier       Notifier
	nearFutureDays int
	now            func() time.Time
	logger         *zap.Logger
}

// NewMeetingService creates a meeting service
func NewMeetingService(store storage.Store, notifier Notifier, nearFutureDays int, logger *zap.Logger) *MeetingService {
	return &MeetingService{
		store:          store,
		notifier:       notifier,
		nearFutureDays: nearFutureDays,
		now:            time.Now,
		logger:         logger,
	}
}

// initialStatus maps the requesting role to the meeting's starting state.
// Admin-created meetings skip negotiation entirely.
func initialStatus(requestedBy models.Role) models.MeetingStatus {
	switch requestedBy {
	case models.RoleStudent:
		return models.MeetingStatusAwaitingAcademicApproval
	case models.RoleAcademic:
		return models.MeetingStatusAwaitingStudentApproval
	default:
		return models.MeetingStatusApproved
	}
}

// MeetingInput carries the fields a caller may set on a meeting
type MeetingInput struct {
	ProjectID  string
	StudentID  string
	AcademicID string
	Title      string
	Time       time.Time
	Type       models.MeetingType
	Notes      string
}

// Create persists a new meeting request on behalf of the actor
func (s *MeetingService) Create(actor models.Actor, input MeetingInput) (*models.Meeting, error) {
	meeting := &models.Meeting{
		ProjectID:     input.ProjectID,
		StudentID:     input.StudentID,
		AcademicID:    input.AcademicID,
		Title:         input.Title,
		Time:          input.Time,
		Type:          input.Type,
		Notes:         input.Notes,
		Status:        initialStatus(actor.Role),
		RequestedBy:   actor.Role,
		LastUpdatedBy: actor.Role,
	}

	created, err := s.store.CreateMeeting(meeting)
	if err != nil {
		return nil, err
	}
	created.Bucket = s.BucketFor(created.Time)

	s.notifier.Notify(EventMeetingScheduled, created)
	s.logger.Info("meeting scheduled",
		zap.String("meeting_id", created.ID),
		zap.String("status", string(created.Status)),
		zap.String("requested_by", string(created.RequestedBy)))
	return created, nil
}

// Decide applies an approve or reject answer from one negotiating party.
// Only students and academics answer through this path, and only when the
// meeting is pending on their side and the counterpart acted last: nobody
// may approve or reject their own most recent change.
func (s *MeetingService) Decide(actor models.Actor, meetingID string, decision models.Decision) (*models.Meeting, error) {
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return nil, ErrInvalidDecision
	}
	if actor.Role != models.RoleStudent && actor.Role != models.RoleAcademic {
		return nil, ErrNotAuthorized
	}

	meeting, err := s.store.GetMeeting(meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.AccessibleBy(actor.Role, actor.ID) {
		return nil, ErrNotAuthorized
	}

	awaitingActor := (meeting.Status == models.MeetingStatusAwaitingAcademicApproval && actor.Role == models.RoleAcademic) ||
		(meeting.Status == models.MeetingStatusAwaitingStudentApproval && actor.Role == models.RoleStudent)
	if !awaitingActor || meeting.LastUpdatedBy != actor.Role.Counterpart() {
		return nil, ErrOutOfTurn
	}

	if decision == models.DecisionApprove {
		meeting.Status = models.MeetingStatusApproved
	} else {
		meeting.Status = models.MeetingStatusCancelled
	}
	meeting.LastUpdatedBy = actor.Role

	if err := s.store.UpdateMeeting(meeting); err != nil {
		return nil, err
	}
	meeting.Bucket = s.BucketFor(meeting.Time)

	s.notifier.Notify(EventMeetingStatusChanged, meeting)
	s.logger.Info("meeting decision applied",
		zap.String("meeting_id", meeting.ID),
		zap.String("decision", string(decision)),
		zap.String("status", string(meeting.Status)))
	return meeting, nil
}

// Edit updates a pending meeting's fields. A student or academic edit
// restarts the negotiation: the meeting goes back to waiting on the
// counterpart, whatever state it was in before. Approved meetings are
// locked; a fresh request is the only way to change one.
func (s *MeetingService) Edit(actor models.Actor, meetingID string, input MeetingInput) (*models.Meeting, error) {
	meeting, err := s.store.GetMeeting(meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.Status.IsPending() {
		return nil, ErrMeetingLocked
	}

	switch actor.Role {
	case models.RoleStudent:
		if meeting.StudentID != actor.ID {
			return nil, ErrNotAuthorized
		}
	case models.RoleAcademic:
		if meeting.AcademicID != actor.ID {
			return nil, ErrNotAuthorized
		}
	case models.RoleAdmin:
		// always allowed
	default:
		return nil, ErrNotAuthorized
	}

	if input.Title != "" {
		meeting.Title = input.Title
	}
	if !input.Time.IsZero() {
		meeting.Time = input.Time
	}
	if input.Type != "" {
		meeting.Type = input.Type
	}
	if input.Notes != "" {
		meeting.Notes = input.Notes
	}

	// Admin edits change fields only: status and last-updated-by stay as they
	// are so the pending negotiation can still be answered by its parties.
	priorStatus := meeting.Status
	switch actor.Role {
	case models.RoleStudent:
		meeting.Status = models.MeetingStatusAwaitingAcademicApproval
		meeting.LastUpdatedBy = actor.Role
	case models.RoleAcademic:
		meeting.Status = models.MeetingStatusAwaitingStudentApproval
		meeting.LastUpdatedBy = actor.Role
	}

	if err := s.store.UpdateMeeting(meeting); err != nil {
		return nil, err
	}
	meeting.Bucket = s.BucketFor(meeting.Time)

	if meeting.Status != priorStatus {
		s.notifier.Notify(EventMeetingStatusChanged, meeting)
	}
	return meeting, nil
}

// Get loads one meeting for an actor, with its bucket recomputed
func (s *MeetingService) Get(actor models.Actor, meetingID string) (*models.Meeting, error) {
	meeting, err := s.store.GetMeeting(meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.AccessibleBy(actor.Role, actor.ID) {
		return nil, ErrNotAuthorized
	}
	meeting.Bucket = s.BucketFor(meeting.Time)
	return meeting, nil
}

// Delete hard-removes a meeting the actor can access
func (s *MeetingService) Delete(actor models.Actor, meetingID string) error {
	meeting, err := s.store.GetMeeting(meetingID)
	if err != nil {
		return err
	}
	if !meeting.AccessibleBy(actor.Role, actor.ID) {
		return ErrNotAuthorized
	}
	return s.store.DeleteMeeting(meetingID)
}

var bucketOrder = map[models.TimeBucket]int{
	models.TimeBucketToday:      0,
	models.TimeBucketNearFuture: 1,
	models.TimeBucketFarFuture:  2,
	models.TimeBucketPast:       3,
}

// ListFor returns the meetings visible to the actor, buckets attached,
// sorted by bucket group and then by meeting time.
func (s *MeetingService) ListFor(actor models.Actor) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	var err error

	switch actor.Role {
	case models.RoleStudent:
		meetings, err = s.store.GetMeetingsByStudent(actor.ID)
	case models.RoleAcademic:
		meetings, err = s.store.GetMeetingsByAcademic(actor.ID)
	default:
		meetings, err = s.store.GetAllMeetings()
	}
	if err != nil {
		return nil, err
	}

	for _, meeting := range meetings {
		meeting.Bucket = s.BucketFor(meeting.Time)
	}
	sort.Slice(meetings, func(i, j int) bool {
		if bucketOrder[meetings[i].Bucket] != bucketOrder[meetings[j].Bucket] {
			return bucketOrder[meetings[i].Bucket] < bucketOrder[meetings[j].Bucket]
		}
		return meetings[i].Time.Before(meetings[j].Time)
	})
	return meetings, nil
}

// BucketFor classifies a meeting time against the current clock
func (s *MeetingService) BucketFor(t time.Time) models.TimeBucket {
	return TimeBucketFor(t, s.now(), s.nearFutureDays)
}

// TimeBucketFor classifies t relative to now: same calendar day is today,
// anything on an earlier day is past, up to nearDays ahead is near future,
// beyond that far future.
func TimeBucketFor(t, now time.Time, nearDays int) models.TimeBucket {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, t.Location())
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return models.TimeBucketToday
	case day.Before(today):
		return models.TimeBucketPast
	case !day.After(today.AddDate(0, 0, nearDays)):
		return models.TimeBucketNearFuture
	default:
		return models.TimeBucketFarFuture
	}
}
