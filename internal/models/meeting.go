package models

import "time"

// MeetingStatus tracks the negotiation state of an advisory meeting
type MeetingStatus string

const (
	MeetingStatusAwaitingAcademicApproval MeetingStatus = "awaiting_academic_approval"
	MeetingStatusAwaitingStudentApproval  MeetingStatus = "awaiting_student_approval"
	MeetingStatusApproved                 MeetingStatus = "approved"
	MeetingStatusCancelled                MeetingStatus = "cancelled"
	// Completed is part of the status vocabulary but no transition produces it
	// yet; it is kept so persisted rows using it remain readable.
	MeetingStatusCompleted MeetingStatus = "completed"
)

// IsPending reports whether the meeting still waits on one party's approval.
func (s MeetingStatus) IsPending() bool {
	return s == MeetingStatusAwaitingAcademicApproval || s == MeetingStatusAwaitingStudentApproval
}

// MeetingType distinguishes how the meeting is held
type MeetingType string

const (
	MeetingTypeOnline   MeetingType = "online"
	MeetingTypeInPerson MeetingType = "in_person"
)

// Decision is a party's answer to a pending meeting request
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// TimeBucket classifies a meeting time relative to now. Display/sorting aid
// only; it never gates a transition.
type TimeBucket string

const (
	TimeBucketPast       TimeBucket = "past"
	TimeBucketToday      TimeBucket = "today"
	TimeBucketNearFuture TimeBucket = "near_future"
	TimeBucketFarFuture  TimeBucket = "far_future"
)

// Meeting is an advisory meeting request between a student and an academic
type Meeting struct {
	ID         string `json:"id" gorm:"primaryKey"`
	ProjectID  string `json:"project_id"`
	AcademicID string `json:"academic_id"`
	StudentID  string `json:"student_id"`

	Title string      `json:"title"`
	Time  time.Time   `json:"time"`
	Type  MeetingType `json:"type"`
	Notes string      `json:"notes"`

	Status        MeetingStatus `json:"status"`
	RequestedBy   Role          `json:"requested_by"`
	LastUpdatedBy Role          `json:"last_updated_by"`

	// Recomputed from Time whenever the meeting is read or listed, never stored
	Bucket TimeBucket `json:"bucket" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessibleBy reports whether the actor may read or delete this meeting.
func (m *Meeting) AccessibleBy(role Role, actorID string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleStudent:
		return m.StudentID == actorID
	case RoleAcademic:
		return m.AcademicID == actorID
	default:
		return false
	}
}
