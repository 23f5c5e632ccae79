package models

import "time"

// MentorshipStatus represents the lifecycle state of a mentorship request
type MentorshipStatus string

const (
	MentorshipStatusPending   MentorshipStatus = "PENDING"
	MentorshipStatusAccepted  MentorshipStatus = "ACCEPTED"
	MentorshipStatusDeclined  MentorshipStatus = "DECLINED"
	MentorshipStatusCompleted MentorshipStatus = "COMPLETED"
	MentorshipStatusCancelled MentorshipStatus = "CANCELLED"
)

// MentorshipType classifies what the mentee is after
type MentorshipType string

const (
	MentorshipTypeCareer    MentorshipType = "CAREER"
	MentorshipTypeTechnical MentorshipType = "TECHNICAL"
	MentorshipTypeAcademic  MentorshipType = "ACADEMIC"
	MentorshipTypeStartup   MentorshipType = "STARTUP"
)

// MeetingType is the mentee's preferred meeting format
type MeetingType string

const (
	MeetingTypeVideo    MeetingType = "VIDEO"
	MeetingTypeInPerson MeetingType = "IN_PERSON"
	MeetingTypeChat     MeetingType = "CHAT"
)

// MeetingStatus represents the state of a scheduled meeting
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "SCHEDULED"
	MeetingStatusCompleted MeetingStatus = "COMPLETED"
	MeetingStatusCancelled MeetingStatus = "CANCELLED"
)

// mentorshipTransitions enumerates the only legal status edges:
// PENDING -> ACCEPTED | DECLINED | CANCELLED, ACCEPTED -> COMPLETED.
// Every other state is terminal.
var mentorshipTransitions = map[MentorshipStatus][]MentorshipStatus{
	MentorshipStatusPending:  {MentorshipStatusAccepted, MentorshipStatusDeclined, MentorshipStatusCancelled},
	MentorshipStatusAccepted: {MentorshipStatusCompleted},
}

// CanTransition reports whether the status graph admits the edge from -> to.
func (s MentorshipStatus) CanTransition(to MentorshipStatus) bool {
	for _, next := range mentorshipTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s MentorshipStatus) IsTerminal() bool {
	return len(mentorshipTransitions[s]) == 0
}

// IsActive reports whether the request still blocks a new request for the
// same (mentee, mentor) pair. At most one PENDING or ACCEPTED request may
// exist per ordered pair at a time.
func (s MentorshipStatus) IsActive() bool {
	return s == MentorshipStatusPending || s == MentorshipStatusAccepted
}

// MentorshipRequest defines the model based on the 'mentorship_requests' table
type MentorshipRequest struct {
	ID                   int64            `json:"id" db:"id"`
	MenteeID             int64            `json:"menteeId" db:"mentee_id"`
	MentorID             int64            `json:"mentorId" db:"mentor_id"`
	Subject              string           `json:"subject" db:"subject"`
	Message              string           `json:"message" db:"message"`
	Status               MentorshipStatus `json:"status" db:"status"`
	MentorshipType       MentorshipType   `json:"mentorshipType" db:"mentorship_type"`
	PreferredMeetingType MeetingType      `json:"preferredMeetingType" db:"preferred_meeting_type"`
	Timeline             *string          `json:"timeline,omitempty" db:"timeline"`
	Goals                []string         `json:"goals" db:"goals"`
	Expertise            []string         `json:"expertise" db:"expertise"`
	ResponseMessage      *string          `json:"responseMessage,omitempty" db:"response_message"`
	RespondedAt          *time.Time       `json:"respondedAt,omitempty" db:"responded_at"`

	// Feedback, settable once per side after completion
	MenteeRating     *int       `json:"menteeRating,omitempty" db:"mentee_rating"`
	MenteeReview     *string    `json:"menteeReview,omitempty" db:"mentee_review"`
	MenteeFeedbackAt *time.Time `json:"menteeFeedbackAt,omitempty" db:"mentee_feedback_at"`
	MentorRating     *int       `json:"mentorRating,omitempty" db:"mentor_rating"`
	MentorReview     *string    `json:"mentorReview,omitempty" db:"mentor_review"`
	MentorFeedbackAt *time.Time `json:"mentorFeedbackAt,omitempty" db:"mentor_feedback_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Mentee   *User               `json:"mentee,omitempty"`
	Mentor   *User               `json:"mentor,omitempty"`
	Meetings []MentorshipMeeting `json:"meetings,omitempty"`
}

// IsParty reports whether the user is the mentee or the mentor of record.
func (r *MentorshipRequest) IsParty(userID int64) bool {
	return r.MenteeID == userID || r.MentorID == userID
}

// HasFeedbackFrom reports whether the given party already submitted feedback.
func (r *MentorshipRequest) HasFeedbackFrom(userID int64) bool {
	if userID == r.MenteeID {
		return r.MenteeRating != nil
	}
	if userID == r.MentorID {
		return r.MentorRating != nil
	}
	return false
}

// MentorshipMeeting is an owned child row of a request ('mentorship_meetings' table)
type MentorshipMeeting struct {
	ID              int64         `json:"id" db:"id"`
	RequestID       int64         `json:"requestId" db:"request_id"`
	MeetingDate     time.Time     `json:"meetingDate" db:"meeting_date"`
	DurationMinutes int           `json:"durationMinutes" db:"duration_minutes"`
	MeetingLink     *string       `json:"meetingLink,omitempty" db:"meeting_link"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	Status          MeetingStatus `json:"status" db:"status"`
	CreatedBy       int64         `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
}
