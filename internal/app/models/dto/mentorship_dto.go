package dto

import (
	"time"

	"github.com/emre/alumnihub/internal/app/models"
)

// --- Request DTOs ---

// CreateMentorshipRequestRequest represents a mentee's new mentorship request
type CreateMentorshipRequestRequest struct {
	MentorID             int64    `json:"mentorId" binding:"required"`
	Subject              string   `json:"subject" binding:"required,min=3,max=200"`
	Message              string   `json:"message" binding:"required,min=10,max=5000"`
	MentorshipType       string   `json:"mentorshipType" binding:"required,oneof=CAREER TECHNICAL ACADEMIC STARTUP"`
	PreferredMeetingType string   `json:"preferredMeetingType" binding:"required,oneof=VIDEO IN_PERSON CHAT"`
	Timeline             *string  `json:"timeline,omitempty" binding:"omitempty,max=200"`
	Goals                []string `json:"goals,omitempty" binding:"omitempty,max=20,dive,min=1,max=200"`
	Expertise            []string `json:"expertise,omitempty" binding:"omitempty,max=20,dive,min=1,max=60"`
}

// RespondMentorshipRequest carries the mentor's accept/decline response
type RespondMentorshipRequest struct {
	ResponseMessage *string `json:"responseMessage,omitempty" binding:"omitempty,max=2000"`
}

// ScheduleMeetingRequest appends a meeting to an accepted request
type ScheduleMeetingRequest struct {
	MeetingDate     time.Time `json:"meetingDate" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,min=15,max=480"`
	MeetingLink     *string   `json:"meetingLink,omitempty" binding:"omitempty,url"`
	Notes           *string   `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

// SubmitFeedbackRequest records one party's rating and review
type SubmitFeedbackRequest struct {
	Rating int     `json:"rating" binding:"required,min=1,max=5"`
	Review *string `json:"review,omitempty" binding:"omitempty,max=2000"`
}

// MentorshipFilterRequest carries list filters for mentorship requests
type MentorshipFilterRequest struct {
	Role   *string // "mentee" or "mentor"
	Status *string
	Page   int
	Limit  int
}

// --- Response DTOs ---

// MentorshipFeedbackResponse groups both sides' feedback
type MentorshipFeedbackResponse struct {
	MenteeRating *int    `json:"menteeRating,omitempty"`
	MenteeReview *string `json:"menteeReview,omitempty"`
	MentorRating *int    `json:"mentorRating,omitempty"`
	MentorReview *string `json:"mentorReview,omitempty"`
}

// MentorshipMeetingResponse is a single scheduled meeting
type MentorshipMeetingResponse struct {
	ID              int64     `json:"id"`
	MeetingDate     time.Time `json:"meetingDate"`
	DurationMinutes int       `json:"durationMinutes"`
	MeetingLink     *string   `json:"meetingLink,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedBy       int64     `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MentorshipRequestResponse is the full projection of a request
type MentorshipRequestResponse struct {
	ID                   int64                       `json:"id"`
	MenteeID             int64                       `json:"menteeId"`
	MentorID             int64                       `json:"mentorId"`
	Mentee               *UserBasicResponse          `json:"mentee,omitempty"`
	Mentor               *UserBasicResponse          `json:"mentor,omitempty"`
	Subject              string                      `json:"subject"`
	Message              string                      `json:"message"`
	Status               string                      `json:"status"`
	MentorshipType       string                      `json:"mentorshipType"`
	PreferredMeetingType string                      `json:"preferredMeetingType"`
	Timeline             *string                     `json:"timeline,omitempty"`
	Goals                []string                    `json:"goals"`
	Expertise            []string                    `json:"expertise"`
	ResponseMessage      *string                     `json:"responseMessage,omitempty"`
	RespondedAt          *time.Time                  `json:"respondedAt,omitempty"`
	Meetings             []MentorshipMeetingResponse `json:"meetings"`
	Feedback             *MentorshipFeedbackResponse `json:"feedback,omitempty"`
	CreatedAt            time.Time                   `json:"createdAt"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

// MentorshipRequestListResponse is a paginated list of requests
type MentorshipRequestListResponse struct {
	Requests   []MentorshipRequestResponse `json:"requests"`
	Pagination PaginationInfo              `json:"pagination"`
}

// ToMentorshipMeetingResponse transforms a models.MentorshipMeeting
func ToMentorshipMeetingResponse(meeting *models.MentorshipMeeting) MentorshipMeetingResponse {
	return MentorshipMeetingResponse{
		ID:              meeting.ID,
		MeetingDate:     meeting.MeetingDate,
		DurationMinutes: meeting.DurationMinutes,
		MeetingLink:     meeting.MeetingLink,
		Notes:           meeting.Notes,
		Status:          string(meeting.Status),
		CreatedBy:       meeting.CreatedBy,
		CreatedAt:       meeting.CreatedAt,
	}
}

// ToMentorshipRequestResponse transforms a models.MentorshipRequest
func ToMentorshipRequestResponse(request *models.MentorshipRequest) MentorshipRequestResponse {
	resp := MentorshipRequestResponse{
		ID:                   request.ID,
		MenteeID:             request.MenteeID,
		MentorID:             request.MentorID,
		Subject:              request.Subject,
		Message:              request.Message,
		Status:               string(request.Status),
		MentorshipType:       string(request.MentorshipType),
		PreferredMeetingType: string(request.PreferredMeetingType),
		Timeline:             request.Timeline,
		Goals:                request.Goals,
		Expertise:            request.Expertise,
		ResponseMessage:      request.ResponseMessage,
		RespondedAt:          request.RespondedAt,
		CreatedAt:            request.CreatedAt,
		UpdatedAt:            request.UpdatedAt,
	}

	if resp.Goals == nil {
		resp.Goals = []string{}
	}
	if resp.Expertise == nil {
		resp.Expertise = []string{}
	}

	if request.Mentee != nil {
		resp.Mentee = ToUserBasicResponse(request.Mentee)
	}
	if request.Mentor != nil {
		resp.Mentor = ToUserBasicResponse(request.Mentor)
	}

	resp.Meetings = make([]MentorshipMeetingResponse, 0, len(request.Meetings))
	for i := range request.Meetings {
		resp.Meetings = append(resp.Meetings, ToMentorshipMeetingResponse(&request.Meetings[i]))
	}

	if request.MenteeRating != nil || request.MentorRating != nil {
		resp.Feedback = &MentorshipFeedbackResponse{
			MenteeRating: request.MenteeRating,
			MenteeReview: request.MenteeReview,
			MentorRating: request.MentorRating,
			MentorReview: request.MentorReview,
		}
	}

	return resp
}
