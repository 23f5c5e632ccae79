package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/alumnihub/internal/app/models"
	"github.com/emre/alumnihub/internal/app/models/dto"
	"github.com/emre/alumnihub/internal/pkg/apperrors"
	"github.com/emre/alumnihub/internal/pkg/dberrors"
)

// MentorshipRepository handles database operations for mentorship requests
// and their owned meeting rows.
type MentorshipRepository struct {
	db *pgxpool.Pool
}

// NewMentorshipRepository creates a new MentorshipRepository
func NewMentorshipRepository(db *pgxpool.Pool) *MentorshipRepository {
	return &MentorshipRepository{db: db}
}

const mentorshipColumns = `r.id, r.mentee_id, r.mentor_id, r.subject, r.message, r.status,
	r.mentorship_type, r.preferred_meeting_type, r.timeline, r.goals, r.expertise,
	r.response_message, r.responded_at,
	r.mentee_rating, r.mentee_review, r.mentee_feedback_at,
	r.mentor_rating, r.mentor_review, r.mentor_feedback_at,
	r.created_at, r.updated_at`

func scanMentorshipRequest(row pgx.Row) (*models.MentorshipRequest, error) {
	var req models.MentorshipRequest
	err := row.Scan(
		&req.ID,
		&req.MenteeID,
		&req.MentorID,
		&req.Subject,
		&req.Message,
		&req.Status,
		&req.MentorshipType,
		&req.PreferredMeetingType,
		&req.Timeline,
		&req.Goals,
		&req.Expertise,
		&req.ResponseMessage,
		&req.RespondedAt,
		&req.MenteeRating,
		&req.MenteeReview,
		&req.MenteeFeedbackAt,
		&req.MentorRating,
		&req.MentorReview,
		&req.MentorFeedbackAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a request in PENDING state. The partial unique index on
// (mentee_id, mentor_id) rejects a second live request for the same pair.
func (r *MentorshipRepository) Create(ctx context.Context, req *models.MentorshipRequest) (int64, error) {
	query := `
		INSERT INTO mentorship_requests (mentee_id, mentor_id, subject, message, status,
			mentorship_type, preferred_meeting_type, timeline, goals, expertise)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	goals := req.Goals
	if goals == nil {
		goals = []string{}
	}
	expertise := req.Expertise
	if expertise == nil {
		expertise = []string{}
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		req.MenteeID,
		req.MentorID,
		req.Subject,
		req.Message,
		models.MentorshipStatusPending,
		req.MentorshipType,
		req.PreferredMeetingType,
		req.Timeline,
		goals,
		expertise,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "mentorship_requests_active_pair_key") {
			return 0, apperrors.ErrActiveRequestExists
		}
		return 0, fmt.Errorf("failed to create mentorship request: %w", err)
	}
	return id, nil
}

// GetByID retrieves a request with both parties and its meetings populated
func (r *MentorshipRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM mentorship_requests r WHERE r.id = $1`, mentorshipColumns)

	req, err := scanMentorshipRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get mentorship request: %w", err)
	}

	if err := r.attachParties(ctx, req); err != nil {
		return nil, err
	}

	meetings, err := r.GetMeetings(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Meetings = meetings
	return req, nil
}

func (r *MentorshipRepository) attachParties(ctx context.Context, req *models.MentorshipRequest) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, email, batch, company
		FROM users
		WHERE id = ANY($1)
	`, []int64{req.MenteeID, req.MentorID})
	if err != nil {
		return fmt.Errorf("failed to query request parties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Batch,
			&user.Company,
		)
		if err != nil {
			return fmt.Errorf("failed to scan party row: %w", err)
		}
		switch user.ID {
		case req.MenteeID:
			u := user
			req.Mentee = &u
		case req.MentorID:
			u := user
			req.Mentor = &u
		}
	}
	return rows.Err()
}

// GetAllForUser retrieves requests where the user is a party, filtered by
// role and status.
func (r *MentorshipRepository) GetAllForUser(ctx context.Context, userID int64, filter *dto.MentorshipFilterRequest) ([]models.MentorshipRequest, int64, error) {
	builder := squirrel.Select(mentorshipColumns, "COUNT(*) OVER() AS total_count").
		From("mentorship_requests r").
		PlaceholderFormat(squirrel.Dollar)

	switch {
	case filter.Role != nil && *filter.Role == "mentor":
		builder = builder.Where("r.mentor_id = ?", userID)
	case filter.Role != nil && *filter.Role == "mentee":
		builder = builder.Where("r.mentee_id = ?", userID)
	default:
		builder = builder.Where("(r.mentee_id = ? OR r.mentor_id = ?)", userID, userID)
	}

	if filter.Status != nil && *filter.Status != "" {
		builder = builder.Where("r.status = ?", *filter.Status)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	builder = builder.OrderBy("r.created_at DESC").Limit(uint64(filter.Limit)).Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query mentorship requests: %w", err)
	}
	defer rows.Close()

	requests := []models.MentorshipRequest{}
	var total int64
	for rows.Next() {
		var req models.MentorshipRequest
		err := rows.Scan(
			&req.ID,
			&req.MenteeID,
			&req.MentorID,
			&req.Subject,
			&req.Message,
			&req.Status,
			&req.MentorshipType,
			&req.PreferredMeetingType,
			&req.Timeline,
			&req.Goals,
			&req.Expertise,
			&req.ResponseMessage,
			&req.RespondedAt,
			&req.MenteeRating,
			&req.MenteeReview,
			&req.MenteeFeedbackAt,
			&req.MentorRating,
			&req.MentorReview,
			&req.MentorFeedbackAt,
			&req.CreatedAt,
			&req.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan mentorship row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating mentorship rows: %w", err)
	}
	return requests, total, nil
}

// UpdateStatus moves a request to a new status, optionally recording the
// mentor's response message. Legality of the transition is the service's
// concern; this just persists it.
func (r *MentorshipRepository) UpdateStatus(ctx context.Context, requestID int64, status models.MentorshipStatus, responseMessage *string, respondedAt *time.Time) error {
	query := `
		UPDATE mentorship_requests
		SET status = $1,
			response_message = COALESCE($2, response_message),
			responded_at = COALESCE($3, responded_at),
			updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, status, responseMessage, respondedAt, requestID)
	if err != nil {
		return fmt.Errorf("failed to update mentorship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// SetMenteeFeedback records the mentee's one-time rating and review
func (r *MentorshipRepository) SetMenteeFeedback(ctx context.Context, requestID int64, rating int, review *string, at time.Time) error {
	query := `
		UPDATE mentorship_requests
		SET mentee_rating = $1, mentee_review = $2, mentee_feedback_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, rating, review, at, requestID)
	if err != nil {
		return fmt.Errorf("failed to set mentee feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// SetMentorFeedback records the mentor's one-time rating and review
func (r *MentorshipRepository) SetMentorFeedback(ctx context.Context, requestID int64, rating int, review *string, at time.Time) error {
	query := `
		UPDATE mentorship_requests
		SET mentor_rating = $1, mentor_review = $2, mentor_feedback_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, rating, review, at, requestID)
	if err != nil {
		return fmt.Errorf("failed to set mentor feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// AddMeeting appends a scheduled meeting to a request
func (r *MentorshipRepository) AddMeeting(ctx context.Context, meeting *models.MentorshipMeeting) (int64, error) {
	query := `
		INSERT INTO mentorship_meetings (request_id, meeting_date, duration_minutes,
			meeting_link, notes, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		meeting.RequestID,
		meeting.MeetingDate,
		meeting.DurationMinutes,
		meeting.MeetingLink,
		meeting.Notes,
		models.MeetingStatusScheduled,
		meeting.CreatedBy,
	).Scan(&meeting.ID, &meeting.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to add meeting: %w", err)
	}
	return meeting.ID, nil
}

// GetMeetings lists a request's meetings in chronological order
func (r *MentorshipRepository) GetMeetings(ctx context.Context, requestID int64) ([]models.MentorshipMeeting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, request_id, meeting_date, duration_minutes, meeting_link, notes,
			status, created_by, created_at
		FROM mentorship_meetings
		WHERE request_id = $1
		ORDER BY meeting_date ASC
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer rows.Close()

	meetings := []models.MentorshipMeeting{}
	for rows.Next() {
		var meeting models.MentorshipMeeting
		err := rows.Scan(
			&meeting.ID,
			&meeting.RequestID,
			&meeting.MeetingDate,
			&meeting.DurationMinutes,
			&meeting.MeetingLink,
			&meeting.Notes,
			&meeting.Status,
			&meeting.CreatedBy,
			&meeting.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting row: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}
	return meetings, nil
}
