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

// EventRepository handles database operations for events and their owned
// attendee and comment rows.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.title, e.description, e.event_date, e.start_time, e.end_time,
	e.location, e.organizer_id, e.max_attendees, e.status, e.is_public, e.requires_approval,
	e.registration_deadline, e.created_at, e.updated_at`

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (title, description, event_date, start_time, end_time, location,
			organizer_id, max_attendees, status, is_public, requires_approval, registration_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.EventDate,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.OrganizerID,
		event.MaxAttendees,
		event.Status,
		event.IsPublic,
		event.RequiresApproval,
		event.RegistrationDeadline,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	return id, nil
}

// GetByID retrieves an event with its registered attendee count
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM event_attendees a
				WHERE a.event_id = e.id AND a.status = 'REGISTERED') AS attendee_count
		FROM events e
		WHERE e.id = $1
	`, eventColumns)

	var event models.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.StartTime,
		&event.EndTime,
		&event.Location,
		&event.OrganizerID,
		&event.MaxAttendees,
		&event.Status,
		&event.IsPublic,
		&event.RequiresApproval,
		&event.RegistrationDeadline,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.AttendeeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return &event, nil
}

// GetAll retrieves events matching the filter. Anonymous callers only see
// public published events.
func (r *EventRepository) GetAll(ctx context.Context, filter *dto.EventFilterRequest, authenticated bool) ([]models.Event, int64, error) {
	builder := squirrel.Select(eventColumns,
		`(SELECT COUNT(*) FROM event_attendees a
			WHERE a.event_id = e.id AND a.status = 'REGISTERED') AS attendee_count`,
		"COUNT(*) OVER() AS total_count").
		From("events e").
		PlaceholderFormat(squirrel.Dollar)

	if !authenticated {
		builder = builder.Where("e.is_public = TRUE").Where("e.status = ?", models.EventStatusPublished)
	}

	if filter.Status != nil && *filter.Status != "" {
		builder = builder.Where("e.status = ?", *filter.Status)
	}
	if filter.OrganizerID != nil {
		builder = builder.Where("e.organizer_id = ?", *filter.OrganizerID)
	}
	if filter.Upcoming != nil && *filter.Upcoming {
		builder = builder.Where("e.event_date >= NOW()")
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where("(e.title ILIKE ? OR e.description ILIKE ? OR e.location ILIKE ?)",
			pattern, pattern, pattern)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	builder = builder.OrderBy("e.event_date ASC").Limit(uint64(filter.Limit)).Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	var total int64
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.EventDate,
			&event.StartTime,
			&event.EndTime,
			&event.Location,
			&event.OrganizerID,
			&event.MaxAttendees,
			&event.Status,
			&event.IsPublic,
			&event.RequiresApproval,
			&event.RegistrationDeadline,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.AttendeeCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	if events == nil {
		events = []models.Event{}
	}
	return events, total, nil
}

// Update persists the mutable event fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, event_date = $3, start_time = $4, end_time = $5,
			location = $6, max_attendees = $7, status = $8, is_public = $9,
			requires_approval = $10, registration_deadline = $11, updated_at = NOW()
		WHERE id = $12
	`

	tag, err := r.db.Exec(ctx, query,
		event.Title,
		event.Description,
		event.EventDate,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.MaxAttendees,
		event.Status,
		event.IsPublic,
		event.RequiresApproval,
		event.RegistrationDeadline,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// UpdateStatus changes only the lifecycle status
func (r *EventRepository) UpdateStatus(ctx context.Context, eventID int64, status models.EventStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`, status, eventID)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event outright. Callers must have verified that the
// event has no attendees; otherwise soft-cancel via UpdateStatus.
func (r *EventRepository) Delete(ctx context.Context, eventID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// --- Attendees ---

// CountRegistered counts attendees with status REGISTERED
func (r *EventRepository) CountRegistered(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_attendees WHERE event_id = $1 AND status = 'REGISTERED'`,
		eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendees: %w", err)
	}
	return count, nil
}

// HasAttendees reports whether any attendee row exists for the event
func (r *EventRepository) HasAttendees(ctx context.Context, eventID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM event_attendees WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendees: %w", err)
	}
	return exists, nil
}

// FindAttendee retrieves a registration row for an event/user pair
func (r *EventRepository) FindAttendee(ctx context.Context, eventID, userID int64) (*models.EventAttendee, error) {
	query := `
		SELECT id, event_id, user_id, status, registered_at
		FROM event_attendees
		WHERE event_id = $1 AND user_id = $2
	`

	var attendee models.EventAttendee
	err := r.db.QueryRow(ctx, query, eventID, userID).Scan(
		&attendee.ID,
		&attendee.EventID,
		&attendee.UserID,
		&attendee.Status,
		&attendee.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to find attendee: %w", err)
	}
	return &attendee, nil
}

// AddAttendee appends a registration row with status REGISTERED
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, userID int64) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id, status, registered_at)
		VALUES ($1, $2, 'REGISTERED', $3)
	`
	if _, err := r.db.Exec(ctx, query, eventID, userID, time.Now()); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "event_attendees_event_user_key") {
			return apperrors.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to add attendee: %w", err)
	}
	return nil
}

// RemoveAttendee deletes a registration row entirely. Unregistering is a
// hard removal, unlike the soft rules elsewhere.
func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotRegistered
	}
	return nil
}

// UpdateAttendeeStatus flips a single registration's status
func (r *EventRepository) UpdateAttendeeStatus(ctx context.Context, eventID, userID int64, status models.AttendeeStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE event_attendees SET status = $1 WHERE event_id = $2 AND user_id = $3`,
		status, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to update attendee status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotRegistered
	}
	return nil
}

// GetAttendees lists all attendee rows of an event with basic user info
func (r *EventRepository) GetAttendees(ctx context.Context, eventID int64) ([]models.EventAttendee, error) {
	query := `
		SELECT a.id, a.event_id, a.user_id, a.status, a.registered_at,
			u.id, u.first_name, u.last_name, u.email, u.batch, u.company
		FROM event_attendees a
		JOIN users u ON a.user_id = u.id
		WHERE a.event_id = $1
		ORDER BY a.registered_at ASC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendees: %w", err)
	}
	defer rows.Close()

	attendees := []models.EventAttendee{}
	for rows.Next() {
		var attendee models.EventAttendee
		var user models.User
		err := rows.Scan(
			&attendee.ID,
			&attendee.EventID,
			&attendee.UserID,
			&attendee.Status,
			&attendee.RegisteredAt,
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Batch,
			&user.Company,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendee row: %w", err)
		}
		attendee.User = &user
		attendees = append(attendees, attendee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendee rows: %w", err)
	}
	return attendees, nil
}

// GetRegistrationsForUser lists events the user has an attendee row on
func (r *EventRepository) GetRegistrationsForUser(ctx context.Context, userID int64) ([]models.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM event_attendees c
				WHERE c.event_id = e.id AND c.status = 'REGISTERED') AS attendee_count
		FROM events e
		JOIN event_attendees a ON a.event_id = e.id
		WHERE a.user_id = $1
		ORDER BY e.event_date ASC
	`, eventColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.EventDate,
			&event.StartTime,
			&event.EndTime,
			&event.Location,
			&event.OrganizerID,
			&event.MaxAttendees,
			&event.Status,
			&event.IsPublic,
			&event.RequiresApproval,
			&event.RegistrationDeadline,
			&event.CreatedAt,
			&event.UpdatedAt,
			&event.AttendeeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return events, nil
}

// --- Comments ---

// AddComment appends a comment row and returns its id. Comments are
// append-only and unmoderated.
func (r *EventRepository) AddComment(ctx context.Context, comment *models.EventComment) (int64, error) {
	query := `
		INSERT INTO event_comments (event_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, comment.EventID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment.ID, nil
}

// GetComments lists an event's comments with basic user info
func (r *EventRepository) GetComments(ctx context.Context, eventID int64) ([]models.EventComment, error) {
	query := `
		SELECT c.id, c.event_id, c.user_id, c.content, c.created_at,
			u.id, u.first_name, u.last_name, u.email, u.batch, u.company
		FROM event_comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.event_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.EventComment{}
	for rows.Next() {
		var comment models.EventComment
		var user models.User
		err := rows.Scan(
			&comment.ID,
			&comment.EventID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Batch,
			&user.Company,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comment.User = &user
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}
