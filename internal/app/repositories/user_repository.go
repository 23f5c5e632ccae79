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

const userColumns = `id, email, password, first_name, last_name, batch, role_type,
	bio, company, job_title, location, linkedin_url, github_url, website_url, phone, skills,
	profile_visibility, mentorship_available, mentorship_expertise, mentorship_experience,
	mentorship_availability, is_active, last_login_at, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Batch,
		&user.RoleType,
		&user.Bio,
		&user.Company,
		&user.JobTitle,
		&user.Location,
		&user.LinkedinURL,
		&user.GithubURL,
		&user.WebsiteURL,
		&user.Phone,
		&user.Skills,
		&user.ProfileVisibility,
		&user.MentorshipAvailable,
		&user.MentorshipExpertise,
		&user.MentorshipExperience,
		&user.MentorshipAvailability,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, batch, role_type, skills,
			profile_visibility, mentorship_expertise)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	expertise := user.MentorshipExpertise
	if expertise == nil {
		expertise = []string{}
	}

	var id int64
	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Batch,
		user.RoleType,
		skills,
		user.ProfileVisibility,
		expertise,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// FindByID retrieves a user by id
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetAll retrieves users matching the filter with visibility gating applied
// in the query itself. A nil viewerID means an anonymous caller.
func (r *UserRepository) GetAll(ctx context.Context, filter *dto.UserFilterRequest, viewerID *int64) ([]models.User, int64, error) {
	builder := squirrel.Select(userColumns, "COUNT(*) OVER() AS total_count").
		From("users").
		Where("is_active = TRUE").
		PlaceholderFormat(squirrel.Dollar)

	// Visibility tiers: anonymous callers see PUBLIC; authenticated callers
	// additionally see ALUMNI_ONLY; owners always see themselves.
	if viewerID == nil {
		builder = builder.Where("profile_visibility = ?", models.VisibilityPublic)
	} else {
		builder = builder.Where(
			"(profile_visibility IN (?, ?) OR id = ?)",
			models.VisibilityPublic, models.VisibilityAlumniOnly, *viewerID,
		)
	}

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(
			"(first_name ILIKE ? OR last_name ILIKE ? OR company ILIKE ? OR EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE ?))",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Batch != nil {
		builder = builder.Where("batch = ?", *filter.Batch)
	}
	if filter.Location != nil && *filter.Location != "" {
		builder = builder.Where("location ILIKE ?", "%"+*filter.Location+"%")
	}
	if filter.Skill != nil && *filter.Skill != "" {
		builder = builder.Where("? = ANY(skills)", *filter.Skill)
	}
	if filter.MentorshipAvailable != nil {
		builder = builder.Where("mentorship_available = ?", *filter.MentorshipAvailable)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)
	builder = builder.OrderBy("id").Limit(uint64(filter.Limit)).Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Password,
			&user.FirstName,
			&user.LastName,
			&user.Batch,
			&user.RoleType,
			&user.Bio,
			&user.Company,
			&user.JobTitle,
			&user.Location,
			&user.LinkedinURL,
			&user.GithubURL,
			&user.WebsiteURL,
			&user.Phone,
			&user.Skills,
			&user.ProfileVisibility,
			&user.MentorshipAvailable,
			&user.MentorshipExpertise,
			&user.MentorshipExperience,
			&user.MentorshipAvailability,
			&user.IsActive,
			&user.LastLoginAt,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}
	return users, total, nil
}

// UpdateProfile persists the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, batch = $3, bio = $4, company = $5,
			job_title = $6, location = $7, linkedin_url = $8, github_url = $9,
			website_url = $10, phone = $11, skills = $12, updated_at = NOW()
		WHERE id = $13
	`

	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}

	tag, err := r.db.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.Batch,
		user.Bio,
		user.Company,
		user.JobTitle,
		user.Location,
		user.LinkedinURL,
		user.GithubURL,
		user.WebsiteURL,
		user.Phone,
		skills,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePreferences persists visibility and mentorship opt-in
func (r *UserRepository) UpdatePreferences(ctx context.Context, userID int64, visibility models.ProfileVisibility, mentorshipAvailable bool) error {
	query := `
		UPDATE users
		SET profile_visibility = $1, mentorship_available = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, visibility, mentorshipAvailable, userID)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateMentorshipProfile persists the mentorship section of a profile
func (r *UserRepository) UpdateMentorshipProfile(ctx context.Context, userID int64, expertise []string, experience *string, availability *models.MentorAvailability) error {
	if expertise == nil {
		expertise = []string{}
	}

	query := `
		UPDATE users
		SET mentorship_expertise = $1, mentorship_experience = $2,
			mentorship_availability = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, expertise, experience, availability, userID)
	if err != nil {
		return fmt.Errorf("failed to update mentorship profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// RecordLogin stamps the last login time
func (r *UserRepository) RecordLogin(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, userID)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// Deactivate flips the is_active flag. Users are never physically removed.
func (r *UserRepository) Deactivate(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
