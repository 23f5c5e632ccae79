package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	User       *UserRepository
	Token      *TokenRepository
	Event      *EventRepository
	Chat       *ChatRepository
	Mentorship *MentorshipRepository
}

// NewRepositories creates all repositories over a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Token:      NewTokenRepository(db),
		Event:      NewEventRepository(db),
		Chat:       NewChatRepository(db),
		Mentorship: NewMentorshipRepository(db),
	}
}
