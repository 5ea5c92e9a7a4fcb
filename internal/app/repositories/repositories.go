package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	ClubRepository       *ClubRepository
	ClubMemberRepository *ClubMemberRepository
	ChatRepository       *ChatRepository
	MessageRepository    *MessageRepository
	UserChatRepository   *UserChatRepository
	PostRepository       *PostRepository
	StoryRepository      *StoryRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		ClubRepository:       NewClubRepository(db),
		ClubMemberRepository: NewClubMemberRepository(db),
		ChatRepository:       NewChatRepository(db),
		MessageRepository:    NewMessageRepository(db),
		UserChatRepository:   NewUserChatRepository(db),
		PostRepository:       NewPostRepository(db),
		StoryRepository:      NewStoryRepository(db),
	}
}
