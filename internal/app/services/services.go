package services

import (
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/repositories"
	"github.com/ardaseremet/clubhub/internal/pkg/auth"
	"github.com/ardaseremet/clubhub/internal/pkg/realtime"
)

// Services is the container for all service instances
type Services struct {
	Auth     *AuthService
	User     UserService
	Club     ClubService
	Chat     ChatService
	Post     PostService
	Story    StoryService
	Showcase ShowcaseService
}

// NewServices wires every service against the shared repositories, JWT
// service and realtime hub
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	hub *realtime.Hub,
	logger zerolog.Logger,
) *Services {
	return &Services{
		Auth: NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger),
		User: NewUserService(repos.UserRepository, logger),
		Club: NewClubService(repos.ClubRepository, repos.ClubMemberRepository, logger),
		Chat: NewChatService(
			repos.ChatRepository,
			repos.MessageRepository,
			repos.UserChatRepository,
			repos.UserRepository,
			repos.ClubMemberRepository,
			hub,
			logger,
		),
		Post:     NewPostService(repos.PostRepository, repos.ClubMemberRepository, repos.UserRepository, logger),
		Story:    NewStoryService(repos.StoryRepository, repos.ClubMemberRepository, logger),
		Showcase: NewShowcaseService(repos.PostRepository, repos.ClubRepository, logger),
	}
}
