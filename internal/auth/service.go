package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/johotel/hotel-api/internal/directory"
	"github.com/johotel/hotel-api/internal/domain"
	"github.com/johotel/hotel-api/internal/repository"
	"github.com/johotel/hotel-api/pkg/auth"
	"github.com/johotel/hotel-api/pkg/config"
	"github.com/johotel/hotel-api/pkg/events"
	"github.com/johotel/hotel-api/pkg/logger"
)

// Service is the authentication gateway. Local-account credentials are
// verified first; accounts without a local credential fall through to the
// staff directory. Either path ends in a signed token.
type Service interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type service struct {
	users      repository.UserRepository
	dir        directory.Client
	roles      *RoleResolver
	issuer     *auth.Issuer
	eventBus   events.Publisher
	mailDomain string
}

func NewService(
	users repository.UserRepository,
	dir directory.Client,
	roles *RoleResolver,
	issuer *auth.Issuer,
	eventBus events.Publisher,
	cfg *config.Config,
) Service {
	return &service{
		users:      users,
		dir:        dir,
		roles:      roles,
		issuer:     issuer,
		eventBus:   eventBus,
		mailDomain: cfg.Directory.MailDomain,
	}
}

func (s *service) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, req.Username, req.Phone, passwordHash, domain.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.eventBus != nil {
		event := events.UserRegisteredEvent{
			UserID:    user.ID,
			Email:     user.Email,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		}
		if err := s.eventBus.Publish(ctx, events.UserRegistered, event); err != nil {
			logger.ErrorContext(ctx, "Failed to publish user registered event",
				"error", err, "user_id", user.ID)
		}
	}

	return user, nil
}

func (s *service) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Local path: a stored credential hash decides the outcome. A wrong
	// password on a local account never falls through to the directory.
	if user != nil && user.IsLocal() {
		return s.loginLocal(ctx, user, req.Password)
	}

	return s.loginDirectory(ctx, req.Email, req.Password)
}

func (s *service) loginLocal(ctx context.Context, user *domain.User, password string) (*domain.LoginResponse, error) {
	match, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrAuthFailed)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		logger.WarnContext(ctx, "Failed to update last login", "error", err, "user_id", user.ID)
	}
	user.LastLogin = time.Now().UTC()

	return s.respond(user, domain.SourceLocal)
}

// loginDirectory validates the credential against the directory, then
// provisions or resyncs the local user row for the resolved identity.
func (s *service) loginDirectory(ctx context.Context, login, password string) (*domain.LoginResponse, error) {
	identity, err := s.dir.Authenticate(ctx, login, password)
	if err != nil {
		// Fail closed: unreachable directory and bad credentials look the
		// same to the caller.
		return nil, err
	}

	roleName := s.roles.Resolve(identity.Groups)

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		email = s.guessEmail(login)
	}
	username := identity.DisplayName
	if username == "" {
		username = login
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		// First directory login: provision with an empty local credential.
		user, err = s.users.Create(ctx, email, username, "", "", roleName)
		if err != nil {
			return nil, fmt.Errorf("failed to provision directory user: %w", err)
		}
	} else {
		if user.Role != roleName {
			if err := s.users.UpdateRole(ctx, user.ID, roleName); err != nil {
				return nil, fmt.Errorf("failed to resync role: %w", err)
			}
			user.Role = roleName
		}
		if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
			logger.WarnContext(ctx, "Failed to update last login", "error", err, "user_id", user.ID)
		}
		user.LastLogin = time.Now().UTC()
	}

	return s.respond(user, domain.SourceDirectory)
}

func (s *service) respond(user *domain.User, source domain.IdentitySource) (*domain.LoginResponse, error) {
	token, err := s.issuer.Issue(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.issuer.TTL().Seconds()),
		Source:    source,
		User:      user.ToUserInfo(),
	}, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return user, nil
}

func (s *service) guessEmail(login string) string {
	if strings.Contains(login, "@") {
		return login
	}
	return fmt.Sprintf("%s@%s", login, s.mailDomain)
}
