package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

const resetTokenTTL = time.Hour

// AuthService implements credential validation and every session-mutating
// operation. Seed identities are checked before the durable registry; both
// paths compare bcrypt hashes with exact, case-sensitive usernames.
type AuthService struct {
	repo        ports.IdentityRepository
	sessions    ports.SessionStore
	resetTokens ports.ResetTokenStore
	seeds       []*domain.Identity
	jwtSecret   string
	tokenTTL    time.Duration
	log         zerolog.Logger
}

func NewAuthService(
	repo ports.IdentityRepository,
	sessions ports.SessionStore,
	resetTokens ports.ResetTokenStore,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) (*AuthService, error) {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	seeds, err := hashSeeds(domain.SeedCredentials())
	if err != nil {
		return nil, fmt.Errorf("hash seed credentials: %w", err)
	}

	return &AuthService{
		repo:        repo,
		sessions:    sessions,
		resetTokens: resetTokens,
		seeds:       seeds,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log,
	}, nil
}

// hashSeeds converts the built-in seed credentials into identities with
// bcrypt hashes. Seed passwords never live beyond construction.
func hashSeeds(creds []domain.SeedCredential) ([]*domain.Identity, error) {
	seeds := make([]*domain.Identity, 0, len(creds))
	for i, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, &domain.Identity{
			ID:           fmt.Sprintf("seed-%d", i+1),
			Username:     c.Username,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			Email:        c.Email,
			PasswordHash: string(hash),
			Role:         c.Role,
		})
	}
	return seeds, nil
}

// Validate checks a credential pair against the seed set first, then the
// registry. Any mismatch — unknown username or wrong password — yields
// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Validate(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	for _, seed := range s.seeds {
		if seed.Username == username {
			if bcrypt.CompareHashAndPassword([]byte(seed.PasswordHash), []byte(password)) != nil {
				return nil, domain.ErrInvalidCredentials
			}
			clone := *seed
			return &clone, nil
		}
	}

	identity, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return identity, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	identity, err := s.Validate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.bindSession(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", identity.Username).Str("role", identity.Role).Msg("login succeeded")
	return token, identity, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.Identity, error) {
	if input.Username == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		// Registration never honours a requested role.
		Role:      domain.RoleRegular,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	// Auto-login: same transition as a successful login.
	token, err := s.bindSession(ctx, created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("registration succeeded")
	return token, created, nil
}

// Logout clears the session bound to token. Clearing an already-cleared or
// unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Clear(ctx, token)
}

func (s *AuthService) UpdateProfile(ctx context.Context, token string, update ports.ProfileUpdate) (*domain.Identity, error) {
	identity, err := s.sessions.Load(ctx, token)
	if err != nil {
		return nil, domain.ErrNoSession
	}

	if update.FirstName != nil {
		identity.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		identity.LastName = *update.LastName
	}
	if update.Email != nil {
		identity.Email = *update.Email
	}
	identity.UpdatedAt = time.Now().UTC()

	// Seed identities exist only in memory; for registered identities the
	// registry record is updated as well.
	if _, err := s.repo.FindByID(ctx, identity.ID); err == nil {
		if err := s.repo.Update(ctx, identity); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, token, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// RequestPasswordReset always reports success for a non-empty email. When
// the email matches a registered identity a short-lived reset token is
// stored; the response is identical either way.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	identity, err := s.findByEmail(ctx, email)
	if err != nil {
		s.log.Debug().Str("email", email).Msg("password reset requested for unknown email")
		return nil
	}

	token, err := opaqueToken()
	if err != nil {
		return nil
	}
	if err := s.resetTokens.Set(ctx, token, identity.ID, resetTokenTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to store reset token")
	}
	return nil
}

func (s *AuthService) CreateUser(ctx context.Context, input ports.RegisterInput, role string) (*domain.Identity, error) {
	if input.Username == "" || input.Password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Identity{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// bindSession issues a JWT for the identity and persists the session slot,
// fully replacing any prior binding under the same token.
func (s *AuthService) bindSession(ctx context.Context, identity *domain.Identity) (string, error) {
	token, err := s.generateToken(identity)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Save(ctx, token, identity); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) generateToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":      identity.ID,
		"username": identity.Username,
		"role":     identity.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	for _, seed := range s.seeds {
		if seed.Email == email {
			clone := *seed
			return &clone, nil
		}
	}
	// Linear scan over the registry page by page; registrations are few.
	page := 1
	for {
		identities, total, err := s.repo.List(ctx, page, 100)
		if err != nil {
			return nil, err
		}
		for _, id := range identities {
			if id.Email == email {
				return id, nil
			}
		}
		if int64(page*100) >= total || len(identities) == 0 {
			return nil, domain.ErrUserNotFound
		}
		page++
	}
}

// opaqueToken returns a 32-hex-char random token for password resets.
func opaqueToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
