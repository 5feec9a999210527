package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/journal"
	"github.com/daybook/daybook/internal/session"
)

// UserService registers the single local user and gates the session on its
// PIN. The PIN is stored as a bcrypt hash.
type UserService struct {
	ctx     *database.Context
	users   *database.UserRepository
	session *session.Session
	cost    int
}

// NewUserService binds the service to sess. A nil sess gets a fresh session.
func NewUserService(ctx *database.Context, sess *session.Session) *UserService {
	if sess == nil {
		sess = session.New()
	}
	return &UserService{
		ctx:     ctx,
		users:   database.NewUserRepository(ctx),
		session: sess,
		cost:    bcrypt.DefaultCost,
	}
}

func (s *UserService) Session() *session.Session {
	return s.session
}

func (s *UserService) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

// Exists reports whether a user is registered. Storage errors read as false.
func (s *UserService) Exists(ctx context.Context) bool {
	exists, err := s.Registered(ctx)
	if err != nil {
		slog.WarnContext(ctx, "check user failed", "err", err)
		return false
	}
	return exists
}

// Registered is Exists with the storage error returned, for callers that
// must not treat a failed lookup as "no owner".
func (s *UserService) Registered(ctx context.Context) (bool, error) {
	exists, err := s.users.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// Current returns the registered user, or nil.
func (s *UserService) Current(ctx context.Context) *journal.User {
	user, err := s.users.Find(ctx)
	if err != nil {
		slog.WarnContext(ctx, "get user failed", "err", err)
		return nil
	}
	return user
}

// Register creates the user. It returns false for a blank name, a PIN that is
// not four digits, an already registered user, or a storage failure.
func (s *UserService) Register(ctx context.Context, name, otp string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if err := journal.ValidateOTP(otp); err != nil {
		return false
	}

	hash, err := s.hash(otp)
	if err != nil {
		slog.ErrorContext(ctx, "hash otp failed", "err", err)
		return false
	}

	err = database.RunInTx(ctx, s.ctx, func(tx *database.Context) error {
		return database.NewUserRepository(tx).Create(ctx, name, hash)
	})
	if errors.Is(err, database.ErrUserExists) {
		slog.InfoContext(ctx, "register rejected, user already exists")
		return false
	}
	if err != nil {
		slog.ErrorContext(ctx, "register user failed", "err", err)
		return false
	}

	slog.InfoContext(ctx, "user registered", "session", s.session.ID())
	return true
}

// ValidateOTP compares otp with the stored PIN. On a match the session is
// authenticated and caches the user; otherwise the session is left as is.
func (s *UserService) ValidateOTP(ctx context.Context, otp string) bool {
	user, err := s.users.Find(ctx)
	if err != nil {
		slog.WarnContext(ctx, "validate otp failed", "err", err)
		return false
	}
	if user == nil {
		return false
	}

	if bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(strings.TrimSpace(otp))) != nil {
		slog.DebugContext(ctx, "otp mismatch", "session", s.session.ID())
		return false
	}

	s.session.Login(*user)
	slog.DebugContext(ctx, "session unlocked", "session", s.session.ID())
	return true
}

// UpdateOTP replaces the PIN. It returns journal.ErrInvalidOTP for a bad
// format and database.ErrNotFound when nobody is registered.
func (s *UserService) UpdateOTP(ctx context.Context, newOTP string) error {
	if err := journal.ValidateOTP(newOTP); err != nil {
		return err
	}

	hash, err := s.hash(newOTP)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	if err := s.users.UpdateOTP(ctx, hash); err != nil {
		slog.ErrorContext(ctx, "update otp failed", "err", err)
		return fmt.Errorf("update otp: %w", err)
	}

	if cached := s.session.User(); cached != nil {
		cached.OTPHash = hash
		s.session.Login(*cached)
	}
	return nil
}

// Logout clears the session. Nothing is written.
func (s *UserService) Logout() {
	s.session.Logout()
}

// Delete removes the registered user and logs the session out.
func (s *UserService) Delete(ctx context.Context) (int64, error) {
	affected, err := s.users.Delete(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "delete user failed", "err", err)
		return 0, fmt.Errorf("delete user: %w", err)
	}
	s.session.Logout()
	return affected, nil
}

func (s *UserService) hash(otp string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(otp)), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
