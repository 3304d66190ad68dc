package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Hey_Blog/internal/apperr"
	"Hey_Blog/internal/auth"
	"Hey_Blog/internal/model"
	"Hey_Blog/internal/pkg"
	"Hey_Blog/internal/repository/mysql"
	"Hey_Blog/internal/repository/redis"

	"gorm.io/gorm"
)

type UserService struct {
	users        *mysql.UserRepository
	roles        *mysql.RoleRepository
	sessions     *redis.SessionRepository
	pendingEmail *redis.EmailChangeRepository
	tokens       *pkg.TokenService
	mail         *EmailService
	adminEmail   string
}

func NewUserService(db *gorm.DB, tokens *pkg.TokenService, mail *EmailService, adminEmail string) *UserService {
	return &UserService{
		users:        &mysql.UserRepository{DB: db},
		roles:        &mysql.RoleRepository{DB: db},
		sessions:     &redis.SessionRepository{},
		pendingEmail: &redis.EmailChangeRepository{},
		tokens:       tokens,
		mail:         mail,
		adminEmail:   adminEmail,
	}
}

// Register creates an unconfirmed account with the default role (or
// Administrator when the email matches the configured admin address) and
// mails a confirmation token. Duplicate email/username surfaces as a
// conflict, never a crash.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}

	role, err := s.roleFor(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Username:    username,
		Email:       email,
		RoleID:      role.ID,
		AvatarHash:  model.GravatarHash(email),
		MemberSince: now,
		LastSeen:    now,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email or username already registered")
		}
		return nil, apperr.Internal(err)
	}
	user.Role = role

	if err := s.sendConfirmation(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) roleFor(ctx context.Context, email string) (*model.Role, error) {
	if s.adminEmail != "" && email == strings.ToLower(s.adminEmail) {
		role, err := s.roles.FindByName(ctx, "Administrator")
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return role, nil
	}
	role, err := s.roles.FindDefault(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return role, nil
}

func (s *UserService) sendConfirmation(user *model.User) error {
	token, err := s.tokens.Issue(pkg.PurposeConfirm, user.ID, pkg.ConfirmTokenTTL)
	if err != nil {
		return apperr.Internal(err)
	}
	s.mail.SendConfirmation(user.Email, token)
	return nil
}

// Confirm validates a confirmation token and marks the account confirmed.
// Confirming twice is a no-op.
func (s *UserService) Confirm(ctx context.Context, token string) error {
	userID, err := s.tokens.Verify(token, pkg.PurposeConfirm)
	if err != nil {
		return apperr.Unauthenticated()
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// subject no longer exists: treat as invalid, not as a crash
		return apperr.Unauthenticated()
	}
	if user.Confirmed {
		return nil
	}
	if err := s.users.MarkConfirmed(ctx, user.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *UserService) ResendConfirmation(ctx context.Context, userID uint64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Unauthenticated()
	}
	if user.Confirmed {
		return apperr.Validation("account already confirmed")
	}
	return s.sendConfirmation(user)
}

// Login verifies credentials and issues a session-bound auth token. The
// response never distinguishes unknown login from wrong password.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return nil, "", apperr.Unauthenticated()
	}
	if !user.VerifyPassword(password) {
		return nil, "", apperr.Unauthenticated()
	}

	token, err := s.tokens.Issue(pkg.PurposeAuth, user.ID, pkg.AuthTokenTTL)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if err := s.sessions.Add(ctx, user.ID, token); err != nil {
		return nil, "", apperr.Internal(err)
	}
	_ = s.users.TouchLastSeen(ctx, user.ID)
	return user, token, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// IssueAPIToken returns a stateless auth token with a caller-chosen lifetime,
// clamped to the configured maximum.
func (s *UserService) IssueAPIToken(ctx context.Context, userID uint64, ttl time.Duration) (string, time.Duration, error) {
	if ttl <= 0 {
		ttl = pkg.AuthTokenTTL
	}
	if ttl > pkg.MaxAuthTokenTTL {
		ttl = pkg.MaxAuthTokenTTL
	}
	token, err := s.tokens.Issue(pkg.PurposeAuth, userID, ttl)
	if err != nil {
		return "", 0, apperr.Internal(err)
	}
	return token, ttl, nil
}

// RequestPasswordReset mails a reset token when the address is known. It
// reports success either way so the endpoint can't be used to probe for
// registered emails.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil
	}
	token, err := s.tokens.Issue(pkg.PurposeReset, user.ID, pkg.ResetTokenTTL)
	if err != nil {
		return apperr.Internal(err)
	}
	s.mail.SendPasswordReset(user.Email, token)
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("new password is required")
	}
	userID, err := s.tokens.Verify(token, pkg.PurposeReset)
	if err != nil {
		return apperr.Unauthenticated()
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Unauthenticated()
	}
	if err := user.SetPassword(newPassword); err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, user, user.PasswordHash); err != nil {
		return apperr.Internal(err)
	}
	// any live session was authenticated by the old credentials
	_ = s.sessions.Delete(ctx, user.ID)
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("new password is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Unauthenticated()
	}
	if !user.VerifyPassword(oldPassword) {
		return apperr.Unauthenticated()
	}
	if err := user.SetPassword(newPassword); err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, user, user.PasswordHash); err != nil {
		return apperr.Internal(err)
	}
	return s.Logout(ctx, userID)
}

// RequestEmailChange parks the new address in the side cache and mails a
// change token to it. The address itself never rides in the token, so the
// flow dies when either the token or the cache entry expires, and a pending
// change can be cancelled. Re-requesting overwrites the previous pending
// address (last write wins).
func (s *UserService) RequestEmailChange(ctx context.Context, userID uint64, newEmail, password string) error {
	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	if newEmail == "" {
		return apperr.Validation("new email is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Unauthenticated()
	}
	if !user.VerifyPassword(password) {
		return apperr.Unauthenticated()
	}
	if _, err := s.users.FindByEmail(ctx, newEmail); err == nil {
		return apperr.Conflict("email already registered")
	}

	if err := s.pendingEmail.Set(ctx, userID, newEmail, pkg.EmailChangeTokenTTL); err != nil {
		return apperr.Internal(err)
	}
	token, err := s.tokens.Issue(pkg.PurposeEmailChange, userID, pkg.EmailChangeTokenTTL)
	if err != nil {
		return apperr.Internal(err)
	}
	s.mail.SendEmailChange(newEmail, token)
	return nil
}

// ChangeEmail completes the flow: the token must verify AND the side-cache
// entry must still be live.
func (s *UserService) ChangeEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.Verify(token, pkg.PurposeEmailChange)
	if err != nil {
		return apperr.Unauthenticated()
	}
	newEmail, err := s.pendingEmail.Get(ctx, userID)
	if err != nil {
		return apperr.Unauthenticated()
	}
	if err := s.users.UpdateEmail(ctx, userID, newEmail); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("email already registered")
		}
		return apperr.Internal(err)
	}
	_ = s.pendingEmail.Delete(ctx, userID)
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// UpdateProfile edits display fields. Only the owner or an administrator may
// do it.
func (s *UserService) UpdateProfile(ctx context.Context, actor auth.Actor, targetID uint64, name, location, aboutMe string) (*model.User, error) {
	if !auth.CanModify(actor, targetID) {
		return nil, apperr.Forbidden("cannot edit another user's profile")
	}
	user, err := s.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Location = location
	user.AboutMe = aboutMe
	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Ping records request activity on the identity.
func (s *UserService) Ping(ctx context.Context, userID uint64) {
	_ = s.users.TouchLastSeen(ctx, userID)
}
