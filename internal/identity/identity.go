package identity

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/diewo77/techfix/internal/mailer"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/validation"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotConfirmed       = errors.New("email not confirmed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired link")
)

// ValidationError carries field violations for a rejected request.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+"="+code)
	}
	return "invalid input: " + strings.Join(fields, ", ")
}

// Options tune the identity service.
type Options struct {
	RequireConfirmation bool
	BaseURL             string
	MinPassword         int
}

// Service is the authentication boundary: it owns users, password hashes
// and the emailed confirmation and reset links.
type Service struct {
	db     *gorm.DB
	mail   mailer.Mailer
	tokens *Tokens
	opts   Options
	log    *zap.Logger
}

func NewService(db *gorm.DB, m mailer.Mailer, tokens *Tokens, opts Options, log *zap.Logger) *Service {
	if opts.MinPassword <= 0 {
		opts.MinPassword = 6
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, mail: m, tokens: tokens, opts: opts, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) checkPassword(password string, v validation.Violations) {
	validation.Required("password", password, v)
	validation.MinLength("password", password, s.opts.MinPassword, v)
	if len(password) > 72 {
		v["password"] = "too_long"
	}
}

// SignUp registers a subject. When confirmation is required the user is
// created unconfirmed and a confirmation link is mailed; a mail failure
// rolls the registration back.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.Required("email", email, v)
	validation.Email("email", email, v)
	s.checkPassword(password, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user := &models.User{Email: email, Name: name, PasswordHash: string(hash)}
	if !s.opts.RequireConfirmation {
		now := time.Now()
		user.ConfirmedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if user.Confirmed() {
			return nil
		}
		return s.sendConfirmation(ctx, user)
	})
	if err != nil {
		return nil, errors.Wrap(err, "sign up")
	}
	s.log.Info("subject registered", zap.String("user_id", user.ID), zap.Bool("confirmed", user.Confirmed()))
	return user, nil
}

// SignIn checks credentials and returns the subject.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if s.opts.RequireConfirmation && !user.Confirmed() {
		return nil, ErrNotConfirmed
	}
	return user, nil
}

// Confirm consumes a confirmation token.
func (s *Service) Confirm(ctx context.Context, token string) (*models.User, error) {
	c, err := s.tokens.Parse(token, PurposeConfirm)
	if err != nil {
		return nil, err
	}
	user, err := s.Find(ctx, c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Confirmed() {
		return user, nil
	}
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(user).Update("confirmed_at", now).Error; err != nil {
		return nil, errors.Wrap(err, "confirm")
	}
	user.ConfirmedAt = &now
	return user, nil
}

// RequestPasswordReset mails a reset link. Unknown addresses succeed
// silently so that the response does not reveal registered emails.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return &ValidationError{Violations: validation.Violations{"email": "required"}}
	}
	user, err := s.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Info("password reset for unknown email")
		return nil
	}
	if err != nil {
		return err
	}
	token, err := s.tokens.Issue(PurposeReset, user.ID, fingerprint(user.PasswordHash))
	if err != nil {
		return err
	}
	return s.mail.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: "TechFix - redefinição de senha",
		Text: fmt.Sprintf("Olá %s,\n\nPara definir uma nova senha acesse:\n%s\n\nSe você não solicitou, ignore este email.",
			user.Name, s.link("/auth/recover", token)),
	})
}

// ResetPassword consumes a reset token. A token stops working once the
// password it was issued against has changed.
func (s *Service) ResetPassword(ctx context.Context, token, password string) (*models.User, error) {
	c, err := s.tokens.Parse(token, PurposeReset)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	s.checkPassword(password, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	user, err := s.Find(ctx, c.Subject)
	if err != nil || fingerprint(user.PasswordHash) != c.Fingerprint {
		return nil, ErrInvalidToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	updates := map[string]any{"password_hash": string(hash)}
	if !user.Confirmed() {
		updates["confirmed_at"] = time.Now()
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "reset password")
	}
	return s.Find(ctx, user.ID)
}

// Find returns the subject with id.
func (s *Service) Find(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the subject registered with email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether id still names a subject.
func (s *Service) Exists(ctx context.Context, id string) bool {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		s.log.Warn("subject lookup failed", zap.Error(err))
		return false
	}
	return count > 0
}

func (s *Service) sendConfirmation(ctx context.Context, user *models.User) error {
	token, err := s.tokens.Issue(PurposeConfirm, user.ID, "")
	if err != nil {
		return err
	}
	return s.mail.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: "TechFix - confirme seu email",
		Text: fmt.Sprintf("Olá %s,\n\nConfirme seu cadastro no painel TechFix:\n%s\n",
			user.Name, s.link("/auth/confirm", token)),
	})
}

func (s *Service) link(path, token string) string {
	return strings.TrimRight(s.opts.BaseURL, "/") + path + "?token=" + url.QueryEscape(token)
}
