// Package auth verifies administrator credentials and manages the
// administrator accounts themselves.
package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/admins"
)

// dummyHash is a bcrypt hash of a throwaway value. When the identity is
// unknown we still run a hash comparison against it so the unknown-identity
// and wrong-password paths take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements credential verification and administrator management
// on top of an admins.Repo. It holds no mutable state of its own.
type Service struct {
	admins  admins.Repo
	nowTime func() time.Time // nowTime function (injectable for testing)
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(adminRepo admins.Repo, options ...ServiceOption) (*Service, error) {
	if adminRepo == nil {
		return nil, errors.New("[NewService] admins repo is required")
	}

	s := &Service{
		admins:  adminRepo,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// VerifyCredentials checks an (email, password) pair against the stored
// records. Unknown identity and wrong password both come back as
// InvalidCredentialsErr. No side effects.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (admins.Info, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		admins.CheckPasswordHash(password, dummyHash)
		return admins.Info{}, InvalidCredentialsErr
	}

	if !admins.CheckPasswordHash(password, admin.PasswordHash) {
		return admins.Info{}, InvalidCredentialsErr
	}

	return admin.Info(), nil
}

// ChangePassword rehashes an administrator's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] GetByID")
	}

	if !admins.CheckPasswordHash(currentPassword, admin.PasswordHash) {
		return InvalidCredentialsErr
	}

	if err := admins.ValidatePasswordStrength(newPassword); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] password strength")
	}

	hash, err := admins.HashPassword(newPassword)
	if err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] HashPassword")
	}

	if err := s.admins.UpdatePasswordHash(ctx, admin.ID, hash); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] UpdatePasswordHash")
	}
	return nil
}

// CreateAdmin provisions a new administrator account.
func (s *Service) CreateAdmin(ctx context.Context, email, password, displayName string) (*admins.Admin, error) {
	if existing, err := s.admins.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, AdminExistsErr
	}

	if err := admins.ValidatePasswordStrength(password); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateAdmin] password strength")
	}

	hash, err := admins.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreateAdmin] HashPassword")
	}

	admin := &admins.Admin{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    s.nowTime(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateAdmin] Create")
	}
	return admin, nil
}

// DeleteAdmin removes an administrator. The system must always retain at
// least one, so deleting the sole remaining record fails with LastAdminErr.
func (s *Service) DeleteAdmin(ctx context.Context, adminID string) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "[Service.DeleteAdmin] Count")
	}
	if count <= 1 {
		return LastAdminErr
	}

	if err := s.admins.Delete(ctx, adminID); err != nil {
		return errors.Wrap(err, "[Service.DeleteAdmin] Delete")
	}
	return nil
}

// ListAdmins returns the non-secret projection of every administrator.
func (s *Service) ListAdmins(ctx context.Context) ([]admins.Info, error) {
	list, err := s.admins.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListAdmins] List")
	}

	infos := make([]admins.Info, 0, len(list))
	for _, a := range list {
		infos = append(infos, a.Info())
	}
	return infos, nil
}

// Bootstrap seeds the first administrator when none exists yet. It is a
// no-op when any administrator is already present or when email/password
// are not configured.
func (s *Service) Bootstrap(ctx context.Context, email, password, displayName string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.admins.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "[Service.Bootstrap] Count")
	}
	if count > 0 {
		return nil
	}

	if _, err := s.CreateAdmin(ctx, email, password, displayName); err != nil {
		return errors.Wrap(err, "[Service.Bootstrap] CreateAdmin")
	}
	return nil
}
