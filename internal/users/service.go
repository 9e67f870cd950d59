package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

const minPasswordLength = 8

// Invalidator clears a user's cached permission snapshot after grants or
// account state change.
type Invalidator interface {
	Invalidate(ctx context.Context, userID int64)
}

type Service struct {
	repo        Repository
	invalidator Invalidator
}

func NewService(repo Repository, invalidator Invalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]User, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, shared.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, u User, password string) (User, error) {
	if err := s.validate(u); err != nil {
		return User{}, err
	}
	if len(password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", shared.ErrValidation, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = string(hash)
	u.Active = true
	return s.repo.Create(ctx, u)
}

func (s *Service) Update(ctx context.Context, id int64, u User) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.validate(u); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := s.repo.Update(ctx, id, u); err != nil {
		return err
	}
	// Sysadmin flag feeds the snapshot; drop the cached copy.
	s.invalidator.Invalidate(ctx, id)
	return nil
}

func (s *Service) SetPassword(ctx context.Context, id int64, password string) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", shared.ErrValidation, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, id)
	return nil
}

func (s *Service) SetRoles(ctx context.Context, id int64, roleIDs []int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	seen := make(map[int64]struct{}, len(roleIDs))
	deduped := make([]int64, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		if roleID <= 0 {
			return fmt.Errorf("%w: role ids must be positive", shared.ErrValidation)
		}
		if _, dup := seen[roleID]; dup {
			continue
		}
		seen[roleID] = struct{}{}
		deduped = append(deduped, roleID)
	}
	if err := s.repo.SetRoles(ctx, id, deduped); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, id)
	return nil
}

// Authenticate checks credentials and the active flag. It returns the same
// error for a missing user and a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, internalShared.ErrInvalidCredentials
	}
	if !u.Active {
		return User{}, internalShared.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, internalShared.ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) validate(u User) error {
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", shared.ErrValidation)
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: a name is required", shared.ErrValidation)
	}
	return nil
}
