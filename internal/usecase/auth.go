package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	pkgAuth "github.com/polkiloo/sushibar/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a customer account and returns auth token.
// Staff and management accounts come from EnsureStaff.
func (u *AuthUseCase) Register(ctx context.Context, in CredentialsInput) (*model.User, string, error) {
	in.Login = strings.TrimSpace(in.Login)
	in.Email = strings.TrimSpace(in.Email)
	if in.Login == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}
	if in.Email == "" && strings.Contains(in.Login, "@") {
		in.Email = in.Login
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{
		Login:        in.Login,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// EnsureStaff creates a staff or management account unless the login is taken.
// It reports whether a new account was written.
func (u *AuthUseCase) EnsureStaff(ctx context.Context, in CredentialsInput, role model.Role) (bool, error) {
	if !role.IsStaff() {
		return false, domainErrors.NewValidationError("role must be staff or management")
	}
	in.Login = strings.TrimSpace(in.Login)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return false, err
	}
	if in.Email == "" && strings.Contains(in.Login, "@") {
		in.Email = in.Login
	}

	if _, err := u.users.GetByLogin(ctx, in.Login); err == nil {
		return false, nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return false, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return false, err
	}
	_, err = u.users.Create(ctx, model.User{
		Login:        in.Login,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		Role:         role,
	})
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves the caller behind token.
func (u *AuthUseCase) ParseToken(token string) (model.Principal, error) {
	if token == "" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(model.Principal{UserID: usr.ID, Email: usr.Email, Role: usr.Role})
}
