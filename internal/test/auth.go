package test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/polkiloo/sushibar/internal/domain/model"
	pkgAuth "github.com/polkiloo/sushibar/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub encodes principals as "token-<id>-<role>-<email>".
type StrategyStub struct {
	IssueFn func(model.Principal) (string, error)
	ParseFn func(string) (model.Principal, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(p model.Principal) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(p)
	}
	return StubToken(p), nil
}

// ParseToken parses tokens produced by StubToken.
func (s StrategyStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return ParseStubToken(token)
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// StubToken renders principal in the StrategyStub format.
func StubToken(p model.Principal) string {
	return fmt.Sprintf("token-%d-%s-%s", p.UserID, p.Role, p.Email)
}

// ParseStubToken reverses StubToken.
func ParseStubToken(token string) (model.Principal, error) {
	parts := strings.SplitN(token, "-", 4)
	if len(parts) != 4 || parts[0] != "token" {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	var id int64
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return model.Principal{}, pkgAuth.ErrInvalidToken
	}
	return model.Principal{UserID: id, Role: model.Role(parts[2]), Email: parts[3]}, nil
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Principal model.Principal
	Err       error
	ParseFn   func(string) (model.Principal, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Principal{}, s.Err
	}
	return s.Principal, nil
}

// Staff returns a staff principal.
func Staff() *model.Principal {
	return &model.Principal{UserID: 100, Email: "chef@sushibar.local", Role: model.RoleStaff}
}

// Customer returns a customer principal with email.
func Customer(email string) *model.Principal {
	return &model.Principal{UserID: 7, Email: email, Role: model.RoleCustomer}
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
