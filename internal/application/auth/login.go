package auth

import (
	"context"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Login verifies credentials and issues a fresh token. Tokens are stateless,
// so earlier tokens for the same user stay valid until they expire.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password collapse into the same error so the
	// response never reveals whether the account exists.
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}
