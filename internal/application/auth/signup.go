package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
)

type SignupInput struct {
	Email    string
	Password string
}

type SignupResult struct {
	User  *domain.User
	Token string
}

// Signup creates a new account and issues its first token.
type Signup struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewSignup(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Signup {
	return &Signup{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The unique index still backstops the GetByEmail check against a
	// concurrent signup with the same email.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &SignupResult{User: user, Token: token}, nil
}
