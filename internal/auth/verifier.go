package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

// Verifier turns a presented credential into an Identity or a rejection.
type Verifier struct {
	users  repository.UserRepository
	jwt    *JWTService
	tokens TokenStoreInterface
}

// NewVerifier creates a verifier backed by the user store.
func NewVerifier(users repository.UserRepository, jwt *JWTService, tokens TokenStoreInterface) *Verifier {
	return &Verifier{users: users, jwt: jwt, tokens: tokens}
}

// Verify dispatches on the credential variant. Rejections are apperrors sentinels
// (ErrInvalidCredentials, ErrUnauthenticated, ErrInvalidToken); anything else is a
// store failure.
func (v *Verifier) Verify(ctx context.Context, cred Credential) (*Identity, error) {
	switch c := cred.(type) {
	case Basic:
		return v.verifyBasic(ctx, c)
	case Session:
		return v.verifySession(ctx, c)
	case Bearer:
		return v.verifyBearer(ctx, c)
	default:
		return nil, apperrors.ErrUnauthenticated
	}
}

func (v *Verifier) verifyBasic(ctx context.Context, c Basic) (*Identity, error) {
	if c.Username == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := v.users.FindByUsername(ctx, c.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return identityOf(user), nil
}

// A session marked authenticated is trusted without re-checking the password.
func (v *Verifier) verifySession(ctx context.Context, c Session) (*Identity, error) {
	if !c.Authenticated || c.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := v.users.FindByID(ctx, c.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return identityOf(user), nil
}

func (v *Verifier) verifyBearer(ctx context.Context, c Bearer) (*Identity, error) {
	claims, err := v.jwt.ValidateToken(c.Token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if revoked, _ := v.tokens.IsTokenBlacklisted(ctx, claims.ID); revoked {
		return nil, apperrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := v.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	id := identityOf(user)
	id.TokenID = claims.ID
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

func identityOf(u *model.User) *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Admin: u.Admin}
}
