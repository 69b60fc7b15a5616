package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"course-service/internal/domain"
)

// AuthUsecase re-proves identity for every inbound event. The session
// cache only ever skips the durable-store round trip; an entry is added
// after a durable check succeeds, so a false positive cannot happen.
type AuthUsecase struct {
	tokens     TokenVerifier
	sessions   SessionCache
	users      UserStore
	operatorID string
}

func NewAuthUsecase(tokens TokenVerifier, sessions SessionCache, users UserStore, operatorID string) *AuthUsecase {
	return &AuthUsecase{
		tokens:     tokens,
		sessions:   sessions,
		users:      users,
		operatorID: operatorID,
	}
}

// VerifyUser resolves a bearer token to a verified user ID.
func (uc *AuthUsecase) VerifyUser(ctx context.Context, token string) (string, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	trusted, err := uc.sessions.IsTrusted(ctx, userID)
	if err == nil && trusted {
		return userID, nil
	}
	// Cache miss or cache failure: fall back to the durable store.

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	verified, err := uc.users.IsVerified(ctx, oid)
	if err != nil {
		return "", err
	}
	if !verified {
		return "", domain.ErrUnauthorized
	}

	if err := uc.sessions.Trust(ctx, userID); err != nil {
		// Advisory cache only; the next event retries the durable check.
		return userID, nil
	}
	return userID, nil
}

// VerifyOperator resolves a bearer token and requires the distinguished
// operator identity.
func (uc *AuthUsecase) VerifyOperator(ctx context.Context, token string) (string, error) {
	userID, err := uc.tokens.Verify(token)
	if err != nil {
		return "", domain.ErrAccessDenied
	}
	if uc.operatorID == "" || userID != uc.operatorID {
		return "", domain.ErrAccessDenied
	}
	return userID, nil
}

// OperatorID exposes the distinguished operator identity so new-payment
// events can be routed to their live connections.
func (uc *AuthUsecase) OperatorID() string {
	return uc.operatorID
}
