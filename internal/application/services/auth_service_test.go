package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskshare/core/internal/infrastructure/config"
	"github.com/taskshare/core/internal/infrastructure/logger"
	"github.com/taskshare/core/internal/ports"
)

func newTestAuthService(secret string) (*AuthService, *memUserRepo) {
	userRepo := newMemUserRepo()
	cfg := config.JWTConfig{
		Secret:    secret,
		ExpiresIn: time.Hour,
		Issuer:    "taskshare-test",
	}
	return NewAuthService(userRepo, cfg, logger.NewNop()), userRepo
}

func TestCreateSession_RoundTrip(t *testing.T) {
	svc, userRepo := newTestAuthService("test-secret")

	avatar := "https://example.com/a.png"
	resp, err := svc.CreateSession(context.Background(), ports.CreateSessionRequest{
		Provider:  "google",
		Email:     "alice@example.com",
		Name:      "Alice",
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, int64(3600), resp.ExpiresIn)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)

	// The account exists after the first login
	stored, err := userRepo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", stored.Name)

	// The issued token resolves back to the same user
	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID.String(), claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService("test-secret")

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)

	// Token signed with a different secret
	other, _ := newTestAuthService("other-secret")
	resp, err := other.CreateSession(context.Background(), ports.CreateSessionRequest{
		Provider: "github",
		Email:    "bob@example.com",
		Name:     "Bob",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	userRepo := newMemUserRepo()
	cfg := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: -time.Minute,
		Issuer:    "taskshare-test",
	}
	svc := NewAuthService(userRepo, cfg, logger.NewNop())

	resp, err := svc.CreateSession(context.Background(), ports.CreateSessionRequest{
		Provider: "google",
		Email:    "carol@example.com",
		Name:     "Carol",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
}
