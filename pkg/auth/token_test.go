package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/wms-backend/pkg/config"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    "secret",
		Issuer:    "wms-api",
		ExpiresIn: 7 * 24 * time.Hour,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID: userID,
		Email:  "admin@wms.com",
		Role:   enums.RoleAdmin,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@wms.com", claims.Email)
	assert.Equal(t, enums.RoleAdmin, claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(cfg.ExpiresIn), claims.ExpiresAt.Time, time.Second)
}

func TestMintAccessTokenKeepsProvidedJTI(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleEmployee,
		JTI:    "fixed-jti",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "fixed-jti", claims.ID)
}

func TestMintAccessTokenValidatesInput(t *testing.T) {
	cfg := testJWTConfig()
	valid := AccessTokenPayload{UserID: uuid.New(), Role: enums.RoleManager}

	_, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpiresIn: time.Hour}, time.Now(), valid)
	assert.Error(t, err, "missing secret")

	_, err = MintAccessToken(config.JWTConfig{Secret: "s", Issuer: "x"}, time.Now(), valid)
	assert.Error(t, err, "zero expiry")

	_, err = MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), Role: "OWNER"})
	assert.Error(t, err, "bad role")

	_, err = MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: enums.RoleAdmin})
	assert.Error(t, err, "nil user")
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpiresIn = time.Minute
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleEmployee,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}

func TestParseAccessTokenRejectsTampering(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New(), Role: enums.RoleEmployee})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different"
	_, err = ParseAccessToken(other, token)
	require.Error(t, err)
	assert.False(t, IsExpired(err))

	wrongIssuer := cfg
	wrongIssuer.Issuer = "someone-else"
	_, err = ParseAccessToken(wrongIssuer, token)
	assert.Error(t, err)

	_, err = ParseAccessToken(cfg, strings.TrimSuffix(token, token[len(token)-2:]))
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsOtherAlgorithms(t *testing.T) {
	cfg := testJWTConfig()
	claims := AccessTokenClaims{
		UserID: uuid.New(),
		Role:   enums.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.Error(t, err)
}
