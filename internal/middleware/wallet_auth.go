package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "campfire/internal/errors"
	"campfire/internal/wallet"
)

// WalletKey is the context key holding the verified, normalized wallet.
const WalletKey = "wallet"

const walletTokenIssuer = "campfire-identity"

// WalletClaims are issued by the identity service after a wallet signs in.
type WalletClaims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// WalletAuth verifies an HS256 bearer token and binds its wallet claim to
// the request. When required is false, requests without an Authorization
// header pass through unauthenticated; a header that is present must still
// be valid.
func WalletAuth(secret string, required bool) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
				return
			}
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := ParseWalletToken(parts[1], key)
		if err != nil {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(WalletKey, claims.Wallet)
		c.Next()
	}
}

// ParseWalletToken validates the token signature and expiry and returns its
// claims with the wallet normalized.
func ParseWalletToken(tokenString string, key []byte) (*WalletClaims, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("wallet token secret not configured")
	}

	claims := &WalletClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithIssuer(walletTokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid wallet token")
	}

	claims.Wallet = wallet.Normalize(claims.Wallet)
	if claims.Wallet == "" {
		return nil, fmt.Errorf("wallet claim missing")
	}
	return claims, nil
}

// GenerateWalletToken signs a token for wallet. Production tokens come from
// the identity service; this is used by tests and local tooling.
func GenerateWalletToken(walletID string, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &WalletClaims{
		Wallet: wallet.Normalize(walletID),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    walletTokenIssuer,
			Subject:   wallet.Normalize(walletID),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
