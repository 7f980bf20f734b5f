package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/internal/dto"
)

const (
	userContextKey   = "user"
	sessionCookieKey = "session_token"
)

// Claims is the session token issued by the external auth provider. The
// account id travels in the standard subject claim.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseSessionToken verifies an HS256 session token.
func ParseSessionToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("session token has no subject")
	}
	return claims, nil
}

// Auth rejects requests without a valid session with 401. The token is read
// from the Authorization bearer header, or from the session cookie.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString, _ = c.Cookie(sessionCookieKey)
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}

		claims, err := ParseSessionToken(tokenString, secret)
		if err != nil {
			msg := "Unauthorized"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Session expired"
			}
			log.Debug().Err(err).Str("path", c.FullPath()).Msg("Auth: rejected session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: msg})
			return
		}

		c.Set(userContextKey, claims)
		c.Next()
	}
}

// UserID returns the authenticated account id, or "" outside Auth.
func UserID(c *gin.Context) string {
	v, ok := c.Get(userContextKey)
	if !ok {
		return ""
	}
	claims, ok := v.(*Claims)
	if !ok {
		return ""
	}
	return claims.Subject
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
