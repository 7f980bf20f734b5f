package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tsootsoo/dictees/internal/dto"
)

const (
	ProfileCookieName = "current_profile"
	ProfileCookieTTL  = 180 * 24 * time.Hour

	profileContextKey = "profileID"
)

// ProfileCookie signs and reads the cookie that remembers the selected
// learner profile. The value is "<profileID>.<hex hmac-sha256>".
type ProfileCookie struct {
	secret []byte
	secure bool
}

func NewProfileCookie(secret string, secure bool) *ProfileCookie {
	return &ProfileCookie{secret: []byte(secret), secure: secure}
}

func (p *ProfileCookie) Sign(profileID uuid.UUID) string {
	id := profileID.String()
	return id + "." + p.signature(id)
}

// Verify returns the profile id of a well-formed, correctly signed value.
func (p *ProfileCookie) Verify(value string) (uuid.UUID, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return uuid.Nil, false
	}
	id, sig := value[:i], value[i+1:]
	if !hmac.Equal([]byte(sig), []byte(p.signature(id))) {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func (p *ProfileCookie) Set(c *gin.Context, profileID uuid.UUID) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ProfileCookieName, p.Sign(profileID), int(ProfileCookieTTL.Seconds()), "/", "", p.secure, true)
}

func (p *ProfileCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ProfileCookieName, "", -1, "/", "", p.secure, true)
}

// Read returns the profile id carried by the request, if any.
func (p *ProfileCookie) Read(c *gin.Context) (uuid.UUID, bool) {
	value, err := c.Cookie(ProfileCookieName)
	if err != nil || value == "" {
		return uuid.Nil, false
	}
	return p.Verify(value)
}

// Require aborts with 400 when no valid profile cookie is present and stores
// the profile id for ProfileID otherwise.
func (p *ProfileCookie) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := p.Read(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No profile selected"})
			return
		}
		c.Set(profileContextKey, id)
		c.Next()
	}
}

// ProfileID returns the id stored by Require.
func ProfileID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(profileContextKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func (p *ProfileCookie) signature(value string) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
