package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the signed token
const CookieName = "token"

// emailKey is the gin context key the gate stores the decoded identity under
const emailKey = "auth_email"

// Claims is the session token payload
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens and owns the cookie attributes.
// Token validity is purely signature plus expiry; there is no server-side
// session record.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	production bool
}

// NewManager creates a token manager. In production the cookie is sent with
// SameSite=None and Secure so the browser forwards it cross-site; in
// development it is SameSite=Strict over plain HTTP.
func NewManager(secret string, ttl time.Duration, production bool) *Manager {
	return &Manager{
		secret:     []byte(secret),
		ttl:        ttl,
		production: production,
	}
}

// Issue signs a token embedding the given email with the configured expiry
func (m *Manager) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded email
func (m *Manager) Verify(tokenStr string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.Email == "" {
		return "", fmt.Errorf("token has no email claim")
	}
	return claims.Email, nil
}

// SetCookie attaches the token as an HTTP-only cookie aligned with the token TTL
func (m *Manager) SetCookie(c *gin.Context, token string) {
	m.setSameSite(c)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.production, true)
}

// ClearCookie removes the session cookie. Idempotent.
func (m *Manager) ClearCookie(c *gin.Context) {
	m.setSameSite(c)
	c.SetCookie(CookieName, "", -1, "/", "", m.production, true)
}

func (m *Manager) setSameSite(c *gin.Context) {
	if m.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
}

// Protect is the gate middleware: it rejects requests without a valid session
// cookie and stores the decoded email in the request context for handlers
// that personalize results or enforce ownership.
func (m *Manager) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized access",
			})
			return
		}

		email, err := m.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "unauthorized access",
			})
			return
		}

		c.Set(emailKey, email)
		c.Next()
	}
}

// EmailFrom returns the authenticated email the gate stored on the context
func EmailFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(emailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
