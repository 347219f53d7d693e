package session

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"inkwell/app/models"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	flashCookie = "inkwell_flash"
	csrfCookie  = "inkwell_csrf"
	csrfField   = "csrf_token"
)

type Claims struct {
	UserID uint   `json:"uid"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type csrfClaims struct {
	Token string `json:"tok"`
	jwt.RegisteredClaims
}

// Manager issues and validates the signed cookies that carry identity,
// flash messages and CSRF tokens between requests.
type Manager struct {
	Secret     []byte
	Issuer     string
	CookieName string
	ExpMin     int
}

func (m *Manager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.Secret)
}

// Login establishes an authenticated browser session for u. The cookie
// carries no MaxAge so it dies with the browser session; the signed
// claims carry their own expiry as a backstop.
func (m *Manager) Login(w http.ResponseWriter, u *models.User) error {
	now := time.Now()
	exp := now.Add(time.Duration(m.ExpMin) * time.Minute)
	claims := Claims{
		UserID: u.ID, Name: u.Name, Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := m.sign(claims)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Logout tears the session down.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Current returns the claims of the logged-in user, or nil for the
// anonymous visitor. A missing, expired or tampered cookie is anonymous,
// never an error.
func (m *Manager) Current(r *http.Request) *Claims {
	ck, err := r.Cookie(m.CookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	claims, err := m.parse(ck.Value)
	if err != nil {
		return nil
	}
	return claims
}

func (m *Manager) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) { return m.Secret, nil })
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// Flash queues a one-shot notice for the next rendered page.
func Flash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	ck, err := r.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := base64.URLEncoding.DecodeString(ck.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}

// IssueCSRF returns the CSRF token to embed in a form, minting and
// setting the signed token cookie if the request does not carry a valid
// one already (double-submit scheme).
func (m *Manager) IssueCSRF(w http.ResponseWriter, r *http.Request) (string, error) {
	if tok := m.csrfFromCookie(r); tok != "" {
		return tok, nil
	}
	tok := uuid.NewString()
	signed, err := m.sign(csrfClaims{
		Token: tok,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return tok, nil
}

// VerifyCSRF checks the submitted form token against the signed cookie.
func (m *Manager) VerifyCSRF(r *http.Request) bool {
	tok := m.csrfFromCookie(r)
	if tok == "" {
		return false
	}
	field := r.PostFormValue(csrfField)
	if field == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(tok), []byte(field)) == 1
}

func (m *Manager) csrfFromCookie(r *http.Request) string {
	ck, err := r.Cookie(csrfCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	token, err := jwt.ParseWithClaims(ck.Value, &csrfClaims{}, func(t *jwt.Token) (interface{}, error) { return m.Secret, nil })
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(*csrfClaims)
	if !ok {
		return ""
	}
	return claims.Token
}
