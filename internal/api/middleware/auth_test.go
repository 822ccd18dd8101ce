package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/backoffice/catalog-api/internal/core/domain"
)

const testSecret = "test-secret"

func testVerifier() TokenVerifier {
	return TokenVerifier{Secret: testSecret, Issuer: "catalog-api", Audience: "catalog-clients"}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"username": "alice",
		"role":     domain.RoleAdmin,
		"user_id":  "u1",
		"iss":      "catalog-api",
		"aud":      "catalog-clients",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testVerifier())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, c, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims())
	rec, c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, _ := c.Get("username").(string); got != "alice" {
		t.Errorf("expected username claim injected, got %q", got)
	}
	if got, _ := c.Get("role").(string); got != domain.RoleAdmin {
		t.Errorf("expected role claim injected, got %q", got)
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Errorf("expected user_id claim injected, got %q", got)
	}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "")
	assertUnauthorized(t, err)
}

func TestAuth_NotBearer(t *testing.T) {
	_, _, err := runAuth(t, "Basic abc123")
	assertUnauthorized(t, err)
}

func TestAuth_BadSignature(t *testing.T) {
	token := signToken(t, "other-secret", validClaims())
	_, _, err := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err)
}

func TestAuth_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, testSecret, claims)
	_, _, err := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err)
}

func TestAuth_MissingExpiry(t *testing.T) {
	claims := validClaims()
	delete(claims, "exp")
	token := signToken(t, testSecret, claims)
	_, _, err := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err)
}

func TestAuth_WrongIssuer(t *testing.T) {
	claims := validClaims()
	claims["iss"] = "someone-else"
	token := signToken(t, testSecret, claims)
	_, _, err := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err)
}

func TestAuth_WrongAudience(t *testing.T) {
	claims := validClaims()
	claims["aud"] = "other-clients"
	token := signToken(t, testSecret, claims)
	_, _, err := runAuth(t, "Bearer "+token)
	assertUnauthorized(t, err)
}
