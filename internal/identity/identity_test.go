package identity

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return priv, string(pemKey)
}

func signSession(t *testing.T, priv *rsa.PrivateKey, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
		"iat": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func TestVerifierAcceptsValidToken(t *testing.T) {
	priv, pemKey := newTestKeys(t)
	v, err := NewVerifier(pemKey)
	require.NoError(t, err)

	token := signSession(t, priv, "user_123", time.Now().Add(time.Hour))
	sub, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user_123", sub)
}

func TestVerifierRejectsExpiredToken(t *testing.T) {
	priv, pemKey := newTestKeys(t)
	v, err := NewVerifier(pemKey)
	require.NoError(t, err)

	token := signSession(t, priv, "user_123", time.Now().Add(-time.Hour))
	_, err = v.Verify(token)
	require.Error(t, err)
}

func TestVerifierRejectsWrongKey(t *testing.T) {
	_, pemKey := newTestKeys(t)
	other, _ := newTestKeys(t)

	v, err := NewVerifier(pemKey)
	require.NoError(t, err)

	token := signSession(t, other, "user_123", time.Now().Add(time.Hour))
	_, err = v.Verify(token)
	require.Error(t, err)
}

func TestRequireSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	priv, pemKey := newTestKeys(t)
	v, err := NewVerifier(pemKey)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", RequireSession(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Unauthorized")

	// Bearer token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, priv, "user_abc", time.Now().Add(time.Hour)))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user_abc")

	// Session cookie.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "__session", Value: signSession(t, priv, "user_cookie", time.Now().Add(time.Hour))})
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user_cookie")
}

func TestClientGetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/user_1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "user_1",
			"first_name": "Ada",
			"last_name": null,
			"image_url": "https://img.example/a.png",
			"created_at": 1735689600000,
			"updated_at": 1735693200000,
			"last_sign_in_at": null,
			"email_addresses": [{"email_address": "ada@example.com", "verification": {"status": "verified"}}]
		}`))
	}))
	defer server.Close()

	c := NewClient("sk_test")
	c.baseURL = server.URL

	md, err := c.GetUser(t.Context(), "user_1")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", md.Email)
	require.True(t, md.EmailVerified)
	require.Equal(t, "Ada", md.FullName)
	require.Nil(t, md.LastSignInAt)
}

func TestFullNameFallback(t *testing.T) {
	empty := ""
	require.Equal(t, "User", fullName(nil, nil))
	require.Equal(t, "User", fullName(&empty, &empty))

	first, last := "Ada", "Lovelace"
	require.Equal(t, "Ada Lovelace", fullName(&first, &last))
	require.Equal(t, "Ada", fullName(&first, nil))
}
