package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := SignJWT(secret, TokenClaims{Sub: "user-1", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	var gotUser string
	handler := AuthJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUser != "user-1" {
		t.Fatalf("user id = %q", gotUser)
	}
}

func TestAuthJWTRejectsMissingHeader(t *testing.T) {
	handler := AuthJWT("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthJWTRejectsBadSignature(t *testing.T) {
	token, err := SignJWT("other-secret", TokenClaims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	handler := AuthJWT("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthJWTRejectsExpiredToken(t *testing.T) {
	token, err := SignJWT("test-secret", TokenClaims{Sub: "user-1", Exp: time.Now().Add(-time.Minute).Unix()})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	handler := AuthJWT("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
