package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dalla-server/src/apperr"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer   = "https://cognito-idp.eu-west-1.amazonaws.com/eu-west-1_test"
	testAudience = "test-client-id"
	testKid      = "test-key-1"
)

func newJWKSServer(t *testing.T, pub *rsa.PublicKey, fetches *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fetches != nil {
			fetches.Add(1)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": testKid,
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   testIssuer,
		"aud":   testAudience,
		"sub":   "user-123",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	srv := newJWKSServer(t, &key.PublicKey, nil)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name:  "valid token",
			token: func(t *testing.T) string { return signToken(t, key, testKid, baseClaims()) },
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				claims := baseClaims()
				claims["exp"] = time.Now().Add(-time.Hour).Unix()
				return signToken(t, key, testKid, claims)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "missing expiration",
			token: func(t *testing.T) string {
				claims := baseClaims()
				delete(claims, "exp")
				return signToken(t, key, testKid, claims)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				claims := baseClaims()
				claims["aud"] = "another-client"
				return signToken(t, key, testKid, claims)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				claims := baseClaims()
				claims["iss"] = "https://evil.example.com"
				return signToken(t, key, testKid, claims)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "missing sub claim",
			token: func(t *testing.T) string {
				claims := baseClaims()
				delete(claims, "sub")
				return signToken(t, key, testKid, claims)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:    "unknown key id",
			token:   func(t *testing.T) string { return signToken(t, key, "rotated-key", baseClaims()) },
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:    "missing key id",
			token:   func(t *testing.T) string { return signToken(t, key, "", baseClaims()) },
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "hmac signing rejected",
			token: func(t *testing.T) string {
				tok := jwt.NewWithClaims(jwt.SigningMethodHS256, baseClaims())
				tok.Header["kid"] = testKid
				s, err := tok.SignedString([]byte("shared-secret"))
				if err != nil {
					t.Fatalf("signing token: %v", err)
				}
				return s
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:    "empty token",
			token:   func(t *testing.T) string { return "" },
			wantErr: apperr.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVerifier(testIssuer, testAudience, srv.URL)
			if err != nil {
				t.Fatalf("NewVerifier: %v", err)
			}
			claims, err := v.Verify(context.Background(), tt.token(t))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if claims.Subject != "user-123" {
				t.Errorf("subject = %q, want %q", claims.Subject, "user-123")
			}
			if claims.Email != "user@example.com" {
				t.Errorf("email = %q, want %q", claims.Email, "user@example.com")
			}
		})
	}
}

func TestVerifyProviderUnreachable(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	v, err := NewVerifier(testIssuer, testAudience, srv.URL)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	_, err = v.Verify(context.Background(), signToken(t, key, testKid, baseClaims()))
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("got error %v, want %v", err, apperr.ErrUnavailable)
	}
}

func TestKeySetFetchesOnce(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	var fetches atomic.Int64
	srv := newJWKSServer(t, &key.PublicKey, &fetches)

	v, err := NewVerifier(testIssuer, testAudience, srv.URL)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := v.Verify(context.Background(), signToken(t, key, testKid, baseClaims())); err != nil {
			t.Fatalf("Verify #%d: %v", i+1, err)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("key set fetched %d times, want 1", got)
	}
}
