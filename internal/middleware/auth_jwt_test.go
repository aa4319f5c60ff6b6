package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignVerifyJWT_RoundTrip(t *testing.T) {
	claims := TokenClaims{
		Sub:    "ext-1",
		Locale: "id",
		Exp:    time.Now().Add(time.Hour).Unix(),
	}
	token, err := SignJWT("secret", claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := VerifyJWT("secret", token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Sub != "ext-1" || got.Locale != "id" {
		t.Fatalf("claims %+v", got)
	}
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	token, _ := SignJWT("secret", TokenClaims{Sub: "ext-1"})
	if _, err := VerifyJWT("other", token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestVerifyJWT_Expired(t *testing.T) {
	token, _ := SignJWT("secret", TokenClaims{Sub: "ext-1", Exp: time.Now().Add(-time.Minute).Unix()})
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestVerifyJWT_Garbage(t *testing.T) {
	for _, token := range []string{"", "a", "a.b", "a.b.c.d", "!!.!!.!!"} {
		if _, err := VerifyJWT("secret", token); err == nil {
			t.Errorf("token %q must be rejected", token)
		}
	}
}

func TestAuthJWT_StoresUserOnContext(t *testing.T) {
	token, _ := SignJWT("secret", TokenClaims{Sub: "ext-9", Locale: "id"})

	var gotUser, gotLocale string
	handler := AuthJWT("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotLocale = LocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if gotUser != "ext-9" {
		t.Errorf("user id %q", gotUser)
	}
	if gotLocale != "id" {
		t.Errorf("locale %q", gotLocale)
	}
}

func TestAuthJWT_RejectsMissingAndMalformedHeaders(t *testing.T) {
	handler := AuthJWT("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	for name, header := range map[string]string{
		"missing":     "",
		"not bearer":  "Basic abc",
		"bad token":   "Bearer not-a-jwt",
		"only scheme": "Bearer",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status %d", rr.Code)
			}
		})
	}
}
