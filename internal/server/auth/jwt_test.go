package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	userID := "u1"

	tok, err := GenerateToken(userID, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, secret)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	userID := "u2"
	tok, err := GenerateToken(userID, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"))
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func mintAssertion(t *testing.T, secret []byte, subject string, validity time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email:    "a@example.com",
		FullName: "A",
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("signing assertion: %v", err)
	}
	return signed
}

func TestParseIdentityAssertion_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("idp-secret")
	tok := mintAssertion(t, secret, "subj-1", time.Hour)

	claims, err := ParseIdentityAssertion(tok, secret)
	if err != nil {
		t.Fatalf("ParseIdentityAssertion error: %v", err)
	}
	if claims.Subject != "subj-1" || claims.Email != "a@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseIdentityAssertion_Rejections(t *testing.T) {
	t.Parallel()

	secret := []byte("idp-secret")

	cases := []struct {
		name string
		tok  string
		want error
	}{
		{"wrong secret", mintAssertion(t, []byte("other"), "subj-1", time.Hour), common.ErrInvalidToken},
		{"missing subject", mintAssertion(t, secret, "", time.Hour), common.ErrInvalidToken},
		{"expired", mintAssertion(t, secret, "subj-1", -time.Second), common.ErrTokenExpired},
		{"not a jwt", "subj-1", common.ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIdentityAssertion(tc.tok, secret)
			if err != tc.want {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}
