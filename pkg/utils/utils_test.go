package utils

import (
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(hash) == "secret123" {
		t.Fatal("hash must differ from the plaintext")
	}

	if !CheckPassword("secret123", string(hash)) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", string(hash)) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("expected 6 digits, got %q", otp)
		}
		for _, ch := range otp {
			if ch < '0' || ch > '9' {
				t.Fatalf("non-digit in otp %q", otp)
			}
		}
		seen[otp] = true
	}

	if len(seen) < 2 {
		t.Error("otp generation looks constant")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("42", "transporter")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "42" || claims.Role != "transporter" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("GetExpirationTime: %v", err)
	}
	if exp == nil || !exp.After(claims.IssuedAt.Time) {
		t.Error("expiry must be after issuance")
	}

	if _, err := ParseJWT(token + "x"); err == nil {
		t.Error("tampered token must be rejected")
	}
}

func TestJWTRequiresSecret(t *testing.T) {
	InitJWT("")

	if _, err := GenerateJWT("1", "customer"); err == nil {
		t.Error("expected error without a configured secret")
	}

	InitJWT("test-secret")
}
