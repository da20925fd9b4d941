package services

import "testing"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken("test-secret", "u1")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	userID, err := ParseAccessToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("userID = %q, want %q", userID, "u1")
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := CreateAccessToken("test-secret", "u1")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	if _, err := ParseAccessToken("other-secret", token); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := CreateRefreshToken("refresh-secret", "u1", "tok-42")
	if err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}

	userID, tokenID, err := ParseRefreshToken("refresh-secret", token)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if userID != "u1" || tokenID != "tok-42" {
		t.Fatalf("claims = (%q, %q), want (u1, tok-42)", userID, tokenID)
	}

	// An access token must not pass as a refresh token: it has no token id.
	access, err := CreateAccessToken("refresh-secret", "u1")
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if _, _, err := ParseRefreshToken("refresh-secret", access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	hash, err := HashRefreshToken("some-long-refresh-token-value")
	if err != nil {
		t.Fatalf("HashRefreshToken: %v", err)
	}

	if !CheckRefreshToken(hash, "some-long-refresh-token-value") {
		t.Error("stored hash rejected the original token")
	}
	if CheckRefreshToken(hash, "a-different-token") {
		t.Error("stored hash accepted a different token")
	}
}
