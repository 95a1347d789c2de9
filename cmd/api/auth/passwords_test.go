package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Atharv@1136")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Atharv@1136" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "Atharv@1136") {
		t.Fatal("correct password must verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("wrong password must not verify")
	}
	if CheckPassword("not-a-bcrypt-hash", "Atharv@1136") {
		t.Fatal("garbage hash must not verify")
	}
}
