package crypto

import (
	"errors"
	"testing"

	"tastebook/domain"
)

func TestCredentialCipher_RoundTrip(t *testing.T) {
	c := NewCredentialCipher("test-secret")

	for _, password := range []string{"hunter2", "", "päss wörd with spaces", "a-very-long-password-that-spans-more-than-one-aes-block-size"} {
		ct, err := c.Encrypt(password)
		if err != nil {
			t.Fatalf("encrypt %q: %v", password, err)
		}
		pt, err := c.Decrypt(ct)
		if err != nil {
			t.Fatalf("decrypt %q: %v", password, err)
		}
		if pt != password {
			t.Errorf("round trip: got %q, want %q", pt, password)
		}
	}
}

func TestCredentialCipher_FreshIVPerCall(t *testing.T) {
	c := NewCredentialCipher("test-secret")

	first, err := c.Encrypt("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Encrypt("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two encryptions of the same plaintext produced identical ciphertexts")
	}

	for _, ct := range []string{first, second} {
		pt, err := c.Decrypt(ct)
		if err != nil {
			t.Fatal(err)
		}
		if pt != "hunter2" {
			t.Errorf("got %q, want %q", pt, "hunter2")
		}
	}
}

func TestCredentialCipher_MalformedInput(t *testing.T) {
	c := NewCredentialCipher("test-secret")

	t.Run("invalid base64", func(t *testing.T) {
		if _, err := c.Decrypt("not base64!!!"); !errors.Is(err, domain.ErrDecodingFailed) {
			t.Errorf("got %v, want ErrDecodingFailed", err)
		}
	})

	t.Run("too short for IV", func(t *testing.T) {
		if _, err := c.Decrypt("c2hvcnQ="); !errors.Is(err, domain.ErrDecodingFailed) {
			t.Errorf("got %v, want ErrDecodingFailed", err)
		}
	})

	t.Run("empty string", func(t *testing.T) {
		if _, err := c.Decrypt(""); !errors.Is(err, domain.ErrDecodingFailed) {
			t.Errorf("got %v, want ErrDecodingFailed", err)
		}
	})
}

func TestCredentialCipher_KeyIsDeterministic(t *testing.T) {
	ct, err := NewCredentialCipher("shared-secret").Encrypt("hunter2")
	if err != nil {
		t.Fatal(err)
	}

	// A second cipher built from the same secret must decrypt it.
	pt, err := NewCredentialCipher("shared-secret").Decrypt(ct)
	if err != nil {
		t.Fatal(err)
	}
	if pt != "hunter2" {
		t.Errorf("got %q, want %q", pt, "hunter2")
	}
}
