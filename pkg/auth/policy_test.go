package auth

import (
	"testing"
)

func TestAuthorize(t *testing.T) {
	owner := &Identity{UserID: "1", Username: "alice"}
	stranger := &Identity{UserID: "2", Username: "bob"}
	admin := &Identity{UserID: "3", Username: "carol", IsAdmin: true}

	tests := []struct {
		name     string
		identity *Identity
		ownerID  string
		want     bool
	}{
		{"owner may act on own resource", owner, "1", true},
		{"non-owner is refused", stranger, "1", false},
		{"admin overrides ownership", admin, "1", true},
		{"admin may act on own resource", admin, "3", true},
		{"nil identity is refused", nil, "1", false},
		{"empty owner id does not match non-owner", stranger, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.identity, tt.ownerID); got != tt.want {
				t.Errorf("Authorize(%+v, %q) = %v, want %v", tt.identity, tt.ownerID, got, tt.want)
			}
		})
	}
}
