package domain

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	now := time.Date(2024, 7, 21, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{
			name:      "expired session",
			expiresAt: now.Add(-1 * time.Hour),
			expected:  true,
		},
		{
			name:      "valid session",
			expiresAt: now.Add(1 * time.Hour),
			expected:  false,
		},
		{
			name:      "just expired",
			expiresAt: now.Add(-1 * time.Second),
			expected:  true,
		},
		{
			name:      "expires this instant",
			expiresAt: now,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{ExpiresAt: tt.expiresAt}
			if session.IsExpired(now) != tt.expected {
				t.Errorf("expected IsExpired() = %v", tt.expected)
			}
		})
	}
}

func TestAuthContextIsAdmin(t *testing.T) {
	tests := []struct {
		role    Role
		isAdmin bool
	}{
		{RoleAdmin, true},
		{RoleEditor, false},
		{RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ctx := &AuthContext{Role: tt.role}
			if ctx.IsAdmin() != tt.isAdmin {
				t.Errorf("expected IsAdmin() = %v for role %s", tt.isAdmin, tt.role)
			}
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleViewer} {
		if !r.IsValid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("member").IsValid() {
		t.Error("member should not be a valid role")
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := &User{ID: "1", Username: "admin", Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("expected admin user to be admin")
	}
	viewer := &User{ID: "2", Username: "guest", Role: RoleViewer}
	if viewer.IsAdmin() {
		t.Error("expected viewer not to be admin")
	}
}
