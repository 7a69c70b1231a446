package auth

import (
	"testing"

	"github.com/johotel/hotel-api/internal/domain"
	"github.com/johotel/hotel-api/pkg/config"
)

func testMappings() []config.GroupRole {
	return config.ParseGroupRoles("Hotel-Admins=Admin,Hotel-Managers=Manager,Hotel-Cleaners=Cleaner")
}

func TestResolve(t *testing.T) {
	resolver := NewRoleResolver(testMappings())

	tests := []struct {
		name   string
		groups []string
		want   string
	}{
		{"admin group", []string{"Hotel-Admins"}, domain.RoleAdmin},
		{"manager group", []string{"VPN-Users", "Hotel-Managers"}, domain.RoleManager},
		{"cleaner group", []string{"Hotel-Cleaners"}, domain.RoleCleaner},
		{"case insensitive", []string{"hotel-admins"}, domain.RoleAdmin},
		{"no mapped groups", []string{"VPN-Users", "All-Staff"}, domain.RoleCustomer},
		{"empty membership", nil, domain.RoleCustomer},
		// Admins comes first in the configured order, so it wins even when
		// the user is also a cleaner.
		{"first configured mapping wins", []string{"Hotel-Cleaners", "Hotel-Admins"}, domain.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.Resolve(tt.groups); got != tt.want {
				t.Errorf("Resolve(%v) = %q, want %q", tt.groups, got, tt.want)
			}
		})
	}
}
