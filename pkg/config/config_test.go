package config

import (
	"reflect"
	"testing"
)

func TestParseGroupRoles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []GroupRole
	}{
		{
			"standard table",
			"Hotel-Admins=Admin,Hotel-Managers=Manager,Hotel-Cleaners=Cleaner",
			[]GroupRole{
				{Group: "Hotel-Admins", Role: "Admin"},
				{Group: "Hotel-Managers", Role: "Manager"},
				{Group: "Hotel-Cleaners", Role: "Cleaner"},
			},
		},
		{
			"whitespace trimmed",
			" Hotel-Admins = Admin , Hotel-Cleaners = Cleaner ",
			[]GroupRole{
				{Group: "Hotel-Admins", Role: "Admin"},
				{Group: "Hotel-Cleaners", Role: "Cleaner"},
			},
		},
		{
			"malformed pairs skipped",
			"Hotel-Admins=Admin,broken,=Manager,Hotel-Cleaners=",
			[]GroupRole{{Group: "Hotel-Admins", Role: "Admin"}},
		},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseGroupRoles(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseGroupRoles(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
