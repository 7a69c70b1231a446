package directory

import (
	"reflect"
	"testing"
)

// Filter metacharacters in the login must not be able to rewrite the search.
func TestUserFilterEscaping(t *testing.T) {
	tests := []struct {
		name  string
		login string
		want  string
	}{
		{
			"plain principal",
			"jdoe@johotel.local",
			"(&(|(objectClass=user)(objectClass=person))(userPrincipalName=jdoe@johotel.local))",
		},
		{
			"wildcard",
			"jdoe*",
			"(&(|(objectClass=user)(objectClass=person))(userPrincipalName=jdoe\\2a))",
		},
		{
			"parens",
			"jdoe)(objectClass=*",
			"(&(|(objectClass=user)(objectClass=person))(userPrincipalName=jdoe\\29\\28objectClass=\\2a))",
		},
		{
			"backslash",
			`DOMAIN\jdoe`,
			"(&(|(objectClass=user)(objectClass=person))(userPrincipalName=DOMAIN\\5cjdoe))",
		},
		{
			"nul byte",
			"jdoe\x00",
			"(&(|(objectClass=user)(objectClass=person))(userPrincipalName=jdoe\\00))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserFilter("userPrincipalName", tt.login); got != tt.want {
				t.Errorf("UserFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroupNames(t *testing.T) {
	tests := []struct {
		name     string
		memberOf []string
		want     []string
	}{
		{
			"common names extracted",
			[]string{
				"CN=Hotel-Admins,OU=Groups,DC=johotel,DC=local",
				"CN=All-Staff,OU=Groups,DC=johotel,DC=local",
			},
			[]string{"Hotel-Admins", "All-Staff"},
		},
		{
			"lowercase cn prefix",
			[]string{"cn=Hotel-Cleaners,ou=Groups,dc=johotel,dc=local"},
			[]string{"Hotel-Cleaners"},
		},
		{
			"non-cn heads skipped",
			[]string{"OU=Groups,DC=johotel,DC=local", "CN=Hotel-Managers,OU=Groups"},
			[]string{"Hotel-Managers"},
		},
		{"empty membership", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupNames(tt.memberOf); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupNames() = %v, want %v", got, tt.want)
			}
		})
	}
}
