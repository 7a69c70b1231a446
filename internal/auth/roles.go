package auth

import (
	"strings"

	"github.com/johotel/hotel-api/internal/domain"
	"github.com/johotel/hotel-api/pkg/config"
)

// RoleResolver maps directory group membership to an application role using
// the configured ordered group-to-role table. Lookup is case-insensitive and
// the first configured mapping present in the group set wins; anything else
// resolves to Customer.
type RoleResolver struct {
	mappings []config.GroupRole
}

func NewRoleResolver(mappings []config.GroupRole) *RoleResolver {
	return &RoleResolver{mappings: mappings}
}

func (r *RoleResolver) Resolve(groups []string) string {
	memberOf := make(map[string]bool, len(groups))
	for _, g := range groups {
		memberOf[strings.ToLower(g)] = true
	}

	for _, m := range r.mappings {
		if memberOf[strings.ToLower(m.Group)] {
			return m.Role
		}
	}
	return domain.RoleCustomer
}
