package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/johotel/hotel-api/internal/domain"
	"github.com/johotel/hotel-api/pkg/config"
)

// Identity is the normalized result of a successful directory login.
type Identity struct {
	Login       string
	Email       string
	DisplayName string
	Groups      []string
}

// Client verifies staff credentials against the directory: bind as the
// service account, search for the principal, rebind as the discovered DN
// with the supplied password.
type Client interface {
	Authenticate(ctx context.Context, login, password string) (*Identity, error)
}

type ldapClient struct {
	cfg config.DirectoryConfig
}

func NewClient(cfg config.DirectoryConfig) Client {
	return &ldapClient{cfg: cfg}
}

var searchAttributes = []string{
	"distinguishedName", "cn", "displayName", "mail",
	"memberOf", "userPrincipalName", "sAMAccountName",
}

func (c *ldapClient) Authenticate(ctx context.Context, login, password string) (*Identity, error) {
	// An empty password would turn the rebind into an unauthenticated bind,
	// which most servers accept. Reject it before touching the wire.
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: empty password", domain.ErrAuthFailed)
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: directory unreachable: %v", domain.ErrAuthFailed, err)
	}
	defer conn.Close()

	if err := conn.Bind(c.cfg.BindDN, c.cfg.BindPassword); err != nil {
		return nil, fmt.Errorf("%w: service bind failed: %v", domain.ErrAuthFailed, err)
	}

	entry, err := c.findEntry(conn, login)
	if err != nil {
		return nil, err
	}

	// Rebind as the user to verify the credential.
	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, fmt.Errorf("%w: invalid directory credentials", domain.ErrAuthFailed)
	}

	return extractIdentity(login, entry), nil
}

func (c *ldapClient) dial(ctx context.Context) (*ldap.Conn, error) {
	dialer := &net.Dialer{Timeout: c.cfg.Timeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	opts := []ldap.DialOpt{ldap.DialWithDialer(dialer)}
	if c.cfg.InsecureSkipVerify {
		opts = append(opts, ldap.DialWithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	}

	conn, err := ldap.DialURL(c.cfg.URL, opts...)
	if err != nil {
		return nil, err
	}
	conn.SetTimeout(c.cfg.Timeout)
	return conn, nil
}

func (c *ldapClient) findEntry(conn *ldap.Conn, login string) (*ldap.Entry, error) {
	req := ldap.NewSearchRequest(
		c.cfg.SearchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1, // size limit: the principal attribute is unique
		int(c.cfg.Timeout.Seconds()),
		false,
		UserFilter(c.cfg.UserAttribute, login),
		searchAttributes,
		nil,
	)

	resp, err := conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("%w: directory search failed: %v", domain.ErrAuthFailed, err)
	}
	if len(resp.Entries) == 0 {
		return nil, fmt.Errorf("%w: unknown principal", domain.ErrAuthFailed)
	}
	return resp.Entries[0], nil
}

// UserFilter builds the principal search filter, escaping the login per
// RFC 4515 so metacharacters cannot rewrite the filter.
func UserFilter(userAttribute, login string) string {
	return fmt.Sprintf("(&(|(objectClass=user)(objectClass=person))(%s=%s))",
		userAttribute, ldap.EscapeFilter(login))
}

func extractIdentity(login string, entry *ldap.Entry) *Identity {
	display := entry.GetAttributeValue("displayName")
	if display == "" {
		display = entry.GetAttributeValue("cn")
	}

	return &Identity{
		Login:       login,
		Email:       entry.GetAttributeValue("mail"),
		DisplayName: display,
		Groups:      GroupNames(entry.GetAttributeValues("memberOf")),
	}
}

// GroupNames pulls the common names out of memberOf distinguished names,
// e.g. "CN=Hotel-Admins,OU=Groups,DC=johotel,DC=local" -> "Hotel-Admins".
func GroupNames(memberOf []string) []string {
	var groups []string
	for _, dn := range memberOf {
		head, _, _ := strings.Cut(dn, ",")
		if len(head) > 3 && strings.EqualFold(head[:3], "CN=") {
			groups = append(groups, head[3:])
		}
	}
	return groups
}
