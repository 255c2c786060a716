package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

type domainResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

var resolver domainResolver = net.DefaultResolver

const lookupTimeout = 3 * time.Second

// IsEmailDomainValid aceita o e-mail do dono se o domínio tem MX
// ou ao menos resolve. Usado só no cadastro.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if hosts, err := resolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}

	return false
}
