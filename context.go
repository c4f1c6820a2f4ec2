package smsotp

import "context"

type clientIPContextKey struct{}
type correlationIDContextKey struct{}
type tenantDomainContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. It is recorded on
// audit events for every flow outcome.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithCorrelationID attaches a correlation identifier to ctx. When present
// it is forwarded to the SMS sender and stamped on audit events; otherwise
// the authenticator generates one per dispatch.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, id)
}

// WithTenantDomain attaches a tenant domain to ctx. It is consulted for
// settings resolution only when the session itself carries no tenant.
func WithTenantDomain(ctx context.Context, tenantDomain string) context.Context {
	return context.WithValue(ctx, tenantDomainContextKey{}, tenantDomain)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func correlationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(correlationIDContextKey{}).(string)
	return id
}

func tenantDomainFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	tenantDomain, _ := ctx.Value(tenantDomainContextKey{}).(string)
	return tenantDomain
}
