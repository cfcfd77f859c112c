package tenant

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// Signal extractors. Each is total and side-effect-free: a malformed or
// absent source yields (Signal{}, false), never an error. Precedence between
// sources is the orchestrator's concern, not the extractors'.

// CookieSignal reads a candidate from a named cookie.
func CookieSignal(r *http.Request, name string, source Source, trust Trust) (Signal, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return Signal{}, false
	}
	return Signal{Source: source, Value: c.Value, Trust: trust, cookieName: name}, true
}

// QuerySignal reads the explicit tenant override parameter. API routes never
// accept the override; a tenant switch there must come from a page load.
func QuerySignal(r *http.Request, param string) (Signal, bool) {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
		return Signal{}, false
	}
	v := r.URL.Query().Get(param)
	if v == "" {
		return Signal{}, false
	}
	return Signal{Source: SourceQuery, Value: v, Trust: TrustHigh}, true
}

// SubdomainSignal reads the leftmost subdomain label from the request host.
// Known deployment-platform hosts, localhost and www are never tenant
// subdomains. Requires a subdomain.domain.tld shape (three labels or more).
func SubdomainSignal(r *http.Request, platformSuffixes []string) (Signal, bool) {
	host := r.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	host = strings.ToLower(host)
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return Signal{}, false
	}
	for _, suffix := range platformSuffixes {
		if host == strings.TrimPrefix(suffix, ".") || strings.HasSuffix(host, suffix) {
			return Signal{}, false
		}
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return Signal{}, false
	}
	sub := parts[0]
	if sub == "www" {
		// www.acme.app.com still names acme; www.app.com does not.
		if len(parts) < 4 {
			return Signal{}, false
		}
		sub = parts[1]
	}
	if sub == "" {
		return Signal{}, false
	}
	return Signal{Source: SourceSubdomain, Value: sub, Trust: TrustMedium}, true
}

// PathSignal reads the first path segment when it is shaped like a tenant
// identifier: a UUID, a dotted domain, or an unreserved alphanumeric/hyphen
// token. Reserved words (login, api, static, ...) are explicitly excluded so
// that framework routes never masquerade as tenants.
func PathSignal(r *http.Request) (Signal, bool) {
	segs := pathSegments(r.URL.Path)
	if len(segs) == 0 {
		return Signal{}, false
	}
	seg := segs[0]
	if IsReserved(seg) {
		return Signal{}, false
	}
	if _, ok := DashboardSegments[strings.ToLower(seg)]; ok {
		return Signal{}, false
	}
	if !isCanonicalUUID(seg) && !domainTokenPattern.MatchString(seg) {
		return Signal{}, false
	}
	return Signal{Source: SourcePath, Value: seg, Trust: TrustMedium}, true
}

// claimAbsentMarkers are serialized nothings that upstream token issuers
// have been observed to emit as claim values.
var claimAbsentMarkers = map[string]struct{}{
	"none": {}, "null": {}, "undefined": {},
}

// ClaimSignal opportunistically reads the tenant_id claim from an access
// token cookie. The payload segment is base64url-decoded without signature
// verification, so this is strictly an advisory, lowest-trust signal: it may
// pre-fill a registry lookup but is never trusted on its own.
func ClaimSignal(r *http.Request, cookieName string) (Signal, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return Signal{}, false
	}

	parts := strings.Split(c.Value, ".")
	if len(parts) != 3 {
		return Signal{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Signal{}, false
	}

	var claims struct {
		TenantID string `json:"tenant_id"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Signal{}, false
	}
	v := strings.TrimSpace(claims.TenantID)
	if v == "" {
		return Signal{}, false
	}
	if _, absent := claimAbsentMarkers[strings.ToLower(v)]; absent {
		return Signal{}, false
	}
	return Signal{Source: SourceClaim, Value: v, Trust: TrustLow}, true
}
