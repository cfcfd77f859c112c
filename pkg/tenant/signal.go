package tenant

// Source identifies where a candidate tenant identity was read from.
type Source int

const (
	SourceNone Source = iota
	SourceNamespacedCookie
	SourceBareCookie
	SourceQuery
	SourceSubdomain
	SourcePath
	SourceClaim
)

func (s Source) String() string {
	switch s {
	case SourceNamespacedCookie:
		return "namespaced_cookie"
	case SourceBareCookie:
		return "bare_cookie"
	case SourceQuery:
		return "query"
	case SourceSubdomain:
		return "subdomain"
	case SourcePath:
		return "path"
	case SourceClaim:
		return "jwt_claim"
	default:
		return "none"
	}
}

// fromCookie reports whether the source is backed by client cookie storage,
// i.e. whether a denylisted value read from it should be cleared.
func (s Source) fromCookie() bool {
	return s == SourceNamespacedCookie || s == SourceBareCookie
}

// Trust tiers candidate signals. High: namespaced or verified-context
// cookies. Medium: subdomain and path inference. Low: the unverified JWT
// claim, which is advisory only and never trusted on its own.
type Trust int

const (
	TrustLow Trust = iota
	TrustMedium
	TrustHigh
)

// Signal is one candidate tenant identity read from a single source,
// before normalization.
type Signal struct {
	Source Source
	Value  string
	Trust  Trust

	// cookieName is set for cookie-backed signals so a denylisted value
	// can be cleared from where it was read.
	cookieName string
}
