package tenant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxIdentifierLength bounds candidate identifiers for DNS compatibility
// and to reject garbage before it reaches the registry.
const MaxIdentifierLength = 253

// Identity is a tenant identity in one of two shapes: a canonical UUID
// (authoritative, safe for downstream systems) or a human-readable domain
// token (speculative, must be resolved before use). Exactly one of the two
// is ever populated.
type Identity struct {
	id    uuid.UUID
	token string
}

// CanonicalID wraps a registry UUID into an authoritative identity.
func CanonicalID(id uuid.UUID) Identity {
	return Identity{id: id}
}

// DomainToken wraps a slug/hostname into a speculative identity.
// The token is case-folded so equal tokens compare equal.
func DomainToken(token string) Identity {
	return Identity{token: strings.ToLower(token)}
}

// Canonical reports whether the identity is an authoritative UUID.
func (i Identity) Canonical() bool { return i.id != uuid.Nil }

// IsZero reports whether no identity is present.
func (i Identity) IsZero() bool { return i.id == uuid.Nil && i.token == "" }

// UUID returns the canonical id, or uuid.Nil for domain tokens.
func (i Identity) UUID() uuid.UUID { return i.id }

// Token returns the domain token, or "" for canonical identities.
func (i Identity) Token() string { return i.token }

// String returns the canonical id or the token, whichever is populated.
func (i Identity) String() string {
	if i.Canonical() {
		return i.id.String()
	}
	return i.token
}

// reserved can never be treated as a tenant identity, whatever source it
// came from. Matched case-insensitively.
var reserved = map[string]struct{}{
	"system":          {},
	"localhost":       {},
	"undefined":       {},
	"null":            {},
	"none":            {},
	"login":           {},
	"logout":          {},
	"signup":          {},
	"api":             {},
	"_next":           {},
	"static":          {},
	"assets":          {},
	"public":          {},
	"favicon.ico":     {},
	"www":             {},
	"admin":           {},
	"super-admin":     {},
	"session-expired": {},
}

// IsReserved reports whether the value is on the denylist.
func IsReserved(value string) bool {
	_, ok := reserved[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// domainTokenPattern accepts slugs ("my-school-1") and dotted hostnames
// ("foo.example.com"): alphanumeric labels with inner hyphens, dot-separated.
var domainTokenPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)*$`)

// Normalize validates a raw candidate and classifies it as a canonical id or
// a domain token. Total: it returns a typed identity or a typed rejection,
// never panics. Idempotent: normalizing the string form of a normalized
// identity yields the same identity.
func Normalize(raw string) (Identity, error) {
	value := strings.TrimSpace(raw)
	if value == "" || len(value) > MaxIdentifierLength {
		return Identity{}, ErrInvalidIdentifier
	}
	if IsReserved(value) {
		return Identity{}, fmt.Errorf("%w: %q", ErrReservedIdentifier, value)
	}
	if isCanonicalUUID(value) {
		id, err := uuid.Parse(value)
		if err != nil {
			return Identity{}, ErrInvalidIdentifier
		}
		return CanonicalID(id), nil
	}
	if domainTokenPattern.MatchString(value) {
		return DomainToken(value), nil
	}
	return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, value)
}
