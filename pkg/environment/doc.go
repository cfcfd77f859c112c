// Package environment defines the application environment names shared by
// the logger presets and the cookie Secure attribute decision.
package environment
