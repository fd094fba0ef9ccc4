// Package identity carries the authenticated caller through request context
// and defines the closed set of caller roles.
package identity
