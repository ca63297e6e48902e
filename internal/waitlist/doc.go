// Package waitlist collects email signups for the product launch list.
//
// A signup is validated, then persisted and announced on a best-effort basis:
// the store and notifier are optional collaborators whose failures are
// logged, never surfaced to the person signing up. Only invalid input rejects
// a signup.
package waitlist
