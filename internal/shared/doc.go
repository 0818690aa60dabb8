// Package shared holds helpers used by the tests of several packages.
//
// testutil captures slog records so tests can assert on the warnings a
// component logs, for example the exports the merger skipped.
package shared
