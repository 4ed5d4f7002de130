// Package mocks provides hand-written test doubles for the store and auth
// interfaces. Each mock records its calls and delegates to an optional
// function field, falling back to a fixed default result.
package mocks
