// Package store defines the persistence gateway for user accounts and the
// sentinel errors every backend maps its failures onto. Handlers depend only
// on UserStore; the postgres and memory packages under internal/platform
// provide the implementations.
package store
