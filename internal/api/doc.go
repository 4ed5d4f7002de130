// Package api holds the HTTP handlers of the account service. Handlers
// validate input, call the user store and write the {code, data, msg}
// response envelope. Store failures are returned to ErrorMiddleware, which
// classifies them in one place.
package api
