// Package domain contains the account entities, the result-code taxonomy
// shared by every API response, and the pure validators that check incoming
// user-data payloads before any store is contacted.
package domain
