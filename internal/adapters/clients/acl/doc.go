// Package acl is the anti-corruption layer between the creature database's
// JSON and the domain model.
//
// Upstream DTOs are unexported and never leave this package. Every failure
// is translated into the domain taxonomy before it is returned:
//
//   - 404 Not Found → [domain.ErrNotFound]
//   - any other non-2xx status → [domain.ErrUpstream]
//   - transport failures and an open circuit → [domain.ErrUpstream]
//   - undecodable or malformed bodies → [domain.ErrUpstream]
//
// Adapters embed [BaseAdapter], decode with [DecodeResponse] and convert
// lists with [TranslateSlice].
package acl
