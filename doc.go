// Package statecanon turns loosely shaped JSON or YAML documents into
// canonical typed values.
//
// A Schema reads a raw tree in three phases: Read projects the known fields
// onto typed records through a Scope, Normalize re-imposes cross-field
// invariants, and Refine re-checks them. Field-level problems never fail a
// parse; they fall back to defaults and are recorded in a PresenceMap when
// the WithMeta APIs are used. Only input that cannot be read at all fails,
// with Issues carrying a JSON Pointer and a stable code.
//
// Decoding is token based: a Source (encoding/json, goccy/go-json or YAML)
// feeds an enforcement layer that checks duplicate keys, nesting depth and
// input size, and the raw tree keeps object keys in input order.
//
// Typical usage:
//
//	v, err := statecanon.ParseFrom(ctx, s, statecanon.JSONBytes(data))
//	dm, err := statecanon.ParseFromWithMeta(ctx, s, statecanon.JSONBytes(data))
//	for _, c := range statecanon.Explain(dm.Presence, false) {
//		log.Printf("%s %s", c.Path, c.Reason())
//	}
package statecanon
