// Package entity reads the leaf records of a state document: items,
// equipment, skills, status effects, quests, attribute blocks and realms.
//
// Readers use projection semantics. Only declared fields survive, in declared
// order, and every field falls back to its default when missing or malformed.
package entity
