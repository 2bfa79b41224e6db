package statecanon

// Correction is one place where normalization replaced or changed the input.
type Correction struct {
	Path     string
	Presence Presence
}

// Reason names the strongest correction at the path: truncated, pruned,
// clamped, then missing, null or malformed for a default.
func (c Correction) Reason() string {
	p := c.Presence
	switch {
	case p&PresenceTruncated != 0:
		return "truncated"
	case p&PresencePruned != 0:
		return "pruned"
	case p&PresenceClamped != 0:
		return "clamped"
	case p&PresenceDefaultApplied == 0:
		return ""
	case p&PresenceSeen == 0:
		return "missing"
	case p&PresenceWasNull != 0:
		return "null"
	default:
		return "malformed"
	}
}

// Explain lists the corrections recorded in pm in pointer order. With
// missingToo false, defaults for fields that were simply absent are left
// out, since a sparse input produces one per omitted field.
func Explain(pm PresenceMap, missingToo bool) []Correction {
	var out []Correction
	for _, path := range pm.Corrections() {
		c := Correction{Path: path, Presence: pm[path]}
		if !missingToo && c.Reason() == "missing" {
			continue
		}
		out = append(out, c)
	}
	return out
}
