package validator

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/rulekit"
)

// ValidUUID passes strings in the canonical 36 character UUID form.
func ValidUUID() rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		_, ok := parseUUID(v)
		return ok
	})
}

// ValidUUIDVersion passes canonical UUID strings of the given version.
func ValidUUIDVersion(version int) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		id, ok := parseUUID(v)
		return ok && int(id.Version()) == version
	})
}

// NonNilUUID passes canonical UUID strings other than the nil UUID.
func NonNilUUID() rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		id, ok := parseUUID(v)
		return ok && id != uuid.Nil
	})
}

func parseUUID(v any) (uuid.UUID, bool) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, true
	case string:
		// Fast rejection: uuid.Parse also accepts urn and braced forms.
		if len(id) != 36 || id[8] != '-' || id[13] != '-' || id[18] != '-' || id[23] != '-' {
			return uuid.Nil, false
		}
		parsed, err := uuid.Parse(id)
		return parsed, err == nil
	}
	return uuid.Nil, false
}
