package lang

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// fieldLookup resolves key against a structured named-field accessor table
// first, then a free-form map, per §4.3: "look up using the snake-case form
// first and the camelCase form as fallback... return null on any miss."
//
// This replaces runtime reflection (the teacher's original approach, per the
// design note in §9) with a small per-type table built once, so field access
// is a couple of map lookups rather than a reflect.Value walk.
type fieldLookup func(key string) (any, bool)

// lookupField applies the snake_case-then-camelCase fallback shared by
// PROFILE, EVENT, PARAM, and VISIT, then falls through to extra for
// free-form maps. It never returns an error: a miss is simply (nil, false).
func lookupField(key string, table map[string]func() any, extra map[string]any) (any, bool) {
	snake := strcase.ToSnake(key)
	if get, ok := table[snake]; ok {
		return get(), true
	}

	camel := strcase.ToCamel(key)
	camel = strings.ToLower(camel[:1]) + camel[1:]

	if get, ok := table[camel]; ok {
		return get(), true
	}

	if v, ok := extra[snake]; ok {
		return v, true
	}

	if v, ok := extra[key]; ok {
		return v, true
	}

	return nil, false
}

// profileTable builds the named-field accessors for a Profile.
func profileTable(p Profile) map[string]func() any {
	return map[string]func() any{
		"first_referral": func() any { return p.FirstReferral },
	}
}

// profileLookup resolves a Profile field by key, checking named accessors,
// then Demographics, then CustomProperties.
func profileLookup(p Profile, key string) (any, bool) {
	if v, ok := lookupField(key, profileTable(p), p.Demographics); ok {
		return v, ok
	}

	snake := strcase.ToSnake(key)
	if v, ok := p.CustomProperties[snake]; ok {
		return v, true
	}

	if v, ok := p.CustomProperties[key]; ok {
		return v, true
	}

	return nil, false
}

// visitTable builds the named-field accessors for a Visit.
func visitTable(v Visit) map[string]func() any {
	return map[string]func() any{
		"landing_page": func() any { return v.LandingPage },
		"referrer":     func() any { return v.Referrer },
		"device":       func() any { return v.Device },
		"browser":      func() any { return v.Browser },
		"os":           func() any { return v.OS },
		"duration":     func() any { return v.Duration },
		"timestamp":    func() any { return v.Timestamp },
		"id":           func() any { return v.ID },
	}
}

// visitLookup resolves a Visit field by key.
func visitLookup(v Visit, key string) (any, bool) {
	return lookupField(key, visitTable(v), v.Fields)
}

// eventTable builds the named-field accessors for an Event.
func eventTable(e Event) map[string]func() any {
	return map[string]func() any{
		"event_name": func() any { return e.EventName },
		"event_type": func() any { return e.EventType },
		"timestamp":  func() any { return e.Timestamp },
	}
}

// eventLookup resolves an Event field by key, checking named accessors then
// Fields (not Parameters — PARAM(...) is the dedicated accessor for those).
func eventLookup(e Event, key string) (any, bool) {
	return lookupField(key, eventTable(e), e.Fields)
}

// paramLookup resolves an Event's Parameters map by key with the same
// snake/camel fallback, supporting one level of dot notation into a nested
// map value.
func paramLookup(params map[string]any, key string) (any, bool) {
	head, rest, dotted := strings.Cut(key, ".")

	v, ok := lookupField(head, nil, params)
	if !ok {
		return nil, false
	}

	if !dotted {
		return v, true
	}

	nested, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	return lookupField(rest, nil, nested)
}
