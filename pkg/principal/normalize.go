package principal

import "encoding/json"

// Alternate spellings observed across backend endpoints. Canonical keys
// win; alternates are consulted only when the canonical key is absent.
var (
	displayNameKeys = []string{"nome", "nomeCompleto", "displayName"}
	emailKeys       = []string{"email", "emailPrincipal"}
	linkedIDKeys    = []string{"correspondenteId", "idCorrespondente"}
)

// Normalize maps a raw backend payload onto the canonical Principal
// shape. It is total over duck-typed input: wrong-typed fields degrade
// to their zero value instead of failing. Idempotent by construction:
// Normalize(p.Raw()) == p for any normalized p.
func Normalize(raw map[string]any) Principal {
	p := Principal{
		ID:     asInt64(raw["id"]),
		Login:  asString(raw["login"]),
		Active: asBool(firstPresent(raw, "ativo", "active")),
	}

	p.DisplayName = asString(firstPresent(raw, displayNameKeys...))
	if p.DisplayName == "" {
		p.DisplayName = p.Login
	}

	p.PrimaryEmail = asString(firstPresent(raw, emailKeys...))
	p.Type = Type(asString(firstPresent(raw, "tipo", "principalType")))

	p.RoleClaims = collectRoles(firstPresent(raw, "roles", "authorities"))

	// A correspondent principal must carry the correspondent role claim
	// even when the backend omits it. Append keeps index 0 primary.
	if p.Type == TypeCorrespondent && !p.HasRole(RoleCorrespondent) {
		p.RoleClaims = append(p.RoleClaims, RoleCorrespondent)
	}

	p.LinkedEntity = linkedEntity(raw)

	return p
}

// Raw emits the canonical wire form of the principal, suitable for
// feeding back through Normalize.
func (p Principal) Raw() map[string]any {
	raw := map[string]any{
		"id":    p.ID,
		"login": p.Login,
		"roles": rolesAny(p.RoleClaims),
		"ativo": p.Active,
	}
	if p.DisplayName != "" {
		raw["nome"] = p.DisplayName
	}
	if p.PrimaryEmail != "" {
		raw["email"] = p.PrimaryEmail
	}
	if p.Type != "" {
		raw["tipo"] = string(p.Type)
	}
	if p.LinkedEntity != nil {
		raw["correspondente"] = map[string]any{"id": p.LinkedEntity.ID}
	}
	return raw
}

// linkedEntity resolves the correspondent reference: a nested object is
// preferred; a bare id under a flat key synthesizes a minimal {id} ref.
func linkedEntity(raw map[string]any) *EntityRef {
	if nested, ok := raw["correspondente"].(map[string]any); ok {
		if id := asInt64(nested["id"]); id != 0 {
			return &EntityRef{ID: id}
		}
	}

	for _, key := range linkedIDKeys {
		if id := asInt64(raw[key]); id != 0 {
			return &EntityRef{ID: id}
		}
	}

	return nil
}

// collectRoles flattens a role-bearing field into claim strings.
// Entries may be plain strings or Spring-style {"authority": "..."}
// objects; anything else, including a non-array field, yields an
// empty set rather than an error.
func collectRoles(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok {
			roles := make([]string, 0, len(strs))
			for _, s := range strs {
				if s != "" {
					roles = append(roles, s)
				}
			}
			return roles
		}
		return []string{}
	}

	roles := make([]string, 0, len(list))
	for _, entry := range list {
		switch e := entry.(type) {
		case string:
			if e != "" {
				roles = append(roles, e)
			}
		case map[string]any:
			if s := asString(e["authority"]); s != "" {
				roles = append(roles, s)
			}
		}
	}
	return roles
}

func rolesAny(roles []string) []any {
	out := make([]any, len(roles))
	for i, r := range roles {
		out[i] = r
	}
	return out
}

// firstPresent returns the value of the first key present in raw.
func firstPresent(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asInt64 coerces the numeric representations JSON decoding produces.
func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}
