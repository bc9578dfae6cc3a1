package principal

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Type is the coarse business role of a principal.
type Type string

const (
	TypeAdmin         Type = "ADMIN"
	TypeLawyer        Type = "ADVOGADO"
	TypeCorrespondent Type = "CORRESPONDENTE"
)

// Role claim tags used by the authorization layer.
const (
	RoleAdmin         = "ROLE_ADMIN"
	RoleLawyer        = "ROLE_ADVOGADO"
	RoleCorrespondent = "ROLE_CORRESPONDENTE"
)

// EntityRef is a weak reference to a correspondent business entity.
// It is a lookup key, not an owned relation.
type EntityRef struct {
	ID int64 `json:"id"`
}

// Principal is the canonical signed-in identity. All authorization
// decisions are made against this shape; raw backend payloads must go
// through Normalize first.
type Principal struct {
	ID           int64      `json:"id"`
	Login        string     `json:"login"`
	DisplayName  string     `json:"nome,omitempty"`
	PrimaryEmail string     `json:"email,omitempty"`
	Type         Type       `json:"tipo,omitempty"`
	RoleClaims   []string   `json:"roles"`
	LinkedEntity *EntityRef `json:"correspondente,omitempty"`
	Active       bool       `json:"ativo"`
}

// HasRole reports whether the principal carries the exact role claim.
func (p *Principal) HasRole(role string) bool {
	return p != nil && slices.Contains(p.RoleClaims, role)
}

// HasAnyRole reports whether the principal carries at least one of the
// given role claims. An empty list matches nothing.
func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if slices.Contains(p.RoleClaims, r) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether the principal carries every one of the
// given role claims. An empty list is trivially satisfied.
func (p *Principal) HasAllRoles(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if !slices.Contains(p.RoleClaims, r) {
			return false
		}
	}
	return true
}

// PrimaryRole returns the role claim at index 0, or "" when the
// principal has no claims.
func (p *Principal) PrimaryRole() string {
	if p == nil || len(p.RoleClaims) == 0 {
		return ""
	}
	return p.RoleClaims[0]
}

// CorrespondentID returns the linked correspondent entity id, if any.
func (p *Principal) CorrespondentID() (int64, bool) {
	if p == nil || p.LinkedEntity == nil {
		return 0, false
	}
	return p.LinkedEntity.ID, true
}

// Clone returns a deep copy. Subscribers receive clones so a published
// principal can never be mutated behind the session's back.
func (p *Principal) Clone() *Principal {
	if p == nil {
		return nil
	}
	cp := *p
	cp.RoleClaims = slices.Clone(p.RoleClaims)
	if p.LinkedEntity != nil {
		ref := *p.LinkedEntity
		cp.LinkedEntity = &ref
	}
	return &cp
}

// EncodeSnapshot serializes the principal for the credential store.
func EncodeSnapshot(p *Principal) (string, error) {
	if p == nil {
		return "", fmt.Errorf("principal: nil snapshot")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("principal: encode snapshot: %w", err)
	}
	return string(data), nil
}

// ParseSnapshot deserializes a stored principal snapshot. Callers treat
// a parse failure as an absent snapshot, never as a fatal error.
func ParseSnapshot(s string) (*Principal, error) {
	var p Principal
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("principal: parse snapshot: %w", err)
	}
	return &p, nil
}
