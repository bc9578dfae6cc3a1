package principal_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexhub/authcore/pkg/principal"
)

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalize(t *testing.T) {
	t.Run("canonical payload passes through", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"id": 7, "login": "jdoe", "nome": "John Doe",
			"email": "jdoe@example.com", "tipo": "ADVOGADO",
			"roles": ["ROLE_ADVOGADO"], "ativo": true
		}`))

		assert.EqualValues(t, 7, p.ID)
		assert.Equal(t, "jdoe", p.Login)
		assert.Equal(t, "John Doe", p.DisplayName)
		assert.Equal(t, "jdoe@example.com", p.PrimaryEmail)
		assert.Equal(t, principal.TypeLawyer, p.Type)
		assert.Equal(t, []string{"ROLE_ADVOGADO"}, p.RoleClaims)
		assert.True(t, p.Active)
		assert.Nil(t, p.LinkedEntity)
	})

	t.Run("alternate spellings map when canonical absent", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"id": 3, "login": "maria",
			"nomeCompleto": "Maria Silva",
			"emailPrincipal": "maria@example.com"
		}`))

		assert.Equal(t, "Maria Silva", p.DisplayName)
		assert.Equal(t, "maria@example.com", p.PrimaryEmail)
	})

	t.Run("canonical wins over alternate", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"login": "x", "nome": "Canonical", "nomeCompleto": "Alternate"
		}`))
		assert.Equal(t, "Canonical", p.DisplayName)
	})

	t.Run("display name falls back to login", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{"id": 1, "login": "jdoe"}`))
		assert.Equal(t, "jdoe", p.DisplayName)
	})

	t.Run("authorities collapse into role claims", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"login": "x",
			"authorities": [{"authority": "ROLE_ADMIN"}, {"authority": "ROLE_ADVOGADO"}]
		}`))
		assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_ADVOGADO"}, p.RoleClaims)
	})

	t.Run("non-array roles degrade to empty", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{"login": "x", "roles": "ROLE_ADMIN"}`))
		assert.Empty(t, p.RoleClaims)
		assert.NotNil(t, p.RoleClaims)
	})

	t.Run("correspondent invariant repaired by append", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"login": "c1", "tipo": "CORRESPONDENTE",
			"roles": ["ROLE_USER"]
		}`))
		// Existing primary role stays at index 0.
		assert.Equal(t, []string{"ROLE_USER", "ROLE_CORRESPONDENTE"}, p.RoleClaims)
	})

	t.Run("correspondent with empty roles gets exactly the role", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"login": "c2", "tipo": "CORRESPONDENTE", "roles": []
		}`))
		assert.Equal(t, []string{"ROLE_CORRESPONDENTE"}, p.RoleClaims)
	})

	t.Run("nested correspondent reference preferred", func(t *testing.T) {
		p := principal.Normalize(decode(t, `{
			"login": "c3", "correspondente": {"id": 55}, "correspondenteId": 99
		}`))
		require.NotNil(t, p.LinkedEntity)
		assert.EqualValues(t, 55, p.LinkedEntity.ID)
	})

	t.Run("flat id synthesizes a reference", func(t *testing.T) {
		for _, payload := range []string{
			`{"login": "c4", "correspondenteId": 42}`,
			`{"login": "c4", "idCorrespondente": 42}`,
		} {
			p := principal.Normalize(decode(t, payload))
			require.NotNil(t, p.LinkedEntity, payload)
			assert.EqualValues(t, 42, p.LinkedEntity.ID)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		payloads := []string{
			`{"id": 7, "login": "jdoe", "nomeCompleto": "John", "authorities": [{"authority": "ROLE_ADMIN"}]}`,
			`{"login": "c", "tipo": "CORRESPONDENTE", "roles": [], "idCorrespondente": 9}`,
			`{"login": "min"}`,
			`{"id": 1, "login": "full", "nome": "Full", "email": "f@x", "tipo": "ADVOGADO", "roles": ["ROLE_ADVOGADO", "ROLE_ADMIN"], "correspondente": {"id": 3}, "ativo": true}`,
		}
		for _, payload := range payloads {
			once := principal.Normalize(decode(t, payload))
			twice := principal.Normalize(once.Raw())
			assert.Equal(t, once, twice, payload)
		}
	})
}
