package authclient

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildToken собирает unsigned-токен с данным payload: на этом уровне
// подпись не проверяется, достаточно трёх сегментов.
func buildToken(t *testing.T, payload any) string {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func TestParseClaims_ScalarRole(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{
		"sub":   "admin@prueba.com",
		"email": "admin@prueba.com",
		"role":  "Admin",
		"exp":   1700000000,
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)

	byName := map[string][]string{}
	for _, c := range claims {
		byName[c.Name] = append(byName[c.Name], c.Value)
	}

	require.Equal(t, []string{"admin@prueba.com"}, byName["sub"])
	require.Equal(t, []string{"Admin"}, byName["role"])
	require.Equal(t, []string{"1700000000"}, byName["exp"])
}

func TestParseClaims_RoleArrayExpanded(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{
		"sub":  "user@prueba.com",
		"role": []string{"Admin", "Manager"},
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)

	var roles []string
	for _, c := range claims {
		if c.Name == RoleClaim {
			roles = append(roles, c.Value)
		}
	}
	require.Equal(t, []string{"Admin", "Manager"}, roles)
}

func TestParseClaims_SortedByName(t *testing.T) {
	t.Parallel()

	token := buildToken(t, map[string]any{"z": "1", "a": "2", "m": "3"})

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	require.Len(t, claims, 3)
	require.Equal(t, "a", claims[0].Name)
	require.Equal(t, "m", claims[1].Name)
	require.Equal(t, "z", claims[2].Name)
}

// Сегменты с паддингом тоже принимаются: TrimRight('=') перед декодированием.
func TestParseClaims_PaddedSegment(t *testing.T) {
	t.Parallel()

	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"x"}`))
	require.Contains(t, payload, "=")

	claims, err := ParseClaims("h." + payload + ".s")
	require.NoError(t, err)
	require.Equal(t, []Claim{{Name: "sub", Value: "x"}}, claims)
}

func TestParseClaims_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two_segments", "aaa.bbb"},
		{"four_segments", "a.b.c.d"},
		{"not_base64", "h.!!!.s"},
		{"not_json", "h." + base64.RawURLEncoding.EncodeToString([]byte("plain text")) + ".s"},
		{"json_array_payload", "h." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)) + ".s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseClaims(tc.token)
			require.Error(t, err)
		})
	}
}

func TestParseClaims_MalformedRoleArray(t *testing.T) {
	t.Parallel()

	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":[1,2]}`))
	_, err := ParseClaims("h." + payload + ".s")
	require.Error(t, err)
}
