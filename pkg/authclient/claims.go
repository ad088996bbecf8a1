package authclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Claim — одна пара (имя, значение) из payload токена.
type Claim struct {
	Name  string
	Value string
}

// Имя клейма роли в токенах сервера.
const RoleClaim = "role"

// ParseClaims декодирует payload JWT (средний сегмент) БЕЗ проверки подписи.
//
// Используется только для локального отображения состояния "кто я" на
// клиенте: никакие решения об авторизации на этом пути не принимаются —
// их принимает сервер, который перепроверяет токен на каждом запросе.
//
// Клейм роли может быть и строкой, и массивом строк; массив
// разворачивается в несколько записей с именем "role".
func ParseClaims(token string) ([]Claim, error) {
	const op = "authclient.claims.ParseClaims"

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%s: expected 3 token segments, got %d", op, len(parts))
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var kv map[string]json.RawMessage
	if err := json.Unmarshal(payload, &kv); err != nil {
		return nil, fmt.Errorf("%s: payload is not a JSON object: %w", op, err)
	}

	claims := make([]Claim, 0, len(kv))
	for name, raw := range kv {
		if name == RoleClaim && isArray(raw) {
			var roles []string
			if err := json.Unmarshal(raw, &roles); err != nil {
				return nil, fmt.Errorf("%s: malformed role claim: %w", op, err)
			}
			for _, role := range roles {
				claims = append(claims, Claim{Name: RoleClaim, Value: role})
			}
			continue
		}

		claims = append(claims, Claim{Name: name, Value: scalarString(raw)})
	}

	// Порядок обхода map недетерминирован — фиксируем для стабильности.
	sort.SliceStable(claims, func(i, j int) bool { return claims[i].Name < claims[j].Name })

	return claims, nil
}

// decodeSegment декодирует сегмент токена из base64url.
// Сервер выпускает сегменты без паддинга, но '=' на конце тоже принимаем.
func decodeSegment(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	return base64.RawURLEncoding.DecodeString(s)
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}

	return false
}

// scalarString приводит скалярное JSON-значение клейма к строке.
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	// Числа/булевы значения (exp, iat и т.п.) отдаём как есть.
	return strings.TrimSpace(string(raw))
}
