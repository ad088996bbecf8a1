package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/pribylovaa/jwt-auth-demo/internal/models"
)

// StaticVerifier — CredentialVerifier поверх фиксированного списка учёток.
//
// Сравнение устроено с постоянной структурой: проходим ВСЕ записи и для
// каждой сравниваем и email, и пароль через crypto/subtle, накапливая
// результат. Ранних выходов по совпадению email нет — по времени ответа
// нельзя отличить "учётка не существует" от "пароль не подошёл".
type StaticVerifier struct {
	accounts []models.Account
}

// DefaultAccounts — учебный список учёток (замена хранилища пользователей).
func DefaultAccounts() []models.Account {
	return []models.Account{
		{Email: "admin@prueba.com", Password: "Admin123!", Role: models.RoleAdmin},
		{Email: "user@prueba.com", Password: "User123!", Role: models.RoleManager},
	}
}

// NewStaticVerifier создаёт верификатор по списку учёток.
// Записи с ролью вне закрытого множества отбрасываются.
func NewStaticVerifier(accounts []models.Account) (*StaticVerifier, error) {
	const op = "service.verifier.NewStaticVerifier"

	valid := make([]models.Account, 0, len(accounts))
	for _, acc := range accounts {
		if !models.KnownRole(acc.Role) {
			return nil, fmt.Errorf("%s: unknown role %q for %q", op, acc.Role, acc.Email)
		}

		acc.Email = strings.ToLower(strings.TrimSpace(acc.Email))
		valid = append(valid, acc)
	}

	return &StaticVerifier{accounts: valid}, nil
}

// Verify возвращает роль учётки при полном совпадении email+пароль.
func (v *StaticVerifier) Verify(_ context.Context, email, password string) (string, error) {
	const op = "service.verifier.Verify"

	email = strings.ToLower(strings.TrimSpace(email))

	role := ""
	match := 0
	for _, acc := range v.accounts {
		emailOK := subtle.ConstantTimeCompare([]byte(acc.Email), []byte(email))
		passOK := subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password))

		if emailOK&passOK == 1 {
			match = 1
			role = acc.Role
		}
	}

	if match != 1 {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return role, nil
}
