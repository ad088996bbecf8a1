package models

// Роли — закрытое множество. Авторизация по ролям оперирует только
// этими значениями, произвольные строки из токена ролями не считаются.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
)

// KnownRole сообщает, входит ли строка в закрытое множество ролей.
func KnownRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// Account — запись фиксированного списка учёток.
//
// Список — учебная замена персистентного хранилища пользователей;
// пароль хранится открытым текстом сознательно (хэширование вне рамок
// этого примера). Сравнение выполняет CredentialVerifier.
type Account struct {
	Email    string
	Password string
	Role     string
}
