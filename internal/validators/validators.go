package validators

import "regexp"

// Та же проверка, что была в форме входа: непустые части вокруг @ и точка в домене
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CheckEmail проверяет формат адреса электронной почты
func CheckEmail(email string) bool {
	return emailPattern.MatchString(email)
}
