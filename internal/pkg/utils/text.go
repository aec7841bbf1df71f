package utils

import (
	"strings"
)

// CleanName - нормализация названия для поиска: остаются только латинские
// буквы и пробелы, регистр понижается
func CleanName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r == ' ':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, name)
}
