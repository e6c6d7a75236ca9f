package utils

import "strings"

const passwordSymbols = "!@#$%^&*"

// ValidPassword 密码规则：8-16 位，至少一个大写字母和一个 !@#$%^&* 符号，
// 仅允许字母/数字/上述符号。
func ValidPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 16 {
		return false
	}
	var hasUpper, hasSymbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasUpper && hasSymbol
}

// ValidName 名称长度 20-60
func ValidName(name string) bool {
	return len(name) >= 20 && len(name) <= 60
}

// ValidAddress 地址非空且 ≤400
func ValidAddress(addr string) bool {
	return addr != "" && len(addr) <= 400
}
