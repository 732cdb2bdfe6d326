package utils

import "unicode/utf8"

// CheckPasswordPolicy パスワードポリシーの確認
// ルーン数で8〜16字、英字・数字・特殊文字をそれぞれ1文字以上含むこと。
// ASCII英数字とアンダースコア以外のルーンはすべて特殊文字として数える
func CheckPasswordPolicy(password string) bool {
	if n := utf8.RuneCountInString(password); n < 8 || n > 16 {
		return false
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r != '_':
			hasSpecial = true
		}
	}

	return hasLetter && hasDigit && hasSpecial
}
