package validator

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 簡易メール形式をチェック
func IsEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// UUID形式（ハイフン区切り36文字）かどうか
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
