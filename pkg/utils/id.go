package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成 32 位无连字符 ID（作为主键存 varchar(32)）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
