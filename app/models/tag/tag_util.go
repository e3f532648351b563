package tag

import (
	"strings"
	"unicode/utf8"

	"twogether/pkg/apperror"
)

// MaxNameLength 标签名最大长度
const MaxNameLength = 20

// NormalizeName 去掉首尾空白，长度 1~20
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 || n > MaxNameLength {
		return "", apperror.ErrInvalidTagName
	}
	return name, nil
}

// NormalizeNames 批量处理并去重，保持原有顺序
func NormalizeNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name, err := NormalizeName(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
