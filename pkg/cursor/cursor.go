// Package cursor 游标分页
//
// 游标由一个或多个排序键拼接后做 base64url（无填充）编码，对客户端不透明。
// 仓储层按排序键多取一条（size+1）判断是否还有下一页。
package cursor

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// Separator 排序键之间的保留分隔符，排序键本身不能包含它
const Separator = "|"

// ErrInvalid 游标无法解析
var ErrInvalid = errors.New("cursor: invalid")

// Encode 编码排序键
func Encode(parts ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, Separator)))
}

// Decode 解码游标，expected 为期望的排序键个数
func Decode(cursor string, expected int) ([]string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil || len(raw) == 0 {
		return nil, ErrInvalid
	}
	parts := strings.Split(string(raw), Separator)
	if expected > 0 && len(parts) != expected {
		return nil, ErrInvalid
	}
	return parts, nil
}

// EncodeID 单个 id 作为排序键
func EncodeID(id uint64) string {
	return Encode(strconv.FormatUint(id, 10))
}

// DecodeID 解析单个 id 的游标
func DecodeID(cursor string) (uint64, error) {
	parts, err := Decode(cursor, 1)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	return id, nil
}

// Page 一页数据
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
	HasNext    bool    `json:"hasNext"`
}

// Paginate 根据多取的一条判断是否有下一页，游标取自本页最后一条
func Paginate[T any](items []T, size int, key func(T) []string) Page[T] {
	if items == nil {
		items = []T{}
	}
	if size <= 0 || len(items) <= size {
		return Page[T]{Items: items}
	}
	items = items[:size]
	next := Encode(key(items[size-1])...)
	return Page[T]{
		Items:      items,
		NextCursor: &next,
		HasNext:    true,
	}
}

// Map 转换页内元素类型，游标保持不变
func Map[T, R any](page Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, fn(item))
	}
	return Page[R]{
		Items:      out,
		NextCursor: page.NextCursor,
		HasNext:    page.HasNext,
	}
}
