// Package requests 处理请求数据和表单验证
package requests

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"twogether/pkg/apperror"
)

// ValidateStruct 通用的结构体验证函数，字段名取 json 标签
func ValidateStruct(data interface{}, rules govalidator.MapData, messages govalidator.MapData) error {
	opts := govalidator.Options{
		Data:          data,
		Rules:         rules,
		TagIdentifier: "json",
		Messages:      messages,
	}

	if errs := govalidator.New(opts).ValidateStruct(); len(errs) > 0 {
		return validationError(errs)
	}

	return nil
}

// BindJSON 只解析请求体
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperror.ErrInvalidInput.WithDescription("request body is not valid JSON").WithCause(err)
	}
	return &req, nil
}

// ValidateRequest 通用的请求验证函数
func ValidateRequest[T any](c *gin.Context, rules govalidator.MapData, messages govalidator.MapData) (*T, error) {
	// 1. 解析请求体
	req, err := BindJSON[T](c)
	if err != nil {
		return nil, err
	}

	// 2. 验证结构体
	if err := ValidateStruct(req, rules, messages); err != nil {
		return nil, err
	}

	return req, nil
}

// ValidateQuery 验证查询参数
func ValidateQuery(c *gin.Context, rules govalidator.MapData, messages govalidator.MapData) error {
	opts := govalidator.Options{
		Request:  c.Request,
		Rules:    rules,
		Messages: messages,
	}

	if errs := govalidator.New(opts).Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	return nil
}

// validationError 字段错误按字段名排序后放入 description
func validationError(errs url.Values) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(errs[field], ", ")))
	}
	return apperror.ErrInvalidInput.WithDescription(strings.Join(parts, "; "))
}

// invalid 单个字段的校验错误
func invalid(field, message string) error {
	return validationError(url.Values{field: []string{message}})
}
