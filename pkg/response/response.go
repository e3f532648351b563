// Package response 提供统一的 HTTP 响应处理

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twogether/pkg/apperror"
	"twogether/pkg/config"
	"twogether/pkg/logger"
)

/* 标准响应结构
{
    "success": true,
    "data": {},     // 成功时返回的数据，失败时为 null
    "error": null   // 失败时返回的错误信息
}
*/

// Response 统一响应结构体
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *ErrorBody  `json:"error"`
}

// ErrorBody 错误信息
type ErrorBody struct {
	Code         string          `json:"code"`
	DebugMessage string          `json:"debugMessage"`
	Message      string          `json:"message"`
	Description  string          `json:"description,omitempty"`
	ErrorUIType  apperror.UIType `json:"errorUiType"`
}

// ------------------ 🎯 成功响应系列 ------------------

// Data 响应 200 和数据
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created 成功创建的响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Success 无返回数据的成功响应
func Success(c *gin.Context) {
	Data(c, nil)
}

//  ------------------ 错误响应系列 ------------------

// Error 统一的错误出口
// 业务错误按自身的状态码和错误码响应，其余错误一律按 COMMON999 处理，不向客户端泄露内部信息
func Error(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		logger.Error("Response", zap.String("path", c.Request.URL.Path), zap.Error(err))
		appErr = apperror.ErrUnknown.WithCause(err)
	} else if appErr.Status >= http.StatusInternalServerError {
		logger.Error("Response", zap.String("path", c.Request.URL.Path), zap.String("code", appErr.Code), zap.Error(err))
	} else {
		logger.Debug("Response", zap.String("path", c.Request.URL.Path), zap.String("code", appErr.Code), zap.Error(err))
	}

	c.AbortWithStatusJSON(appErr.Status, Response{
		Success: false,
		Error:   errorBody(appErr),
	})
}

// Abort 直接以业务错误中断请求，供中间件使用
func Abort(c *gin.Context, appErr *apperror.Error) {
	c.AbortWithStatusJSON(appErr.Status, Response{
		Success: false,
		Error:   errorBody(appErr),
	})
}

// ValidationError 表单验证错误，字段信息放入 description
func ValidationError(c *gin.Context, description string) {
	Abort(c, apperror.ErrInvalidInput.WithDescription(description))
}

func errorBody(appErr *apperror.Error) *ErrorBody {
	debugMessage := appErr.Message
	// 只有调试模式才把底层原因返回给客户端
	if config.GetBool("app.debug") {
		debugMessage = appErr.DebugMessage()
	}
	return &ErrorBody{
		Code:         appErr.Code,
		DebugMessage: debugMessage,
		Message:      appErr.Message,
		Description:  appErr.Description,
		ErrorUIType:  appErr.UIType,
	}
}
