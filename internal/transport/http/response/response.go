package response

import "github.com/gin-gonic/gin"

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// JSON 统一出口：HTTP 状态码与业务码同步
func JSON(c *gin.Context, r Resp) {
	c.JSON(HTTPStatus(r.Code), r)
}

// AbortJSON 中间件拒绝请求时使用
func AbortJSON(c *gin.Context, r Resp) {
	c.AbortWithStatusJSON(HTTPStatus(r.Code), r)
}
