package response

// 业务码直接沿用 HTTP 语义；0 表示成功
const (
	CodeOK           = 0
	CodeCreated      = 201
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// CodeMsgMap 集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeCreated:      "Created",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeServerError:  "Internal Server Error",
}

// HTTPStatus 写响应时同时体现在 HTTP 状态码上
func HTTPStatus(code int) int {
	if code == CodeOK {
		return 200
	}
	return code
}
