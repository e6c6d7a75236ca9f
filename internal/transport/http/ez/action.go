package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-ratings/internal/core/auth"
	"store-ratings/internal/service"
	resp "store-ratings/internal/transport/http/response"
)

type EZ struct {
	g *gin.RouterGroup
	l *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, l: l} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// AErr 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Action 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method string // "GET" | "POST" | "PATCH" | "DELETE"
	Path   string
	Binder Binder
	// Permission 需要的动作权限（auth.Can 判定）；空串 = 登录即可
	Permission string
	// DenyMsg 角色不符时的提示，空则用默认
	DenyMsg string
	// Created 成功时返回 201
	Created bool
	UseTx   bool
	Handler func(c *gin.Context, tx *gorm.DB, in *I) (O, error)
}

func kindToCode(k service.Kind) int {
	switch k {
	case service.KindValidation:
		return resp.CodeBadRequest
	case service.KindUnauthorized:
		return resp.CodeUnauthorized
	case service.KindForbidden:
		return resp.CodeForbidden
	case service.KindNotFound:
		return resp.CodeNotFound
	}
	return resp.CodeServerError
}

// RegisterAction 注册动作接口：鉴权 → 绑定 → 执行 → 统一错误映射。
// 角色分支不写在各 handler 里，统一走 auth.Can。
func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 授权（登录由分组中间件保证，这里双保险）
		if a.Permission != "" {
			uid := c.GetString("userId")
			if uid == "" {
				resp.JSON(c, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if !auth.Can(c.GetString("role"), a.Permission) {
				msg := a.DenyMsg
				if msg == "" {
					msg = "Access denied."
				}
				resp.JSON(c, resp.Error(resp.CodeForbidden, msg))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			resp.JSON(c, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行（可选事务）
		run := func(tx *gorm.DB) (O, error) { return a.Handler(c, tx, &in) }
		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c))
		}

		// 4) 统一错误映射；非预期错误只记日志，不把内部细节回给调用方
		if err != nil {
			var se *service.Error
			if errors.As(err, &se) {
				resp.JSON(c, resp.Error(kindToCode(se.Kind), se.Msg))
				return
			}
			var ae *AErr
			if errors.As(err, &ae) {
				if ae.Code == resp.CodeServerError {
					e.l.Error("action failed",
						zap.String("path", a.Path), zap.String("msg", ae.Msg), zap.Error(ae.Err))
				}
				resp.JSON(c, resp.Error(ae.Code, ae.Msg))
				return
			}
			e.l.Error("action failed", zap.String("path", a.Path), zap.Error(err))
			resp.JSON(c, resp.Error(resp.CodeServerError, ""))
			return
		}
		if a.Created {
			resp.JSON(c, resp.New(resp.CodeCreated, resp.CodeMsgMap[resp.CodeCreated], out))
			return
		}
		resp.JSON(c, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
