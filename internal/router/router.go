// Package router 组装 Gin 路由。
package router

import (
	"qa-service-go/internal/handler"
	"qa-service-go/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 汇总了路由需要的全部处理器。
type Handlers struct {
	Question *handler.QuestionHandler
	Answer   *handler.AnswerHandler
	Health   *handler.HealthHandler
}

// New 创建路由引擎。writeMiddleware 只作用于 POST/DELETE 接口，例如限流。
// 集合路由同时接受带和不带结尾斜杠的路径，不做重定向。
func New(h Handlers, writeMiddleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New() // 不带默认中间件
	r.RedirectTrailingSlash = false
	r.Use(middleware.RequestLogger(), gin.Recovery())

	write := func(handle gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(writeMiddleware)+1)
		chain = append(chain, writeMiddleware...)
		return append(chain, handle)
	}

	r.GET("/healthz", h.Health.Check)

	// Questions 路由
	for _, path := range []string{"/questions", "/questions/"} {
		r.GET(path, h.Question.List)
		r.POST(path, write(h.Question.Create)...)
	}
	r.GET("/questions/:id", h.Question.Get)
	r.DELETE("/questions/:id", write(h.Question.Delete)...)

	// Answers 路由
	for _, path := range []string{"/questions/:id/answers", "/questions/:id/answers/"} {
		r.POST(path, write(h.Answer.Create)...)
	}
	r.GET("/answers/:id", h.Answer.Get)
	r.DELETE("/answers/:id", write(h.Answer.Delete)...)

	return r
}
