package handler

import (
	"net/http"

	"qa-service-go/internal/schema"
	"qa-service-go/internal/service"
	"qa-service-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AnswerHandler 负责处理所有与回答相关的 API 请求。
type AnswerHandler struct {
	answerService service.AnswerService
}

// NewAnswerHandler 创建一个新的 AnswerHandler 实例。
func NewAnswerHandler(answerService service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// Create 为路径中的问题添加回答，问题不存在时返回 404。
func (h *AnswerHandler) Create(c *gin.Context) {
	questionID, ok := parseID(c, "CreateAnswer", "id")
	if !ok {
		return
	}

	var req schema.AnswerCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "CreateAnswer", "body", err)
		return
	}

	answer, err := h.answerService.Create(c.Request.Context(), questionID, req)
	if err != nil {
		writeError(c, "CreateAnswer", err)
		return
	}

	log.Infof("Answer %d created for question %d", answer.ID, questionID)
	c.JSON(http.StatusCreated, schema.NewAnswerOut(answer))
}

// Get 返回单个回答。
func (h *AnswerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "GetAnswer", "id")
	if !ok {
		return
	}

	answer, err := h.answerService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetAnswer", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewAnswerOut(answer))
}

// Delete 删除单个回答。
func (h *AnswerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "DeleteAnswer", "id")
	if !ok {
		return
	}

	if err := h.answerService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "DeleteAnswer", err)
		return
	}

	log.Infof("Answer %d deleted", id)
	c.Status(http.StatusNoContent)
}
