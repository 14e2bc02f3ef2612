package handler

import (
	"net/http"

	"qa-service-go/internal/schema"
	"qa-service-go/internal/service"
	"qa-service-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// QuestionHandler 负责处理所有与问题相关的 API 请求。
type QuestionHandler struct {
	questionService service.QuestionService
	defaultLimit    int
}

// NewQuestionHandler 创建一个新的 QuestionHandler 实例。
func NewQuestionHandler(questionService service.QuestionService, defaultLimit int) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, defaultLimit: defaultLimit}
}

// List 分页返回问题列表。
func (h *QuestionHandler) List(c *gin.Context) {
	params := schema.ListQuestions{Limit: h.defaultLimit}
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, "ListQuestions", "query", err)
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), params)
	if err != nil {
		writeError(c, "ListQuestions", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewQuestionListItems(questions))
}

// Create 处理创建问题的请求。
func (h *QuestionHandler) Create(c *gin.Context) {
	var req schema.QuestionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "CreateQuestion", "body", err)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, "CreateQuestion", err)
		return
	}

	log.Infof("Question %d created", question.ID)
	c.JSON(http.StatusCreated, schema.NewQuestionDetail(question))
}

// Get 返回问题及其全部回答。
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "GetQuestion", "id")
	if !ok {
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id, true)
	if err != nil {
		writeError(c, "GetQuestion", err)
		return
	}
	c.JSON(http.StatusOK, schema.NewQuestionDetail(question))
}

// Delete 删除问题，回答在数据库层级联删除。
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "DeleteQuestion", "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "DeleteQuestion", err)
		return
	}

	log.Infof("Question %d deleted", id)
	c.Status(http.StatusNoContent)
}
