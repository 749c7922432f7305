package pkg

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Body struct {
	Data any `json:"data"`
}

// Response 统一响应结构 {status, body}
type Response struct {
	Status Status `json:"status"`
	Body   *Body  `json:"body,omitempty"`
}

// MessageBody 只返回一句提示的操作
type MessageBody struct {
	Message string `json:"message"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Status: Status{Code: CodeSuccess, Message: "success"},
		Body:   &Body{Data: data},
	})
}

func SuccessMessage(c *gin.Context, msg string) {
	Success(c, MessageBody{Message: msg})
}

// Fail 业务错误按码返回；其余一律视为内部错误，不向外暴露细节
func Fail(c *gin.Context, err error) {
	if be, ok := AsBizError(err); ok {
		c.JSON(HTTPStatus(err), Response{Status: Status{Code: be.Code, Message: be.Msg}})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{Status: Status{Code: CodeInternal, Message: "internal error"}})
}

func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
