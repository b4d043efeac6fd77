package public

import (
	"errors"

	"github.com/catalog-next/internal/http/handlers/shared"
	"github.com/catalog-next/internal/http/response"
	"github.com/catalog-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "资源不存在"},
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "请求参数不合法"},
}

func respondWithMappedError(c *gin.Context, err error, fallbackMsg string) {
	for _, rule := range catalogErrorRules {
		if errors.Is(err, rule.target) {
			shared.RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	shared.RespondError(c, response.CodeInternal, fallbackMsg, err)
}
