package response

// 业务状态码，与对应的 HTTP 状态码同值便于排查
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
