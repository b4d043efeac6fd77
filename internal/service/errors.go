package service

import "errors"

var (
	// ErrNotFound 请求的实体不存在、未启用或未发布
	ErrNotFound = errors.New("record not found")
	// ErrValidation 请求参数非法
	ErrValidation = errors.New("invalid request parameters")
)
