package models

import (
	"crypto/rand"
	"encoding/base64"
)

// publicIDBytes 8 字节随机数经 URL-safe base64 编码后得到 11 位字符串
const publicIDBytes = 8

// NewPublicID 生成对外暴露的不透明标识（11 位 URL-safe 字符串）
func NewPublicID() string {
	buf := make([]byte, publicIDBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 在受支持平台上不会失败
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
