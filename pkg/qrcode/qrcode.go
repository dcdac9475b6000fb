package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// EncodePNGBase64 将文本编码为 QR 码 PNG 并返回 Base64 字符串
// 移动端直接以 data URI 形式渲染
func EncodePNGBase64(content string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return "", fmt.Errorf("生成二维码失败: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
