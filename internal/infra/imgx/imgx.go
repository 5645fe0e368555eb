package imgx

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// jpegQuality 是 JPEG 输出的固定质量（输出契约的一部分，不可配置）。
const jpegQuality = 95

// Decode 打开并解码一张图片（格式由内容自动识别）。
func Decode(path string) (image.Image, error) {
	return imaging.Open(path)
}

// EncodeByExt 按输出扩展名（小写、带点）把图片编码为字节。
//
// 约束：
// - JPEG 质量固定 95
// - ext 必须是受支持集合内的扩展名（调用方已过滤；这里仍会对未知扩展名报错）
func EncodeByExt(img image.Image, ext string) ([]byte, error) {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("无法识别输出格式 %q：%w", ext, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
