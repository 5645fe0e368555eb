package compose

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// LoadFace 加载 path 的 TTF/OTF 字体并按字号生成 Face。
//
// 字体不可读或不可解析不是错误：兜底到内置位图字体（兜底时字号不生效）。
// 返回 fallback=true 表示用了兜底字体，供上层记日志。
// 一次运行内只加载一次，显式传入 Render。
func LoadFace(path string, size int) (face font.Face, fallback bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return basicfont.Face7x13, true
	}
	ft, err := opentype.Parse(b)
	if err != nil {
		return basicfont.Face7x13, true
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, true
	}
	return f, false
}
