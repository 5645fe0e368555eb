// Package compose 负责把日期文本按配置叠加到图片上：
// 度量文本包围盒 → 按锚位计算落点 → 文字层以标准 alpha 混合叠到原图拷贝。
package compose

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/John-Robertt/photomark/internal/domain"
)

// margin 是四角锚位距相应边缘的固定间距（像素）。
const margin = 20

// Render 返回一张新图：src 的拷贝之上叠加 text 水印。
//
// 约束：
// - 不修改 src；输出坐标系归一到 (0,0)
// - 文本超出图面时落点坐标可为负，不做钳制（沿用既有输出行为）
// - alpha = 255×opacity 按整数转换透传，不校验范围
// - 同输入同配置输出逐像素一致（确定性）
func Render(src image.Image, text string, spec domain.WatermarkSpec, face font.Face) *image.NRGBA {
	b := src.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Src)

	bounds, _ := font.BoundString(face, text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x, y := anchorOrigin(b.Dx(), b.Dy(), textW, textH, spec.Anchor)

	alpha := uint8(int(255 * spec.Opacity))
	layer := image.NewNRGBA(canvas.Bounds())
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(color.NRGBA{R: spec.Color.R, G: spec.Color.G, B: spec.Color.B, A: alpha}),
		Face: face,
		// (x, y) 是包围盒左上角；Dot 是基线原点，需用包围盒偏移换算。
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		},
	}
	d.DrawString(text)

	draw.Draw(canvas, canvas.Bounds(), layer, image.Point{}, draw.Over)
	return canvas
}

// anchorOrigin 计算文本包围盒左上角的落点：
// 四角锚位距相应边缘 margin，center 几何居中。
func anchorOrigin(imgW, imgH, textW, textH int, anchor domain.Anchor) (x, y int) {
	switch anchor {
	case domain.AnchorTopLeft:
		return margin, margin
	case domain.AnchorTopRight:
		return imgW - textW - margin, margin
	case domain.AnchorCenter:
		return (imgW - textW) / 2, (imgH - textH) / 2
	case domain.AnchorBottomLeft:
		return margin, imgH - textH - margin
	default: // bottom-right（默认）
		return imgW - textW - margin, imgH - textH - margin
	}
}
