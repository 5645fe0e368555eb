package domain

// Anchor 是水印文本包围盒对齐的命名位置（四角 + 居中）。
type Anchor string

const (
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorCenter      Anchor = "center"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
)

// RGB 是水印颜色（不含 alpha；alpha 由 Opacity 派生）。
type RGB struct {
	R, G, B uint8
}

// WatermarkSpec 是一次运行内不可变的水印配置。
//
// Opacity 不做范围校验：[0,1] 之外的值按 255×opacity 的整数转换语义透传
// （可能截断或回绕），属于不应依赖的边缘行为。
type WatermarkSpec struct {
	FontSize int
	Color    RGB
	Opacity  float64
	Anchor   Anchor

	// FontPath 为空或不可用时，绘制层兜底到内置位图字体。
	FontPath string
}

// PlaceholderDate 是无可用拍摄时间时代入的水印文本。
const PlaceholderDate = "未知日期"
