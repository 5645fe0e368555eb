package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/John-Robertt/photomark/internal/domain"
)

const (
	// DefaultFontSize 是水印字号的内置默认值。
	DefaultFontSize = 36
	// DefaultOpacity 是透明度的内置默认值（不做范围校验，透传）。
	DefaultOpacity = 0.8
	// DefaultColor 是颜色参数的内置默认值；不可解析的输入也静默回退到它。
	DefaultColor = "white"
)

// CLIArgs 对应 CLI 暴露的全部入口。颜色/位置以原始字符串传入，
// 解析与默认值统一在 Resolve 内完成（实现层不再做二次判断）。
type CLIArgs struct {
	Path string

	FontSize int
	Color    string
	Position string
	Opacity  float64
	FontPath string
}

// EffectiveConfig 是合并并做最小规范化后的最终配置。
type EffectiveConfig struct {
	// Path 是输入（文件或目录）的 clean + absolute 路径。
	Path string

	Spec domain.WatermarkSpec
}

// Resolve 把 CLI 参数合并为最终配置。
//
// 约定（固定）：
// - path：必填；相对路径以 cwd 为基准转绝对
// - color：预定义名 / #RRGGBB / R,G,B；不可解析静默回退白色
// - position：五个枚举之一，非法值在此拒绝
// - opacity：不做范围校验
// - font-path：CLI 显式指定 > 平台默认字体表
func Resolve(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	p := strings.TrimSpace(cli.Path)
	if p == "" {
		return EffectiveConfig{}, fmt.Errorf("缺少输入路径（文件或目录）")
	}

	anchor, err := ParseAnchor(cli.Position)
	if err != nil {
		return EffectiveConfig{}, err
	}

	fontSize := cli.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	fontPath := strings.TrimSpace(cli.FontPath)
	if fontPath == "" {
		fontPath = DefaultFontPath()
	}

	return EffectiveConfig{
		Path: absCleanFrom(cwd, p),
		Spec: domain.WatermarkSpec{
			FontSize: fontSize,
			Color:    ParseColor(cli.Color),
			Opacity:  cli.Opacity,
			Anchor:   anchor,
			FontPath: fontPath,
		},
	}, nil
}

// namedColors 是预定义颜色名（固定集合）。
var namedColors = map[string]domain.RGB{
	"white":   {R: 255, G: 255, B: 255},
	"black":   {R: 0, G: 0, B: 0},
	"red":     {R: 255, G: 0, B: 0},
	"green":   {R: 0, G: 255, B: 0},
	"blue":    {R: 0, G: 0, B: 255},
	"yellow":  {R: 255, G: 255, B: 0},
	"cyan":    {R: 0, G: 255, B: 255},
	"magenta": {R: 255, G: 0, B: 255},
}

var colorWhite = domain.RGB{R: 255, G: 255, B: 255}

// ParseColor 解析颜色字符串：预定义名 / #RRGGBB / "R,G,B"。
// 任何不可解析的输入静默回退白色（刻意的宽松行为，不收紧）。
func ParseColor(s string) domain.RGB {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "#"):
		hex := strings.TrimPrefix(s, "#")
		if len(hex) != 6 {
			return colorWhite
		}
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return colorWhite
			}
			out[i] = uint8(v)
		}
		return domain.RGB{R: out[0], G: out[1], B: out[2]}

	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return colorWhite
		}
		var out [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return colorWhite
			}
			out[i] = uint8(v)
		}
		return domain.RGB{R: out[0], G: out[1], B: out[2]}

	default:
		if c, ok := namedColors[strings.ToLower(s)]; ok {
			return c
		}
		return colorWhite
	}
}

// ParseAnchor 解析水印位置；空串取默认 bottom-right，非法值报错。
func ParseAnchor(s string) (domain.Anchor, error) {
	switch domain.Anchor(strings.TrimSpace(s)) {
	case domain.AnchorTopLeft:
		return domain.AnchorTopLeft, nil
	case domain.AnchorTopRight:
		return domain.AnchorTopRight, nil
	case domain.AnchorCenter:
		return domain.AnchorCenter, nil
	case domain.AnchorBottomLeft:
		return domain.AnchorBottomLeft, nil
	case domain.AnchorBottomRight, "":
		return domain.AnchorBottomRight, nil
	default:
		return "", fmt.Errorf("position 只能是 top-left|top-right|center|bottom-left|bottom-right，实际是 %q", s)
	}
}

// defaultFontPaths 是“平台 → 默认字体路径”的查表（启动时查一次，显式传入绘制层）。
// 表中没有的平台统一落到 DejaVu（常见 Linux 发行版）。
var defaultFontPaths = map[string]string{
	"windows": `C:/Windows/Fonts/simhei.ttf`,
	"darwin":  "/System/Library/Fonts/PingFang.ttc",
}

const fallbackFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

// DefaultFontPath 返回当前平台的默认字体路径。
// 路径不存在/不可解析不是错误：绘制层会兜底到内置字体。
func DefaultFontPath() string {
	if p, ok := defaultFontPaths[runtime.GOOS]; ok {
		return p
	}
	return fallbackFontPath
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}
