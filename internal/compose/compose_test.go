package compose

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/John-Robertt/photomark/internal/domain"
)

func TestAnchorOrigin_AllAnchors(t *testing.T) {
	const (
		imgW, imgH   = 400, 300
		textW, textH = 100, 20
	)
	cases := []struct {
		anchor domain.Anchor
		wantX  int
		wantY  int
	}{
		{domain.AnchorTopLeft, 20, 20},
		{domain.AnchorTopRight, 400 - 100 - 20, 20},
		{domain.AnchorCenter, (400 - 100) / 2, (300 - 20) / 2},
		{domain.AnchorBottomLeft, 20, 300 - 20 - 20},
		{domain.AnchorBottomRight, 400 - 100 - 20, 300 - 20 - 20},
	}
	for _, tc := range cases {
		x, y := anchorOrigin(imgW, imgH, textW, textH, tc.anchor)
		if x != tc.wantX || y != tc.wantY {
			t.Fatalf("%s：期望 (%d,%d)，实际 (%d,%d)", tc.anchor, tc.wantX, tc.wantY, x, y)
		}
	}
}

// 文本超出图面：坐标允许为负，不钳制。
func TestAnchorOrigin_NoClamping(t *testing.T) {
	x, y := anchorOrigin(50, 30, 200, 40, domain.AnchorBottomRight)
	if x != 50-200-20 || y != 30-40-20 {
		t.Fatalf("期望负坐标透传，实际 (%d,%d)", x, y)
	}
}

func TestRender_Deterministic(t *testing.T) {
	src := gradient(64, 48)
	spec := domain.WatermarkSpec{
		FontSize: 13,
		Color:    domain.RGB{R: 255, G: 255, B: 255},
		Opacity:  0.8,
		Anchor:   domain.AnchorBottomRight,
	}

	a := Render(src, "2023-10-15", spec, basicfont.Face7x13)
	b := Render(src, "2023-10-15", spec, basicfont.Face7x13)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("同输入同配置应逐像素一致")
	}
}

func TestRender_DoesNotMutateSource(t *testing.T) {
	src := gradient(32, 32)
	before := append([]uint8(nil), src.Pix...)

	_ = Render(src, "2023-10-15", domain.WatermarkSpec{
		Color: domain.RGB{R: 255}, Opacity: 1.0, Anchor: domain.AnchorCenter,
	}, basicfont.Face7x13)

	if !bytes.Equal(before, src.Pix) {
		t.Fatalf("Render 不应修改原图")
	}
}

// 不透明红色文字画在黑底上：文字区域应出现纯红像素。
func TestRender_DrawsTextPixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 120, 60))
	out := Render(src, "2023-10-15", domain.WatermarkSpec{
		Color: domain.RGB{R: 255}, Opacity: 1.0, Anchor: domain.AnchorCenter,
	}, basicfont.Face7x13)

	found := false
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 255 && out.Pix[i+1] == 0 && out.Pix[i+2] == 0 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("期望输出中出现水印文字像素")
	}
}

// opacity=0：文字层完全透明，输出与原图拷贝一致。
func TestRender_ZeroOpacity(t *testing.T) {
	src := gradient(40, 40)
	out := Render(src, "2023-10-15", domain.WatermarkSpec{
		Color: domain.RGB{R: 255, G: 255, B: 255}, Opacity: 0, Anchor: domain.AnchorCenter,
	}, basicfont.Face7x13)

	plain := Render(src, "", domain.WatermarkSpec{Anchor: domain.AnchorCenter}, basicfont.Face7x13)
	if !bytes.Equal(out.Pix, plain.Pix) {
		t.Fatalf("opacity=0 不应留下可见痕迹")
	}
}

func TestLoadFace_FallbackOnMissingFile(t *testing.T) {
	face, fallback := LoadFace(filepath.Join(t.TempDir(), "不存在.ttf"), 36)
	if !fallback {
		t.Fatalf("字体缺失应走兜底")
	}
	if face != basicfont.Face7x13 {
		t.Fatalf("兜底应为内置位图字体")
	}
}

func TestLoadFace_FallbackOnGarbage(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.ttf")
	writeFile(t, p, []byte("这不是字体"))

	if _, fallback := LoadFace(p, 36); !fallback {
		t.Fatalf("不可解析的字体应走兜底")
	}
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}
	return img
}
