package config

import (
	"path/filepath"
	"testing"

	"github.com/John-Robertt/photomark/internal/domain"
)

func TestParseColor_Named(t *testing.T) {
	cases := []struct {
		in   string
		want domain.RGB
	}{
		{"white", domain.RGB{R: 255, G: 255, B: 255}},
		{"black", domain.RGB{R: 0, G: 0, B: 0}},
		{"RED", domain.RGB{R: 255, G: 0, B: 0}},
		{"green", domain.RGB{R: 0, G: 255, B: 0}},
		{"magenta", domain.RGB{R: 255, G: 0, B: 255}},
	}
	for _, tc := range cases {
		if got := ParseColor(tc.in); got != tc.want {
			t.Fatalf("ParseColor(%q)：期望 %v，实际 %v", tc.in, tc.want, got)
		}
	}
}

func TestParseColor_Hex(t *testing.T) {
	if got := ParseColor("#00FF00"); got != (domain.RGB{R: 0, G: 255, B: 0}) {
		t.Fatalf("期望纯绿，实际 %v", got)
	}
	if got := ParseColor("#1a2B3c"); got != (domain.RGB{R: 0x1A, G: 0x2B, B: 0x3C}) {
		t.Fatalf("期望 #1a2B3c 大小写不敏感解析，实际 %v", got)
	}
}

func TestParseColor_Triple(t *testing.T) {
	if got := ParseColor("12, 34,56"); got != (domain.RGB{R: 12, G: 34, B: 56}) {
		t.Fatalf("期望 {12 34 56}，实际 %v", got)
	}
}

// 不可解析的输入必须静默回退白色（刻意保留的宽松行为）。
func TestParseColor_BadInputFallsBackToWhite(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#GGGGGG", "#FFF", "1,2", "1,2,3,4", "256,0,0", "-1,0,0"} {
		if got := ParseColor(in); got != colorWhite {
			t.Fatalf("ParseColor(%q)：期望回退白色，实际 %v", in, got)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	for _, in := range []string{"top-left", "top-right", "center", "bottom-left", "bottom-right"} {
		a, err := ParseAnchor(in)
		if err != nil {
			t.Fatalf("不期望错误：%v", err)
		}
		if string(a) != in {
			t.Fatalf("期望 %q，实际 %q", in, a)
		}
	}

	if a, err := ParseAnchor(""); err != nil || a != domain.AnchorBottomRight {
		t.Fatalf("空串应取默认 bottom-right，实际 a=%q err=%v", a, err)
	}

	if _, err := ParseAnchor("middle"); err == nil {
		t.Fatalf("非法 position 应在解析期被拒绝")
	}
}

func TestResolve_Defaults(t *testing.T) {
	cwd := t.TempDir()

	eff, err := Resolve(cwd, CLIArgs{Path: "photos", Opacity: DefaultOpacity})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	wantPath := filepath.Join(cwd, "photos")
	if eff.Path != wantPath {
		t.Fatalf("期望 path=%q，实际=%q", wantPath, eff.Path)
	}
	if eff.Spec.FontSize != DefaultFontSize {
		t.Fatalf("期望 font_size=%d，实际=%d", DefaultFontSize, eff.Spec.FontSize)
	}
	if eff.Spec.Color != colorWhite {
		t.Fatalf("期望默认白色，实际 %v", eff.Spec.Color)
	}
	if eff.Spec.Anchor != domain.AnchorBottomRight {
		t.Fatalf("期望默认 bottom-right，实际 %q", eff.Spec.Anchor)
	}
	if eff.Spec.FontPath == "" {
		t.Fatalf("期望解析出平台默认字体路径")
	}
}

func TestResolve_MissingPath(t *testing.T) {
	if _, err := Resolve(t.TempDir(), CLIArgs{}); err == nil {
		t.Fatalf("缺少输入路径应报错")
	}
}

// opacity 刻意不做范围校验：越界值原样透传。
func TestResolve_OpacityPassThrough(t *testing.T) {
	eff, err := Resolve(t.TempDir(), CLIArgs{Path: "p", Opacity: 1.5})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.Spec.Opacity != 1.5 {
		t.Fatalf("期望 opacity=1.5 透传，实际=%v", eff.Spec.Opacity)
	}
}
