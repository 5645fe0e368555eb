package main

import (
	"fmt"
	"io"
	"time"

	"github.com/John-Robertt/photomark/internal/app/run"
	"github.com/John-Robertt/photomark/internal/config"
	"github.com/John-Robertt/photomark/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是一个“简洁版”的交互终端进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 处理是顺序的，事件只会来自同一 goroutine，不需要加锁
type progressUI struct {
	w io.Writer

	startedAt time.Time
	total     int
	previews  int
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	fmt.Fprintf(p.w, "[%s] photomark run\n", now.Format("15:04:05"))
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  path: %s\n", eff.Path)
	fmt.Fprintf(p.w, "  font_size: %d\n", eff.Spec.FontSize)
	fmt.Fprintf(p.w, "  color: %d,%d,%d\n", eff.Spec.Color.R, eff.Spec.Color.G, eff.Spec.Color.B)
	fmt.Fprintf(p.w, "  position: %s\n", eff.Spec.Anchor)
	fmt.Fprintf(p.w, "  opacity: %g\n", eff.Spec.Opacity)
	fmt.Fprintf(p.w, "  font_path: %s\n", eff.Spec.FontPath)
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnScanDone(total int, outDir string) {
	p.total = total
	fmt.Fprintf(p.w, "扫描: files=%d\n", total)
	fmt.Fprintf(p.w, "输出目录: %s\n", outDir)
	if total == 0 {
		fmt.Fprintln(p.w, "未找到支持的图片文件")
	}
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnPreview(file, date string, fromExif bool) {
	// 预览段：处理前先展示每张图片的拍摄时间，便于用户确认来源。
	if p.previews == 0 {
		fmt.Fprintln(p.w, "=== 拍摄时间信息预览 ===")
	}
	p.previews++

	if fromExif {
		fmt.Fprintf(p.w, "📸 %s: %s\n", file, date)
	} else {
		fmt.Fprintf(p.w, "📷 %s: 无拍摄时间信息\n", file)
	}

	if p.previews == p.total {
		fmt.Fprint(p.w, "=======================\n\n")
	}
}

func (p *progressUI) OnItemDone(idx, total int, res domain.ItemResult, dur time.Duration) {
	status := "OK"
	if res.Status == domain.StatusFailed {
		status = "FAIL"
	}

	if res.Status == domain.StatusFailed {
		fmt.Fprintf(p.w, "[%d/%d] %s %s: %s (%s)\n", idx, total, status, res.File, res.ErrorMsg, formatShortDuration(dur))
		return
	}
	fmt.Fprintf(p.w, "[%d/%d] %s %s (%s) (%s)\n", idx, total, status, res.File, res.Date, formatShortDuration(dur))
}

func formatShortDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return "<1ms"
	}
}
