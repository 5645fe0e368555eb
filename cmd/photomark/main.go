package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/John-Robertt/photomark/internal/app/run"
	"github.com/John-Robertt/photomark/internal/config"
	"github.com/John-Robertt/photomark/internal/domain"
)

func main() {
	if code := realMain(os.Args[1:]); code != 0 {
		os.Exit(code)
	}
}

func realMain(args []string) int {
	fs := flag.NewFlagSet("photomark", flag.ContinueOnError)
	// 解析错误与用法输出统一由本函数格式化（pflag 自身的输出全部丢弃）。
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fontSize := fs.Int("font-size", config.DefaultFontSize, "水印字号")
	colorStr := fs.String("color", config.DefaultColor, "水印颜色")
	position := fs.String("position", string(domain.AnchorBottomRight), "水印位置")
	opacity := fs.Float64("opacity", config.DefaultOpacity, "水印透明度")
	fontPath := fs.String("font-path", "", "TTF 字体路径（默认按平台查表）")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage()
			return 0
		}
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprint(os.Stderr, "参数错误：缺少输入路径\n\n")
		printUsage()
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "参数错误：重复的 path：%q 与 %q\n\n", fs.Arg(0), fs.Arg(1))
		printUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	// position 的非法值在这里（参数解析期）被拒绝；
	// color 的不可解析输入按约定静默回退白色，不报错。
	eff, err := config.Resolve(cwd, config.CLIArgs{
		Path:     fs.Arg(0),
		FontSize: *fontSize,
		Color:    *colorStr,
		Position: *position,
		Opacity:  *opacity,
		FontPath: *fontPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	rr, runErr := run.ExecuteWithObserver(eff, log, obs)
	emitReport(rr)

	// 输入错误（路径不存在/单文件格式不支持）才影响退出码；
	// 批次内的逐文件失败只体现在 summary 里。
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "错误：%v\n", runErr)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  photomark <path> [--font-size 36] [--color white] [--position bottom-right] [--opacity 0.8] [--font-path FONT]

参数：
  <path>       图片文件路径或目录路径（目录只处理第一层）
  --font-size  水印字号（默认 36）
  --color      水印颜色（默认 white；支持 white/black/red/green/blue/yellow/cyan/magenta、#RRGGBB、R,G,B；无法解析时回退 white）
  --position   水印位置：top-left|top-right|center|bottom-left|bottom-right（默认 bottom-right）
  --opacity    水印透明度 0-1（默认 0.8）
  --font-path  TTF 字体路径（默认按平台查表；不可用时使用内置兜底字体）
  -h, --help   显示帮助

输出写入输入旁边的 <输入名>_watermark 目录；原图不会被修改。
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		fmt.Fprintf(os.Stdout, "处理完成！成功: %d/%d\n", rr.Summary.Succeeded, rr.Summary.Total)
		if rr.OutputDir != "" {
			fmt.Fprintf(os.Stdout, "输出目录: %s\n", rr.OutputDir)
		}
		if rr.Summary.Failed > 0 {
			for _, it := range rr.Items {
				if it.Status != domain.StatusFailed {
					continue
				}
				key := it.File
				if key == "" {
					key = "<input>"
				}
				fmt.Fprintf(os.Stderr, "%s %s: %s\n", key, it.ErrorCode, it.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（日志/摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "处理完成！成功: %d/%d\n", rr.Summary.Succeeded, rr.Summary.Total)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}
