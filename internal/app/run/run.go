package run

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"

	"github.com/John-Robertt/photomark/internal/compose"
	"github.com/John-Robertt/photomark/internal/config"
	"github.com/John-Robertt/photomark/internal/domain"
	"github.com/John-Robertt/photomark/internal/exifdate"
	"github.com/John-Robertt/photomark/internal/infra/fsx"
	"github.com/John-Robertt/photomark/internal/infra/imgx"
	"github.com/John-Robertt/photomark/internal/scan"
)

// outDirSuffix 是输出目录的固定命名后缀（<输入名>_watermark，输入的兄弟路径）。
const outDirSuffix = "_watermark"

// Execute 执行一次运行并返回对外稳定的 RunReport。
//
// 错误语义（固定）：
// - 返回的 error 非 nil 仅表示“输入错误”（路径不存在 / 单文件格式不支持 / 输入不可枚举）：
//   整次运行被短路，调用方据此决定退出码
// - 逐文件失败不产生 error：降级为 item 级失败，批次继续
func Execute(eff config.EffectiveConfig, log zerolog.Logger) (domain.RunReport, error) {
	return ExecuteWithObserver(eff, log, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出进度/预览信息（由上层决定是否启用）。
func ExecuteWithObserver(eff config.EffectiveConfig, log zerolog.Logger, obs Observer) (domain.RunReport, error) {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Path:      eff.Path,
		StartedAt: started,
	}

	fi, err := os.Stat(eff.Path)
	if err != nil {
		e := fmt.Errorf("路径 %q 不存在或不可访问：%w", eff.Path, err)
		finishAborted(&rr, domain.ErrCodeInputNotFound, e.Error(), "")
		return rr, e
	}

	// 字体一次加载，显式传入绘制层；兜底只记日志，不是失败。
	face, fallback := compose.LoadFace(eff.Spec.FontPath, eff.Spec.FontSize)
	if fallback {
		log.Warn().Str("font_path", eff.Spec.FontPath).
			Msg("字体不可用，改用内置兜底字体（字号不生效）")
	}

	if fi.IsDir() {
		err = runDir(&rr, eff, face, log, obs)
	} else {
		err = runSingle(&rr, eff, face, log, obs)
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr, err
}

// runSingle 处理单个文件：先校验扩展名（不支持则不建输出目录），
// 再在 <stem>_watermark 兄弟目录下写单个结果。
func runSingle(rr *domain.RunReport, eff config.EffectiveConfig, face font.Face, log zerolog.Logger, obs Observer) error {
	name := filepath.Base(eff.Path)
	ext := strings.ToLower(filepath.Ext(name))
	if !scan.IsSupportedExt(ext) {
		e := fmt.Errorf("不支持的文件格式 %q（支持：jpg/jpeg/png/bmp/tiff/tif）", ext)
		finishAborted(rr, domain.ErrCodeUnsupportedFormat, e.Error(), name)
		return e
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outDir := filepath.Join(filepath.Dir(eff.Path), stem+outDirSuffix)
	rr.OutputDir = outDir

	if obs != nil {
		obs.OnScanDone(1, outDir)
	}

	info, err := os.Stat(eff.Path)
	if err != nil {
		e := fmt.Errorf("读取文件信息失败：%w", err)
		finishAborted(rr, domain.ErrCodeIOFailed, e.Error(), name)
		return e
	}

	file := domain.PhotoFile{AbsPath: eff.Path, Name: name, Ext: ext, Size: info.Size()}

	oneStarted := time.Now()
	item := execOne(file, outDir, eff.Spec, face, log)
	rr.Items = append(rr.Items, item)
	if obs != nil {
		obs.OnItemDone(1, 1, item, time.Since(oneStarted))
	}
	return nil
}

// runDir 处理目录：输出目录幂等创建；非递归枚举；零匹配报告后正常结束；
// 逐文件独立处理，单文件失败只计入条目、不终止批次。
func runDir(rr *domain.RunReport, eff config.EffectiveConfig, face font.Face, log zerolog.Logger, obs Observer) error {
	outDir := filepath.Join(filepath.Dir(eff.Path), filepath.Base(eff.Path)+outDirSuffix)

	if err := fsx.EnsureDir(outDir); err != nil {
		code := domain.ErrCodeIOFailed
		if fsx.IsPathTypeConflict(err) {
			code = domain.ErrCodeTargetConflict
		}
		e := fmt.Errorf("创建输出目录失败：%w", err)
		finishAborted(rr, code, e.Error(), "")
		return e
	}
	rr.OutputDir = outDir

	files, err := scan.Photos(eff.Path)
	if err != nil {
		e := fmt.Errorf("枚举目录失败：%w", err)
		finishAborted(rr, domain.ErrCodeIOFailed, e.Error(), "")
		return e
	}

	if obs != nil {
		obs.OnScanDone(len(files), outDir)
	}

	if len(files) == 0 {
		// 零匹配不是错误：报告后正常结束。
		return nil
	}

	// 预览段：处理前逐文件上报拍摄时间（只在启用 Observer 的交互场景）。
	if obs != nil {
		for _, f := range files {
			date, ok, _ := exifdate.Extract(f.AbsPath)
			if !ok {
				date = domain.PlaceholderDate
			}
			obs.OnPreview(f.Name, date, ok)
		}
	}

	for i, f := range files {
		oneStarted := time.Now()
		item := execOne(f, outDir, eff.Spec, face, log)
		rr.Items = append(rr.Items, item)
		if obs != nil {
			obs.OnItemDone(i+1, len(files), item, time.Since(oneStarted))
		}
	}
	return nil
}

// execOne 完整处理一个文件：提取日期 → 解码 → 叠加水印 → 编码 → 原子写出。
// 任何失败都在这里降级为 item 级结果；图像资源的生命期不超出本次调用。
func execOne(file domain.PhotoFile, outDir string, spec domain.WatermarkSpec, face font.Face, log zerolog.Logger) domain.ItemResult {
	item := domain.ItemResult{
		File:   file.Name,
		Status: domain.StatusProcessed, // 失败时覆盖
	}

	// 拍摄时间缺失不是错误：代入占位串继续；容器不可读只记日志。
	date, ok, err := exifdate.Extract(file.AbsPath)
	if err != nil {
		log.Warn().Str("file", file.Name).Err(err).Msg("读取 EXIF 失败，按无拍摄时间处理")
	}
	if !ok {
		date = domain.PlaceholderDate
	}
	item.Date = date
	item.DateFromExif = ok

	img, err := imgx.Decode(file.AbsPath)
	if err != nil {
		return failItem(item, domain.ErrCodeDecodeFailed, fmt.Sprintf("解码失败：%v", err), log)
	}

	out := compose.Render(img, date, spec, face)

	b, err := imgx.EncodeByExt(out, file.Ext)
	if err != nil {
		return failItem(item, domain.ErrCodeEncodeFailed, fmt.Sprintf("编码失败：%v", err), log)
	}

	if err := fsx.WriteFileAtomicReplace(outDir, file.Name, b); err != nil {
		code := domain.ErrCodeIOFailed
		if fsx.IsPathTypeConflict(err) {
			code = domain.ErrCodeTargetConflict
		}
		return failItem(item, code, fmt.Sprintf("写入失败：%v", err), log)
	}

	item.Output = filepath.Join(filepath.Base(outDir), file.Name)
	return item
}

func failItem(item domain.ItemResult, code, msg string, log zerolog.Logger) domain.ItemResult {
	item.Status = domain.StatusFailed
	item.ErrorCode = code
	item.ErrorMsg = msg
	log.Error().Str("file", item.File).Str("error_code", code).Msg(msg)
	return item
}

// finishAborted 记录一次“输入错误”导致的整体短路：合成单条失败 item 并收尾。
func finishAborted(rr *domain.RunReport, code, msg, file string) {
	rr.Items = append(rr.Items, domain.ItemResult{
		File:      file,
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	})
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
}
