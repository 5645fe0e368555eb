package run

import (
	"time"

	"github.com/John-Robertt/photomark/internal/config"
	"github.com/John-Robertt/photomark/internal/domain"
)

// Observer 用于把“运行进度/预览/条目结果”从核心执行流程中解耦出来。
//
// 约束：run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
type Observer interface {
	// OnStart 在 Execute 开始时调用（应尽量早，保证用户第一时间看到生效配置）。
	OnStart(eff config.EffectiveConfig)
	// OnScanDone 在目录枚举完成后调用（单文件模式 total=1）。
	OnScanDone(total int, outDir string)
	// OnPreview 在处理开始前逐文件上报拍摄时间（目录模式的预览段）。
	OnPreview(file, date string, fromExif bool)
	// OnItemDone 在某个文件处理完成时调用（用于每条结果的一行输出）。
	OnItemDone(idx, total int, res domain.ItemResult, dur time.Duration)
}
