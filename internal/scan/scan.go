package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/John-Robertt/photomark/internal/domain"
)

// Photos 枚举 dir 直接子项中受支持的图片文件。
//
// 规则（硬约束）：
// - 非递归：子目录不进入
// - 扩展名过滤大小写不敏感（.jpg 与 .JPG 等价）
// - 只做 stat，不读文件内容
func Photos(dir string) ([]domain.PhotoFile, error) {
	dir = filepath.Clean(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]domain.PhotoFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !IsSupportedExt(ext) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			return nil, err
		}

		files = append(files, domain.PhotoFile{
			AbsPath: filepath.Join(dir, name),
			Name:    name,
			Ext:     ext,
			Size:    info.Size(),
		})
	}

	// 强制稳定输出，避免不同平台/文件系统的目录序差异带来的不确定性。
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// IsSupportedExt 判断扩展名（小写、带点）是否在受支持的图片格式集合内。
func IsSupportedExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif":
		return true
	default:
		return false
	}
}
