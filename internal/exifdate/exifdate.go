// Package exifdate 从图片的 EXIF 信息中提取拍摄日期。
//
// “没有可用拍摄时间”是正常结果而不是错误：调用方应代入占位串并继续。
package exifdate

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// candidates 是拍摄时间标签的固定优先级（顺序即优先级，确定性）。
var candidates = []exif.FieldName{
	exif.DateTime,
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
}

const (
	// exifLayout 是 EXIF 时间戳的固定文本格式（"2023:10:15 14:30:25"）。
	exifLayout = "2006:01:02 15:04:05"
	outLayout  = "2006-01-02"
)

// Extract 读取 path 的 EXIF 并返回拍摄日期（YYYY-MM-DD）。
//
// 返回值：
// - ok=false 表示没有可用拍摄时间（含：无 EXIF、全部候选缺失或不可解析）
// - err 仅用于上层记日志（文件打不开 / EXIF 容器不可读）；err!=nil 时 ok 必为 false
func Extract(path string) (date string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// 无 EXIF 与容器损坏在这里不区分：都按“缺失”处理，错误只供日志。
		return "", false, err
	}

	date, ok = fromTags(func(name exif.FieldName) (string, bool) {
		tag, err := x.Get(name)
		if err != nil {
			return "", false
		}
		v, err := tag.StringVal()
		if err != nil {
			return "", false
		}
		return v, true
	})
	return date, ok, nil
}

// fromTags 按固定优先级尝试各候选标签：值缺失或不匹配固定格式则跳过，
// 试下一候选；全部落空返回 ok=false。
func fromTags(get func(exif.FieldName) (string, bool)) (string, bool) {
	for _, name := range candidates {
		v, ok := get(name)
		if !ok {
			continue
		}
		v = strings.TrimSpace(strings.TrimRight(v, "\x00"))
		t, err := time.Parse(exifLayout, v)
		if err != nil {
			continue
		}
		return t.Format(outLayout), true
	}
	return "", false
}
