package domain

// PhotoFile 描述一次扫描得到的图片文件（只做 stat，不读内容）。
//
// 不变量（实现必须遵守）：
// - AbsPath 必须是 clean + absolute
// - Ext 统一为小写且带点（".jpg"）
type PhotoFile struct {
	AbsPath string
	Name    string // 文件名（含扩展名），输出文件沿用该名
	Ext     string // ".jpg"
	Size    int64
}
