package layout

// 脚本中的长度均为页面逻辑单位；部分后端（tdewolff/canvas）以毫米为单位，
// 字号却以 pt 传入，因此需要在边界做换算。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// ToPt 将逻辑单位（按 mm 解释）转换为 pt。
func ToPt(mm float64) float64 { return mm * MmToPt }

// ToMm 将 pt 转换为逻辑单位（mm）。
func ToMm(pt float64) float64 { return pt * PtToMm }
