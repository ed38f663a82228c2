package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将执行结果（以及可选的绘制调用记录）输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, calls any, path string) error {
	if res == nil {
		return nil
	}
	payload := struct {
		Result *Result `json:"result"`
		Calls  any     `json:"calls,omitempty"`
	}{Result: res, Calls: calls}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
