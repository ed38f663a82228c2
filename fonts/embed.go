package fonts

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未指定字体时使用的内置字体。
const Default = "goregular"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// Names 返回全部内置字体名称。
func Names() []string {
	return []string{"goregular", "gobold", "goitalic", "gomono"}
}

// Load 返回字体的字节数据，name 可写为 "embed:goregular"、"goregular" 或字体文件路径。
// name 为空时返回默认字体。
func Load(name string) ([]byte, error) {
	if name == "" {
		name = Default
	}
	key := strings.TrimPrefix(name, "embed:")
	if data, ok := builtin[key]; ok {
		return data, nil
	}
	if strings.HasPrefix(name, "embed:") {
		return nil, fmt.Errorf("找不到内置字体 %s", key)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", name, err)
	}
	return data, nil
}
