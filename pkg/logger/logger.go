// Package logger 提供基于zerolog的结构化日志
//
// 设计说明：
// 1. 全局Logger由main在启动时根据配置初始化一次
// 2. console格式用于开发环境（彩色、易读），json格式用于生产环境（便于采集）
// 3. 输出目标支持stdout/stderr/文件路径
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init 初始化全局日志
// 参数：
//   - level: debug | info | warn | error
//   - format: console | json
//   - output: stdout | stderr | 文件路径
func Init(level, format, output string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer
	switch output {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		// 文件输出（追加写，失败时退回stdout）
		f, ferr := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			w = os.Stdout
		} else {
			w = f
		}
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()

	// 同步到zerolog的全局Logger，pkg/response等处直接使用log.Error()
	log.Logger = l
	return l
}
