package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"

	"github.com/ByLCY/pagedraw/config"
	"github.com/ByLCY/pagedraw/layout"
	"github.com/ByLCY/pagedraw/renderer"
	canvasrenderer "github.com/ByLCY/pagedraw/renderer/canvas"
	ggrenderer "github.com/ByLCY/pagedraw/renderer/gg"
	"github.com/ByLCY/pagedraw/renderer/trace"
	"github.com/ByLCY/pagedraw/script"
)

var red = color.New(color.FgRed, color.Bold).SprintFunc()

type flags struct {
	input      string
	output     string
	width      float64
	height     float64
	scale      float64
	backend    string
	font       string
	configPath string
	profile    string
	debugPath  string
	logFile    string
	verbose    bool
}

var f flags

var rootCmd = &cobra.Command{
	Use:          "pagedraw",
	Short:        "pagedraw renders a tab-separated layout script to a PNG image",
	Long:         `pagedraw renders a tab-separated layout script (cursor, padding, boxes, wrapped text) to a PNG image.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(f.configPath, f.profile)
		if err != nil {
			return err
		}
		applyOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, closeLog, err := newLogger(os.Stderr, f.verbose, f.logFile)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()

		return run(f.input, f.output, f.debugPath, cfg, logger)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, red("Error:"), err)
		if f.verbose {
			if b, jerr := json.MarshalIndent(errors.StackTraces(err), "", "  "); jerr == nil {
				_, _ = fmt.Fprintln(os.Stderr, string(b))
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&f.input, "input", "i", "", "layout script to read")
	rootCmd.Flags().StringVarP(&f.output, "output", "o", "", "PNG file to write")
	rootCmd.Flags().Float64Var(&f.width, "width", 0, "page width in logical units (default 595)")
	rootCmd.Flags().Float64Var(&f.height, "height", 0, "page height in logical units (default 842)")
	rootCmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per logical unit (default 2)")
	rootCmd.Flags().StringVar(&f.backend, "backend", "", "rendering backend: canvas or gg")
	rootCmd.Flags().StringVar(&f.font, "font", "", "built-in font name or TTF path")
	rootCmd.Flags().StringVar(&f.configPath, "config", "", "config file path")
	rootCmd.Flags().StringVar(&f.profile, "profile", "", "config profile name")
	rootCmd.Flags().StringVar(&f.debugPath, "debug", "", "write executed layout and draw calls as JSON")
	rootCmd.Flags().StringVar(&f.logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every directive")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Height = f.height
	}
	if fs.Changed("scale") {
		cfg.Scale = f.scale
	}
	if fs.Changed("backend") {
		cfg.Backend = f.backend
	}
	if fs.Changed("font") {
		cfg.Font = f.font
	}
}

// run 串联解析、执行与 PNG 编码；任何致命错误都不会写出图像。
func run(inputPath, outputPath, debugPath string, cfg *config.Config, logger *slog.Logger) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("%w %s: %v", layout.ErrInputNotFound, inputPath, err)
	}
	defer file.Close()

	doc, err := script.ParseFile(inputPath, file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	var surface layout.Surface = r
	var recorder *trace.Surface
	if debugPath != "" {
		recorder = trace.Wrap(r)
		surface = recorder
	}

	result, err := layout.Run(doc, surface, layout.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("执行脚本失败: %w", err)
	}

	if recorder != nil {
		if err := writeDebug(result, recorder.Calls(), debugPath); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := renderer.WritePNG(r, outputPath); err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}

	logger.Info("rendered",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
		slog.String("backend", cfg.Backend),
		slog.Int("directives", result.Directives),
		slog.Int("skipped", len(result.Skipped)))
	return nil
}

func newRenderer(cfg *config.Config) (renderer.Renderer, error) {
	opts, err := cfg.RendererOptions()
	if err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case config.BackendGG:
		return ggrenderer.NewRenderer(opts)
	default:
		return canvasrenderer.NewRenderer(opts)
	}
}

func writeDebug(result *layout.Result, calls []trace.Call, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, calls, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
