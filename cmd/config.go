package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"wabbitc/common"
	"wabbitc/report"

	"github.com/pelletier/go-toml"
)

// ProjectConfig is the optional per-project configuration loaded from a
// `wabbit.toml` file next to the source file.  Command-line arguments override
// anything set here.
type ProjectConfig struct {
	// The path to write compilation output to.
	OutputPath string `toml:"output"`

	// The kind of output to produce: "llvm" or "ir".
	Emit string `toml:"emit"`
}

// LoadProjectConfig loads the project file governing the source file at
// srcPath, falling back to defaults when no project file exists.
func LoadProjectConfig(srcPath string) *ProjectConfig {
	cfg := &ProjectConfig{Emit: "llvm"}

	tomlPath := filepath.Join(filepath.Dir(srcPath), common.WabbitProjectFileName)
	if data, err := ioutil.ReadFile(tomlPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			report.ReportFatal("error reading `%s`: %s", tomlPath, err.Error())
		}
	} else if !os.IsNotExist(err) {
		report.ReportFatal("error opening `%s`: %s", tomlPath, err.Error())
	}

	if cfg.Emit != "llvm" && cfg.Emit != "ir" {
		report.ReportFatal("invalid emit kind `%s` in `%s`", cfg.Emit, tomlPath)
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = defaultOutputPath(srcPath, cfg.Emit)
	}

	return cfg
}

// defaultOutputPath derives the output path from the source path and the kind
// of output being produced.
func defaultOutputPath(srcPath, emit string) string {
	ext := ".ll"
	if emit == "ir" {
		ext = ".wir"
	}

	base := filepath.Base(srcPath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	return filepath.Join(filepath.Dir(srcPath), base+ext)
}
