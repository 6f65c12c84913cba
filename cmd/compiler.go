package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"wabbitc/ast"
	"wabbitc/codegen"
	"wabbitc/lower"
	"wabbitc/report"
	"wabbitc/syntax"
	"wabbitc/walk"
)

// Compiler represents the overall state of one compilation: the source being
// compiled and the configuration governing it.
type Compiler struct {
	// The absolute path to the source file.
	srcAbsPath string

	// The path to the source file as given on the command line.  Used for
	// display.
	srcReprPath string

	// The configuration of the compilation.
	cfg *ProjectConfig
}

// NewCompiler creates a new compiler for the source file at srcPath.
func NewCompiler(srcPath string, cfg *ProjectConfig) *Compiler {
	srcAbsPath, err := filepath.Abs(srcPath)
	if err != nil {
		report.ReportFatal("error calculating absolute path: %s", err.Error())
	}

	return &Compiler{
		srcAbsPath:  srcAbsPath,
		srcReprPath: srcPath,
		cfg:         cfg,
	}
}

// Compile runs all the phases of compilation in order and writes the output
// file.  It exits the process on any failure.
func (c *Compiler) Compile() {
	prog := c.parse()
	c.check(prog)

	report.ReportBeginPhase("Lowering")
	mod, err := lower.Generate(prog)
	if err != nil {
		report.ReportEndPhase(false)
		report.ReportICE(err)
	}
	report.ReportEndPhase(true)

	output := ""
	if c.cfg.Emit == "ir" {
		output = mod.String()
	} else {
		report.ReportBeginPhase("Generating")
		llMod, err := codegen.Generate(mod)
		if err != nil {
			report.ReportEndPhase(false)
			report.ReportICE(err)
		}
		report.ReportEndPhase(true)

		output = llMod.String()
	}

	c.writeOutput(output)
	report.ReportCompilationFinished(true, c.cfg.OutputPath)
}

// parse reads and parses the source file.
func (c *Compiler) parse() *ast.Program {
	report.ReportBeginPhase("Parsing")

	src, err := ioutil.ReadFile(c.srcAbsPath)
	if err != nil {
		report.ReportEndPhase(false)
		report.ReportFatal("failed to read source file `%s`: %s", c.srcReprPath, err.Error())
	}

	prog, diags := syntax.Parse(string(src))
	c.endPhase(diags)

	return prog
}

// check runs semantic analysis over the parsed program.
func (c *Compiler) check(prog *ast.Program) {
	report.ReportBeginPhase("Checking")
	c.endPhase(walk.Check(prog))
}

// endPhase concludes a phase that produced the given diagnostics, reporting
// them and exiting when there are any.
func (c *Compiler) endPhase(diags []*report.Diagnostic) {
	if len(diags) == 0 {
		report.ReportEndPhase(true)
		return
	}

	report.ReportEndPhase(false)
	report.ReportDiagnostics(c.srcAbsPath, c.srcReprPath, diags)
	report.ReportCompilationFinished(false, c.cfg.OutputPath)
	os.Exit(1)
}

// writeOutput writes the compilation output file.
func (c *Compiler) writeOutput(content string) {
	if err := ioutil.WriteFile(c.cfg.OutputPath, []byte(content), 0666); err != nil {
		report.ReportFatal("failed to write output file `%s`: %s", c.cfg.OutputPath, err.Error())
	}
}
