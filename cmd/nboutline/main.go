package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"nboutline/pkg/config"
	"nboutline/pkg/log"
	"nboutline/pkg/notebook"
	"nboutline/pkg/orchestrate"
	"nboutline/pkg/process"
	"nboutline/pkg/template"
	"nboutline/pkg/utils"
)

const version = "0.4.1"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "number":
		runNumber(os.Args[2:])
	case "toc":
		runTOC(os.Args[2:])
	case "outline":
		runOutline(os.Args[2:])
	case "extract":
		runExtract(os.Args[2:])
	case "scaffold":
		runScaffold(os.Args[2:])
	case "compose":
		runCompose(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("nboutline %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `nboutline - Jupyter notebook outline tool

Usage:
  nboutline <command> [options] [arguments]

Commands:
  number    Assign hierarchical numbers to markdown headings
  toc       Insert or update the table-of-contents cell
  outline   Print the heading tree of a notebook
  extract   Extract a section template from a notebook
  scaffold  Generate a selection file for a template
  compose   Build a notebook from a template and selection
  validate  Validate config, template, and selection files
  version   Show version info

Run 'nboutline <command> -h' for command-specific help.`)
}

// loadAndValidateConfig loads the config file, validates it, and logs
// warnings. An empty path yields the built-in defaults.
func loadAndValidateConfig(configFile string, logger *logrus.Logger) *config.Config {
	if configFile != "" {
		logger.Infof("Loading configuration from %s", configFile)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Fatalf("Config error [%s]: %v", utils.CategorizeError(err), err)
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err != nil {
		logger.Fatalf("Config error [%s]: %v", utils.CategorizeError(err), err)
	}

	return cfg
}

// runNumber handles the number subcommand
func runNumber(args []string) {
	fs := pflag.NewFlagSet("number", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Path to YAML config file (optional)")
	output := fs.StringP("output", "o", "", "Output path (single notebook only; default: in place)")
	remove := fs.BoolP("remove", "r", false, "Strip heading numbers instead of assigning them")
	noTOC := fs.Bool("no-toc", false, "Leave an existing TOC cell untouched")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline number [options] <notebook.ipynb> [more notebooks...]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nboutline number analysis.ipynb\n")
		fmt.Fprintf(os.Stderr, "  nboutline number -r analysis.ipynb\n")
		fmt.Fprintf(os.Stderr, "  nboutline number -o numbered.ipynb analysis.ipynb\n")
		fmt.Fprintf(os.Stderr, "  nboutline number chapter*.ipynb\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	executeTransform("number", *configFile, *output, *logLevel, fs.Args(), fs.Usage,
		func(p *process.Processor, nb *notebook.Notebook) (*process.Report, error) {
			return p.Number(nb, *remove, !*noTOC)
		})
}

// runTOC handles the toc subcommand
func runTOC(args []string) {
	fs := pflag.NewFlagSet("toc", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Path to YAML config file (optional)")
	output := fs.StringP("output", "o", "", "Output path (single notebook only; default: in place)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline toc [options] <notebook.ipynb> [more notebooks...]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	executeTransform("toc", *configFile, *output, *logLevel, fs.Args(), fs.Usage,
		func(p *process.Processor, nb *notebook.Notebook) (*process.Report, error) {
			return p.UpdateTOC(nb)
		})
}

// transformOp applies one whole-notebook transformation
type transformOp func(*process.Processor, *notebook.Notebook) (*process.Report, error)

// executeTransform runs a notebook transformation over one or many files.
// A single file may redirect to -o; multiple files always rewrite in place,
// in parallel, bounded by the configured worker count.
func executeTransform(cmdName, configFile, output, logLevelStr string, paths []string, usage func(), op transformOp) {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one notebook path is required")
		usage()
		os.Exit(1)
	}
	if output != "" && len(paths) > 1 {
		fmt.Fprintln(os.Stderr, "Error: -o/--output works with a single notebook only")
		os.Exit(1)
	}

	logger := log.Setup(logLevelStr)
	cfg := loadAndValidateConfig(configFile, logger)

	proc, err := process.NewProcessor(cfg, log.Component(logger, cmdName))
	if err != nil {
		logger.Fatalf("Setup error [%s]: %v", utils.CategorizeError(err), err)
	}

	if err := orchestrate.ValidatePaths(paths); err != nil {
		logger.Fatalf("Input error [%s]: %v", utils.CategorizeError(err), err)
	}

	if len(paths) == 1 {
		outPath := output
		if outPath == "" {
			outPath = paths[0]
		}
		report, changed, err := transformFile(paths[0], outPath, proc, op)
		if err != nil {
			logger.Fatalf("Processing error [%s]: %v", utils.CategorizeError(err), err)
		}
		logReport(logger, paths[0], report, changed)
		return
	}

	// Batch mode: rewrite each notebook in place
	processFn := func(ctx context.Context, path string) (int, bool, error) {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		report, changed, err := transformFile(path, path, proc, op)
		if err != nil {
			return 0, false, err
		}
		return len(report.Warnings), changed, nil
	}

	orch := orchestrate.NewOrchestrator(paths, cfg.Batch.Workers, processFn, log.Component(logger, "batch"))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal %v, initiating graceful shutdown...", sig)
		orch.Cancel()
	}()

	results := orch.Run()
	if orchestrate.Failed(results) > 0 {
		os.Exit(1)
	}
}

// transformFile reads a notebook, applies op, and writes the result. An
// in-place rewrite whose serialized output hashes equal to the input is
// skipped, so untouched notebooks keep their mtime.
func transformFile(path, outPath string, proc *process.Processor, op transformOp) (*process.Report, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", utils.ErrFilesystem, err)
	}
	nb, err := notebook.Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}

	report, err := op(proc, nb)
	if err != nil {
		return nil, false, err
	}

	out, err := notebook.Marshal(nb)
	if err != nil {
		return report, false, err
	}

	if outPath == path && utils.CalculateStringSHA256(string(out)) == utils.CalculateStringSHA256(string(data)) {
		return report, false, nil
	}

	if err := notebook.WriteBytes(outPath, out); err != nil {
		return report, false, err
	}
	return report, true, nil
}

// logReport logs the outcome of one transformation
func logReport(logger *logrus.Logger, path string, report *process.Report, changed bool) {
	n := report.Numbering
	if n.Assigned+n.Preserved+n.Stripped+n.Skipped > 0 {
		logger.Infof("'%s': %d numbered, %d preserved, %d stripped, %d skipped",
			path, n.Assigned, n.Preserved, n.Stripped, n.Skipped)
	}
	if report.TOCAction != "" {
		logger.Infof("'%s': TOC %s", path, report.TOCAction)
	}
	if changed {
		logger.Infof("'%s' written", path)
	} else {
		logger.Infof("'%s' already up to date", path)
	}
}

// runOutline handles the outline subcommand
func runOutline(args []string) {
	fs := pflag.NewFlagSet("outline", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Path to YAML config file (optional)")
	logLevel := fs.String("loglevel", "warn", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline outline [options] <notebook.ipynb> [more notebooks...]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one notebook path is required")
		fs.Usage()
		os.Exit(1)
	}

	logger := log.Setup(*logLevel)
	cfg := loadAndValidateConfig(*configFile, logger)
	proc, err := process.NewProcessor(cfg, log.Component(logger, "outline"))
	if err != nil {
		logger.Fatalf("Setup error [%s]: %v", utils.CategorizeError(err), err)
	}

	for _, path := range paths {
		nb, err := notebook.Read(path)
		if err != nil {
			logger.Fatalf("Read error [%s]: %v", utils.CategorizeError(err), err)
		}
		tree, _ := proc.Outline(nb, filepath.Base(path))
		fmt.Print(tree)
	}
}

// runExtract handles the extract subcommand
func runExtract(args []string) {
	fs := pflag.NewFlagSet("extract", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Path to YAML config file (optional)")
	output := fs.StringP("output", "o", "", "Template output path (default: notebook name with .json)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline extract [options] <notebook.ipynb>\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one notebook path is required")
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	logger := log.Setup(*logLevel)
	cfg := loadAndValidateConfig(*configFile, logger)
	proc, err := process.NewProcessor(cfg, log.Component(logger, "extract"))
	if err != nil {
		logger.Fatalf("Setup error [%s]: %v", utils.CategorizeError(err), err)
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultTemplatePath(path)
	}

	nb, err := notebook.Read(path)
	if err != nil {
		logger.Fatalf("Read error [%s]: %v", utils.CategorizeError(err), err)
	}

	sections, _ := proc.Extract(nb)
	if err := template.SaveTemplate(outPath, sections); err != nil {
		logger.Fatalf("Write error [%s]: %v", utils.CategorizeError(err), err)
	}
	logger.Infof("Extracted %d section(s) to '%s'", countSections(sections), outPath)
}

// runScaffold handles the scaffold subcommand
func runScaffold(args []string) {
	fs := pflag.NewFlagSet("scaffold", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Path to YAML config file (optional)")
	output := fs.StringP("output", "o", "", "Selection output path (default: input name with _selection.json)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline scaffold [options] <template.json | notebook.ipynb>\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one template or notebook path is required")
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	logger := log.Setup(*logLevel)
	cfg := loadAndValidateConfig(*configFile, logger)
	proc, err := process.NewProcessor(cfg, log.Component(logger, "scaffold"))
	if err != nil {
		logger.Fatalf("Setup error [%s]: %v", utils.CategorizeError(err), err)
	}

	sections, err := loadSections(path, proc)
	if err != nil {
		logger.Fatalf("Read error [%s]: %v", utils.CategorizeError(err), err)
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultSelectionPath(path)
	}

	sel := template.Scaffold(sections)
	if err := template.SaveSelection(outPath, sel); err != nil {
		logger.Fatalf("Write error [%s]: %v", utils.CategorizeError(err), err)
	}
	logger.Infof("Scaffolded selection with %d entr(ies) to '%s'", len(sel), outPath)
}

// runCompose handles the compose subcommand
func runCompose(args []string) {
	fs := pflag.NewFlagSet("compose", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Path to YAML config file (optional)")
	templateFile := fs.StringP("template", "t", "", "Template JSON file (or notebook to extract on the fly)")
	selectionFile := fs.StringP("selection", "s", "", "Selection JSON file")
	output := fs.StringP("output", "o", "output.ipynb", "Composed notebook output path")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline compose [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nboutline compose -t course.json -s course_selection.json -o week1.ipynb\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *templateFile == "" || *selectionFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -t/--template and -s/--selection are required")
		fs.Usage()
		os.Exit(1)
	}

	logger := log.Setup(*logLevel)
	cfg := loadAndValidateConfig(*configFile, logger)
	proc, err := process.NewProcessor(cfg, log.Component(logger, "compose"))
	if err != nil {
		logger.Fatalf("Setup error [%s]: %v", utils.CategorizeError(err), err)
	}

	sections, err := loadSections(*templateFile, proc)
	if err != nil {
		logger.Fatalf("Template error [%s]: %v", utils.CategorizeError(err), err)
	}
	sel, err := template.LoadSelection(*selectionFile)
	if err != nil {
		logger.Fatalf("Selection error [%s]: %v", utils.CategorizeError(err), err)
	}

	nb, warnings, err := proc.Compose(sections, sel)
	if err != nil {
		logger.Fatalf("Compose error [%s]: %v", utils.CategorizeError(err), err)
	}

	if err := notebook.Write(*output, nb); err != nil {
		logger.Fatalf("Write error [%s]: %v", utils.CategorizeError(err), err)
	}
	logger.Infof("Composed %d cell(s) into '%s', %d warning(s)", len(nb.Cells), *output, len(warnings))
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := pflag.NewFlagSet("validate", pflag.ExitOnError)
	configFile := fs.StringP("config", "c", "", "Config file to validate")
	templateFile := fs.StringP("template", "t", "", "Template file to validate")
	selectionFile := fs.StringP("selection", "s", "", "Selection file to validate (cross-checked against -t)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nboutline validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doValidate(*configFile, *templateFile, *selectionFile, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doValidate performs validation and writes output to the provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath, templatePath, selectionPath string, stdout, stderr io.Writer) int {
	if configPath == "" && templatePath == "" && selectionPath == "" {
		fmt.Fprintln(stderr, "Error: nothing to validate; pass -c, -t, and/or -s")
		return 1
	}

	hasError := false

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: [config] %v\n", err)
			hasError = true
		} else {
			warnings, err := cfg.Validate()
			for _, w := range warnings {
				fmt.Fprintf(stdout, "WARN: [config] %s\n", w)
			}
			if err != nil {
				fmt.Fprintf(stderr, "ERROR: [config] %v\n", err)
				hasError = true
			} else {
				fmt.Fprintf(stdout, "OK: [config] %s\n", configPath)
			}
		}
	}

	var sections []*template.Section
	if templatePath != "" {
		var err error
		sections, err = template.LoadTemplate(templatePath)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: [template] %v\n", err)
			hasError = true
		} else {
			fmt.Fprintf(stdout, "OK: [template] %s (%d section(s))\n", templatePath, countSections(sections))
		}
	}

	if selectionPath != "" {
		sel, err := template.LoadSelection(selectionPath)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: [selection] %v\n", err)
			hasError = true
		} else if sections != nil {
			if err := template.ValidateSelection(sections, sel); err != nil {
				fmt.Fprintf(stderr, "ERROR: [selection] %v\n", err)
				hasError = true
			} else {
				fmt.Fprintf(stdout, "OK: [selection] %s matches template\n", selectionPath)
			}
		} else {
			fmt.Fprintf(stdout, "OK: [selection] %s (%d entr(ies); pass -t to cross-check)\n", selectionPath, len(sel))
		}
	}

	if hasError {
		return 1
	}
	fmt.Fprintln(stdout, "\nEverything validated.")
	return 0
}

// loadSections loads a template from a .json file, or extracts one in memory
// when handed a notebook.
func loadSections(path string, proc *process.Processor) ([]*template.Section, error) {
	if strings.EqualFold(filepath.Ext(path), ".ipynb") {
		nb, err := notebook.Read(path)
		if err != nil {
			return nil, err
		}
		sections, _ := proc.Extract(nb)
		return sections, nil
	}
	return template.LoadTemplate(path)
}

// defaultTemplatePath derives the template output path from the notebook path
func defaultTemplatePath(path string) string {
	return withExt(path, ".json")
}

// defaultSelectionPath derives the selection output path from the input path
func defaultSelectionPath(path string) string {
	return withExt(path, "_selection.json")
}

func withExt(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// countSections counts sections including nested children
func countSections(sections []*template.Section) int {
	total := 0
	for _, s := range sections {
		total += 1 + countSections(s.Children)
	}
	return total
}
