package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dusk-indust/doctree/internal/config"
	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/export"
	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/logging"
	"github.com/dusk-indust/doctree/internal/plugins"
)

// convertFlags are the flags of the convert and diagram commands.
type convertFlags struct {
	ProjectRoot         string
	OutputDir           string
	Name                string
	Mode                string
	Language            string
	ExternalPattern     string
	ExcludeExternals    bool
	IncludeDeclarations bool
	Verbose             bool
}

func (f *convertFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.ProjectRoot, "project-root", ".", "path to the project to document")
	fs.StringVar(&f.OutputDir, "out", "", "output directory (default: <project-root>/docs/reflect)")
	fs.StringVar(&f.Name, "name", "", "project display name")
	fs.StringVar(&f.Mode, "mode", "", "output mode: modules or file")
	fs.StringVar(&f.Language, "language", "", "source language: typescript, go, python, rust")
	fs.StringVar(&f.ExternalPattern, "external-pattern", "", "glob marking matching files as external")
	fs.BoolVar(&f.ExcludeExternals, "exclude-externals", false, "drop external reflections from the output")
	fs.BoolVar(&f.IncludeDeclarations, "include-declarations", false, "keep declaration-only files in the program")
	fs.BoolVar(&f.Verbose, "verbose", false, "enable verbose output")
}

// options merges config file settings with command-line flags. Flags win.
func (f *convertFlags) options(cfg *config.ProjectConfig) converter.Options {
	opts := cfg.Converter
	if f.Name != "" {
		opts.Name = f.Name
	}
	if f.Mode != "" {
		opts.Mode = converter.OutputMode(f.Mode)
	}
	if f.Language != "" {
		opts.Language = frontend.Language(strings.ToLower(f.Language))
	}
	if f.ExternalPattern != "" {
		opts.ExternalPattern = f.ExternalPattern
	}
	if f.ExcludeExternals {
		opts.ExcludeExternals = true
	}
	if f.IncludeDeclarations {
		opts.IncludeDeclarations = true
	}
	return opts
}

func runConvert(args []string) error {
	var flags convertFlags
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, opts, err := convertProject(&flags, fs.Args())
	if err != nil {
		return err
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}

	outDir := flags.OutputDir
	if outDir == "" {
		outDir = filepath.Join(flags.ProjectRoot, "docs", "reflect")
	}
	if err := export.WriteJSON(outDir, result.Project, opts.Mode); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %d reflections to %s\n", result.Project.Count(), outDir)
	return nil
}

// convertProject runs a full conversion for the CLI commands. Explicit file
// arguments win over walking the project root.
func convertProject(flags *convertFlags, files []string) (*converter.Result, converter.Options, error) {
	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return nil, converter.Options{}, fmt.Errorf("load config: %w", err)
	}
	opts := flags.options(cfg)

	log := logging.New(flags.Verbose || cfg.Verbose)
	defer log.Sync()

	conv := converter.New(opts, frontend.NewLocalHost(), log)
	if err := plugins.RegisterDefaults(conv); err != nil {
		return nil, opts, fmt.Errorf("register plugins: %w", err)
	}

	if len(files) == 0 {
		files, err = collectFiles(flags.ProjectRoot, conv.Options().Language, cfg.ExcludeDirs)
		if err != nil {
			return nil, opts, err
		}
	}
	if len(files) == 0 {
		return nil, opts, fmt.Errorf("no source files found under %s", flags.ProjectRoot)
	}

	result, err := conv.Convert(files)
	if err != nil {
		return nil, opts, err
	}
	return result, conv.Options(), nil
}

// collectFiles walks root and gathers files with the language's extensions.
func collectFiles(root string, lang frontend.Language, excludeDirs []string) ([]string, error) {
	spec, err := frontend.SpecFor(lang)
	if err != nil {
		return nil, err
	}

	excludeSet := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excludeSet[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "node_modules" || excludeSet[name] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range spec.Extensions {
			if e == ext {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	return files, nil
}
