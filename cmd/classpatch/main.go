// Copyright (c) 2024 The classpatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program classpatch applies registered class rewrites to .class files and
// to class entries inside jar archives.  It is the build-pipeline glue which
// binds target class names to the redirecting transformer.
package main

import (
	"archive/zip"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/classpatch/classpatch"
	"github.com/classpatch/classpatch/classfile"
	"github.com/classpatch/classpatch/rewrite"
)

var log = commonlog.GetLogger("classpatch.cli")

var (
	planPath  string
	className string
	owner     string
	output    string
	dryRun    bool
	verbose   bool
)

func main() {
	flag.StringVar(&planPath, "plan", "", "TOML patch plan")
	flag.StringVar(&className, "class", classpatch.BeanTableSchema, "target class name (with -owner)")
	flag.StringVar(&owner, "owner", "", "redirect target type (internal or dotted name)")
	flag.StringVar(&output, "o", "", "output path (single input only; default is in-place)")
	flag.BoolVar(&dryRun, "n", false, "only report what would be rewritten")
	flag.BoolVar(&verbose, "v", false, "verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file.class|file.jar...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := 0
	if verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	config, err := makeConfig()
	if err != nil {
		fatal(err)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if output != "" && flag.NArg() != 1 {
		fatal(fmt.Errorf("-o is only valid with a single input"))
	}

	for _, path := range flag.Args() {
		if err := patchPath(config, path); err != nil {
			fatal(fmt.Errorf("%s: %w", path, err))
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "classpatch: %v\n", err)
	os.Exit(1)
}

func makeConfig() (*classpatch.Config, error) {
	config := new(classpatch.Config)

	if planPath != "" {
		plan, err := loadPlan(planPath)
		if err != nil {
			return nil, err
		}
		if err := plan.configure(config); err != nil {
			return nil, err
		}
	}

	if owner != "" {
		config.Register(className, classpatch.Redirect(rewrite.Target{
			Owner: internalName(owner),
		}))
	}

	if planPath == "" && owner == "" {
		return nil, fmt.Errorf("no patches configured; use -plan or -owner")
	}

	return config, nil
}

func patchPath(config *classpatch.Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".class":
		return patchClassFile(config, path)

	case ".jar", ".zip":
		return patchArchive(config, path)

	default:
		return fmt.Errorf("not a class file or archive")
	}
}

func patchClassFile(config *classpatch.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name, err := dottedClassName(data)
	if err != nil {
		return err
	}

	if !config.Registered(name) {
		log.Infof("%s: class %s not targeted", path, name)
		return nil
	}

	if dryRun {
		log.Noticef("%s: would rewrite %s", path, name)
		return nil
	}

	patched, err := config.Transform(name, data)
	if err != nil {
		return err
	}

	return writeOutput(path, patched)
}

func patchArchive(config *classpatch.Config, path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	out := output
	if out == "" {
		out = path
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".classpatch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := zip.NewWriter(tmp)
	patchedAny := false

	for _, f := range r.File {
		data, err := readEntry(f)
		if err != nil {
			return err
		}

		if strings.HasSuffix(f.Name, ".class") {
			name := strings.ReplaceAll(strings.TrimSuffix(f.Name, ".class"), "/", ".")

			if config.Registered(name) {
				if dryRun {
					log.Noticef("%s: would rewrite %s", path, name)
				} else {
					data, err = config.Transform(name, data)
					if err != nil {
						return fmt.Errorf("%s: %w", f.Name, err)
					}
					patchedAny = true
				}
			}
		}

		header := f.FileHeader
		fw, err := w.CreateHeader(&header)
		if err != nil {
			return err
		}
		if _, err := fw.Write(data); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if dryRun || !patchedAny {
		if !dryRun {
			log.Infof("%s: no targeted classes", path)
		}
		return nil
	}

	return os.Rename(tmp.Name(), out)
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func writeOutput(path string, data []byte) error {
	out := output
	if out == "" {
		out = path
	}
	return os.WriteFile(out, data, 0o644)
}

func dottedClassName(data []byte) (string, error) {
	c, err := classfile.Parse(data)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(c.Name(), "/", "."), nil
}

// internalName accepts both dotted and internal type names.
func internalName(s string) string {
	return strings.ReplaceAll(s, ".", "/")
}
