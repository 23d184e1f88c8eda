package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

const starterConfig = `# archdoc project configuration.
# Serialized IR payloads, in merge order (later sources win on duplicates).
ir_files:
  - archdoc-ir.json

# Project root, used to honor .gitignore during file-catalog validation.
root: .

# Persisted documentation compared by drift detection.
architecture_file: ARCHITECTURE.md
docs_dir: docs/architecture

# Drift strategy: "document" compares the single canonical file,
# "tree" compares the full docs_dir.
drift_strategy: document

# Fitness functions to run; omit to run all registered checks.
# fitness:
#   - all_strategy_modules_define_an_interface
`

// runInit implements `archdoc init`, which writes a starter .archdoc.yml.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var force bool
	fs.BoolVar(&force, "force", false, "overwrite an existing config file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: archdoc init [flags] [path]

Write a starter archdoc config file. path defaults to ./.archdoc.yml.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := ".archdoc.yml"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}
