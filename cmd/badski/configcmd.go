package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/badski/internal/config"
)

var flagConfigWrite bool

var configCmd = &cobra.Command{
	Use:   "config [name]",
	Short: "Print or install the built-in config files",
	Long: `Print the embedded default YAML for ski, items or scenarios.

With --write the files are copied to ~/.badski/configs/ so they can be
edited; existing files are left alone.

Examples:
  badski config ski         # Print the physics and scoring tuning
  badski config --write     # Install all defaults for editing`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Copy defaults into ~/.badski/configs")
}

func runConfig(_ *cobra.Command, args []string) {
	if err := exportConfigs(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func exportConfigs(args []string) error {
	names := config.Names
	if len(args) == 1 {
		if config.GetDefaultYAML(args[0]) == nil {
			return fmt.Errorf("unknown config %q (have: %s)", args[0], strings.Join(config.Names, ", "))
		}
		names = args[:1]
	}

	if !flagConfigWrite {
		for i, name := range names {
			if i > 0 {
				fmt.Println("---")
			}
			fmt.Printf("# %s.yaml\n%s", name, config.GetDefaultYAML(name))
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".badski", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, name := range names {
		path := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("kept     %s\n", path)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, config.GetDefaultYAML(name), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("written  %s\n", path)
	}
	return nil
}
