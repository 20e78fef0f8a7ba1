package commands

import (
	"fmt"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
	"git.home.luguber.info/inful/gbsaprep/internal/gbsa"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct{}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	return RunGenerate(cfg, ResolveRoot(root.Root, cfg))
}

// RunGenerate executes a single generation pass and prints the summary.
func RunGenerate(cfg *config.Config, rootDir string) error {
	summary, err := gbsa.New(cfg).Generate(rootDir)
	if err != nil {
		return err
	}

	if summary.Processed == 0 {
		fmt.Println("No analysis directories found.")
		return nil
	}
	fmt.Printf("%d directories processed, %d succeeded (%d files written)\n",
		summary.Processed, summary.Succeeded, summary.Files)
	return nil
}
