package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

var (
	configFormat string
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialise the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Prints the configuration the pipeline would run with: values from
the config file over the defaults, with command-line flags applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "toml", "output format: toml or yaml")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var out []byte
	switch configFormat {
	case "toml":
		out, err = toml.Marshal(configTree(cfg))
	case "yaml":
		out, err = yaml.Marshal(configTree(cfg))
	default:
		return fmt.Errorf("unknown format %q: %w", configFormat, domain.ErrUnsupportedType)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	_, svc, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), svc.Path())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cfg, svc, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := svc.Path()
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := svc.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}

// configTree mirrors the dot-notation keys of the config file.
func configTree(cfg *domain.PipelineConfig) map[string]any {
	return map[string]any{
		"workdir": cfg.WorkDir,
		"source": map[string]any{
			"url": cfg.SourceURL,
		},
		"files": map[string]any{
			"archive":         cfg.Files.Archive,
			"text":            cfg.Files.Text,
			"sentences":       cfg.Files.Sentences,
			"tokens":          cfg.Files.Tokens,
			"sentence_tokens": cfg.Files.SentenceTokens,
			"model_pattern":   cfg.Files.ModelPattern,
			"vectors_pattern": cfg.Files.VectorsPattern,
		},
		"extract": map[string]any{
			"workers":            cfg.Extract.Workers,
			"min_article_runes":  cfg.Extract.MinArticleRunes,
			"min_sentence_runes": cfg.Extract.MinSentenceRunes,
			"log_every":          cfg.Extract.LogEvery,
		},
		"tokenize": map[string]any{
			"legacy_join": cfg.Tokenize.LegacyJoin,
			"sentences":   cfg.Tokenize.Sentences,
			"log_every":   cfg.Tokenize.LogEvery,
			"mode":        cfg.Tokenize.Mode,
		},
		"train": map[string]any{
			"dim":         cfg.Train.Dim,
			"window":      cfg.Train.Window,
			"min_count":   cfg.Train.MinCount,
			"workers":     cfg.Train.Workers,
			"iter":        cfg.Train.Iter,
			"text_header": cfg.Train.TextHeader,
		},
		"manifest": map[string]any{
			"enabled": cfg.Manifest.Enabled,
			"strict":  cfg.Manifest.Strict,
			"path":    cfg.Manifest.Path,
		},
	}
}
