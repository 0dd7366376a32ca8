package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/resume"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Import one or more resume sources and print the canonical profile as JSON",
	Example: `  resume-matcher parse --input cv.pdf
  resume-matcher parse --input cv.docx --input linkedin:https://www.linkedin.com/in/jane --output profile.json`,
	Run: func(cmd *cobra.Command, _ []string) {
		runParse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringArrayP("input", "i", nil, "resume source as [type:]path-or-url, repeatable (types: pdf, docx, json, text, linkedin, indeed)")
	parseCmd.Flags().StringP("output", "o", "", "write the profile to this file instead of stdout")
	parseCmd.MarkFlagRequired("input")
}

func runParse(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	specs, _ := cmd.Flags().GetStringArray("input")
	profile, err := importProfile(ctx, config, specs, logger)
	if err != nil {
		logger.Fatal("reading inputs", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeProfile(cmd.OutOrStdout(), output, profile); err != nil {
		logger.Fatal("writing the profile", zap.Error(err))
	}

	if output != "" {
		logger.Info("profile written", zap.String("filename", output))
	}
}

func importProfile(ctx context.Context, config *Config, specs []string, logger *zap.Logger) (*resume.ParsedResumeData, error) {
	envs, err := buildEnvelopes(specs)
	if err != nil {
		return nil, err
	}

	svc := newIntake(ctx, config, logger)
	if len(envs) == 1 {
		return svc.Import(ctx, envs[0]), nil
	}

	return svc.ImportAll(ctx, envs)
}

func writeProfile(stdout io.Writer, path string, profile *resume.ParsedResumeData) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
