package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/resume"
	"github.com/spigell/resume-matcher/internal/source"
)

const (
	PromptInspect        = "Inspect a job"
	PromptResultsToFile  = "Dump results to file"
	PromptExit           = "Exit"
	PromptBack           = "back"
	matchResultLabelSize = 60
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptInspect, PromptResultsToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a profile against a set of jobs",
	Example: `  resume-matcher match --input cv.pdf --jobs jobs.yaml
  resume-matcher match --profile profile.json --jobs jobs.yaml --minimum-score 60 --interactive`,
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("profile", "p", "", "canonical profile JSON produced by the parse command")
	matchCmd.Flags().StringArrayP("input", "i", nil, "resume source as [type:]path-or-url, repeatable")
	matchCmd.Flags().String("jobs", "", "YAML file with job definitions")
	matchCmd.Flags().Int("minimum-score", 0, "hide jobs scoring below this value (0-100)")
	matchCmd.Flags().StringP("exclude-file", "e", "", "file with job ids to hide, one per line")
	matchCmd.Flags().Bool("interactive", false, "browse the results in an interactive menu")
	matchCmd.MarkFlagRequired("jobs")
	matchCmd.MarkFlagsMutuallyExclusive("profile", "input")
	matchCmd.MarkFlagsOneRequired("profile", "input")

	viper.BindPFlag("match.minimum-score", matchCmd.Flags().Lookup("minimum-score"))
}

func runMatch(cmd *cobra.Command) {
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

	if config == nil || config.Match == nil {
		logger.Fatal("config is required")
	}

	if config.Match.MinimumScore < 0 || config.Match.MinimumScore > 100 {
		logger.Fatal("minimum score must be between 0 and 100", zap.Int("minimum_score", config.Match.MinimumScore))
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	profile, err := loadProfile(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err))
	}

	jobsFile, _ := cmd.Flags().GetString("jobs")
	jobs, err := matching.LoadJobs(jobsFile)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err))
	}

	logger.Info("scoring jobs", zap.Int("count", len(jobs)))

	results, err := matching.ScoreAll(ctx, profile, jobs, config.Match.Concurrency)
	if err != nil {
		logger.Fatal("scoring jobs", zap.Error(err))
	}

	filters := []matching.Filter{matching.NewMinimumScore(config.Match.MinimumScore)}
	if excludeFile, _ := cmd.Flags().GetString("exclude-file"); excludeFile != "" {
		ids, err := matching.ReadExcludeFile(excludeFile)
		if err != nil {
			logger.Fatal("reading exclude file", zap.Error(err))
		}
		filters = append(filters, matching.NewExcludeJobs(ids))
	}

	results = matching.Rank(matching.RunFilters(logger, results, filters...))

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		if err := writeResults(cmd.OutOrStdout(), results); err != nil {
			logger.Fatal("writing results", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func loadProfile(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (*resume.ParsedResumeData, error) {
	if path, _ := cmd.Flags().GetString("profile"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading profile %q: %w", path, err)
		}
		// Routed through the normalizer so that hand-edited or JSON Resume
		// files are accepted as well.
		svc := newIntake(ctx, config, logger)
		return svc.Import(ctx, source.Envelope{Type: source.TypeJSON, Content: string(data)}), nil
	}

	specs, _ := cmd.Flags().GetStringArray("input")
	return importProfile(ctx, config, specs, logger)
}

func writeResults(w io.Writer, results matching.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func handleAction(action string, logger *zap.Logger, results matching.Results) error {
	switch action {
	case PromptInspect:
		return inspectJobs(logger, results)
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func inspectJobs(logger *zap.Logger, results matching.Results) error {
	items := make([]string, 0, results.Len()+1)
	for _, r := range results {
		items = append(items, resultLabel(r))
	}

	for {
		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		pretty, _ := json.MarshalIndent(results[idx].Match, "", "  ")
		logger.Info(string(pretty),
			zap.String("job_id", results[idx].Job.ID),
			zap.Int("score", results[idx].Match.Score),
		)
	}
}

func resultLabel(r matching.Result) string {
	title := r.Job.Title
	if title == "" {
		title = r.Job.ID
	}
	if len(title) > matchResultLabelSize {
		title = title[:matchResultLabelSize] + "..."
	}
	return fmt.Sprintf("%3d  %s / %s", r.Match.Score, r.Job.ID, strings.TrimSpace(title))
}
