// Command quizgen runs the quiz generation pipeline once from the command line
// and writes the resulting manifest as JSON.
//
// Usage:
//
//	quizgen generate --subject Algorithms --unit Sorting --semester 3 --out quiz.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"quiz-forge/internal/bootstrap"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	college    string
	department string
	semester   string
	subject    string
	unit       string
	out        string
}

func (o generateOptions) request() domain.QuizRequest {
	return domain.QuizRequest{
		College:    o.college,
		Department: o.department,
		Semester:   o.semester,
		Subject:    o.subject,
		Unit:       o.unit,
	}
}

// pipelineFactory builds the quiz service for a command run.
type pipelineFactory func(ctx context.Context) (service.QuizService, func() error, error)

func newRootCmd(factory pipelineFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "quizgen",
		Short:         "Generate multiple-choice quizzes from stored course material",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(factory))
	return root
}

func newGenerateCmd(factory pipelineFactory) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a quiz for one unit and print or save the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			if closeFn != nil {
				defer closeFn()
			}

			out := cmd.OutOrStdout()
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return runGenerate(cmd.Context(), svc, opts.request(), out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.college, "college", "", "college folder")
	flags.StringVar(&opts.department, "department", "", "department folder")
	flags.StringVar(&opts.semester, "semester", "", `semester number or "Semester N" folder`)
	flags.StringVar(&opts.subject, "subject", "", "subject folder (required)")
	flags.StringVar(&opts.unit, "unit", "", "unit folder (required)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the manifest to this file instead of stdout")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func runGenerate(ctx context.Context, svc service.QuizService, req domain.QuizRequest, out io.Writer) error {
	manifest, err := svc.GenerateQuiz(ctx, req)
	if err != nil {
		if domainErr, ok := domain.AsDomainError(err); ok {
			return errors.New(domainErr.PublicMessage())
		}
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(manifest)
}

func configuredPipeline(ctx context.Context) (service.QuizService, func() error, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	pipeline, err := bootstrap.NewPipeline(ctx, cfg, logger.Get())
	if err != nil {
		return nil, nil, err
	}
	return pipeline.Service, pipeline.Close, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(configuredPipeline).ExecuteContext(ctx)
	_ = logger.Sync()
	if err != nil {
		logger.Get().Error("quizgen failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
