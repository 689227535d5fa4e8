package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/revtrend/pkg/revtrend/classify"
	"github.com/cognicore/revtrend/pkg/revtrend/config"
	"github.com/cognicore/revtrend/pkg/revtrend/generate"
	"github.com/cognicore/revtrend/pkg/revtrend/report"
)

// trendFlags override the run settings for the trends stage.
type trendFlags struct {
	output       string
	evidence     string
	scope        string
	generator    string
	sampling     bool
	showEvidence bool
}

func (f *trendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report file (default stdout)")
	cmd.Flags().StringVar(&f.evidence, "evidence", "", "evidence strategy: none, exact or semantic")
	cmd.Flags().StringVar(&f.scope, "scope", "", "evidence index scope: corpus or partition")
	cmd.Flags().StringVar(&f.generator, "generator", "", "summary backend: lexrank or llm")
	cmd.Flags().BoolVar(&f.sampling, "sampling", false, "sample instead of greedy decoding")
	cmd.Flags().BoolVar(&f.showEvidence, "show-evidence", false, "print the first passage after each trend")
}

func (f *trendFlags) apply(s *config.Settings) {
	if f.evidence != "" {
		s.Evidence.Strategy = f.evidence
	}
	if f.scope != "" {
		s.Evidence.Scope = f.scope
	}
	if f.generator != "" {
		s.Synthesis.Generator = f.generator
	}
	if f.sampling {
		s.Synthesis.Decoding = generate.SamplingDecoding()
	}
	if f.showEvidence {
		s.Report.ShowEvidence = true
	}
}

func newTrendsCmd(a *app) *cobra.Command {
	var (
		input string
		flags trendFlags
	)
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Extract trends and summaries from classified reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			flags.apply(&a.settings)
			return a.trends(cmd, input, flags.output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "classified review file (text, label)")
	flags.register(cmd)
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var (
		files classify.Files
		flags trendFlags
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify raw reviews, then extract trends and summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if files.Raw == "" {
				return fmt.Errorf("--input is required")
			}
			if files.Classified == "" {
				files.Classified = classifiedPath(files.Raw)
			}
			flags.apply(&a.settings)
			if err := a.classify(cmd, files); err != nil {
				return err
			}
			return a.trends(cmd, files.Classified, flags.output)
		},
	}
	cmd.Flags().StringVarP(&files.Raw, "input", "i", "", "raw review file (7 columns)")
	cmd.Flags().StringVar(&files.Labelled, "labelled", "", "labelled output (8 columns)")
	cmd.Flags().StringVar(&files.Classified, "classified", "", "classified output (text, label)")
	flags.register(cmd)
	return cmd
}

func (a *app) trends(cmd *cobra.Command, input, out string) error {
	ctx := cmd.Context()
	e, err := a.engine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.RunFile(ctx, input)
	if err != nil {
		return err
	}

	w, closeOut, err := output(cmd, out)
	if err != nil {
		return err
	}
	if err := report.Render(w, res.Report, report.Options{
		Profile:      e.Profile(),
		ShowEvidence: a.settings.Report.ShowEvidence,
	}); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if res.RunID != "" {
		a.logger.Info("run archived", "run", res.RunID, "db", a.dbPath)
	}
	return nil
}
