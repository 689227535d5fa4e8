package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/revtrend/pkg/revtrend"
	"github.com/cognicore/revtrend/pkg/revtrend/classify"
	"github.com/cognicore/revtrend/pkg/revtrend/config"
)

func newClassifyCmd(a *app) *cobra.Command {
	var (
		files   classify.Files
		backend string
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Label raw reviews with a sentiment",
		Long: `Reads the 7-column raw review file and writes the 8-column labelled file
and the 2-column (text, label) file used by the trends command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if files.Raw == "" {
				return fmt.Errorf("--input is required")
			}
			if files.Classified == "" {
				files.Classified = classifiedPath(files.Raw)
			}
			if backend != "" {
				a.settings.Models.Classifier.Backend = backend
			}
			return a.classify(cmd, files)
		},
	}
	cmd.Flags().StringVarP(&files.Raw, "input", "i", "", "raw review file (7 columns)")
	cmd.Flags().StringVar(&files.Labelled, "labelled", "", "labelled output (8 columns)")
	cmd.Flags().StringVarP(&files.Classified, "output", "o", "", "classified output (text, label)")
	cmd.Flags().StringVar(&backend, "classifier", "", "classifier backend: "+config.ClassifierHTTP+" or "+config.ClassifierPolarity)
	return cmd
}

func (a *app) classify(cmd *cobra.Command, files classify.Files) error {
	c, err := revtrend.NewClassifier(a.settings)
	if err != nil {
		return err
	}
	stats, err := classify.ClassifyFile(cmd.Context(), c, files, a.settings.Parallel, a.logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "classified %d/%d reviews into %s\n", stats.Classified, stats.Input, files.Classified)
	return nil
}

// classifiedPath derives the classified file name from the raw one.
func classifiedPath(raw string) string {
	if base, ok := strings.CutSuffix(raw, ".tsv"); ok {
		return base + ".classified.tsv"
	}
	return raw + ".classified.tsv"
}
