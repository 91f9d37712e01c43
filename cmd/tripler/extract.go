package main

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/siherrmann/tripler"
	"github.com/siherrmann/tripler/core/router"
	"github.com/siherrmann/tripler/helper"
	"github.com/siherrmann/tripler/model"
	"github.com/spf13/cobra"
)

// maxLineSize bounds a single input text
const maxLineSize = 1024 * 1024

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract triples from one text per line",
	Long: `Extract triples from every non-empty line of a file, or of stdin when no
file or "-" is given. One JSON object is written per line:

  {"index": 0, "text": "...", "triples": [...], "error": "..."}

Statistics and a cost estimate are logged when all lines are processed.

Examples:
  tripler extract abstracts.txt
  cat abstracts.txt | tripler extract --provider anthropic --workers 8
  tripler extract --ner --estimate 10000 abstracts.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		ner, _ := cmd.Flags().GetBool("ner")
		estimate, _ := cmd.Flags().GetInt("estimate")

		texts, err := readTexts(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		config, err := extractorConfig()
		if err != nil {
			return err
		}

		t, err := tripler.NewTriplerWithLogger(config, nil, logger)
		if err != nil {
			return err
		}
		if ner {
			if err := t.UseDefaultEntityRecognizer(); err != nil {
				return err
			}
		}

		results := t.ExtractBatch(cmd.Context(), texts, workers)
		if err := writeResults(cmd.OutOrStdout(), results); err != nil {
			return helper.NewError("write results", err)
		}

		report := t.Statistics()
		logger.Info("Extraction finished",
			slog.Any("statistics", report),
			slog.Any("diagnostics", t.Diagnostics()),
			slog.Int("estimate_extractions", estimate),
			slog.Float64("estimated_cost_usd", t.EstimateCost(estimate)),
		)

		return nil
	},
}

func init() {
	extractCmd.Flags().Int("workers", router.DefaultBatchWorkers, "Number of concurrent extractions")
	extractCmd.Flags().Bool("ner", false, "Boost candidates with the default NER model (downloads it on first use)")
	extractCmd.Flags().Int("estimate", 1000, "Number of extractions for the cost estimate")
}

// readTexts reads the non-empty lines of the file argument or of stdin
func readTexts(args []string, stdin io.Reader) ([]string, error) {
	in := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, helper.NewError("open input", err)
		}
		defer f.Close()
		in = f
	}

	var texts []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, helper.NewError("read input", err)
	}

	return texts, nil
}

// resultLine is the JSON line written per input text
type resultLine struct {
	Index   int            `json:"index"`
	Text    string         `json:"text"`
	Triples []model.Triple `json:"triples"`
	Error   string         `json:"error,omitempty"`
}

func writeResults(out io.Writer, results []router.BatchResult) error {
	encoder := json.NewEncoder(out)
	for _, result := range results {
		line := resultLine{
			Index:   result.Index,
			Text:    result.Text,
			Triples: result.Triples,
		}
		if result.Err != nil {
			line.Error = result.Err.Error()
		}
		if err := encoder.Encode(line); err != nil {
			return err
		}
	}
	return nil
}
