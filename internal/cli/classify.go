package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/listingcheck/backend/internal/domain"
	"github.com/listingcheck/backend/internal/usecase"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// NewRootCommand builds the listingcheck command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "listingcheck",
		Short:         "Classify cross-platform property listing matches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newClassifyCommand())
	return root
}

func newClassifyCommand() *cobra.Command {
	var (
		file   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify match candidates read from a YAML or JSON file",
		Example: `  listingcheck classify --file matches.yaml
  listingcheck classify --file matches.json --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("unknown output format %q (want %s or %s)", output, outputTable, outputJSON)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read candidates: %w", err)
			}

			candidates, err := ParseCandidates(data)
			if err != nil {
				return err
			}

			classifier := usecase.NewListingStatusClassifier()
			verdicts := classifier.ClassifyAll(candidates)

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), candidates, verdicts)
			}
			return writeTable(cmd.OutOrStdout(), candidates, verdicts)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a YAML or JSON file of candidates")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// ParseCandidates accepts either a bare list of candidates or a document with
// a top-level candidates key. JSON is valid YAML, so both formats decode here.
func ParseCandidates(data []byte) ([]domain.MatchCandidate, error) {
	var shape interface{}
	if err := yaml.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}

	switch shape.(type) {
	case nil:
		return []domain.MatchCandidate{}, nil
	case []interface{}:
		var list []domain.MatchCandidate
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse candidates: %w", err)
		}
		return list, nil
	case map[string]interface{}:
		var doc struct {
			Candidates []domain.MatchCandidate `yaml:"candidates"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse candidates: %w", err)
		}
		return doc.Candidates, nil
	default:
		return nil, fmt.Errorf("parse candidates: expected a list or a candidates key, got %T", shape)
	}
}

func writeJSON(w io.Writer, candidates []domain.MatchCandidate, verdicts []domain.ClassificationVerdict) error {
	type row struct {
		ListingURL string                       `json:"listing_url"`
		Verdict    domain.ClassificationVerdict `json:"verdict"`
	}

	rows := make([]row, len(candidates))
	for i := range candidates {
		rows[i] = row{ListingURL: candidates[i].ListingURL, Verdict: verdicts[i]}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeTable(w io.Writer, candidates []domain.MatchCandidate, verdicts []domain.ClassificationVerdict) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tACTIVE\tURL\tREASON")
	for i, c := range candidates {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\t%s\n", i+1, verdicts[i].Status, verdicts[i].IsActive(), c.ListingURL, verdicts[i].Reason)
	}
	return tw.Flush()
}
