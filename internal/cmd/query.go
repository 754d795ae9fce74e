package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"searchui/internal/domain"
)

var errBlankQuery = errors.New("query must not be blank")

type queryOptions struct {
	json  bool
	limit int
}

func newQueryCmd(flags *globalFlags) *cobra.Command {
	var opts queryOptions
	c := &cobra.Command{
		Use:   "query <text...>",
		Short: "Run one search and print the results",
		Long: `Run one search against the backend and print the results.

The query is lower-cased before it is sent; whitespace is kept as typed.

Examples:
  searchui query machine learning
  searchui query --json "neural networks"
  searchui query --limit 3 golang`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, flags, opts, strings.Join(args, " "))
		},
	}
	c.Flags().BoolVar(&opts.json, "json", false, "output results as JSON")
	c.Flags().IntVarP(&opts.limit, "limit", "n", 0, "maximum number of results to print (0 = all)")
	return c
}

type queryResponse struct {
	Query     string                `json:"query"`
	Results   []domain.SearchResult `json:"results"`
	Total     int                   `json:"total"`
	Truncated bool                  `json:"truncated"`
}

func runQuery(cmd *cobra.Command, flags *globalFlags, opts queryOptions, query string) error {
	if strings.TrimSpace(query) == "" {
		return errBlankQuery
	}
	e, err := setup(flags)
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.client.Search(cmd.Context(), query)
	if err != nil {
		return err
	}
	total := len(results)
	if opts.limit > 0 && opts.limit < len(results) {
		results = results[:opts.limit]
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		return enc.Encode(queryResponse{
			Query:     query,
			Results:   results,
			Total:     total,
			Truncated: len(results) < total,
		})
	}
	writeResults(out, results)
	return nil
}

var (
	cliTitle = lipgloss.NewStyle().Bold(true)
	cliFaint = lipgloss.NewStyle().Faint(true)
)

func writeResults(w io.Writer, results []domain.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found. Try a different search term.")
		return
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, cliTitle.Render(r.Title))
		if r.URL != "" {
			fmt.Fprintln(w, cliFaint.Render(r.URL))
		}
		if r.Description != "" {
			fmt.Fprintln(w, r.Description)
		}
		if len(r.Tags) > 0 {
			fmt.Fprintf(w, "[%s]\n", strings.Join(r.Tags, "] ["))
		}
	}
}
