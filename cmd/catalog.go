package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examtrainer/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the question catalog",
}

var catalogCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd.Context(), resolveCatalogDir(cmd))
		if err != nil {
			return err
		}
		view, err := cat.View(catalog.DefaultVariant)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-28s  %9s  %s\n", "ID", "Name", "Questions", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, c := range view.Categories() {
			fmt.Fprintf(out, "%-16s  %-28s  %9d  %s\n", c.ID, c.Name, view.CategoryQuestionCount(c.ID), c.Description)
		}
		fmt.Fprintf(out, "\n%d questions per variant", cat.TotalQuestions())
		if v := cat.FormatVersion(); v != "" {
			fmt.Fprintf(out, ", format %s", v)
		}
		fmt.Fprintln(out)
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find questions by question or answer text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, _ := cmd.Flags().GetString("variant")
		query := strings.Join(args, " ")
		if len([]rune(strings.TrimSpace(query))) < catalog.MinSearchQuery {
			return fmt.Errorf("search text must be at least %d characters", catalog.MinSearchQuery)
		}

		cat, err := loadCatalog(cmd.Context(), resolveCatalogDir(cmd))
		if err != nil {
			return err
		}
		var variants []catalog.Variant
		if variant != "both" {
			v := catalog.Variant(variant)
			if !v.Valid() {
				return fmt.Errorf("unknown variant %q (want bzf, bzf-e or both)", variant)
			}
			variants = []catalog.Variant{v}
		}

		out := cmd.OutOrStdout()
		results := cat.Search(query, variants...)
		if len(results) == 0 {
			fmt.Fprintln(out, "No matches.")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "[%s] #%d %s\n", r.Variant, r.Question.Number, r.Question.Text)
			fmt.Fprintf(out, "    answer: %s\n", r.Question.Choice(catalog.CorrectKey))
		}
		if len(results) == catalog.MaxSearchResults {
			fmt.Fprintf(out, "\nShowing the first %d matches.\n", catalog.MaxSearchResults)
		}
		return nil
	},
}

func init() {
	catalogSearchCmd.Flags().String("variant", "both", "Question set to search: bzf, bzf-e or both")

	catalogCmd.AddCommand(catalogCategoriesCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
}
