package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var searchFlags = []books.SearchKind{books.SearchByTitle, books.SearchByAuthor, books.SearchByISBN}

func searchCatalogCmd(cmd *cobra.Command, _ []string) error {
	var kind books.SearchKind
	var query string
	for _, k := range searchFlags {
		if cmd.Flags().Changed(string(k)) {
			kind = k
			query, _ = cmd.Flags().GetString(string(k))
		}
	}

	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	library, err := env.libraryService()
	if err != nil {
		return err
	}

	found, err := library.Search(cmd.Context(), kind, query)
	if errors.Is(err, books.ErrNoResults) {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No results")
		return err
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHORS\tISBN\tPUBLISHED")
	for _, b := range found {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			b.UpstreamID, b.Title, b.AuthorList(), lo.CoalesceOrEmpty(b.ISBN13, b.ISBN10), b.PublishedDate)
	}
	return w.Flush()
}

func initCatalogCommands(rootCmd *cobra.Command) {
	var catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Query the Google Books catalog",
	}

	var searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Search volumes by title, author or ISBN",
		Args:  cobra.NoArgs,
		RunE:  searchCatalogCmd,
	}
	searchCmd.Flags().String("title", "", "Match the volume title")
	searchCmd.Flags().String("author", "", "Match an author name")
	searchCmd.Flags().String("isbn", "", "Match an ISBN-10 or ISBN-13")
	searchCmd.MarkFlagsOneRequired("title", "author", "isbn")
	searchCmd.MarkFlagsMutuallyExclusive("title", "author", "isbn")
	catalogCmd.AddCommand(searchCmd)

	rootCmd.AddCommand(catalogCmd)
}
