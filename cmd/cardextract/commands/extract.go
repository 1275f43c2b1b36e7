package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/extract"
	"github.com/MrSnakeDoc/cardsmith/internal/render"
	"github.com/MrSnakeDoc/cardsmith/internal/utils"
)

type extractOptions struct {
	pageURL string
	tag     string
	base    string
	card    bool
	html    bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract --url <page url> [--card | --html] [file | -]",
		Short: "Extracts a product record from a saved HTML page.",
		Long: "Reads the page from the file argument, or stdin when it is \"-\" or missing, " +
			"and prints the dispatch result. --card merges the record into an empty card " +
			"and --html renders that card.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			return runExtract(cmd.InOrStdin(), cmd.OutOrStdout(), src, opts, root)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.pageURL, "url", "", "URL the page was saved from; selects the extractor.")
	f.StringVar(&opts.tag, "tag", domain.DefaultAmazonTag, "Amazon associate tag used with --card.")
	f.StringVar(&opts.base, "base", domain.DefaultSunstellaBaseURL, "Sunstella affiliate prefix used with --card.")
	f.BoolVar(&opts.card, "card", false, "Print the merged card instead of the record.")
	f.BoolVar(&opts.html, "html", false, "Print the rendered card HTML.")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runExtract(stdin io.Reader, out io.Writer, src string, opts *extractOptions, root *rootOptions) error {
	in := stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("open page: %w", err)
		}
		defer utils.Close(f)
		in = f
	}

	doc, err := extract.Parse(in)
	if err != nil {
		return err
	}

	res := extract.NewDispatcher(nil, root.logger()).Dispatch(doc, opts.pageURL)
	if !opts.card && !opts.html {
		return printJSON(out, res)
	}
	if !res.Success {
		return errors.New(res.Error)
	}

	settings := domain.AffiliateSettings{AmazonTag: opts.tag, SunstellaBaseURL: opts.base}
	draft := domain.Merge(domain.NewCardDraft(), *res.Data, settings)
	if !opts.html {
		return printJSON(out, draft)
	}

	html, err := render.CardHTML(draft)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, html)
	return err
}
