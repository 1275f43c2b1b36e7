package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/platform"
	"github.com/MrSnakeDoc/cardsmith/internal/urlrule"
)

type linkResult struct {
	MainLink string `json:"mainLink"`
	ShopURL  string `json:"shopUrl,omitempty"`
	Populate bool   `json:"populatesShop"`
}

func newLinkCmd() *cobra.Command {
	var platformName, tag, base string
	cmd := &cobra.Command{
		Use:   "link [--platform <id>] <url>",
		Short: "Prints the affiliate links a scrape of url would produce.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlatform(platformName)
			if err != nil {
				return err
			}
			rec := domain.ScrapedRecord{URL: args[0], PlatformID: id}
			settings := domain.AffiliateSettings{AmazonTag: tag, SunstellaBaseURL: base}
			mainLink, shop, populate := domain.AffiliateLinks(rec, settings)
			return printJSON(cmd.OutOrStdout(), linkResult{MainLink: mainLink, ShopURL: shop, Populate: populate})
		},
	}
	f := cmd.Flags()
	f.StringVar(&platformName, "platform", "", "Platform of the page (amazon, aliexpress, sunstella, other).")
	f.StringVar(&tag, "tag", domain.DefaultAmazonTag, "Amazon associate tag.")
	f.StringVar(&base, "base", domain.DefaultSunstellaBaseURL, "Sunstella affiliate prefix.")
	return cmd
}

// errInvalidLink makes validate exit non-zero after printing the result.
var errInvalidLink = errors.New("link is not valid for the platform")

func newValidateCmd() *cobra.Command {
	var platformName string
	cmd := &cobra.Command{
		Use:   "validate [--platform <id>] <url>",
		Short: "Checks a shop link against the platform's rules.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlatform(platformName)
			if err != nil {
				return err
			}
			res := urlrule.ValidateShopURL(id, args[0])
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.IsValid {
				return errInvalidLink
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&platformName, "platform", "",
		"Platform of the shop slot (amazon, aliexpress, sunstella). other or empty accepts any well-formed link.")
	return cmd
}

// otherPlatform names platform.Other on the command line.
const otherPlatform = "other"

// parsePlatform accepts the known platform ids, plus "other" or an empty
// string for pages outside them.
func parsePlatform(name string) (platform.ID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == otherPlatform {
		return platform.Other, nil
	}
	id := platform.Parse(n)
	if !id.IsKnown() {
		return platform.Other, fmt.Errorf("unknown platform %q", name)
	}
	return id, nil
}
