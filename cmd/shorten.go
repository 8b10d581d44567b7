package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"appsuite-be/internal/repository"
)

var (
	shortenURLFlag  string
	shortenUserFlag string
)

var ShortenCmd = &cobra.Command{
	Use:   "shorten",
	Short: "Creates (or returns the existing) short URL for a long URL.",
	Long: `Shortens a URL directly against the configured store, anonymously or for an existing user.

Example:
  appsuite shorten --url="example.com/some/long/path" --user=alice1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var owner *string
		if shortenUserFlag != "" {
			user, err := a.userRepo.FindByUsername(ctx, shortenUserFlag)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("user %q does not exist", shortenUserFlag)
			}
			if err != nil {
				return err
			}
			owner = &user.ID
		}

		url, created, err := a.urls.GetOrCreate(ctx, owner, shortenURLFlag)
		if err != nil {
			return err
		}

		status := "already shortened"
		if created {
			status = "created"
		}
		fmt.Printf("Short URL %s:\n", status)
		fmt.Printf("Code: %s\n", url.ShortCode)
		fmt.Printf("URL: %s/s/%s\n", Cfg.BaseURL, url.ShortCode)
		return nil
	},
}

func init() {
	ShortenCmd.Flags().StringVar(&shortenURLFlag, "url", "", "long URL to shorten")
	ShortenCmd.Flags().StringVar(&shortenUserFlag, "user", "", "username that will own the mapping")
	_ = ShortenCmd.MarkFlagRequired("url")

	RootCmd.AddCommand(ShortenCmd)
}
