package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitstat-cli/gitstat/internal/github"
	"github.com/gitstat-cli/gitstat/internal/render"
)

type Deps struct {
	FetchUser     func(ctx context.Context, login, token string) (github.User, error)
	FetchCalendar func(ctx context.Context, login, token string, from, to time.Time) (github.Calendar, error)
	Probe         func() (width int, color bool)
	Now           func() time.Time
	Stdout        io.Writer
	Stderr        io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		FetchUser:     github.FetchUser,
		FetchCalendar: github.FetchUserContributionCalendar,
		Probe:         render.ProbeTerminal,
		Now:           time.Now,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
	}
}

func NewRootCmd(deps Deps) *cobra.Command {
	const defaultDays = 365
	var token string
	var days int

	c := &cobra.Command{
		Use:          "gitstat <username>",
		Short:        "Display a GitHub user's contribution calendar in the terminal",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), deps, args[0], resolveToken(token), days)
			if err != nil && github.IsAuthError(err) {
				fmt.Fprintln(deps.Stderr, "hint: pass --token or set the GITHUB_TOKEN environment variable")
				fmt.Fprintln(deps.Stderr, "      create one at https://github.com/settings/tokens (read:user scope)")
			}
			return err
		},
	}

	c.Flags().StringVarP(&token, "token", "t", "", "GitHub access token (defaults to GITHUB_TOKEN)")
	c.Flags().IntVarP(&days, "days", "d", defaultDays, "trailing window of days to display")

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}

// resolveToken applies credential precedence: the flag wins over GITHUB_TOKEN,
// which wins over GH_TOKEN. An empty result means the go-gh client's own
// credential discovery (gh auth login) gets a chance.
func resolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}
