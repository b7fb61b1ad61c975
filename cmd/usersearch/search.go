package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/sakif/usersearch/internal/apiclient"
	"github.com/sakif/usersearch/internal/config"
	"github.com/sakif/usersearch/internal/controller"
	"github.com/sakif/usersearch/internal/notify"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	loginStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))
)

// directFlag lets the terminal commands skip the API and call GitHub in-process.
func directFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "direct",
		Usage: "Call GitHub directly instead of going through the API",
	}
}

// quietFlag silences the status notifications written to stderr.
func quietFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Do not print status notifications",
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search users from the terminal",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
			directFlag(),
			quietFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			term := strings.Join(c.Args().Slice(), " ")

			cfg, logger, err := setup(c, os.Stderr)
			if err != nil {
				return err
			}

			ctrl := newController(cfg, c.Bool("direct"), newSink(c.Bool("quiet"), os.Stderr), logger)
			state, err := ctrl.RunSearch(ctx, term, c.Int("page"))
			if err != nil {
				return err
			}

			renderSearch(os.Stdout, state)
			return nil
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "Show one user's details",
		ArgsUsage: "<login>",
		Flags:     []cli.Flag{directFlag(), quietFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c, os.Stderr)
			if err != nil {
				return err
			}

			ctrl := newController(cfg, c.Bool("direct"), newSink(c.Bool("quiet"), os.Stderr), logger)
			state, err := ctrl.UserInfo(ctx, c.Args().First())
			if err != nil {
				return err
			}

			renderUser(os.Stdout, state)
			return nil
		},
	}
}

// newSink picks where controller notifications go.
func newSink(quiet bool, w io.Writer) notify.Sink {
	if quiet {
		return notify.Discard{}
	}
	return notify.NewTerminal(w)
}

func newController(cfg config.Config, direct bool, sink notify.Sink, logger *slog.Logger) *controller.SearchController {
	var backend controller.Backend
	if direct {
		backend = newSearchService(cfg, logger)
	} else {
		backend = apiclient.New(cfg.App.APIURL, cfg.Upstream.Timeout.Duration, logger)
	}
	return controller.New(backend, sink, logger,
		controller.WithPageSize(cfg.App.PageSize))
}

func renderSearch(w io.Writer, state *controller.SearchViewState) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%q: %d users, page %d", state.Term, state.TotalResults, state.CurrentPage)))

	if state.Error != "" {
		fmt.Fprintln(w, metaStyle.Render(state.Elapsed))
		return
	}

	for _, u := range state.Items {
		fmt.Fprintf(w, "%s %s\n", loginStyle.Render(u.Login), urlStyle.Render(u.HTMLURL))
	}

	p := state.Pagination
	var nav []string
	for _, link := range []struct{ name, page string }{
		{"first", p.First}, {"prev", p.Prev}, {"next", p.Next}, {"last", p.Last},
	} {
		if link.page != "" {
			nav = append(nav, link.name+"="+link.page)
		}
	}
	if len(nav) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, metaStyle.Render(strings.Join(nav, "  ")))
	}
	fmt.Fprintln(w, metaStyle.Render(state.Elapsed))
}

func renderUser(w io.Writer, state *controller.UserInfoViewState) {
	if state.User == nil {
		fmt.Fprintln(w, metaStyle.Render(state.Elapsed))
		return
	}

	u := state.User
	fmt.Fprintln(w, titleStyle.Render(u.Login))
	for _, row := range []struct{ label, value string }{
		{"Name", u.Name},
		{"Company", u.Company},
		{"Location", u.Location},
		{"Email", u.Email},
		{"Bio", u.Bio},
	} {
		if row.value != "" {
			fmt.Fprintf(w, "%-9s %s\n", row.label, row.value)
		}
	}
	fmt.Fprintf(w, "%-9s %d\n", "Repos", u.PublicRepos)
	fmt.Fprintf(w, "%-9s %d / %d\n", "Follow", u.Followers, u.Following)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "%-9s %s\n", "Joined", u.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(w, urlStyle.Render(u.HTMLURL))
	fmt.Fprintln(w, metaStyle.Render(state.Elapsed))
}
