package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
	"github.com/notelab/notelab-cli/internal/github"
	"github.com/notelab/notelab-cli/internal/output"
)

var (
	// errInvalidRepoArg is returned when a repository argument is not owner/name.
	errInvalidRepoArg = errors.New("repository must be in owner/name form")
	errConnectFailed  = errors.New("github connect failed")
	errBrowserFailed  = errors.New("github request failed")
)

// createGitHubCmd groups the GitHub browsing commands.
func createGitHubCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "github",
		Short:   "Browse GitHub repositories through the backend connection",
		Aliases: []string{"gh"},
	}

	cmd.AddCommand(createGitHubStatusCmd(flags))
	cmd.AddCommand(createGitHubConnectCmd(flags))
	cmd.AddCommand(createGitHubDisconnectCmd(flags))
	cmd.AddCommand(createGitHubReposCmd(flags))
	cmd.AddCommand(createGitHubTreeCmd(flags))
	cmd.AddCommand(createGitHubCatCmd(flags))
	cmd.AddCommand(createGitHubReadmeCmd(flags))
	cmd.AddCommand(createGitHubSearchCmd(flags))
	cmd.AddCommand(createGitHubAnalyzeCmd(flags))
	cmd.AddCommand(createGitHubIssueCmd(flags))

	return cmd
}

func createGitHubStatusCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the GitHub connection status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			conn, err := a.githubService().Status(cmd.Context())
			if err != nil {
				return err
			}

			if !conn.Connected {
				output.Warn("GitHub account is not connected")
				return nil
			}

			output.Successf("Connected as %s", conn.Username)
			if conn.Email != "" {
				output.Plainf("Email: %s", conn.Email)
			}
			return nil
		},
	}
}

func createGitHubConnectCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <token>",
		Short: "Connect a GitHub account with a personal access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			browser := a.browser()
			if !browser.ConnectWithToken(cmd.Context(), args[0]) {
				return fmt.Errorf("%w: %s", errConnectFailed, browser.State().Error)
			}

			state := browser.State()
			output.Successf("Connected as %s", state.Connection.Username)
			output.Plainf("%d repositories accessible", len(state.Repos))
			return nil
		},
	}
}

func createGitHubDisconnectCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the GitHub account and mark imported sources stale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			browser := a.browser()
			browser.Disconnect(cmd.Context())

			if msg := browser.State().Error; msg != "" {
				output.Warnf("Backend disconnect reported: %s", msg)
			}
			output.Success("GitHub account disconnected")
			return nil
		},
	}
}

func createGitHubReposCmd(flags *Flags) *cobra.Command {
	var repoType, sort string

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List accessible repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if repoType == "" {
				repoType = a.cfg.GitHub.RepoType
			}
			if sort == "" {
				sort = a.cfg.GitHub.RepoSort
			}

			browser := a.browser()
			browser.CheckStatus(cmd.Context())
			if !browser.State().Connected {
				return appErrors.ErrNotConnected
			}

			browser.LoadRepos(cmd.Context(), repoType, sort)
			state := browser.State()
			if state.Error != "" {
				return fmt.Errorf("%w: %s", errBrowserFailed, state.Error)
			}

			for _, repo := range state.Repos {
				line := repo.FullName
				if repo.Private {
					line += " (private)"
				}
				if repo.Language != "" {
					line += "  " + repo.Language
				}
				line += fmt.Sprintf("  ★%d", repo.StarsCount)
				output.Plain(line)
			}
			output.Infof("%d repositories", len(state.Repos))
			return nil
		},
	}

	cmd.Flags().StringVar(&repoType, "type", "", "Repository filter (all, owner, member)")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort order (updated, created, pushed, full_name)")

	return cmd
}

func createGitHubTreeCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <owner/repo> [path]",
		Short: "List a directory of a repository's tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = strings.Trim(args[1], "/")
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			browser := a.browser()
			browser.SelectRepo(cmd.Context(), github.Repo{Owner: owner, Name: name})
			if msg := browser.State().Error; msg != "" {
				return fmt.Errorf("%w: %s", errBrowserFailed, msg)
			}

			items := browser.ItemsAtPath(path)
			for _, item := range items {
				if item.IsDirectory {
					output.Plain(item.Path + "/")
				} else {
					output.Plainf("%s  (%d bytes)", item.Path, item.Size)
				}
			}
			output.Infof("%d entries", len(items))
			return nil
		},
	}
}

func createGitHubCatCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <owner/repo> <path>",
		Short: "Print a file from a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			file, err := a.githubService().File(cmd.Context(), owner, name, args[1])
			if err != nil {
				return err
			}

			output.Plain(file.Content)
			return nil
		},
	}
}

func createGitHubReadmeCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "readme <owner/repo>",
		Short: "Print a repository's readme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			content, err := a.githubService().Readme(cmd.Context(), owner, name)
			if err != nil {
				return err
			}

			output.Plain(content)
			return nil
		},
	}
}

func createGitHubSearchCmd(flags *Flags) *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search code across accessible repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var owner, name string
			if repo != "" {
				var err error
				if owner, name, err = splitRepo(repo); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.githubService().SearchCode(cmd.Context(), args[0], owner, name)
			if err != nil {
				return err
			}

			for _, result := range results {
				output.Plainf("%s: %s", result.Repository, result.Path)
				if result.Fragment != "" {
					output.Plain("    " + result.Fragment)
				}
			}
			output.Infof("%d results", len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "Scope the search to one repository (owner/name)")

	return cmd
}

func createGitHubAnalyzeCmd(flags *Flags) *cobra.Command {
	var focus string
	var includeFiles []string

	cmd := &cobra.Command{
		Use:   "analyze <owner/repo>",
		Short: "Request an AI analysis of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			analysis, err := a.githubService().Analyze(cmd.Context(), owner, name, github.AnalyzeRequest{
				Focus:        focus,
				IncludeFiles: includeFiles,
			})
			if err != nil {
				return err
			}

			if !analysis.AIAnalysisAvailable {
				output.Warn("AI analysis is currently unavailable; showing partial results")
			}
			if analysis.Summary != "" {
				output.Plain(analysis.Summary)
			}
			for _, suggestion := range analysis.Suggestions {
				output.Plain("  - " + suggestion)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "Analysis focus (e.g. security, performance)")
	cmd.Flags().StringSliceVar(&includeFiles, "include", nil, "Limit the analysis to these files")

	return cmd
}

func createGitHubIssueCmd(flags *Flags) *cobra.Command {
	var title, body string
	var labels []string

	cmd := &cobra.Command{
		Use:   "issue <owner/repo>",
		Short: "Open an issue on a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			issue, err := a.githubService().CreateIssue(cmd.Context(), owner, name, github.IssueRequest{
				Title:  title,
				Body:   body,
				Labels: labels,
			})
			if err != nil {
				return err
			}

			output.Successf("Issue #%d created: %s", issue.Number, issue.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Issue title (required)")
	cmd.Flags().StringVar(&body, "body", "", "Issue body")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Labels to apply")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// splitRepo parses an owner/name argument.
func splitRepo(arg string) (owner, name string, err error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", errInvalidRepoArg, arg)
	}
	return parts[0], parts[1], nil
}
