package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appErrors "github.com/notelab/notelab-cli/internal/errors"
	"github.com/notelab/notelab-cli/internal/notebook"
	"github.com/notelab/notelab-cli/internal/output"
)

// createNotebooksCmd groups notebook and source management.
func createNotebooksCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notebooks",
		Short:   "Manage notebooks and their sources",
		Aliases: []string{"nb"},
	}

	cmd.AddCommand(createNotebooksListCmd(flags))
	cmd.AddCommand(createNotebooksCreateCmd(flags))
	cmd.AddCommand(createNotebooksDeleteCmd(flags))
	cmd.AddCommand(createNotebooksShowCmd(flags))
	cmd.AddCommand(createSourceAddCmd(flags))
	cmd.AddCommand(createSourceRemoveCmd(flags))
	cmd.AddCommand(createSourceImportCmd(flags))
	cmd.AddCommand(createSourceDiffCmd(flags))

	return cmd
}

func createNotebooksListCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			notebooks, err := a.notebooks().List(cmd.Context())
			if err != nil {
				return err
			}

			for _, nb := range notebooks {
				output.Plainf("%s  %s  (%d sources)", nb.ID, nb.Title, nb.SourceCount)
			}
			output.Infof("%d notebooks", len(notebooks))
			return nil
		},
	}
}

func createNotebooksCreateCmd(flags *Flags) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			nb, err := a.notebooks().Create(cmd.Context(), notebook.CreateNotebookRequest{
				Title:       title,
				Description: description,
			})
			if err != nil {
				return err
			}

			output.Successf("Notebook %s created: %s", nb.ID, nb.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Notebook title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Notebook description")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func createNotebooksDeleteCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <notebook-id>",
		Short: "Delete a notebook and all its sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.notebooks().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			output.Successf("Notebook %s deleted", args[0])
			return nil
		},
	}
}

func createNotebooksShowCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <notebook-id>",
		Short: "Show a notebook and its sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.notebooks()
			nb, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			output.Plainf("%s  %s", nb.ID, nb.Title)
			if nb.Description != "" {
				output.Plain(nb.Description)
			}

			sources, err := svc.Sources(cmd.Context(), nb.ID)
			if err != nil {
				return err
			}

			for _, src := range sources {
				line := fmt.Sprintf("  %s  [%s]  %s", src.ID, src.Type, src.Title)
				if src.Stale {
					line += "  (stale)"
				}
				output.Plain(line)
			}
			output.Infof("%d sources", len(sources))
			return nil
		},
	}
}

func createSourceAddCmd(flags *Flags) *cobra.Command {
	var title, srcType, content, file, sourceURL string

	cmd := &cobra.Command{
		Use:   "add-source <notebook-id>",
		Short: "Attach a source to a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				data, err := os.ReadFile(file) //nolint:gosec // user-supplied path is the point
				if err != nil {
					return fmt.Errorf("failed to read source file: %w", err)
				}
				content = string(data)
				if title == "" {
					title = file
				}
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			src, err := a.notebooks().AddSource(cmd.Context(), args[0], notebook.AddSourceRequest{
				Title:   title,
				Type:    srcType,
				Content: content,
				URL:     sourceURL,
			})
			if err != nil {
				return err
			}

			output.Successf("Source %s attached", src.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Source title")
	cmd.Flags().StringVar(&srcType, "type", notebook.SourceTypeText, "Source type (text, url, github)")
	cmd.Flags().StringVar(&content, "content", "", "Inline source content")
	cmd.Flags().StringVar(&file, "file", "", "Read source content from a local file")
	cmd.Flags().StringVar(&sourceURL, "url", "", "Source URL (for url sources)")

	return cmd
}

func createSourceRemoveCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-source <notebook-id> <source-id>",
		Short: "Detach a source from a notebook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.notebooks().DeleteSource(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			output.Successf("Source %s removed", args[1])
			return nil
		},
	}
}

func createSourceImportCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <notebook-id> <owner/repo> <path>",
		Short: "Import a GitHub file as a notebook source",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[1])
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			file, err := a.githubService().File(cmd.Context(), owner, name, args[2])
			if err != nil {
				return err
			}

			src, err := a.notebooks().ImportGitHubFile(cmd.Context(), args[0], args[1], file.Path, file.Content)
			if err != nil {
				return err
			}

			output.Successf("Imported %s as source %s", file.Path, src.ID)
			return nil
		},
	}
}

func createSourceDiffCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <notebook-id> <source-id> <local-file>",
		Short: "Diff a source against a local file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[2]) //nolint:gosec // user-supplied path is the point
			if err != nil {
				return fmt.Errorf("failed to read local file: %w", err)
			}

			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			sources, err := a.notebooks().Sources(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, src := range sources {
				if src.ID != args[1] {
					continue
				}
				diff, err := notebook.DiffSource(src, string(data))
				if err != nil {
					return err
				}
				if diff == "" {
					output.Info("Contents are identical")
				} else {
					output.Plain(diff)
				}
				return nil
			}

			return fmt.Errorf("%w: %s", appErrors.ErrSourceNotFound, args[1])
		},
	}
}

// createChatCmd sends a notebook-scoped chat message.
func createChatCmd(flags *Flags) *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "chat <notebook-id> <message>",
		Short: "Chat with a notebook's sources",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := a.notebooks()

			if stream {
				_, err := svc.ChatStream(cmd.Context(), args[0], args[1], func(delta string) {
					fmt.Fprint(cmd.OutOrStdout(), delta)
				})
				fmt.Fprintln(cmd.OutOrStdout())
				return err
			}

			reply, err := svc.Chat(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			output.Plain(reply)
			return nil
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "Stream the reply as it is generated")

	return cmd
}
