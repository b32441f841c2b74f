package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/remote"
	"github.com/cloudnav/cloudnav/internal/state"
)

func newListCmd(serverFlag *string) *cobra.Command {
	var category string
	var pinned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible links",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			names := make(map[string]string)
			for _, c := range env.Store.Categories() {
				names[c.ID] = c.Name
			}

			var links []domain.Link
			if pinned {
				links = env.Store.PinnedLinks()
			} else {
				links = env.Store.VisibleLinks(category)
			}
			if len(links) == 0 {
				fmt.Println("No links.")
				return nil
			}

			for _, l := range links {
				pin := " "
				if l.Pinned {
					pin = "*"
				}
				fmt.Printf("%s %-15s [%s] %s  %s\n", pin, l.ID, names[l.CategoryID], l.Title, l.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category id")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "only pinned links")
	return cmd
}

func newAddCmd(serverFlag *string) *cobra.Command {
	var draft state.LinkDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a link to the local dataset (synced when logged in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if draft.Title == "" || draft.URL == "" {
				return fmt.Errorf("--title and --url are required")
			}
			if _, err := url.ParseRequestURI(draft.URL); err != nil {
				return fmt.Errorf("invalid url: %w", err)
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			if draft.CategoryID == "" {
				draft.CategoryID = domain.DefaultCategoryID
			}

			link := env.Store.AddLink(draft)
			env.Store.Flush()

			fmt.Printf("Added %q (id %s)\n", link.Title, link.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "link title")
	cmd.Flags().StringVarP(&draft.URL, "url", "u", "", "link url")
	cmd.Flags().StringVarP(&draft.Description, "desc", "d", "", "description")
	cmd.Flags().StringVarP(&draft.CategoryID, "category", "c", "", "category id")
	cmd.Flags().StringVar(&draft.Icon, "icon", "", "icon name or emoji")
	cmd.Flags().BoolVar(&draft.Pinned, "pin", false, "pin the link")
	return cmd
}

// quickadd goes straight to the gateway's narrow endpoint instead of
// through the local dataset: it is meant for scripts and browser
// integrations where the caller does not hold the full envelope.
func newQuickAddCmd(serverFlag *string) *cobra.Command {
	var payload remote.QuickAddPayload

	cmd := &cobra.Command{
		Use:   "quickadd",
		Short: "Add a link server-side in one request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload.Title == "" || payload.URL == "" {
				return fmt.Errorf("--title and --url are required")
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.Session.Password == "" {
				return fmt.Errorf("not logged in: run `navctl login` first")
			}

			result, err := env.Remote.QuickAdd(cmd.Context(), env.Session.Password, payload)
			if err != nil {
				return err
			}

			fmt.Printf("Added %q to %s (id %s)\n", result.Link.Title, result.CategoryName, result.Link.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&payload.Title, "title", "t", "", "link title")
	cmd.Flags().StringVarP(&payload.URL, "url", "u", "", "link url")
	cmd.Flags().StringVarP(&payload.Description, "desc", "d", "", "description")
	cmd.Flags().StringVarP(&payload.CategoryID, "category", "c", "", "category id or keyword")
	cmd.Flags().StringVar(&payload.Icon, "icon", "", "icon name or emoji")
	return cmd
}

func newEditCmd(serverFlag *string) *cobra.Command {
	var draft state.LinkDraft

	cmd := &cobra.Command{
		Use:   "edit <link-id>",
		Short: "Edit a link; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			var current domain.Link
			found := false
			for _, l := range env.Store.Links() {
				if l.ID == args[0] {
					current = l
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown link %q", args[0])
			}

			next := state.LinkDraft{
				Title:       current.Title,
				URL:         current.URL,
				Description: current.Description,
				Icon:        current.Icon,
				CategoryID:  current.CategoryID,
				Pinned:      current.Pinned,
			}
			if cmd.Flags().Changed("title") {
				next.Title = draft.Title
			}
			if cmd.Flags().Changed("url") {
				next.URL = draft.URL
			}
			if cmd.Flags().Changed("desc") {
				next.Description = draft.Description
			}
			if cmd.Flags().Changed("icon") {
				next.Icon = draft.Icon
			}
			if cmd.Flags().Changed("category") {
				next.CategoryID = draft.CategoryID
			}
			if cmd.Flags().Changed("pin") {
				next.Pinned = draft.Pinned
			}

			if next.Title == "" || next.URL == "" {
				return fmt.Errorf("a link needs a title and a url")
			}
			if _, err := url.ParseRequestURI(next.URL); err != nil {
				return fmt.Errorf("invalid url: %w", err)
			}

			if !env.Store.EditLink(args[0], next) {
				return fmt.Errorf("unknown link %q", args[0])
			}
			env.Store.Flush()

			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "link title")
	cmd.Flags().StringVarP(&draft.URL, "url", "u", "", "link url")
	cmd.Flags().StringVarP(&draft.Description, "desc", "d", "", "description")
	cmd.Flags().StringVarP(&draft.CategoryID, "category", "c", "", "category id")
	cmd.Flags().StringVar(&draft.Icon, "icon", "", "icon name or emoji")
	cmd.Flags().BoolVar(&draft.Pinned, "pin", false, "pin the link")
	return cmd
}

func newMoveCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <category-id> <old-index> <new-index>",
		Short: "Reorder a link inside its category by display index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldIdx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid old index %q", args[1])
			}
			newIdx, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid new index %q", args[2])
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			env.Store.MoveLink(args[0], oldIdx, newIdx)
			env.Store.Flush()

			fmt.Println("Links reordered.")
			return nil
		},
	}
}

func newRemoveCmd(serverFlag *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <link-id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deletion is permanent: re-run with --yes to confirm")
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			env.Store.DeleteLink(args[0])
			env.Store.Flush()

			fmt.Printf("Deleted link %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newPinCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <link-id>",
		Short: "Toggle a link's pinned flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			env.Store.TogglePin(args[0])
			env.Store.Flush()

			fmt.Printf("Toggled pin on %s\n", args[0])
			return nil
		},
	}
}
