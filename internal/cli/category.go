package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cloudnav/cloudnav/internal/domain"
)

func newCategoryCmd(serverFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(
		newCategoryListCmd(serverFlag),
		newCategoryAddCmd(serverFlag),
		newCategoryRemoveCmd(serverFlag),
		newCategoryMergeCmd(serverFlag),
		newCategoryMoveCmd(serverFlag),
	)
	return cmd
}

func newCategoryListCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			counts := make(map[string]int)
			for _, l := range env.Store.Links() {
				counts[l.CategoryID]++
			}

			for i, c := range env.Store.Categories() {
				lock := ""
				if env.Store.Locked(c.ID) {
					lock = " (locked)"
				}
				// Emoji icons render fine in a terminal; named web icons
				// ("Folder", "Star") would just be noise.
				name := c.Name
				if domain.IsEmojiIcon(c.Icon) {
					name = c.Icon + " " + c.Name
				}
				fmt.Printf("%2d. %-15s %s (%d links)%s\n", i, c.ID, name, counts[c.ID], lock)
			}
			return nil
		},
	}
}

func newCategoryAddCmd(serverFlag *string) *cobra.Command {
	var icon, password string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			cat, ok := env.Store.AddCategory(args[0], icon, password)
			if !ok {
				return fmt.Errorf("category name must not be blank")
			}
			env.Store.Flush()

			fmt.Printf("Created category %q (id %s)\n", cat.Name, cat.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "icon name or emoji")
	cmd.Flags().StringVar(&password, "password", "", "lock the category behind a password")
	return cmd
}

func newCategoryRemoveCmd(serverFlag *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <category-id>",
		Short: "Delete a category and every link inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			n := len(env.Store.VisibleLinks(args[0]))
			if !yes {
				return fmt.Errorf("this deletes the category and its links (%d visible): re-run with --yes to confirm", n)
			}

			env.Store.DeleteCategory(args[0])
			env.Store.Flush()

			fmt.Printf("Deleted category %s and its links\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newCategoryMergeCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <source-id> <target-id>",
		Short: "Move all links from source into target and remove source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			env.Store.MergeCategories(args[0], args[1])
			env.Store.Flush()

			fmt.Printf("Merged %s into %s\n", args[0], args[1])
			return nil
		},
	}
}

func newCategoryMoveCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <old-index> <new-index>",
		Short: "Reorder categories by display index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldIdx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid old index %q", args[0])
			}
			newIdx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid new index %q", args[1])
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			env.Store.MoveCategory(oldIdx, newIdx)
			env.Store.Flush()

			fmt.Println("Categories reordered.")
			return nil
		},
	}
}

func newUnlockCmd(serverFlag *string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "unlock <category-id>",
		Short: "Unlock a password-protected category for this invocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			if !env.Store.Unlock(args[0], password) {
				return fmt.Errorf("wrong password or unknown category")
			}

			links := env.Store.VisibleLinks(args[0])
			fmt.Printf("Unlocked %s (%d links):\n", args[0], len(links))
			for _, l := range links {
				fmt.Printf("  %-15s %s  %s\n", l.ID, l.Title, l.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "category password")
	return cmd
}
