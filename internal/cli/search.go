package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/state"
)

func newSearchCmd(serverFlag *string) *cobra.Command {
	var external bool
	var engine string

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search links, or build an external engine URL with --external",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			if external {
				env.Store.SetSearchMode(state.SearchExternal)
				if engine != "" && !env.Store.SelectEngine(engine) {
					return fmt.Errorf("unknown engine %q", engine)
				}
				env.Store.SetQuery(query)
				u, ok := env.Store.SubmitSearch()
				if !ok {
					return fmt.Errorf("no external engine available")
				}
				fmt.Println(u)
				return nil
			}

			env.Store.SetSearchMode(state.SearchLocal)
			env.Store.SetQuery(query)
			results := env.Store.SearchResults()
			if len(results) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			for _, l := range results {
				fmt.Printf("%-15s %s  %s\n", l.ID, l.Title, l.URL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&external, "external", "x", false, "hand the query to an external engine")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "engine id for --external")
	return cmd
}

func newEngineCmd(serverFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List and manage the external search engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			for _, e := range env.Store.SearchEngines() {
				fmt.Printf("%-12s %s  %s\n", e.ID, e.Name, e.URL)
			}
			return nil
		},
	}
	cmd.AddCommand(
		newEngineAddCmd(serverFlag),
		newEngineRemoveCmd(serverFlag),
	)
	return cmd
}

func newEngineAddCmd(serverFlag *string) *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "add <id> <name> <url-prefix>",
		Short: "Add an external engine (the query is appended to the url prefix)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, urlPrefix := args[0], args[1], args[2]
			if id == domain.LocalEngineID {
				return fmt.Errorf("%q is reserved for in-app search", id)
			}

			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			engines := env.Store.SearchEngines()
			for _, e := range engines {
				if e.ID == id {
					return fmt.Errorf("engine %q already exists", id)
				}
			}
			engines = append(engines, domain.SearchEngine{ID: id, Name: name, URL: urlPrefix, Icon: icon})
			env.Store.SetSearchEngines(engines)

			if err := env.Session.SaveEngines(env.Store.SearchEngines()); err != nil {
				return err
			}
			fmt.Printf("Added engine %q\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "icon name or emoji")
	return cmd
}

func newEngineRemoveCmd(serverFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an external engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *serverFlag)
			if err != nil {
				return err
			}
			defer env.Close()

			engines := env.Store.SearchEngines()
			kept := make([]domain.SearchEngine, 0, len(engines))
			for _, e := range engines {
				if e.ID != args[0] {
					kept = append(kept, e)
				}
			}
			if len(kept) == len(engines) {
				return fmt.Errorf("unknown engine %q", args[0])
			}
			env.Store.SetSearchEngines(kept)

			if err := env.Session.SaveEngines(env.Store.SearchEngines()); err != nil {
				return err
			}
			fmt.Printf("Removed engine %q\n", args[0])
			return nil
		},
	}
}
