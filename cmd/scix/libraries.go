// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scix/internal/output"
	"github.com/pdiddy/scix/pkg/scix"
	"github.com/pdiddy/scix/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib", "libraries"},
	Short:   "Manage SciX personal libraries",
}

// libraryRun wraps a library subcommand so each gets the client and the
// command context without repeating the boilerplate.
func libraryRun(fn func(cmd *cobra.Command, client *scix.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := apiClient()
		if err != nil {
			return err
		}
		return fn(cmd, client, args)
	}
}

func done(cmd *cobra.Command, format string, args ...any) error {
	_, err := fmt.Fprintf(stdout(cmd), format+"\n", args...)
	return err
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your libraries",
	Args:  cobra.NoArgs,
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, _ []string) error {
		libs, err := client.ListLibraries(cmd.Context())
		if err != nil {
			return err
		}
		return output.WriteLibraries(stdout(cmd), state.format, libs)
	}),
}

var libraryGetCmd = &cobra.Command{
	Use:   "get <library-id>",
	Short: "Show a library and its bibcodes",
	Args:  cobra.ExactArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		detail, err := client.GetLibrary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if state.format != output.FormatTable {
			return output.WriteValue(stdout(cmd), state.format, detail)
		}
		w := stdout(cmd)
		if err := output.WriteLibraries(w, state.format, []types.Library{detail.Metadata}); err != nil {
			return err
		}
		_, err = io.WriteString(w, strings.Join(detail.Documents, "\n")+"\n")
		return err
	}),
}

var libraryCreateCmd = &cobra.Command{
	Use:   "create <name> [bibcode...]",
	Short: "Create a library, optionally seeded with bibcodes",
	Args:  cobra.MinimumNArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		public, _ := cmd.Flags().GetBool("public")
		lib, err := client.CreateLibrary(cmd.Context(), args[0], description, public, args[1:])
		if err != nil {
			return err
		}
		state.log.Info("created library", zap.String("id", lib.ID), zap.String("name", lib.Name))
		if state.format != output.FormatTable {
			return output.WriteValue(stdout(cmd), state.format, lib)
		}
		return done(cmd, "Created library %q with ID: %s", lib.Name, lib.ID)
	}),
}

var libraryEditCmd = &cobra.Command{
	Use:   "edit <library-id>",
	Short: "Rename a library or change its description or visibility",
	Args:  cobra.ExactArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		var edit types.LibraryEdit
		f := cmd.Flags()
		if f.Changed("name") {
			name, _ := f.GetString("name")
			edit.Name = &name
		}
		if f.Changed("description") {
			description, _ := f.GetString("description")
			edit.Description = &description
		}
		if f.Changed("public") {
			public, _ := f.GetBool("public")
			edit.Public = &public
		}
		if err := client.EditLibrary(cmd.Context(), args[0], edit); err != nil {
			return err
		}
		return done(cmd, "Library %s updated", args[0])
	}),
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <library-id>",
	Short: "Delete a library",
	Args:  cobra.ExactArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		if err := client.DeleteLibrary(cmd.Context(), args[0]); err != nil {
			return err
		}
		return done(cmd, "Library %s deleted", args[0])
	}),
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <library-id> <bibcode>...",
	Short: "Add papers to a library",
	Args:  cobra.MinimumNArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		bibcodes, err := bibcodeArgs(cmd, args[1:])
		if err != nil {
			return err
		}
		if err := client.AddDocuments(cmd.Context(), args[0], bibcodes); err != nil {
			return err
		}
		return done(cmd, "Added %d documents to library %s", len(bibcodes), args[0])
	}),
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <library-id> <bibcode>...",
	Short: "Remove papers from a library",
	Args:  cobra.MinimumNArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		bibcodes, err := bibcodeArgs(cmd, args[1:])
		if err != nil {
			return err
		}
		if err := client.RemoveDocuments(cmd.Context(), args[0], bibcodes); err != nil {
			return err
		}
		return done(cmd, "Removed %d documents from library %s", len(bibcodes), args[0])
	}),
}

var libraryAddQueryCmd = &cobra.Command{
	Use:   "add-query <library-id> <query>",
	Short: "Search and add the hits to a library",
	Args:  cobra.ExactArgs(2),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		rows, _ := cmd.Flags().GetInt("rows")
		n, err := client.AddDocumentsByQuery(cmd.Context(), args[0], args[1], rows)
		if err != nil {
			return err
		}
		return done(cmd, "Added %d documents from query to library %s", n, args[0])
	}),
}

var libraryPermissionsCmd = &cobra.Command{
	Use:   "permissions <library-id>",
	Short: "Show who has access to a library",
	Args:  cobra.ExactArgs(1),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		raw, err := client.GetPermissions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return output.WriteValue(stdout(cmd), state.format, raw)
	}),
}

var libraryShareCmd = &cobra.Command{
	Use:   "share <library-id> <email>",
	Short: "Grant a collaborator access to a library",
	Args:  cobra.ExactArgs(2),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		name, _ := cmd.Flags().GetString("permission")
		perm, err := types.ParsePermission(name)
		if err != nil {
			return err
		}
		if err := client.UpdatePermissions(cmd.Context(), args[0], args[1], perm); err != nil {
			return err
		}
		return done(cmd, "Permissions updated for %s on library %s", args[1], args[0])
	}),
}

var libraryTransferCmd = &cobra.Command{
	Use:   "transfer <library-id> <email>",
	Short: "Transfer ownership of a library",
	Args:  cobra.ExactArgs(2),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		if err := client.TransferLibrary(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return done(cmd, "Library %s transferred to %s", args[0], args[1])
	}),
}

var libraryOpCmd = &cobra.Command{
	Use:   "op <library-id> <union|intersection|difference|copy|empty> [source-id...]",
	Short: "Apply a set operation to a library",
	Long: `Op combines a library with the source libraries. Every operation except
empty needs at least one source; empty removes every paper from the library.
The server's response is printed as returned.`,
	Args: cobra.MinimumNArgs(2),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		op, err := types.ParseSetOperation(args[1])
		if err != nil {
			return err
		}
		raw, err := client.LibraryOperation(cmd.Context(), args[0], op, args[2:])
		if err != nil {
			return err
		}
		return output.WriteValue(stdout(cmd), state.format, raw)
	}),
}

var libraryNoteCmd = &cobra.Command{
	Use:   "note <library-id> <bibcode> [text]",
	Short: "Show, set or delete the note on a paper in a library",
	Long: `Note prints the note attached to a paper. With a text argument it
replaces the note; with --delete it removes it.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: libraryRun(func(cmd *cobra.Command, client *scix.Client, args []string) error {
		id, bibcode := args[0], args[1]
		if del, _ := cmd.Flags().GetBool("delete"); del {
			if err := client.DeleteAnnotation(cmd.Context(), id, bibcode); err != nil {
				return err
			}
			return done(cmd, "Note deleted for %s", bibcode)
		}
		if len(args) == 3 {
			if err := client.SetAnnotation(cmd.Context(), id, bibcode, args[2]); err != nil {
				return err
			}
			return done(cmd, "Note set for %s", bibcode)
		}
		note, err := client.GetAnnotation(cmd.Context(), id, bibcode)
		if err != nil {
			return err
		}
		if note == "" {
			return done(cmd, "No note for %s", bibcode)
		}
		return done(cmd, "%s", note)
	}),
}

func init() {
	for _, c := range []*cobra.Command{libraryCreateCmd, libraryEditCmd} {
		c.Flags().String("description", "", "library description")
		c.Flags().Bool("public", false, "make the library public")
	}
	libraryEditCmd.Flags().String("name", "", "new library name")
	addFileFlag(libraryAddCmd)
	addFileFlag(libraryRemoveCmd)
	libraryAddQueryCmd.Flags().Int("rows", scix.DefaultAddByQueryRows, "maximum number of hits to add")
	libraryShareCmd.Flags().StringP("permission", "p", "read", "permission level: read, write, admin")
	libraryNoteCmd.Flags().Bool("delete", false, "delete the note")

	libraryCmd.AddCommand(
		libraryListCmd, libraryGetCmd, libraryCreateCmd, libraryEditCmd, libraryDeleteCmd,
		libraryAddCmd, libraryRemoveCmd, libraryAddQueryCmd,
		libraryPermissionsCmd, libraryShareCmd, libraryTransferCmd,
		libraryOpCmd, libraryNoteCmd,
	)
	rootCmd.AddCommand(libraryCmd)
}
