package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/responder-client/internal/app"
	"github.com/samvad-hq/responder-client/pkg/responder"
	"github.com/spf13/cobra"
)

// payloadFlags binds --data and --file on commands that send a body.
type payloadFlags struct {
	data string
	file string
}

func (p *payloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.data, "data", "d", "", "inline JSON or YAML payload")
	cmd.Flags().StringVarP(&p.file, "file", "f", "", "path to a .json, .yaml or .yml payload")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
}

func (p *payloadFlags) args() (responder.Args, error) {
	switch {
	case p.file != "":
		return app.LoadArgs(p.file)
	case strings.TrimSpace(p.data) != "":
		return app.ParseArgs([]byte(p.data), "")
	default:
		return nil, nil
	}
}

func parseListID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid list id %q", s)
	}
	return id, nil
}

// operationCommand builds a leaf command that runs one operation. With
// listArg set the first positional argument is the list id.
func operationCommand(use, short, opName string, listArg, payload bool) *cobra.Command {
	var flags payloadFlags
	var nargs cobra.PositionalArgs = cobra.NoArgs
	if listArg {
		nargs = cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  nargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := app.Operation{Name: opName}
			if listArg {
				id, err := parseListID(args[0])
				if err != nil {
					return err
				}
				op.ListID = id
			}
			if payload {
				a, err := flags.args()
				if err != nil {
					return err
				}
				op.Args = a
			}
			return runOperation(cmd, op)
		},
	}
	if payload {
		flags.register(cmd)
	}
	return cmd
}

func runOperation(cmd *cobra.Command, op app.Operation) error {
	return withSession(true, func(ctx context.Context, s *app.Session) error {
		resp, err := s.Run(ctx, op)
		if err != nil {
			return err
		}
		if err := writeResponse(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
		return statusError(resp)
	})
}

func newListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage mailing lists",
	}

	var id int64
	get := &cobra.Command{
		Use:   "get",
		Short: "Fetch all lists, or one list with --id",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if id != 0 {
				return runOperation(c, app.Operation{Name: app.OpGetList, ListID: id})
			}
			return runOperation(c, app.Operation{Name: app.OpGetLists})
		},
	}
	get.Flags().Int64Var(&id, "id", 0, "list id to fetch")

	cmd.AddCommand(get)
	cmd.AddCommand(operationCommand("create", "Create a list", app.OpCreateList, false, true))
	cmd.AddCommand(operationCommand("edit LIST_ID", "Edit a list", app.OpEditList, true, true))
	cmd.AddCommand(operationCommand("delete LIST_ID", "Delete a list", app.OpDeleteList, true, false))
	return cmd
}

func newSubscribersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscribers",
		Aliases: []string{"subs"},
		Short:   "Manage the subscribers of a list",
	}
	cmd.AddCommand(operationCommand("get LIST_ID", "Fetch the subscribers of a list", app.OpGetSubscribers, true, false))
	cmd.AddCommand(operationCommand("create LIST_ID", "Add a batch of subscribers", app.OpCreateSubscribers, true, true))
	cmd.AddCommand(operationCommand("edit LIST_ID", "Edit a batch of subscribers", app.OpEditSubscribers, true, true))
	cmd.AddCommand(operationCommand("delete LIST_ID", "Delete a batch of subscribers", app.OpDeleteSubscribers, true, true))
	return cmd
}

func newFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"personal-fields"},
		Short:   "Manage the personal fields of a list",
	}
	cmd.AddCommand(operationCommand("get LIST_ID", "Fetch the personal fields of a list", app.OpGetPersonalFields, true, false))
	cmd.AddCommand(operationCommand("create LIST_ID", "Create personal fields", app.OpCreatePersonalFields, true, true))
	cmd.AddCommand(operationCommand("edit LIST_ID", "Edit personal fields", app.OpEditPersonalFields, true, true))
	cmd.AddCommand(operationCommand("delete LIST_ID", "Delete personal fields", app.OpDeletePersonalFields, true, true))
	return cmd
}

func newJournalCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent changes recorded locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(false, func(_ context.Context, s *app.Session) error {
				changes, err := s.Recent(limit)
				if err != nil {
					return fmt.Errorf("read journal: %w", err)
				}
				return writeJSON(cmd.OutOrStdout(), changes)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of changes to show (0 for all)")
	return cmd
}

func newOperationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operation names used in the journal and change events",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range app.Operations() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
