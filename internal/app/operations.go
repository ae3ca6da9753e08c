package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samvad-hq/responder-client/pkg/responder"
)

// Operation names, one per client method.
const (
	OpGetLists             = "get_lists"
	OpGetList              = "get_list"
	OpCreateList           = "create_list"
	OpEditList             = "edit_list"
	OpDeleteList           = "delete_list"
	OpGetSubscribers       = "get_subscribers"
	OpCreateSubscribers    = "create_subscribers"
	OpEditSubscribers      = "edit_subscribers"
	OpDeleteSubscribers    = "delete_subscribers"
	OpGetPersonalFields    = "get_personal_fields"
	OpCreatePersonalFields = "create_personal_fields"
	OpEditPersonalFields   = "edit_personal_fields"
	OpDeletePersonalFields = "delete_personal_fields"
)

// Operation is one invocation request: the operation name, the list it
// targets (when it targets one) and its payload.
type Operation struct {
	Name   string
	ListID int64
	Args   responder.Args
}

type operationSpec struct {
	needsList bool
	mutating  bool
	call      func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error)
}

var operations = map[string]operationSpec{
	OpGetLists: {
		call: func(ctx context.Context, c *responder.Client, _ Operation) (*responder.Response, error) {
			return c.GetLists(ctx)
		},
	},
	OpGetList: {
		needsList: true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.GetList(ctx, op.ListID)
		},
	},
	OpCreateList: {
		mutating: true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.CreateList(ctx, op.Args)
		},
	},
	OpEditList: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.EditList(ctx, op.ListID, op.Args)
		},
	},
	OpDeleteList: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.DeleteList(ctx, op.ListID)
		},
	},
	OpGetSubscribers: {
		needsList: true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.GetSubscribers(ctx, op.ListID)
		},
	},
	OpCreateSubscribers: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.CreateSubscribers(ctx, op.ListID, op.Args)
		},
	},
	OpEditSubscribers: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.EditSubscribers(ctx, op.ListID, op.Args)
		},
	},
	OpDeleteSubscribers: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.DeleteSubscribers(ctx, op.ListID, op.Args)
		},
	},
	OpGetPersonalFields: {
		needsList: true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.GetPersonalFields(ctx, op.ListID)
		},
	},
	OpCreatePersonalFields: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.CreatePersonalFields(ctx, op.ListID, op.Args)
		},
	},
	OpEditPersonalFields: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.EditPersonalFields(ctx, op.ListID, op.Args)
		},
	},
	OpDeletePersonalFields: {
		needsList: true,
		mutating:  true,
		call: func(ctx context.Context, c *responder.Client, op Operation) (*responder.Response, error) {
			return c.DeletePersonalFields(ctx, op.ListID, op.Args)
		},
	},
}

// Operations returns the known operation names, sorted.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupOperation(op Operation) (operationSpec, error) {
	spec, ok := operations[strings.TrimSpace(op.Name)]
	if !ok {
		return operationSpec{}, fmt.Errorf("unknown operation %q", op.Name)
	}
	if spec.needsList && op.ListID <= 0 {
		return operationSpec{}, fmt.Errorf("%s requires a positive list id", op.Name)
	}
	return spec, nil
}
