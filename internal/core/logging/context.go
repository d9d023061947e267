package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	itemIDKey  contextKey = "item_id"
)

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithItemID adds the ID of the item being operated on to the context.
func WithItemID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, itemIDKey, id)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// GetItemID retrieves the item ID from the context.
// Returns empty string if not present.
func GetItemID(ctx context.Context) string {
	if id, ok := ctx.Value(itemIDKey).(string); ok {
		return id
	}
	return ""
}
