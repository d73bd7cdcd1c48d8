package cli

import (
	"context"

	"chore-rooms/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("list", NewListCommand(app))
	registry.Register("add", NewAddCommand(app))
	registry.Register("rename", NewRenameCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("reorder", NewReorderCommand(app))
	registry.Register("tasks", NewTasksCommand(app))
	registry.Register("task", NewTaskCommand(app))
	registry.Register("export", NewExportCommand(app))
	registry.Register("events", NewEventsCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Lookup returns the named command
func (r *CommandRegistry) Lookup(commandName string) (Command, bool) {
	command, exists := r.commands[commandName]
	return command, exists
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: rooms list [house|personal] or rooms add [house|personal] <name> or rooms rename <room> <name> or rooms delete <room> or rooms reorder [house|personal] <room>... or rooms tasks [all|reminders|<room>] or rooms task add <room> <name> or rooms export [format=csv|xlsx] or rooms events [count]"
}
