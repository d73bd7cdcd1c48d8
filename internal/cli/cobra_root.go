package cli

import (
	"context"
	"fmt"
	"time"

	"chore-rooms/internal/config"

	"github.com/spf13/cobra"
)

// Bootstrap builds the application for a loaded configuration. The returned
// cleanup runs once the command has finished.
type Bootstrap func(cfg *config.Config) (*App, func(), error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	bootstrap Bootstrap
	config    *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, bootstrap Bootstrap) *RootCommand {
	root := &RootCommand{
		loader:    loader,
		bootstrap: bootstrap,
	}

	root.cmd = &cobra.Command{
		Use:   "rooms",
		Short: "Manage the rooms of your household chore list",
		Long: `Rooms is a command-line front end for the rooms of a household chore list.

FEATURES:
  • Household rooms shared with everyone, personal rooms for pro users
  • Room limits per tier: guests 4, normal 7, pro unlimited
  • Rename, delete and reorder rooms; add and clean their tasks
  • "All Tasks" and "Task Reminders" lists across every room
  • Export to CSV or XLSX, household change feed over Redis

EXAMPLES:
  rooms list                               # List house rooms
  rooms list personal                      # List personal rooms
  rooms add Kitchen                        # Add a house room
  rooms add personal Office                # Add a personal room
  rooms rename Kitchen Galley              # Rename a room
  rooms delete Galley                      # Delete a room and its tasks (asks first)
  rooms reorder Bath Kitchen               # Put Bath, then Kitchen, at the top
  rooms reorder move 3 1                   # Move the third room to the top
  rooms tasks reminders                    # Show tasks with a reminder
  rooms task add Kitchen Dishes reminder   # Add a task with a reminder
  rooms task clean <task-id>               # Mark a task clean
  rooms export format=xlsx file=rooms.xlsx # Export to a spreadsheet
  rooms events 10                          # Show the latest household changes

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file:     ~/.rooms/config.yaml (or ROOMS_CONFIG, or --config)
  Database:        ROOMS_DB_DIR, ROOMS_DB_FILENAME, ROOMS_DB_QUERY_TIMEOUT, ROOMS_DB_WRITE_TIMEOUT
  Validation:      ROOMS_VALIDATION_ROOM_NAME_MAX, ROOMS_VALIDATION_TASK_NAME_MAX
  User:            ROOMS_USER_TIER (guest|normal|pro), ROOMS_USER_EDIT_PERMISSION
  Logging:         ROOMS_LOG_LEVEL, ROOMS_LOG_FORMAT, ROOMS_DEBUG
  Feed:            ROOMS_FEED_ENABLED, ROOMS_FEED_REDIS_ADDR, ROOMS_FEED_STREAM, ROOMS_FEED_MAX_LEN
  Export:          ROOMS_EXPORT_DEFAULT_FORMAT
  Application:     ROOMS_APP_TIMEOUT, ROOMS_APP_VERBOSE

GETTING HELP:
  rooms [command] --help                   # Get help for any specific command
  rooms completion bash                    # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML configuration file (overrides ROOMS_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides ROOMS_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides ROOMS_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides ROOMS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides ROOMS_DB_WRITE_TIMEOUT)")

	// Validation configuration
	flags.Int("room-name-max-length", 0, "Maximum room name length (overrides ROOMS_VALIDATION_ROOM_NAME_MAX)")
	flags.Int("task-name-max-length", 0, "Maximum task name length (overrides ROOMS_VALIDATION_TASK_NAME_MAX)")

	// User configuration
	flags.String("tier", "", "User tier: guest, normal or pro (overrides ROOMS_USER_TIER)")
	flags.Bool("edit-permission", true, "User may edit and delete rooms (overrides ROOMS_USER_EDIT_PERMISSION)")

	// Logging configuration
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides ROOMS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: json or console (overrides ROOMS_LOG_FORMAT)")

	// Feed configuration
	flags.Bool("feed", false, "Publish and read the household change feed (overrides ROOMS_FEED_ENABLED)")
	flags.String("feed-redis-addr", "", "Redis address of the change feed (overrides ROOMS_FEED_REDIS_ADDR)")
	flags.String("feed-stream", "", "Redis stream of the change feed (overrides ROOMS_FEED_STREAM)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides ROOMS_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides ROOMS_APP_VERBOSE)")

	// Export configuration
	flags.String("export-format", "", "Default export format (overrides ROOMS_EXPORT_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	listCmd := &cobra.Command{
		Use:   "list [house|personal]",
		Short: "List rooms",
		Long: `List the "All Tasks" and "Task Reminders" rows, then the rooms of a section.

Personal rooms are only listed for pro users.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.runRegistered("list rooms", "list"),
	}

	addCmd := &cobra.Command{
		Use:   "add [house|personal] <name>",
		Short: "Add a room",
		Long: `Add a room to the house section (the default) or to the personal section.

House rooms are limited per tier: guests 4, normal users 7, pro users unlimited.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runRegistered("add room", "add"),
	}

	renameCmd := &cobra.Command{
		Use:   "rename <room> <new name>",
		Short: "Rename a room",
		Long:  "Rename a room given by id or by name.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  r.runRegistered("rename room", "rename"),
	}

	var assumeYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <room>",
		Short: "Delete a room and its tasks",
		Long: `Delete a room and all of its tasks.

This operation cannot be undone. You will be asked to confirm unless --yes is given.
Only users with edit permission can delete rooms.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "delete room", 2, func(app *App) Command {
				handler := NewDeleteCommand(app)
				handler.AssumeYes = assumeYes
				return handler
			}, args)
		},
	}
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")

	reorderCmd := &cobra.Command{
		Use:   "reorder [house|personal] <room>... | move <from> <to>",
		Short: "Reorder the rooms of a section",
		Long: `Reorder the rooms of a section.

Listed rooms move to the top in the order given; the rest keep their order.
"move" takes positions as printed by "rooms list", starting at 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runRegistered("reorder rooms", "reorder"),
	}

	tasksCmd := &cobra.Command{
		Use:   "tasks [all|reminders|<room>]",
		Short: "Show a task list",
		Long:  `Show the tasks of one room, of every room ("all", the default) or only those with a reminder ("reminders").`,
		RunE:  r.runRegistered("show tasks", "tasks"),
	}

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Add, clean and remove tasks",
	}
	taskCmd.AddCommand(
		r.taskAction("add <room> <name> [reminder]", "Add a task to a room", "add task", "add", cobra.MinimumNArgs(2)),
		r.taskAction("clean <task-id>", "Mark a task clean", "clean task", "clean", cobra.ExactArgs(1)),
		r.taskAction("dirty <task-id>", "Mark a task dirty", "mark task dirty", "dirty", cobra.ExactArgs(1)),
		r.taskAction("remind <task-id> on|off", "Turn a task reminder on or off", "set task reminder", "remind", cobra.ExactArgs(2)),
		r.taskAction("delete <task-id>", "Delete a task", "delete task", "delete", cobra.ExactArgs(1)),
	)

	exportCmd := &cobra.Command{
		Use:   "export [format=csv|xlsx] [file=path]",
		Short: "Export rooms and tasks",
		Long: `Export every room and task.

Supported formats:
  csv  - Comma-separated values, written to stdout unless file= is given
  xlsx - Excel workbook, needs file=

Example:
  rooms export format=xlsx file=rooms.xlsx`,
		Args: cobra.MaximumNArgs(2),
		RunE: r.runRegistered("export rooms", "export"),
	}

	eventsCmd := &cobra.Command{
		Use:   "events [count]",
		Short: "Show recent household changes",
		Long:  "Show the newest entries of the household change feed. Needs the feed to be enabled.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  r.runRegistered("read events", "events"),
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		listCmd,
		addCmd,
		renameCmd,
		deleteCmd,
		reorderCmd,
		tasksCmd,
		taskCmd,
		exportCmd,
		eventsCmd,
	)
}

func (r *RootCommand) taskAction(use, short, operation, action string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, operation, 1, func(app *App) Command {
				return NewTaskCommand(app)
			}, append([]string{action}, args...))
		},
	}
}

// runRegistered runs the registry command of the same name
func (r *RootCommand) runRegistered(operation, name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return r.run(cmd, operation, 1, func(app *App) Command {
			command, _ := app.registry.Lookup(name)
			return command
		}, args)
	}
}

// run loads the configuration, builds the app and executes one handler.
// Interactive commands pass a timeout multiplier above 1.
func (r *RootCommand) run(cmd *cobra.Command, operation string, timeoutFactor int, handler func(app *App) Command, args []string) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	app, cleanup, err := r.bootstrap(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*time.Duration(timeoutFactor))
	defer cancel()

	return app.errors.Handle(operation, handler(app).Execute(ctx, args))
}

// loadConfig runs the configuration cascade once, with flags applied last
func (r *RootCommand) loadConfig() (*config.Config, error) {
	if r.config != nil {
		return r.config, nil
	}
	if r.loader == nil {
		return nil, fmt.Errorf("configuration loader not initialized")
	}

	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return nil, err
	}
	r.config = cfg
	return cfg, nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetString(name)
		return &value
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetDuration(name)
		return &value
	}
	intFlag := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetInt(name)
		return &value
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetBool(name)
		return &value
	}

	overrides.ConfigFile = stringFlag("config")

	// Database configuration
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBQueryTimeout = durationFlag("db-query-timeout")
	overrides.DBWriteTimeout = durationFlag("db-write-timeout")

	// Validation configuration
	overrides.RoomNameMaxLength = intFlag("room-name-max-length")
	overrides.TaskNameMaxLength = intFlag("task-name-max-length")

	// User configuration
	overrides.UserTier = stringFlag("tier")
	overrides.HasEditPermission = boolFlag("edit-permission")

	// Logging configuration
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")

	// Feed configuration
	overrides.FeedEnabled = boolFlag("feed")
	overrides.FeedRedisAddr = stringFlag("feed-redis-addr")
	overrides.FeedStream = stringFlag("feed-stream")

	// Application configuration
	overrides.Timeout = durationFlag("app-timeout")
	overrides.Verbose = boolFlag("verbose")

	// Export configuration
	overrides.ExportDefaultFormat = stringFlag("export-format")

	return overrides
}
