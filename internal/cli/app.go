package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chore-rooms/internal/api"
	"chore-rooms/internal/config"
	"chore-rooms/internal/domain"
	"chore-rooms/internal/errors"

	"go.uber.org/zap"
)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	logger      *zap.Logger
	errors      *ErrorHandler
	in          *bufio.Reader
	out         io.Writer
	registry    *CommandRegistry
}

// NewApp creates a new CLI application reading from stdin and writing to stdout
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, logger *zap.Logger) *App {
	return NewAppWithIO(businessAPI, cfg, logger, os.Stdin, os.Stdout)
}

// NewAppWithIO creates a new CLI application with explicit input and output
func NewAppWithIO(businessAPI api.BusinessAPI, cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		businessAPI: businessAPI,
		config:      cfg,
		logger:      logger,
		errors:      NewErrorHandler(logger),
		in:          bufio.NewReader(in),
		out:         out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// readLine reads one trimmed line of user input
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// splitSection takes a leading "house" or "personal" off args.
// A lone argument is never taken as the section.
func splitSection(args []string) (domain.SectionType, bool, []string) {
	if len(args) > 1 {
		if sectionType, ok := domain.ParseSectionType(args[0]); ok {
			return sectionType, true, args[1:]
		}
	}
	return domain.SectionHouse, false, args
}

// parsePosition converts a 1-based list position to an index
func parsePosition(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.NewInvalidInputError(field, s, "position must be a number starting at 1")
	}
	return n - 1, nil
}

// parseOption reads a key=value argument
func parseOption(arg, key string) (string, bool) {
	prefix := key + "="
	if !strings.HasPrefix(arg, prefix) {
		return "", false
	}
	return strings.TrimPrefix(arg, prefix), true
}

func checkMark(b bool) string {
	if b {
		return "x"
	}
	return " "
}
