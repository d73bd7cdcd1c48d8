package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"chore-rooms/internal/errors"
)

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HandleDatabaseError converts database errors to structured app errors.
// Errors that are already app errors pass through unchanged.
func HandleDatabaseError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err.Error())
	}
	return errors.NewDatabaseError(operation, err)
}

// HandleNoRowsError handles sql.ErrNoRows errors consistently
func HandleNoRowsError(err error, entityType string, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entityType, id)
	}
	return err
}

// ValidateRowsAffected checks if a database operation affected the expected number of rows
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// handleContextError reports a timeout when the operation's deadline passed,
// whatever error the driver surfaced for it
func handleContextError(ctx context.Context, operation string, err error) error {
	if !errors.IsAppError(err) && stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err.Error())
	}
	return HandleDatabaseError(operation, err)
}

// Execute executes a statement that is not expected to match a particular row
func Execute(ctx context.Context, db Querier, operation string, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return handleContextError(ctx, operation, err)
	}
	return nil
}

// ExecuteWithRowsAffected executes a query and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, db Querier, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return handleContextError(ctx, "execute query", err)
	}

	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db Querier, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, HandleNoRowsError(err, entityType, id)
		}
		return nil, handleContextError(ctx, "scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db Querier, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleContextError(ctx, "query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, handleContextError(ctx, "scan "+entityType, err)
	}

	return results, nil
}

// QueryInt executes a query returning a single integer, such as a count or max
func QueryInt(ctx context.Context, db Querier, operation string, query string, args ...interface{}) (int, error) {
	var value sql.NullInt64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return 0, handleContextError(ctx, operation, err)
	}
	return int(value.Int64), nil
}

// WithTx runs fn inside a transaction, committing on success and rolling back otherwise
func WithTx(ctx context.Context, db *sql.DB, operation string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return handleContextError(ctx, "begin "+operation, err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return handleContextError(ctx, "commit "+operation, err)
	}
	return nil
}
