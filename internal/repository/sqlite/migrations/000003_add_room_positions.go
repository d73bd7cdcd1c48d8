package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	RegisterGoMigration(3, Up_000003_add_room_positions, Down_000003_add_room_positions)
}

// Up_000003_add_room_positions adds rooms.position and numbers the existing
// rooms of each section in creation order.
func Up_000003_add_room_positions(tx *sql.Tx) error {
	if _, err := tx.Exec(`ALTER TABLE rooms ADD COLUMN position INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("failed to add position column: %w", err)
	}

	for _, personal := range []int{0, 1} {
		rows, err := tx.Query(`SELECT id FROM rooms WHERE is_personal = ? ORDER BY created_at, rowid`, personal)
		if err != nil {
			return fmt.Errorf("failed to query rooms: %w", err)
		}

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan room id: %w", err)
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for position, id := range ids {
			if _, err := tx.Exec(`UPDATE rooms SET position = ? WHERE id = ?`, position, id); err != nil {
				return fmt.Errorf("failed to update position for room %s: %w", id, err)
			}
		}
	}

	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_rooms_position ON rooms (is_personal, position)`); err != nil {
		return fmt.Errorf("failed to create position index: %w", err)
	}

	return nil
}

// Down_000003_add_room_positions drops the position column again.
func Down_000003_add_room_positions(tx *sql.Tx) error {
	if _, err := tx.Exec(`DROP INDEX IF EXISTS idx_rooms_position`); err != nil {
		return err
	}
	_, err := tx.Exec(`ALTER TABLE rooms DROP COLUMN position`)
	return err
}
