package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"printer_probe/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

var _ StateRepo = (*StateSQLite)(nil)

const (
	probeStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO probe_state (id, probe_c, probe_target_c, bed_c, bed_target_c, hotend_c, hotend_target_c, motors_on, waiting, status_line, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			probe_c=excluded.probe_c,
			probe_target_c=excluded.probe_target_c,
			bed_c=excluded.bed_c,
			bed_target_c=excluded.bed_target_c,
			hotend_c=excluded.hotend_c,
			hotend_target_c=excluded.hotend_target_c,
			motors_on=excluded.motors_on,
			waiting=excluded.waiting,
			status_line=excluded.status_line,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, probe_c, probe_target_c, bed_c, bed_target_c, hotend_c, hotend_target_c, motors_on, waiting, status_line, updated_at
		FROM probe_state WHERE id=?
	`
)

// Save updates or inserts the probe_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.ProbeState) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		probeStateRowID,
		state.ProbeC,
		state.ProbeTargetC,
		state.BedC,
		state.BedTargetC,
		state.HotendC,
		state.HotendTargetC,
		state.MotorsOn,
		state.Waiting,
		state.StatusLine,
		tsUTC,
	)
	return err
}

// Load fetches the single probe_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.ProbeState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, probeStateRowID)

	var s models.ProbeState
	if err := row.Scan(
		&s.ID,
		&s.ProbeC,
		&s.ProbeTargetC,
		&s.BedC,
		&s.BedTargetC,
		&s.HotendC,
		&s.HotendTargetC,
		&s.MotorsOn,
		&s.Waiting,
		&s.StatusLine,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ProbeState{}, nil // no state yet
		}
		return models.ProbeState{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
