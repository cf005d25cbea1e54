package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// loadedAtLayout keeps every stored timestamp the same width so the text
// column sorts chronologically.
const loadedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = "name, data_dir, epoch_count, first_day, last_day, peak_phase, reference_band, mismatch_count, load_id, loaded_at"

// Record inserts or replaces entry and its epochs.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	ctx = ensureContext(ctx)
	if entry.Name == "" {
		return errors.New("catalog entry requires a name")
	}
	if entry.LoadedAt.IsZero() {
		entry.LoadedAt = time.Now().UTC()
	}
	return s.withWriteLock(func() error {
		return retryOnBusy(ctx, func() error {
			return s.record(ctx, entry)
		})
	})
}

func (s *Store) record(ctx context.Context, entry Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO transients (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data_dir = excluded.data_dir,
			epoch_count = excluded.epoch_count,
			first_day = excluded.first_day,
			last_day = excluded.last_day,
			peak_phase = excluded.peak_phase,
			reference_band = excluded.reference_band,
			mismatch_count = excluded.mismatch_count,
			load_id = excluded.load_id,
			loaded_at = excluded.loaded_at`,
		entry.Name,
		entry.DataDir,
		entry.EpochCount,
		entry.FirstDay,
		entry.LastDay,
		nullableFloat(entry.PeakPhase),
		nullableString(entry.ReferenceBand),
		entry.Mismatches,
		entry.LoadID,
		entry.LoadedAt.UTC().Format(loadedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert transient: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM epochs WHERE transient = ?", entry.Name); err != nil {
		return fmt.Errorf("clear epochs: %w", err)
	}
	for _, epoch := range entry.Epochs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO epochs (transient, idx, day, mangled_file, data_file, samples) VALUES (?, ?, ?, ?, ?, ?)",
			entry.Name,
			epoch.Index,
			epoch.Day,
			nullableString(epoch.MangledFile),
			nullableString(epoch.DataFile),
			epoch.Samples,
		); err != nil {
			return fmt.Errorf("insert epoch %d: %w", epoch.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

// List returns every entry, most recently loaded first, without epochs.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM transients ORDER BY loaded_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list transients: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transient: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns the entry for name with its epochs in day order.
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM transients WHERE name = ?", name)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get transient: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT idx, day, mangled_file, data_file, samples FROM epochs WHERE transient = ? ORDER BY idx", name)
	if err != nil {
		return nil, fmt.Errorf("list epochs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			epoch   Epoch
			mangled sql.NullString
			data    sql.NullString
		)
		if err := rows.Scan(&epoch.Index, &epoch.Day, &mangled, &data, &epoch.Samples); err != nil {
			return nil, fmt.Errorf("scan epoch: %w", err)
		}
		epoch.MangledFile = mangled.String
		epoch.DataFile = data.String
		entry.Epochs = append(entry.Epochs, epoch)
	}
	return entry, rows.Err()
}

// Delete removes the entry for name and its epochs.
func (s *Store) Delete(ctx context.Context, name string) error {
	ctx = ensureContext(ctx)
	return s.withWriteLock(func() error {
		var affected int64
		err := retryOnBusy(ctx, func() error {
			res, err := s.db.ExecContext(ctx, "DELETE FROM transients WHERE name = ?", name)
			if err != nil {
				return err
			}
			affected, err = res.RowsAffected()
			return err
		})
		if err != nil {
			return fmt.Errorf("delete transient: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil
	})
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry     Entry
		firstDay  sql.NullFloat64
		lastDay   sql.NullFloat64
		peak      sql.NullFloat64
		band      sql.NullString
		loadedRaw string
	)
	if err := scanner.Scan(
		&entry.Name,
		&entry.DataDir,
		&entry.EpochCount,
		&firstDay,
		&lastDay,
		&peak,
		&band,
		&entry.Mismatches,
		&entry.LoadID,
		&loadedRaw,
	); err != nil {
		return nil, err
	}
	entry.FirstDay = firstDay.Float64
	entry.LastDay = lastDay.Float64
	entry.ReferenceBand = band.String
	if peak.Valid {
		value := peak.Float64
		entry.PeakPhase = &value
	}
	if loaded, err := parseTimeString(loadedRaw); err == nil {
		entry.LoadedAt = loaded
	}
	return &entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	for _, layout := range []string{loadedAtLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
