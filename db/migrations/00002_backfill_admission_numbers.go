package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upBackfillAdmissionNumbers, downBackfillAdmissionNumbers)
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GuideNumberFor derives the default guide number for an admission that
// predates the guide_number field.
func GuideNumberFor(admissionID string) string {
	prefix := admissionID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return "GUIA-" + strings.ToUpper(prefix)
}

// RandomRecordNumber generates a default patient record number: a fixed
// prefix plus a 9 character base-36 token, upper-cased.
func RandomRecordNumber() string {
	var b strings.Builder
	b.WriteString("MAT-")
	for i := 0; i < 9; i++ {
		b.WriteByte(base36Alphabet[rand.Intn(len(base36Alphabet))])
	}
	return strings.ToUpper(b.String())
}

// Backfills guide_number and patient_record_number on admissions created
// before those fields existed. Runs inside the migration transaction, so the
// step is all-or-nothing; rows that already carry both values are untouched,
// which makes a re-run a no-op.
func upBackfillAdmissionNumbers(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, guide_number, patient_record_number
		FROM admissions
		WHERE guide_number IS NULL OR guide_number = ''
		   OR patient_record_number IS NULL OR patient_record_number = ''`)
	if err != nil {
		return fmt.Errorf("select admissions missing numbers: %w", err)
	}
	defer rows.Close()

	type backfill struct {
		id          string
		guideNumber string
		recordNum   string
	}

	var pending []backfill
	for rows.Next() {
		var id string
		var guide, record sql.NullString
		if err := rows.Scan(&id, &guide, &record); err != nil {
			return fmt.Errorf("scan admission: %w", err)
		}

		b := backfill{id: id, guideNumber: guide.String, recordNum: record.String}
		if b.guideNumber == "" {
			b.guideNumber = GuideNumberFor(id)
		}
		if b.recordNum == "" {
			b.recordNum = RandomRecordNumber()
		}
		pending = append(pending, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range pending {
		if _, err := tx.ExecContext(ctx, `
			UPDATE admissions
			SET guide_number = ?, patient_record_number = ?
			WHERE id = ?`, b.guideNumber, b.recordNum, b.id); err != nil {
			return fmt.Errorf("backfill admission %s: %w", b.id, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`CREATE INDEX idx_admissions_hospital_name ON admissions (hospital_name)`); err != nil {
		return fmt.Errorf("create hospital_name index: %w", err)
	}

	return nil
}

func downBackfillAdmissionNumbers(ctx context.Context, tx *sql.Tx) error {
	// Backfilled defaults are indistinguishable from user-entered values, so
	// the data change is not reversible; only the index is dropped.
	_, err := tx.ExecContext(ctx, `DROP INDEX idx_admissions_hospital_name`)
	return err
}
