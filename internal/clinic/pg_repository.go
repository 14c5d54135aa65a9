package clinic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psicare/clinic-scheduling/internal/calendar"
)

// Recurrence descriptors are stored as plain text columns.

func toFrequency(s *string) *calendar.Frequency {
	if s == nil {
		return nil
	}
	f := calendar.Frequency(*s)
	return &f
}

func fromFrequency(f *calendar.Frequency) *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

func toSpan(s *string) *calendar.Span {
	if s == nil {
		return nil
	}
	sp := calendar.Span(*s)
	return &sp
}

func fromSpan(sp *calendar.Span) *string {
	if sp == nil {
		return nil
	}
	s := string(*sp)
	return &s
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repository code serves plain calls and transaction-bound ones.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool, q: pool}
}

// RunInTransaction runs fn against a repository bound to one transaction.
// Nested calls reuse the enclosing transaction.
func (r *PgRepository) RunInTransaction(ctx context.Context, fn func(Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&PgRepository{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Wall-clock TIME columns travel as pgtype.Time (microseconds since
// midnight); in Go they are time.Time values on the zero date.

func toPgClock(t time.Time) pgtype.Time {
	us := int64(t.Hour())*3600_000_000 + int64(t.Minute())*60_000_000 + int64(t.Second())*1_000_000
	return pgtype.Time{Microseconds: us, Valid: true}
}

func fromPgClock(t pgtype.Time) time.Time {
	base := time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(t.Microseconds) * time.Microsecond)
}

// Helpers

func scanPractitioner(row pgx.Row) (*Practitioner, error) {
	var p Practitioner
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Specialty, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPractitionerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PractitionerID, &p.FullName, &p.BirthDate, &p.Phone, &p.Email, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanNote(row pgx.Row) (*ClinicalNote, error) {
	var n ClinicalNote
	err := row.Scan(&n.ID, &n.PatientID, &n.SessionAt, &n.Ciphertext, &n.SessionType, &n.DurationMinutes, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	var start, end pgtype.Time
	err := row.Scan(&s.ID, &s.PractitionerID, &s.Date, &start, &end, &s.SessionType, &s.PriceCents, &s.Notes, &s.Booked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	s.StartTime = fromPgClock(start)
	s.EndTime = fromPgClock(end)
	return &s, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.PractitionerID, &a.StartsAt, &a.Status, &a.PriceCents, &a.DurationMinutes, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func scanAgendaEntry(row pgx.Row) (*AgendaEntry, error) {
	var e AgendaEntry
	var freq, span *string
	err := row.Scan(&e.ID, &e.PatientID, &e.PractitionerID, &e.StartsAt, &e.Engagements, &e.Location, &e.Notes, &e.Status, &e.Recurring, &freq, &span, &e.GroupID, &e.ParentID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAgendaEntryNotFound
		}
		return nil, err
	}
	e.Frequency = toFrequency(freq)
	e.Span = toSpan(span)
	return &e, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.MediaPath, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgRepository) count(ctx context.Context, sql string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Practitioners

func (r *PgRepository) CreatePractitioner(ctx context.Context, p *Practitioner) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO practitioners (id, name, email, specialty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`, p.ID, p.Name, p.Email, p.Specialty)
	return err
}

func (r *PgRepository) GetPractitionerByID(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, name, email, specialty, created_at, updated_at
		FROM practitioners
		WHERE id = $1
	`, id)
	return scanPractitioner(row)
}

func (r *PgRepository) DeletePractitioner(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM practitioners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPractitionerNotFound
	}
	return nil
}

// Patients

func (r *PgRepository) CreatePatient(ctx context.Context, p *Patient) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO patients (id, practitioner_id, full_name, birth_date, phone, email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`, p.ID, p.PractitionerID, p.FullName, p.BirthDate, p.Phone, p.Email, p.Notes)
	return err
}

func (r *PgRepository) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, practitioner_id, full_name, birth_date, phone, email, notes, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) ListPatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Patient, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, practitioner_id, full_name, birth_date, phone, email, notes, created_at, updated_at
		FROM patients
		WHERE practitioner_id = $1
		ORDER BY full_name
	`, practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PgRepository) CountPatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM patients WHERE practitioner_id = $1`, practitionerID)
}

func (r *PgRepository) ReassignPatients(ctx context.Context, fromPractitioner, toPractitioner uuid.UUID) (int, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE patients
		SET practitioner_id = $2,
		    updated_at = now()
		WHERE practitioner_id = $1
	`, fromPractitioner, toPractitioner)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *PgRepository) DeletePatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM patients WHERE practitioner_id = $1`, practitionerID)
	return err
}

// Clinical notes

func (r *PgRepository) CreateNote(ctx context.Context, n *ClinicalNote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clinical_notes (id, patient_id, session_at, ciphertext, session_type, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`, n.ID, n.PatientID, n.SessionAt, n.Ciphertext, n.SessionType, n.DurationMinutes)
	return err
}

func (r *PgRepository) GetNoteByID(ctx context.Context, id uuid.UUID) (*ClinicalNote, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, patient_id, session_at, ciphertext, session_type, duration_minutes, created_at, updated_at
		FROM clinical_notes
		WHERE id = $1
	`, id)
	return scanNote(row)
}

func (r *PgRepository) ListNotesByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalNote, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, patient_id, session_at, ciphertext, session_type, duration_minutes, created_at, updated_at
		FROM clinical_notes
		WHERE patient_id = $1
		ORDER BY session_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ClinicalNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	return result, rows.Err()
}

func (r *PgRepository) CountNotesByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	return r.count(ctx, `
		SELECT count(*)
		FROM clinical_notes n
		JOIN patients p ON p.id = n.patient_id
		WHERE p.practitioner_id = $1
	`, practitionerID)
}

func (r *PgRepository) DeleteNotesByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM clinical_notes
		WHERE patient_id IN (SELECT id FROM patients WHERE practitioner_id = $1)
	`, practitionerID)
	return err
}

// Slots

// CreateSlot inserts a slot unless its key already exists. The unique
// index decides races; a losing insert is simply "not created".
func (r *PgRepository) CreateSlot(ctx context.Context, s *Slot) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO slots (id, practitioner_id, slot_date, start_time, end_time, session_type, price_cents, notes, booked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, now(), now())
		ON CONFLICT (practitioner_id, slot_date, start_time) DO NOTHING
	`, s.ID, s.PractitionerID, s.Date, toPgClock(s.StartTime), toPgClock(s.EndTime), s.SessionType, s.PriceCents, s.Notes)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const slotColumns = `id, practitioner_id, slot_date, start_time, end_time, session_type, price_cents, notes, booked, created_at, updated_at`

func (r *PgRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	row := r.q.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id = $1`, id)
	return scanSlot(row)
}

func (r *PgRepository) GetSlotByKey(ctx context.Context, practitionerID uuid.UUID, date, startTime time.Time) (*Slot, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE practitioner_id = $1 AND slot_date = $2 AND start_time = $3
	`, practitionerID, date, toPgClock(startTime))
	return scanSlot(row)
}

func (r *PgRepository) listSlots(ctx context.Context, sql string, args ...any) ([]Slot, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *PgRepository) ListFreeSlots(ctx context.Context, practitionerID uuid.UUID) ([]Slot, error) {
	return r.listSlots(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE practitioner_id = $1 AND booked = FALSE
	`, practitionerID)
}

func (r *PgRepository) ListFreeSlotsByDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]Slot, error) {
	return r.listSlots(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE practitioner_id = $1 AND slot_date = $2 AND booked = FALSE
		ORDER BY start_time
	`, practitionerID, date)
}

func (r *PgRepository) UpdateSlot(ctx context.Context, id uuid.UUID, upd SlotUpdate) (*Slot, error) {
	var end pgtype.Time
	if upd.EndTime != nil {
		end = toPgClock(*upd.EndTime)
	}
	row := r.q.QueryRow(ctx, `
		UPDATE slots
		SET end_time = COALESCE($2, end_time),
		    session_type = COALESCE($3, session_type),
		    price_cents = COALESCE($4, price_cents),
		    notes = COALESCE($5, notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+slotColumns+`
	`, id, end, upd.SessionType, upd.PriceCents, upd.Notes)
	return scanSlot(row)
}

func (r *PgRepository) MarkSlotBooked(ctx context.Context, id uuid.UUID) (*Slot, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE slots
		SET booked = TRUE,
		    updated_at = now()
		WHERE id = $1
		  AND booked = FALSE
		RETURNING `+slotColumns+`
	`, id)
	return scanSlot(row)
}

func (r *PgRepository) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *PgRepository) CountSlotsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM slots WHERE practitioner_id = $1`, practitionerID)
}

func (r *PgRepository) DeleteSlotsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM slots WHERE practitioner_id = $1`, practitionerID)
	return err
}

// Appointments

const appointmentColumns = `id, patient_id, practitioner_id, starts_at, status, price_cents, duration_minutes, notes, created_at, updated_at`

func (r *PgRepository) CreateAppointment(ctx context.Context, a *Appointment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, practitioner_id, starts_at, status, price_cents, duration_minutes, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`, a.ID, a.PatientID, a.PractitionerID, a.StartsAt, a.Status, a.PriceCents, a.DurationMinutes, a.Notes)
	return err
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

func (r *PgRepository) GetAppointmentAt(ctx context.Context, patientID, practitionerID uuid.UUID, startsAt time.Time) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1 AND practitioner_id = $2 AND starts_at = $3
		LIMIT 1
	`, patientID, practitionerID, startsAt)
	return scanAppointment(row)
}

func (r *PgRepository) ListAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Appointment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE practitioner_id = $1
		ORDER BY starts_at
	`, practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+appointmentColumns+`
	`, id, status)
	return scanAppointment(row)
}

func (r *PgRepository) CountAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM appointments WHERE practitioner_id = $1`, practitionerID)
}

func (r *PgRepository) DeleteAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE practitioner_id = $1`, practitionerID)
	return err
}

// Agenda entries

const agendaColumns = `id, patient_id, practitioner_id, starts_at, engagements, location, notes, status, recurring, frequency, span, group_id, parent_id, created_at, updated_at`

func (r *PgRepository) CreateAgendaEntry(ctx context.Context, e *AgendaEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO agenda_entries (id, patient_id, practitioner_id, starts_at, engagements, location, notes, status, recurring, frequency, span, group_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
	`, e.ID, e.PatientID, e.PractitionerID, e.StartsAt, e.Engagements, e.Location, e.Notes, e.Status, e.Recurring, fromFrequency(e.Frequency), fromSpan(e.Span), e.GroupID, e.ParentID)
	return err
}

func (r *PgRepository) GetAgendaEntryByID(ctx context.Context, id uuid.UUID) (*AgendaEntry, error) {
	row := r.q.QueryRow(ctx, `SELECT `+agendaColumns+` FROM agenda_entries WHERE id = $1`, id)
	return scanAgendaEntry(row)
}

func (r *PgRepository) listAgenda(ctx context.Context, sql string, args ...any) ([]AgendaEntry, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AgendaEntry
	for rows.Next() {
		e, err := scanAgendaEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *PgRepository) ListAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]AgendaEntry, error) {
	return r.listAgenda(ctx, `
		SELECT `+agendaColumns+`
		FROM agenda_entries
		WHERE practitioner_id = $1
		ORDER BY starts_at
	`, practitionerID)
}

func (r *PgRepository) ListAgendaByGroup(ctx context.Context, groupID uuid.UUID) ([]AgendaEntry, error) {
	return r.listAgenda(ctx, `
		SELECT `+agendaColumns+`
		FROM agenda_entries
		WHERE group_id = $1
		ORDER BY starts_at
	`, groupID)
}

func (r *PgRepository) ActiveAgendaEntryAt(ctx context.Context, practitionerID uuid.UUID, at time.Time, exclude *uuid.UUID) (*AgendaEntry, error) {
	row := r.q.QueryRow(ctx, `
		SELECT `+agendaColumns+`
		FROM agenda_entries
		WHERE practitioner_id = $1
		  AND starts_at = $2
		  AND status IN ('scheduled', 'confirmed')
		  AND ($3::uuid IS NULL OR id <> $3)
		LIMIT 1
	`, practitionerID, at, exclude)
	return scanAgendaEntry(row)
}

func (r *PgRepository) UpdateAgendaEntry(ctx context.Context, id uuid.UUID, upd AgendaUpdate) (*AgendaEntry, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE agenda_entries
		SET patient_id = COALESCE($2, patient_id),
		    starts_at = COALESCE($3, starts_at),
		    engagements = COALESCE($4, engagements),
		    location = COALESCE($5, location),
		    notes = COALESCE($6, notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+agendaColumns+`
	`, id, upd.PatientID, upd.StartsAt, upd.Engagements, upd.Location, upd.Notes)
	return scanAgendaEntry(row)
}

func (r *PgRepository) UpdateAgendaStatus(ctx context.Context, id uuid.UUID, status Status) (*AgendaEntry, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE agenda_entries
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+agendaColumns+`
	`, id, status)
	return scanAgendaEntry(row)
}

func (r *PgRepository) DeleteAgendaEntry(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM agenda_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAgendaEntryNotFound
	}
	return nil
}

func (r *PgRepository) DeleteAgendaByGroup(ctx context.Context, practitionerID, groupID uuid.UUID) (int, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM agenda_entries
		WHERE group_id = $2 AND practitioner_id = $1
	`, practitionerID, groupID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *PgRepository) CountAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM agenda_entries WHERE practitioner_id = $1`, practitionerID)
}

func (r *PgRepository) DeleteAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM agenda_entries WHERE practitioner_id = $1`, practitionerID)
	return err
}

// Posts

func (r *PgRepository) CreatePost(ctx context.Context, p *Post) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO posts (id, author_id, title, content, media_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
	`, p.ID, p.AuthorID, p.Title, p.Content, p.MediaPath)
	return err
}

func (r *PgRepository) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, author_id, title, content, media_path, created_at, updated_at
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PgRepository) CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM posts WHERE author_id = $1`, authorID)
}

func (r *PgRepository) DeletePostsByAuthor(ctx context.Context, authorID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID)
	return err
}
