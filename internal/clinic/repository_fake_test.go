package clinic

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/psicare/clinic-scheduling/internal/calendar"
)

// fakeRepo is an in-memory Repository for service tests. Transactions
// snapshot the whole state and restore it when the callback fails, so
// all-or-nothing behavior can be asserted without a database. failOn
// injects an error into a named method.
type fakeRepo struct {
	practitioners map[uuid.UUID]Practitioner
	patients      map[uuid.UUID]Patient
	notes         map[uuid.UUID]ClinicalNote
	slots         map[uuid.UUID]Slot
	appointments  map[uuid.UUID]Appointment
	agenda        map[uuid.UUID]AgendaEntry
	posts         map[uuid.UUID]Post
	failOn        map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		practitioners: make(map[uuid.UUID]Practitioner),
		patients:      make(map[uuid.UUID]Patient),
		notes:         make(map[uuid.UUID]ClinicalNote),
		slots:         make(map[uuid.UUID]Slot),
		appointments:  make(map[uuid.UUID]Appointment),
		agenda:        make(map[uuid.UUID]AgendaEntry),
		posts:         make(map[uuid.UUID]Post),
		failOn:        make(map[string]error),
	}
}

func (r *fakeRepo) fail(method string) error {
	return r.failOn[method]
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (r *fakeRepo) snapshot() *fakeRepo {
	return &fakeRepo{
		practitioners: cloneMap(r.practitioners),
		patients:      cloneMap(r.patients),
		notes:         cloneMap(r.notes),
		slots:         cloneMap(r.slots),
		appointments:  cloneMap(r.appointments),
		agenda:        cloneMap(r.agenda),
		posts:         cloneMap(r.posts),
		failOn:        r.failOn,
	}
}

func (r *fakeRepo) restore(s *fakeRepo) {
	r.practitioners = s.practitioners
	r.patients = s.patients
	r.notes = s.notes
	r.slots = s.slots
	r.appointments = s.appointments
	r.agenda = s.agenda
	r.posts = s.posts
}

func (r *fakeRepo) RunInTransaction(ctx context.Context, fn func(Repository) error) error {
	saved := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(saved)
		return err
	}
	return nil
}

// Practitioners

func (r *fakeRepo) CreatePractitioner(ctx context.Context, p *Practitioner) error {
	r.practitioners[p.ID] = *p
	return nil
}

func (r *fakeRepo) GetPractitionerByID(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	p, ok := r.practitioners[id]
	if !ok {
		return nil, ErrPractitionerNotFound
	}
	return &p, nil
}

func (r *fakeRepo) DeletePractitioner(ctx context.Context, id uuid.UUID) error {
	if err := r.fail("DeletePractitioner"); err != nil {
		return err
	}
	if _, ok := r.practitioners[id]; !ok {
		return ErrPractitionerNotFound
	}
	delete(r.practitioners, id)
	return nil
}

// Patients

func (r *fakeRepo) CreatePatient(ctx context.Context, p *Patient) error {
	r.patients[p.ID] = *p
	return nil
}

func (r *fakeRepo) GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (r *fakeRepo) ListPatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Patient, error) {
	var out []Patient
	for _, p := range r.patients {
		if p.PractitionerID == practitionerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *fakeRepo) CountPatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.patients {
		if p.PractitionerID == practitionerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) ReassignPatients(ctx context.Context, fromPractitioner, toPractitioner uuid.UUID) (int, error) {
	if err := r.fail("ReassignPatients"); err != nil {
		return 0, err
	}
	n := 0
	for id, p := range r.patients {
		if p.PractitionerID == fromPractitioner {
			p.PractitionerID = toPractitioner
			r.patients[id] = p
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeletePatientsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	if err := r.fail("DeletePatientsByPractitioner"); err != nil {
		return err
	}
	for id, p := range r.patients {
		if p.PractitionerID == practitionerID {
			delete(r.patients, id)
		}
	}
	return nil
}

// Clinical notes

func (r *fakeRepo) CreateNote(ctx context.Context, n *ClinicalNote) error {
	r.notes[n.ID] = *n
	return nil
}

func (r *fakeRepo) GetNoteByID(ctx context.Context, id uuid.UUID) (*ClinicalNote, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return &n, nil
}

func (r *fakeRepo) ListNotesByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalNote, error) {
	var out []ClinicalNote
	for _, n := range r.notes {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionAt.After(out[j].SessionAt) })
	return out, nil
}

func (r *fakeRepo) CountNotesByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	n := 0
	for _, note := range r.notes {
		if p, ok := r.patients[note.PatientID]; ok && p.PractitionerID == practitionerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeleteNotesByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	if err := r.fail("DeleteNotesByPractitioner"); err != nil {
		return err
	}
	for id, note := range r.notes {
		if p, ok := r.patients[note.PatientID]; ok && p.PractitionerID == practitionerID {
			delete(r.notes, id)
		}
	}
	return nil
}

// Slots

func slotKey(practitionerID uuid.UUID, date, startTime time.Time) string {
	return practitionerID.String() + "|" + calendar.ISODate(date) + "|" + startTime.Format("15:04")
}

func (r *fakeRepo) CreateSlot(ctx context.Context, s *Slot) (bool, error) {
	if err := r.fail("CreateSlot"); err != nil {
		return false, err
	}
	key := slotKey(s.PractitionerID, s.Date, s.StartTime)
	for _, existing := range r.slots {
		if slotKey(existing.PractitionerID, existing.Date, existing.StartTime) == key {
			return false, nil
		}
	}
	r.slots[s.ID] = *s
	return true, nil
}

func (r *fakeRepo) GetSlotByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetSlotByKey(ctx context.Context, practitionerID uuid.UUID, date, startTime time.Time) (*Slot, error) {
	key := slotKey(practitionerID, date, startTime)
	for _, s := range r.slots {
		if slotKey(s.PractitionerID, s.Date, s.StartTime) == key {
			return &s, nil
		}
	}
	return nil, ErrSlotNotFound
}

func (r *fakeRepo) ListFreeSlots(ctx context.Context, practitionerID uuid.UUID) ([]Slot, error) {
	var out []Slot
	for _, s := range r.slots {
		if s.PractitionerID == practitionerID && !s.Booked {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListFreeSlotsByDate(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]Slot, error) {
	var out []Slot
	for _, s := range r.slots {
		if s.PractitionerID == practitionerID && !s.Booked && calendar.ISODate(s.Date) == calendar.ISODate(date) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) UpdateSlot(ctx context.Context, id uuid.UUID, upd SlotUpdate) (*Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	if upd.EndTime != nil {
		s.EndTime = *upd.EndTime
	}
	if upd.SessionType != nil {
		s.SessionType = upd.SessionType
	}
	if upd.PriceCents != nil {
		s.PriceCents = upd.PriceCents
	}
	if upd.Notes != nil {
		s.Notes = *upd.Notes
	}
	r.slots[id] = s
	return &s, nil
}

func (r *fakeRepo) MarkSlotBooked(ctx context.Context, id uuid.UUID) (*Slot, error) {
	s, ok := r.slots[id]
	if !ok || s.Booked {
		// Mirrors the guarded UPDATE: a booked row matches nothing.
		return nil, ErrSlotNotFound
	}
	s.Booked = true
	r.slots[id] = s
	return &s, nil
}

func (r *fakeRepo) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.slots[id]; !ok {
		return ErrSlotNotFound
	}
	delete(r.slots, id)
	return nil
}

func (r *fakeRepo) CountSlotsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	n := 0
	for _, s := range r.slots {
		if s.PractitionerID == practitionerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeleteSlotsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	if err := r.fail("DeleteSlotsByPractitioner"); err != nil {
		return err
	}
	for id, s := range r.slots {
		if s.PractitionerID == practitionerID {
			delete(r.slots, id)
		}
	}
	return nil
}

// Appointments

func (r *fakeRepo) CreateAppointment(ctx context.Context, a *Appointment) error {
	if err := r.fail("CreateAppointment"); err != nil {
		return err
	}
	r.appointments[a.ID] = *a
	return nil
}

func (r *fakeRepo) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *fakeRepo) GetAppointmentAt(ctx context.Context, patientID, practitionerID uuid.UUID, startsAt time.Time) (*Appointment, error) {
	for _, a := range r.appointments {
		if a.PatientID == patientID && a.PractitionerID == practitionerID && a.StartsAt.Equal(startsAt) {
			return &a, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (r *fakeRepo) ListAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.appointments {
		if a.PractitionerID == practitionerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *fakeRepo) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	a.Status = status
	r.appointments[id] = a
	return &a, nil
}

func (r *fakeRepo) CountAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	n := 0
	for _, a := range r.appointments {
		if a.PractitionerID == practitionerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeleteAppointmentsByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	if err := r.fail("DeleteAppointmentsByPractitioner"); err != nil {
		return err
	}
	for id, a := range r.appointments {
		if a.PractitionerID == practitionerID {
			delete(r.appointments, id)
		}
	}
	return nil
}

// Agenda entries

func (r *fakeRepo) CreateAgendaEntry(ctx context.Context, e *AgendaEntry) error {
	if err := r.fail("CreateAgendaEntry"); err != nil {
		return err
	}
	r.agenda[e.ID] = *e
	return nil
}

func (r *fakeRepo) GetAgendaEntryByID(ctx context.Context, id uuid.UUID) (*AgendaEntry, error) {
	e, ok := r.agenda[id]
	if !ok {
		return nil, ErrAgendaEntryNotFound
	}
	return &e, nil
}

func (r *fakeRepo) ListAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]AgendaEntry, error) {
	var out []AgendaEntry
	for _, e := range r.agenda {
		if e.PractitionerID == practitionerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *fakeRepo) ListAgendaByGroup(ctx context.Context, groupID uuid.UUID) ([]AgendaEntry, error) {
	var out []AgendaEntry
	for _, e := range r.agenda {
		if e.GroupID != nil && *e.GroupID == groupID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *fakeRepo) ActiveAgendaEntryAt(ctx context.Context, practitionerID uuid.UUID, at time.Time, exclude *uuid.UUID) (*AgendaEntry, error) {
	for _, e := range r.agenda {
		if e.PractitionerID != practitionerID || !e.StartsAt.Equal(at) {
			continue
		}
		if e.Status != StatusScheduled && e.Status != StatusConfirmed {
			continue
		}
		if exclude != nil && e.ID == *exclude {
			continue
		}
		return &e, nil
	}
	return nil, ErrAgendaEntryNotFound
}

func (r *fakeRepo) UpdateAgendaEntry(ctx context.Context, id uuid.UUID, upd AgendaUpdate) (*AgendaEntry, error) {
	e, ok := r.agenda[id]
	if !ok {
		return nil, ErrAgendaEntryNotFound
	}
	if upd.PatientID != nil {
		e.PatientID = *upd.PatientID
	}
	if upd.StartsAt != nil {
		e.StartsAt = *upd.StartsAt
	}
	if upd.Engagements != nil {
		e.Engagements = *upd.Engagements
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Notes != nil {
		e.Notes = *upd.Notes
	}
	r.agenda[id] = e
	return &e, nil
}

func (r *fakeRepo) UpdateAgendaStatus(ctx context.Context, id uuid.UUID, status Status) (*AgendaEntry, error) {
	e, ok := r.agenda[id]
	if !ok {
		return nil, ErrAgendaEntryNotFound
	}
	e.Status = status
	r.agenda[id] = e
	return &e, nil
}

func (r *fakeRepo) DeleteAgendaEntry(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.agenda[id]; !ok {
		return ErrAgendaEntryNotFound
	}
	delete(r.agenda, id)
	return nil
}

func (r *fakeRepo) DeleteAgendaByGroup(ctx context.Context, practitionerID, groupID uuid.UUID) (int, error) {
	n := 0
	for id, e := range r.agenda {
		if e.PractitionerID == practitionerID && e.GroupID != nil && *e.GroupID == groupID {
			delete(r.agenda, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) (int, error) {
	n := 0
	for _, e := range r.agenda {
		if e.PractitionerID == practitionerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeleteAgendaByPractitioner(ctx context.Context, practitionerID uuid.UUID) error {
	if err := r.fail("DeleteAgendaByPractitioner"); err != nil {
		return err
	}
	for id, e := range r.agenda {
		if e.PractitionerID == practitionerID {
			delete(r.agenda, id)
		}
	}
	return nil
}

// Posts

func (r *fakeRepo) CreatePost(ctx context.Context, p *Post) error {
	r.posts[p.ID] = *p
	return nil
}

func (r *fakeRepo) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	var out []Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) CountPostsByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeletePostsByAuthor(ctx context.Context, authorID uuid.UUID) error {
	if err := r.fail("DeletePostsByAuthor"); err != nil {
		return err
	}
	for id, p := range r.posts {
		if p.AuthorID == authorID {
			delete(r.posts, id)
		}
	}
	return nil
}
