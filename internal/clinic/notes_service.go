package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/psicare/clinic-scheduling/internal/crypt"
)

// UnreadableNoteContent replaces note bodies whose ciphertext no longer
// verifies, typically after a key rotation gone wrong. The record stays
// listed so the session history keeps its shape.
const UnreadableNoteContent = "[conteúdo indisponível: não foi possível decifrar]"

// NotesService stores clinical session notes. Bodies are encrypted
// before they reach the repository and decrypted on the way out; the
// database never sees plaintext.
type NotesService struct {
	repo Repository
	enc  *crypt.Encryptor
	log  zerolog.Logger
}

func NewNotesService(repo Repository, enc *crypt.Encryptor, log zerolog.Logger) *NotesService {
	return &NotesService{repo: repo, enc: enc, log: log}
}

type NoteInput struct {
	PatientID       uuid.UUID
	SessionAt       time.Time
	Content         string
	SessionType     *string
	DurationMinutes *int
}

// NoteView is a decrypted note as callers see it. Readable is false when
// the stored ciphertext failed verification and Content holds the
// placeholder marker.
type NoteView struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	SessionAt       time.Time `json:"session_at"`
	Content         string    `json:"content"`
	SessionType     *string   `json:"session_type,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Readable        bool      `json:"readable"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *NotesService) view(n *ClinicalNote) NoteView {
	v := NoteView{
		ID:              n.ID,
		PatientID:       n.PatientID,
		SessionAt:       n.SessionAt,
		SessionType:     n.SessionType,
		DurationMinutes: n.DurationMinutes,
		Readable:        true,
		CreatedAt:       n.CreatedAt,
	}
	content, err := s.enc.Decrypt(n.Ciphertext)
	if err != nil {
		if errors.Is(err, crypt.ErrDecrypt) {
			s.log.Warn().Str("note_id", n.ID.String()).Msg("note ciphertext failed verification")
		}
		v.Content = UnreadableNoteContent
		v.Readable = false
		return v
	}
	v.Content = content
	return v
}

// CreateNote encrypts and stores a session note for a patient.
func (s *NotesService) CreateNote(ctx context.Context, in NoteInput) (*NoteView, error) {
	if _, err := s.repo.GetPatientByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	ciphertext, err := s.enc.Encrypt(in.Content)
	if err != nil {
		return nil, err
	}

	note := &ClinicalNote{
		ID:              uuid.New(),
		PatientID:       in.PatientID,
		SessionAt:       in.SessionAt,
		Ciphertext:      ciphertext,
		SessionType:     in.SessionType,
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	v := s.view(note)
	return &v, nil
}

func (s *NotesService) GetNote(ctx context.Context, id uuid.UUID) (*NoteView, error) {
	note, err := s.repo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(note)
	return &v, nil
}

// ListPatientNotes returns the patient's session history, newest first.
// Undecryptable notes are included with the placeholder body.
func (s *NotesService) ListPatientNotes(ctx context.Context, patientID uuid.UUID) ([]NoteView, error) {
	if _, err := s.repo.GetPatientByID(ctx, patientID); err != nil {
		return nil, err
	}
	notes, err := s.repo.ListNotesByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	views := make([]NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, s.view(&notes[i]))
	}
	return views, nil
}
