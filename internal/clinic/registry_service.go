package clinic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RegistryService manages the people and content records the scheduling
// engine hangs off of: practitioners, their patient rosters and blog
// posts.
type RegistryService struct {
	repo Repository
	log  zerolog.Logger
}

func NewRegistryService(repo Repository, log zerolog.Logger) *RegistryService {
	return &RegistryService{repo: repo, log: log}
}

type PractitionerInput struct {
	Name      string
	Email     string
	Specialty *string
}

func (s *RegistryService) CreatePractitioner(ctx context.Context, in PractitionerInput) (*Practitioner, error) {
	p := &Practitioner{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Specialty: in.Specialty,
	}
	if err := s.repo.CreatePractitioner(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RegistryService) GetPractitioner(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	return s.repo.GetPractitionerByID(ctx, id)
}

type PatientInput struct {
	PractitionerID uuid.UUID
	FullName       string
	BirthDate      *time.Time
	Phone          *string
	Email          *string
	Notes          string
}

func (s *RegistryService) CreatePatient(ctx context.Context, in PatientInput) (*Patient, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, in.PractitionerID); err != nil {
		return nil, err
	}
	p := &Patient{
		ID:             uuid.New(),
		PractitionerID: in.PractitionerID,
		FullName:       in.FullName,
		BirthDate:      in.BirthDate,
		Phone:          in.Phone,
		Email:          in.Email,
		Notes:          in.Notes,
	}
	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RegistryService) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetPatientByID(ctx, id)
}

func (s *RegistryService) ListPatients(ctx context.Context, practitionerID uuid.UUID) ([]Patient, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, practitionerID); err != nil {
		return nil, err
	}
	return s.repo.ListPatientsByPractitioner(ctx, practitionerID)
}

type PostInput struct {
	AuthorID  uuid.UUID
	Title     string
	Content   string
	MediaPath *string
}

func (s *RegistryService) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	p := &Post{
		ID:        uuid.New(),
		AuthorID:  in.AuthorID,
		Title:     in.Title,
		Content:   in.Content,
		MediaPath: in.MediaPath,
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *RegistryService) ListPosts(ctx context.Context, authorID uuid.UUID) ([]Post, error) {
	if _, err := s.repo.GetPractitionerByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repo.ListPostsByAuthor(ctx, authorID)
}
