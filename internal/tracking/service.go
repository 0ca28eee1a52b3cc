package tracking

import (
	"context"
	"fmt"

	"labtrack/internal/credential"
)

// Service coordinates registration and the entry/exit toggle.
type Service struct {
	repo       *Repository
	defaultLab string
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository, defaultLab string) *Service {
	if defaultLab == "" {
		defaultLab = "Main Lab"
	}
	return &Service{repo: repo, defaultLab: defaultLab}
}

// Registration is the outcome of registering a person: the assigned id plus
// the base64 QR image the person will scan with.
type Registration struct {
	PersonID int64
	QRCode   string
}

// Register creates a person and issues their credential. Fails with
// ErrDuplicateEmail when the email is already registered.
func (s *Service) Register(ctx context.Context, name, email, phone, department string) (Registration, error) {
	id, err := s.repo.CreatePerson(ctx, name, email, phone, department)
	if err != nil {
		return Registration{}, err
	}
	qr, err := credential.Encode(id, name, email)
	if err != nil {
		return Registration{}, err
	}
	return Registration{PersonID: id, QRCode: qr}, nil
}

// ScanResult describes the toggle outcome for one scan.
type ScanResult struct {
	Action      string
	PersonName  string
	PersonEmail string
	LabName     string
	Timestamp   string
}

// Scan decodes the credential and toggles the person's lab state: a scan
// while out opens a visit in labName, a scan while in closes the open visit.
// The person is resolved before any write, so a credential referencing an
// unknown id records nothing.
func (s *Service) Scan(ctx context.Context, qrContent, labName string) (ScanResult, error) {
	cred, err := credential.Decode(qrContent)
	if err != nil {
		return ScanResult{}, err
	}
	if labName == "" {
		labName = s.defaultLab
	}

	person, err := s.repo.GetPerson(ctx, cred.ID)
	if err != nil {
		return ScanResult{}, err
	}
	if person == nil {
		return ScanResult{}, fmt.Errorf("%w: id %d", ErrPersonNotFound, cred.ID)
	}

	now := Now()
	action, err := s.repo.ToggleVisit(ctx, person.ID, labName, now)
	if err != nil {
		return ScanResult{}, err
	}

	return ScanResult{
		Action:      action,
		PersonName:  person.Name,
		PersonEmail: person.Email,
		LabName:     labName,
		Timestamp:   now,
	}, nil
}
