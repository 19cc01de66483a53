package shipper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrShipperNotAvailable     = errs.NewConflict("ORDER_010", "shipper is not available")
	ErrShipperNotFound         = errs.NewNotFound("ORDER_013", "shipper not found")
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrShipperIsNotConstructed = errors.New("Shipper must be created via NewShipper or RestoreShipper")
)

type Status string

const (
	Available Status = "AVAILABLE"
	Busy      Status = "BUSY"
	Offline   Status = "OFFLINE"
)

func (s Status) Validate() error {
	switch s {
	case Available, Busy, Offline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("shipperStatus", fmt.Errorf("%q is not supported", string(s)))
	}
}

type Shipper struct {
	guard     guard.ConstructorGuard
	id        kernel.UUID
	name      string
	status    Status
	updatedAt time.Time
}

func NewShipper(id kernel.UUID, name string, now time.Time) (*Shipper, error) {
	return RestoreShipper(id, name, Available, now)
}

func RestoreShipper(id kernel.UUID, name string, status Status, updatedAt time.Time) (*Shipper, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, ErrNameIsRequired)
	}
	if err := status.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Shipper{
		guard:     guard.NewConstructorGuard(),
		id:        id,
		name:      name,
		status:    status,
		updatedAt: updatedAt,
	}, nil
}

func (s *Shipper) Validate() error {
	if s == nil {
		return ErrShipperIsNotConstructed
	}
	return s.guard.Validate(ErrShipperIsNotConstructed)
}

func (s *Shipper) ID() kernel.UUID      { return s.id }
func (s *Shipper) Name() string         { return s.name }
func (s *Shipper) Status() Status       { return s.status }
func (s *Shipper) UpdatedAt() time.Time { return s.updatedAt }

func (s *Shipper) IsAvailable() bool {
	return s.status == Available
}

// MarkBusy reserves the shipper for a pickup.
func (s *Shipper) MarkBusy(now time.Time) error {
	if !s.IsAvailable() {
		return ErrShipperNotAvailable.WithMessage("shipper %s is %s", s.id, s.status)
	}
	s.status = Busy
	s.updatedAt = now
	return nil
}

// MarkAvailable releases the shipper after a delivery. Releasing an already
// available shipper is a no-op.
func (s *Shipper) MarkAvailable(now time.Time) {
	if s.status == Available {
		return
	}
	s.status = Available
	s.updatedAt = now
}
