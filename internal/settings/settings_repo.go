package settings

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context) (*SystemSettings, error)
	Save(ctx context.Context, s *SystemSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*SystemSettings, error) {
	var s SystemSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &SystemSettings{
			LatePenaltyType: PenaltyPerMinute,
			Currency:        "QAR",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Save(ctx context.Context, s *SystemSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// PenaltyPolicy is the view of settings the payroll calculator consumes.
type PenaltyPolicy struct {
	Type   string
	Amount float64
}

func (s *SystemSettings) Policy() PenaltyPolicy {
	t := s.LatePenaltyType
	if t != PenaltyPerOccurrence {
		t = PenaltyPerMinute
	}
	return PenaltyPolicy{Type: t, Amount: s.LatePenaltyAmount}
}

// HolidaySet parses the stored holiday dates into a lookup set.
func (s *SystemSettings) HolidaySet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, d := range strings.Split(s.OvertimeHolidays, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			set[d] = struct{}{}
		}
	}
	return set
}
