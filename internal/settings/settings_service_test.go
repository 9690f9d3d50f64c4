package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings"
	settingserrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings/errors"
)

type memSettingsRepo struct {
	stored *settings.SystemSettings
}

func (m *memSettingsRepo) Get(context.Context) (*settings.SystemSettings, error) {
	if m.stored == nil {
		return &settings.SystemSettings{
			LatePenaltyType: settings.PenaltyPerMinute,
			Currency:        "QAR",
		}, nil
	}
	cp := *m.stored
	return &cp, nil
}

func (m *memSettingsRepo) Save(_ context.Context, s *settings.SystemSettings) error {
	cp := *s
	m.stored = &cp
	return nil
}

func TestGetReturnsDefaultsBeforeFirstSave(t *testing.T) {
	svc := settings.NewService(&memSettingsRepo{})

	res, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, settings.PenaltyPerMinute, res.LatePenaltyType)
	assert.Zero(t, res.LatePenaltyAmount)
	assert.Equal(t, "QAR", res.Currency)
	assert.Empty(t, res.OvertimeHolidays)
}

func TestUpdatePersistsAndRoundTrips(t *testing.T) {
	repo := &memSettingsRepo{}
	svc := settings.NewService(repo)

	res, err := svc.Update(context.Background(), settings.UpdateSettingsRequest{
		LatePenaltyType:   settings.PenaltyPerOccurrence,
		LatePenaltyAmount: 25,
		Currency:          "QAR",
		OvertimeHolidays:  []string{"2024-12-18", "2025-01-01"},
	})
	require.NoError(t, err)

	assert.Equal(t, settings.PenaltyPerOccurrence, res.LatePenaltyType)
	assert.Equal(t, 25.0, res.LatePenaltyAmount)
	assert.Equal(t, []string{"2024-12-18", "2025-01-01"}, res.OvertimeHolidays)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res, got)

	set := repo.stored.HolidaySet()
	_, ok := set["2024-12-18"]
	assert.True(t, ok)
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	svc := settings.NewService(&memSettingsRepo{})

	_, err := svc.Update(context.Background(), settings.UpdateSettingsRequest{
		LatePenaltyType: "per_hour",
		Currency:        "QAR",
	})
	assert.ErrorIs(t, err, settingserrors.ErrInvalidPenaltyType)

	_, err = svc.Update(context.Background(), settings.UpdateSettingsRequest{
		LatePenaltyType:   settings.PenaltyPerMinute,
		LatePenaltyAmount: -1,
		Currency:          "QAR",
	})
	assert.ErrorIs(t, err, settingserrors.ErrNegativeAmount)

	_, err = svc.Update(context.Background(), settings.UpdateSettingsRequest{
		LatePenaltyType:  settings.PenaltyPerMinute,
		Currency:         "QAR",
		OvertimeHolidays: []string{"Dec 18"},
	})
	assert.ErrorIs(t, err, settingserrors.ErrInvalidHolidayDate)
}

func TestPolicyNormalizesUnknownType(t *testing.T) {
	cfg := settings.SystemSettings{LatePenaltyType: "weird", LatePenaltyAmount: 2}
	policy := cfg.Policy()
	assert.Equal(t, settings.PenaltyPerMinute, policy.Type)
	assert.Equal(t, 2.0, policy.Amount)
}
