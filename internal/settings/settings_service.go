package settings

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	settingserrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/settings/errors"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("settings.service"),
	}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(cfg), nil
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	if req.LatePenaltyType != PenaltyPerMinute && req.LatePenaltyType != PenaltyPerOccurrence {
		return SettingsResponse{}, settingserrors.ErrInvalidPenaltyType
	}
	if req.LatePenaltyAmount < 0 {
		return SettingsResponse{}, settingserrors.ErrNegativeAmount
	}
	for _, d := range req.OvertimeHolidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return SettingsResponse{}, settingserrors.ErrInvalidHolidayDate
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	cfg.LatePenaltyType = req.LatePenaltyType
	cfg.LatePenaltyAmount = req.LatePenaltyAmount
	cfg.Currency = req.Currency
	cfg.OvertimeHolidays = strings.Join(req.OvertimeHolidays, ",")

	if err := s.repo.Save(ctx, cfg); err != nil {
		s.logger.Error("settings persist failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	s.logger.Info("system settings updated",
		zap.String("late_penalty_type", cfg.LatePenaltyType),
		zap.Float64("late_penalty_amount", cfg.LatePenaltyAmount),
		zap.Int("overtime_holidays", len(req.OvertimeHolidays)),
	)
	return mapToResponse(cfg), nil
}

func mapToResponse(cfg *SystemSettings) SettingsResponse {
	resp := SettingsResponse{
		LatePenaltyType:   cfg.LatePenaltyType,
		LatePenaltyAmount: cfg.LatePenaltyAmount,
		Currency:          cfg.Currency,
		OvertimeHolidays:  []string{},
	}
	for _, d := range strings.Split(cfg.OvertimeHolidays, ",") {
		if d = strings.TrimSpace(d); d != "" {
			resp.OvertimeHolidays = append(resp.OvertimeHolidays, d)
		}
	}
	return resp
}
