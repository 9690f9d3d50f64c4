package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeerrors "github.com/walidkalikali02-ux/doha-roastery-pos-v2-sub000/internal/employee/errors"
)

// The employee registry is owned by the main POS backend; this service
// is a read-only view over it for scheduling and payroll.
//
//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, employeeID string) (EmployeeResponse, error)
	ListActive(ctx context.Context) ([]EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("employee.service"),
	}
}

func (s *service) Get(ctx context.Context, employeeID string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(emp), nil
}

func (s *service) ListActive(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

func mapToResponse(emp *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               emp.ID.String(),
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		Role:             emp.Role,
		EmploymentStatus: emp.EmploymentStatus,
		IsOnLeave:        emp.IsOnLeave,
		ShiftStartTime:   emp.ShiftStartTime,
		ShiftEndTime:     emp.ShiftEndTime,
		ShiftBreakMins:   emp.ShiftBreakMinutes,
		ShiftGraceMins:   emp.ShiftGraceMinutes,
		SalaryBase:       emp.SalaryBase,
		SalaryAllowances: emp.SalaryAllowances,
	}
	if emp.Department != nil {
		resp.Department = *emp.Department
	}
	if emp.BankName != nil {
		resp.BankName = *emp.BankName
	}
	if emp.IBAN != nil {
		resp.IBAN = *emp.IBAN
	}
	if emp.LocationID != nil {
		v := emp.LocationID.String()
		resp.LocationID = &v
	}
	return resp
}
