package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

// StaffUseCase administración de empleados (solo Manager a nivel HTTP).
type StaffUseCase struct {
	repo   repository.Collection[entity.Staff]
	hasher auth.PasswordHasher
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.Collection[entity.Staff], hasher auth.PasswordHasher) *StaffUseCase {
	return &StaffUseCase{repo: repo, hasher: hasher}
}

// List devuelve los empleados ordenados por rol, apellido y nombre.
func (uc *StaffUseCase) List(ctx context.Context) ([]dto.StaffResponse, error) {
	list, err := uc.repo.Find(ctx, nil,
		repository.Asc(entity.StaffFieldRole),
		repository.Asc(entity.StaffFieldLastName),
		repository.Asc(entity.StaffFieldFirstName),
	)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *dto.ToStaffResponse(s))
	}
	return out, nil
}

// Create hashea la contraseña y persiste. Username duplicado devuelve ErrDuplicate.
func (uc *StaffUseCase) Create(ctx context.Context, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	staff := &entity.Staff{
		ID:           domain.NewID(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := uc.repo.InsertOne(ctx, staff); err != nil {
		return nil, err
	}
	return dto.ToStaffResponse(staff), nil
}

// Update sobrescribe los datos del empleado (no la contraseña).
func (uc *StaffUseCase) Update(ctx context.Context, id string, in dto.UpdateStaffRequest) (domain.UpdateOutcome, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return "", err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return "", err
	}
	res, err := uc.repo.UpdateByID(ctx, oid, repository.Fields{
		entity.StaffFieldFirstName: in.FirstName,
		entity.StaffFieldLastName:  in.LastName,
		entity.StaffFieldUsername:  in.Username,
		entity.StaffFieldEmail:     in.Email,
		entity.StaffFieldRole:      in.Role,
	})
	if err != nil {
		return "", err
	}
	return res.Outcome()
}

// UpdatePassword reemplaza el hash. Cada hash lleva sal nueva, por lo que siempre hay cambio.
func (uc *StaffUseCase) UpdatePassword(ctx context.Context, id string, in dto.UpdatePasswordRequest) (domain.UpdateOutcome, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return "", err
	}
	if err := dto.Validate(in); err != nil {
		return "", err
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}
	res, err := uc.repo.UpdateByID(ctx, oid, repository.Fields{entity.StaffFieldPasswordHash: hash})
	if err != nil {
		return "", err
	}
	return res.Outcome()
}

// SetPasswordByUsername reemplaza la contraseña buscando por username (CLI de operación).
func (uc *StaffUseCase) SetPasswordByUsername(ctx context.Context, username string, in dto.UpdatePasswordRequest) error {
	staff, err := uc.repo.FindOne(ctx, repository.Filter{entity.StaffFieldUsername: username})
	if err != nil {
		return err
	}
	if staff == nil {
		return domain.ErrNotFound
	}
	_, err = uc.UpdatePassword(ctx, staff.ID.Hex(), in)
	return err
}

// Delete elimina por ID (0 eliminados si no existía).
func (uc *StaffUseCase) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return 0, err
	}
	return uc.repo.DeleteByID(ctx, oid)
}
