package auth

import (
	"context"
	"sync"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

// AuthUseCase verificador de credenciales: valida usuario/contraseña contra el hash almacenado.
// No emite tokens; cada petición se autentica de nuevo.
type AuthUseCase struct {
	staff  repository.Collection[entity.Staff]
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(staff repository.Collection[entity.Staff], hasher PasswordHasher) *AuthUseCase {
	return &AuthUseCase{staff: staff, hasher: hasher}
}

// Verify autentica y devuelve la identidad. Usuario inexistente y contraseña errónea
// producen el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Verify(ctx context.Context, username, password string) (entity.Identity, error) {
	staff, err := uc.authenticate(ctx, username, password)
	if err != nil {
		return entity.Identity{}, err
	}
	return entity.Identity{ID: staff.ID.Hex(), Username: staff.Username, Role: staff.Role}, nil
}

// Login valida el cuerpo y devuelve la proyección reducida del empleado autenticado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.StaffResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	staff, err := uc.authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	return dto.ToStaffResponse(staff), nil
}

func (uc *AuthUseCase) authenticate(ctx context.Context, username, password string) (*entity.Staff, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	staff, err := uc.staff.FindOne(ctx, repository.Filter{entity.StaffFieldUsername: username})
	if err != nil {
		return nil, err
	}
	if staff == nil {
		// Igualar el costo de una comparación real para no revelar qué usuarios existen.
		_ = uc.hasher.Compare(uc.dummy(), password)
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.hasher.Compare(staff.PasswordHash, password); err != nil {
		return nil, err
	}
	if !entity.ValidRole(staff.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	return staff, nil
}

func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.hasher.Hash("beanscene-no-such-user")
	})
	return uc.dummyHash
}
