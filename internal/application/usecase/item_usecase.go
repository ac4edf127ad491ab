package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

// MaxImageSize tamaño máximo aceptado para la imagen de un ítem.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ItemUseCase casos de uso de ítems del menú.
type ItemUseCase struct {
	repo   repository.Collection[entity.Item]
	images ports.ImageStore // nil = subida de imágenes deshabilitada
}

// NewItemUseCase construye el caso de uso. images puede ser nil.
func NewItemUseCase(repo repository.Collection[entity.Item], images ports.ImageStore) *ItemUseCase {
	return &ItemUseCase{repo: repo, images: images}
}

// List devuelve el menú agrupado: categoryName ascendente y luego name ascendente.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.repo.Find(ctx, nil,
		repository.Asc(entity.ItemFieldCategoryName),
		repository.Asc(entity.ItemFieldName),
	)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *dto.ToItemResponse(it))
	}
	return out, nil
}

// GetByID obtiene un ítem; ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	item, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToItemResponse(item), nil
}

// Create crea un ítem con valores por defecto available=false, glutenFree=false, dietType=neither.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item := &entity.Item{ID: domain.NewID()}
	if err := applyItemRequest(item, in); err != nil {
		return nil, err
	}
	if err := uc.repo.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// Update sobrescribe todos los campos editables con los valores recibidos.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (domain.UpdateOutcome, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return "", err
	}
	var item entity.Item
	if err := applyItemRequest(&item, in); err != nil {
		return "", err
	}
	res, err := uc.repo.UpdateByID(ctx, oid, repository.Fields{
		entity.ItemFieldName:         item.Name,
		entity.ItemFieldDescription:  item.Description,
		entity.ItemFieldImagePath:    item.ImagePath,
		entity.ItemFieldPrice:        item.Price,
		entity.ItemFieldAvailable:    item.Available,
		entity.ItemFieldGlutenFree:   item.GlutenFree,
		entity.ItemFieldDietType:     item.DietType,
		entity.ItemFieldAllergens:    item.Allergens,
		entity.ItemFieldCategoryName: item.CategoryName,
	})
	if err != nil {
		return "", err
	}
	return res.Outcome()
}

// Delete elimina por ID (0 eliminados si no existía). Los pedidos que lo referencian no se tocan.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return 0, err
	}
	return uc.repo.DeleteByID(ctx, oid)
}

// SetImage sube la imagen (PNG/JPEG, máx. 5 MB) y guarda su ruta en imagePath.
func (uc *ItemUseCase) SetImage(ctx context.Context, id, contentType string, size int64, body io.Reader) (*dto.ItemResponse, error) {
	if uc.images == nil {
		return nil, domain.ErrFeatureDisabled
	}
	oid, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExtensions[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: la imagen debe ser PNG o JPEG", domain.ErrInvalidInput)
	}
	if size <= 0 || size > MaxImageSize {
		return nil, fmt.Errorf("%w: la imagen debe pesar entre 1 byte y 5 MB", domain.ErrInvalidInput)
	}

	item, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	key := path.Join("items", oid.Hex(), uuid.NewString()+ext)
	location, err := uc.images.Put(ctx, key, mediaType, io.LimitReader(body, MaxImageSize), size)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	res, err := uc.repo.UpdateByID(ctx, oid, repository.Fields{entity.ItemFieldImagePath: &location})
	if err != nil {
		return nil, err
	}
	if _, err := res.Outcome(); err != nil {
		return nil, err
	}
	item.ImagePath = &location
	return dto.ToItemResponse(item), nil
}

func applyItemRequest(item *entity.Item, in dto.ItemRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryName = strings.TrimSpace(in.CategoryName)
	if err := dto.Validate(in); err != nil {
		return err
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	diet, ok := entity.ParseDietType(in.DietType)
	if !ok {
		return fmt.Errorf("%w: dietType %q desconocido", domain.ErrInvalidInput, in.DietType)
	}
	item.Name = in.Name
	item.Description = in.Description
	item.ImagePath = in.ImagePath
	item.Price = in.Price
	item.Available = in.Available
	item.GlutenFree = in.GlutenFree
	item.DietType = diet
	item.Allergens = in.Allergens
	item.CategoryName = in.CategoryName
	return nil
}
