package catalogrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
	"schoolstore/internal/pkg/errs"
)

// GormCatalogReader implements CatalogReader using GORM.
type GormCatalogReader struct {
	db *gorm.DB
}

// NewGormCatalogReader creates a new GORM catalog reader.
func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

// SchoolByCode retrieves an active school by its 4-digit code.
func (r *GormCatalogReader) SchoolByCode(ctx context.Context, code string) (*catalog.School, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto SchoolDTO
	err := r.db.WithContext(ctx).
		First(&dto, "code = ? AND is_active = ?", code, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schoolCode", code)
		}
		return nil, err
	}
	return toSchool(dto)
}

// SchoolByID retrieves a school by id, active or not.
func (r *GormCatalogReader) SchoolByID(ctx context.Context, id kernel.UUID) (*catalog.School, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SchoolDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("school", id.String())
		}
		return nil, err
	}
	return toSchool(dto)
}

// ClassesBySchool retrieves a school's classes in presentation order.
func (r *GormCatalogReader) ClassesBySchool(ctx context.Context, schoolID kernel.UUID) ([]*catalog.SchoolClass, error) {
	if err := schoolID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SchoolClassDTO
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID.Bytes()).
		Order("position, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	classes := make([]*catalog.SchoolClass, 0, len(dtos))
	for _, dto := range dtos {
		class, toErr := toSchoolClass(dto)
		if toErr != nil {
			return nil, toErr
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// GroupsByClass retrieves a class's active item groups in assignment order.
func (r *GormCatalogReader) GroupsByClass(ctx context.Context, classID kernel.UUID) ([]*catalog.ItemGroup, error) {
	if err := classID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemGroupDTO
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND is_active = ?", classID.Bytes(), true).
		Order("position, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	groups := make([]*catalog.ItemGroup, 0, len(dtos))
	for _, dto := range dtos {
		group, toErr := toItemGroup(dto)
		if toErr != nil {
			return nil, toErr
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// ActiveItemsByGroup retrieves a group's active items in assignment order.
func (r *GormCatalogReader) ActiveItemsByGroup(ctx context.Context, groupID kernel.UUID) ([]*catalog.Item, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_active = ?", groupID.Bytes(), true).
		Order("position, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toItems(dtos)
}

// ItemsByIDs retrieves items by id, active or not. Missing ids are absent
// from the result.
func (r *GormCatalogReader) ItemsByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	if len(ids) == 0 {
		return []*catalog.Item{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	return toItems(dtos)
}

func toItems(dtos []ItemDTO) ([]*catalog.Item, error) {
	items := make([]*catalog.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toItem(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
