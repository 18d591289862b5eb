// Package catalogrepo provides read access to the externally managed catalog
// tables: schools, classes, item groups, and items. Nothing in this
// application writes them.
package catalogrepo

import (
	"github.com/google/uuid"

	"schoolstore/internal/core/domain/model/catalog"
	"schoolstore/internal/core/domain/model/kernel"
)

// SchoolDTO represents the database structure of a school.
type SchoolDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code     string    `gorm:"uniqueIndex"`
	Name     string
	Address  string
	IsActive bool
}

// TableName specifies the database table name for schools.
func (SchoolDTO) TableName() string {
	return "schools"
}

// SchoolClassDTO represents the database structure of a class. Position
// fixes the order classes are presented in during a conversation.
type SchoolClassDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SchoolID uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	Position int
}

// TableName specifies the database table name for classes.
func (SchoolClassDTO) TableName() string {
	return "school_classes"
}

// ItemGroupDTO represents the database structure of an item group. Position
// fixes assignment order; category resolution takes the first matching group.
type ItemGroupDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClassID  uuid.UUID `gorm:"type:uuid;index"`
	Type     int
	Name     string
	IsActive bool
	Position int
}

// TableName specifies the database table name for item groups.
func (ItemGroupDTO) TableName() string {
	return "item_groups"
}

// ItemDTO represents the database structure of a catalog item.
type ItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID     uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	PricePaise  int64
	Stock       int
	WeightGrams int64
	LengthCM    float64
	WidthCM     float64
	HeightCM    float64
	IsActive    bool
	Position    int
}

// TableName specifies the database table name for catalog items.
func (ItemDTO) TableName() string {
	return "catalog_items"
}

func toSchool(dto SchoolDTO) (*catalog.School, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreSchool(id, dto.Code, dto.Name, dto.Address, dto.IsActive)
}

func toSchoolClass(dto SchoolClassDTO) (*catalog.SchoolClass, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	schoolID, err := kernel.UUIDFromBytes(dto.SchoolID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreSchoolClass(id, schoolID, dto.Name)
}

func toItemGroup(dto ItemGroupDTO) (*catalog.ItemGroup, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	classID, err := kernel.UUIDFromBytes(dto.ClassID[:])
	if err != nil {
		return nil, err
	}
	return catalog.RestoreItemGroup(id, classID, catalog.GroupType(dto.Type), dto.Name, dto.IsActive)
}

func toItem(dto ItemDTO) (*catalog.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	groupID, err := kernel.UUIDFromBytes(dto.GroupID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.RestoreMoney(dto.PricePaise)
	if err != nil {
		return nil, err
	}
	dims, err := kernel.NewDimensions(dto.LengthCM, dto.WidthCM, dto.HeightCM)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreItem(id, groupID, dto.Name, price, dto.Stock, dto.WeightGrams, dims, dto.IsActive)
}
