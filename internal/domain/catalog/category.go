package catalog

import (
	"strings"
	"time"

	"github.com/webshop/backend/internal/domain/shared"
)

// Category represents a product category. Categories that mirror a POS
// category carry a RemoteID and are created lazily the first time a
// synced product references them.
type Category struct {
	shared.BaseEntity
	RemoteID *int64 `gorm:"uniqueIndex"`
	Name     string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new local category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// NewRemoteCategory creates a category mirroring a POS category
func NewRemoteCategory(remoteID int64, name string) (*Category, error) {
	category, err := NewCategory(name)
	if err != nil {
		return nil, err
	}
	category.RemoteID = &remoteID
	return category, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
