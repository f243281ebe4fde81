package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/webshop/backend/internal/domain/shared"
)

// Product represents a sellable product in the local catalog.
// Products that originate from the POS carry a RemoteID; at most one
// product exists per remote identifier.
type Product struct {
	shared.BaseEntity
	RemoteID    *int64     `gorm:"uniqueIndex"`
	Code        string     `gorm:"type:varchar(50);index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Price       int64      `gorm:"not null;default:0"` // minor currency units
	Quantity    int        `gorm:"not null;default:0"`
	Description string     `gorm:"type:text"`
	ImagesURL   string     `gorm:"type:text"` // JSON-encoded array of image URLs
	Active      bool       `gorm:"not null;default:true"`
	Categories  []Category `gorm:"many2many:product_categories"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(title string, price int64) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Price:      price,
		Active:     true,
	}, nil
}

// SetImages stores the image URL list as a JSON array
func (p *Product) SetImages(urls []string) {
	if len(urls) == 0 {
		p.ImagesURL = "[]"
		return
	}
	encoded, err := json.Marshal(urls)
	if err != nil {
		p.ImagesURL = "[]"
		return
	}
	p.ImagesURL = string(encoded)
}

// GetImages decodes the stored image URL list
func (p *Product) GetImages() []string {
	if p.ImagesURL == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.ImagesURL), &urls); err != nil {
		return nil
	}
	return urls
}

// Update updates the product's attributes and bumps the timestamp
func (p *Product) Update(title string, price int64, quantity int, description string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	p.Title = title
	p.Price = price
	p.Quantity = quantity
	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title is required")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	return nil
}
