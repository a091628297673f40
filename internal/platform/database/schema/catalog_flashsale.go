package schema

// FlashSaleTable represents the 'catalog.flash_sale' table
type FlashSaleTable struct {
	Table         string
	ID            string
	TenantID      string
	Slug          string
	Title         string
	ProductID     string
	OriginalPrice string
	SalePrice     string
	Quantity      string
	StartsAt      string
	EndsAt        string
	IsActive      string
	CreatedAt     string
	UpdatedAt     string
}

// FlashSale is the schema definition for catalog.flash_sale
var FlashSale = FlashSaleTable{
	Table:         "catalog.flash_sale",
	ID:            "id",
	TenantID:      "tenant_id",
	Slug:          "slug",
	Title:         "title",
	ProductID:     "product_id",
	OriginalPrice: "original_price",
	SalePrice:     "sale_price",
	Quantity:      "quantity",
	StartsAt:      "starts_at",
	EndsAt:        "ends_at",
	IsActive:      "is_active",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
}
