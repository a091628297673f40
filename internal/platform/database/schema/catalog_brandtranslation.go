package schema

// BrandTranslationTable represents the 'catalog.brand_translation' table
type BrandTranslationTable struct {
	Table           string
	BrandID         string
	LanguageCode    string
	Name            string
	Description     string
	MetaTitle       string
	MetaDescription string
}

// BrandTranslation is the schema definition for catalog.brand_translation
var BrandTranslation = BrandTranslationTable{
	Table:           "catalog.brand_translation",
	BrandID:         "brand_id",
	LanguageCode:    "language_code",
	Name:            "name",
	Description:     "description",
	MetaTitle:       "meta_title",
	MetaDescription: "meta_description",
}
