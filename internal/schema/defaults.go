package schema

import "revive/internal/domain"

// CatchAll is the fallback category. It always exists, has no fields and
// cannot be renamed or deleted.
const CatchAll = "Other"

// MaxFieldsPerCategory caps how many dynamic attributes a category may define.
const MaxFieldsPerCategory = 10

// MaxNameLen caps the length of a category name, in runes.
const MaxNameLen = 20

// Compiled-in category table, used whenever no valid override file exists.
var defaultCategories = []string{
	"Books", "Electronics", "Home", "Food", "Beauty",
	"Tickets", "Clothing", "Shoes & Bags", "Sports", "Stationery",
	"Toys", "Instruments", CatchAll,
}

var defaultFields = map[string][]domain.FieldDef{
	"Books": {
		{Key: "author", Label: "Author", Required: true},
		{Key: "publisher", Label: "Publisher"},
	},
	"Electronics": {
		{Key: "brand", Label: "Brand"},
		{Key: "model", Label: "Model"},
	},
	"Home": {
		{Key: "material", Label: "Material"},
		{Key: "quantity", Label: "Quantity"},
	},
	"Food": {
		{Key: "expiry_date", Label: "Expiry date", Required: true},
		{Key: "quantity", Label: "Quantity", Required: true},
	},
	"Beauty": {
		{Key: "brand", Label: "Brand"},
		{Key: "expiry_date", Label: "Expiry date"},
	},
	"Tickets": {
		{Key: "valid_until", Label: "Valid until"},
	},
	"Clothing": {
		{Key: "size", Label: "Size"},
	},
	"Shoes & Bags": {
		{Key: "size", Label: "Size"},
		{Key: "brand", Label: "Brand"},
	},
	"Sports": {
		{Key: "brand", Label: "Brand"},
	},
	"Stationery": {
		{Key: "brand", Label: "Brand"},
	},
	"Toys": {
		{Key: "age_range", Label: "Age range"},
	},
	"Instruments": {
		{Key: "brand", Label: "Brand"},
		{Key: "model", Label: "Model"},
	},
	CatchAll: {},
}

func defaultDocument() document {
	doc := document{
		Categories:     append([]string(nil), defaultCategories...),
		CategoryFields: make(map[string][]domain.FieldDef, len(defaultFields)),
	}
	for cat, fields := range defaultFields {
		doc.CategoryFields[cat] = append([]domain.FieldDef(nil), fields...)
	}
	return doc
}
