package domain

// Item is one listed second-hand item. Attributes holds the serialized
// per-category key/value document; its shape was fixed by the category's
// field definitions at creation time and is not revalidated afterwards.
type Item struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Description string `db:"description"`
	Contact     string `db:"contact"`
	Image       string `db:"image"`
	CreateTime  string `db:"create_time"`
	Address     string `db:"address"`
	Attributes  string `db:"attributes"`
}

// FieldDef describes one dynamic attribute of a category.
type FieldDef struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}
