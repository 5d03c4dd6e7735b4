package models

const (
	MinDiscountPercent = 0
	MaxDiscountPercent = 50
)

// DiscountSetting rows are keyed configuration, e.g. "weddingPackage".
type DiscountSetting struct {
	Key             string `db:"key" json:"key"`
	Title           string `db:"title" json:"title"`
	Description     string `db:"description" json:"description"`
	DiscountPercent int    `db:"discount" json:"discount"`
	Active          bool   `db:"active" json:"active"`
}
