package model

// Level is a French school grade (CP, CE1, ...). Rank gives the display order.
type Level struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Code  string `gorm:"not null;uniqueIndex" json:"code"`
	Label string `gorm:"not null" json:"label"`
	Rank  int    `gorm:"not null;index" json:"rank"`
}
