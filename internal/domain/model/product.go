package model

import "time"

// ProductCondition é o estado de conservação de um item do inventário
type ProductCondition string

const (
	ConditionNew  ProductCondition = "nuevo"
	ConditionUsed ProductCondition = "usado"
)

func (c ProductCondition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Product é um item do inventário de demonstração
type Product struct {
	ID        uint             `json:"id"`
	Name      string           `json:"nombre"`
	Price     float64          `json:"precio"`
	Condition ProductCondition `json:"condicion"`
	CreatedAt time.Time        `json:"created_at"`
}

type ProductEntity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Nombre    string    `gorm:"size:200;not null"`
	Precio    float64   `gorm:"not null"`
	Condicion string    `gorm:"size:10;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ProductEntity) TableName() string {
	return "productos"
}
