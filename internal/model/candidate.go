package model

// swagger:model Candidate
type Candidate struct {
	BaseModel
	Name     string `gorm:"size:150;not null" json:"name"`
	Email    string `gorm:"size:150;index" json:"email"`
	Phone    string `gorm:"size:30" json:"phone"`
	LinkedIn string `gorm:"size:255" json:"linkedin"`
	City     string `gorm:"size:100" json:"city"`
	CVPath   string `gorm:"size:255" json:"cvPath"` // chave do arquivo no storage, não URL
	Notes    string `gorm:"type:text" json:"notes"`
	VagaID   *uint  `gorm:"index;type:bigint unsigned" json:"vagaId,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}
