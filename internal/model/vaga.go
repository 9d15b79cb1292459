package model

type VagaStatus string

const (
	VagaAberta    VagaStatus = "aberta"
	VagaPausada   VagaStatus = "pausada"
	VagaEncerrada VagaStatus = "encerrada"
)

// swagger:model Vaga
type Vaga struct {
	BaseModel
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Company     string     `gorm:"size:150" json:"company"`
	Location    string     `gorm:"size:100" json:"location"`
	SalaryMin   *float64   `json:"salaryMin,omitempty"`
	SalaryMax   *float64   `json:"salaryMax,omitempty"`
	Status      VagaStatus `gorm:"type:enum('aberta','pausada','encerrada');default:'aberta'" json:"status"`
	RecruiterID uint       `gorm:"index;type:bigint unsigned" json:"recruiterId"`
}

func (Vaga) TableName() string {
	return "vagas"
}
