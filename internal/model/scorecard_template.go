package model

import "encoding/json"

type QuestionType string

const (
	QuestionRating         QuestionType = "rating"
	QuestionOpenText       QuestionType = "open_text"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

type CriterionCategory string

const (
	CategoryHardSkills  CriterionCategory = "hard_skills"
	CategorySoftSkills  CriterionCategory = "soft_skills"
	CategoryExperiencia CriterionCategory = "experiencia"
	CategoryFitCultural CriterionCategory = "fit_cultural"
	CategoryOutros      CriterionCategory = "outros"
)

type TemplateType string

const (
	TemplateEntrevista   TemplateType = "entrevista"
	TemplateTesteTecnico TemplateType = "teste_tecnico"
)

// swagger:model ScorecardTemplate
type ScorecardTemplate struct {
	BaseModel
	Name        string               `gorm:"size:150;not null" json:"name"`
	Description string               `gorm:"type:text" json:"description"`
	Type        TemplateType         `gorm:"type:enum('entrevista','teste_tecnico');default:'entrevista'" json:"type"`
	Active      bool                 `gorm:"default:true" json:"active"`
	Criteria    []ScorecardCriterion `gorm:"foreignKey:TemplateID" json:"criteria,omitempty"`
}

func (ScorecardTemplate) TableName() string {
	return "scorecard_templates"
}

// CriterionOption é uma alternativa de questão de múltipla escolha.
type CriterionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// swagger:model ScorecardCriterion
type ScorecardCriterion struct {
	BaseModel
	TemplateID   uint              `gorm:"index;type:bigint unsigned" json:"templateId"`
	Name         string            `gorm:"size:150;not null" json:"name"`
	Description  string            `gorm:"type:text" json:"description"`
	Category     CriterionCategory `gorm:"type:enum('hard_skills','soft_skills','experiencia','fit_cultural','outros');default:'outros'" json:"category"`
	Weight       int               `gorm:"not null" json:"weight"` // percentual 1-100
	QuestionType QuestionType      `gorm:"type:enum('rating','open_text','multiple_choice');default:'rating'" json:"questionType"`
	Order        int               `gorm:"default:0" json:"order"`
	Options      json.RawMessage   `gorm:"type:json" json:"options,omitempty"` // apenas multiple_choice
}

func (ScorecardCriterion) TableName() string {
	return "scorecard_criteria"
}

// DecodeOptions desserializa as alternativas de uma questão de múltipla
// escolha. Critérios de outros tipos retornam lista vazia.
func (c *ScorecardCriterion) DecodeOptions() ([]CriterionOption, error) {
	if len(c.Options) == 0 {
		return nil, nil
	}
	var opts []CriterionOption
	if err := json.Unmarshal(c.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
