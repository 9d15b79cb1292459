package model

import "time"

type ScorecardSource string

const (
	SourceInterno ScorecardSource = "interno"
	SourceExterno ScorecardSource = "externo"
)

type Recommendation string

const (
	RecommendStrongYes Recommendation = "strong_yes"
	RecommendYes       Recommendation = "yes"
	RecommendMaybe     Recommendation = "maybe"
	RecommendNo        Recommendation = "no"
)

// Scorecard é uma sessão de avaliação: um avaliador (ou um candidato, no
// fluxo externo) percorrendo os critérios de um template para um candidato.
// TotalScore e MatchPercentage são sempre derivados do conjunto de respostas
// e nunca editados diretamente.
// swagger:model Scorecard
type Scorecard struct {
	BaseModel
	CandidateID     uint              `gorm:"index;type:bigint unsigned;not null" json:"candidateId"`
	TemplateID      uint              `gorm:"index;type:bigint unsigned;not null" json:"templateId"`
	EvaluatorID     uint              `gorm:"index;type:bigint unsigned" json:"evaluatorId"`
	VagaID          *uint             `gorm:"index;type:bigint unsigned" json:"vagaId,omitempty"`
	Source          ScorecardSource   `gorm:"type:enum('interno','externo');default:'interno'" json:"source"`
	Recommendation  Recommendation    `gorm:"size:20" json:"recommendation,omitempty"` // obrigatória apenas no fluxo interno
	Comments        string            `gorm:"type:text" json:"comments"`
	TotalScore      float64           `json:"totalScore"`
	MatchPercentage int               `json:"matchPercentage"`
	SubmittedAt     *time.Time        `json:"submittedAt,omitempty"` // externo: momento em que o candidato enviou
	ExpiresAt       *time.Time        `json:"expiresAt,omitempty"`   // externo: validade do link
	ExternalToken   *string           `gorm:"size:64;uniqueIndex" json:"-"` // nil no fluxo interno: NULL não colide no índice único
	Answers         []ScorecardAnswer `gorm:"foreignKey:ScorecardID" json:"answers,omitempty"`
}

func (Scorecard) TableName() string {
	return "scorecards"
}

// ScorecardAnswer é a resposta única de um critério dentro de uma sessão.
// Score nulo ou zero significa "não avaliado". Em open_text o texto enviado
// pelo candidato nunca é alterado pela correção; apenas score/gradedBy/gradedAt.
// swagger:model ScorecardAnswer
type ScorecardAnswer struct {
	BaseModel
	ScorecardID uint   `gorm:"uniqueIndex:idx_scorecard_criterion;type:bigint unsigned;not null" json:"scorecardId"`
	CriterionID uint   `gorm:"uniqueIndex:idx_scorecard_criterion;type:bigint unsigned;not null" json:"criterionId"`
	Score       *int   `json:"score"` // 0-5
	Notes       string `gorm:"type:text" json:"notes"`

	// open_text
	TextAnswer string     `gorm:"type:text" json:"textAnswer,omitempty"`
	GradedBy   *uint      `gorm:"type:bigint unsigned" json:"gradedBy,omitempty"`
	GradedAt   *time.Time `json:"gradedAt,omitempty"`

	// multiple_choice
	SelectedOptionIndex *int  `json:"selectedOptionIndex,omitempty"`
	IsCorrect           *bool `json:"isCorrect,omitempty"`
}

func (ScorecardAnswer) TableName() string {
	return "scorecard_answers"
}

// Graded informa se a resposta já conta para o agregado.
func (a *ScorecardAnswer) Graded() bool {
	return a.Score != nil && *a.Score > 0
}
