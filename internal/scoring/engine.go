// Package scoring é o motor de pontuação de scorecards: computação pura
// sobre (critérios, respostas), sem I/O e sem efeitos colaterais.
package scoring

import "math"

// MaxScore é a nota máxima de um critério.
const MaxScore = 5

// Tipos de questão, espelhando o enum persistido no catálogo.
const (
	TypeRating         = "rating"
	TypeOpenText       = "open_text"
	TypeMultipleChoice = "multiple_choice"
)

// Criterion é a visão mínima de um critério necessária para pontuar.
type Criterion struct {
	ID           uint
	Weight       int
	QuestionType string
}

// Answer é a visão mínima de uma resposta. Score nulo ou zero significa
// "ainda não avaliado".
type Answer struct {
	CriterionID uint
	Score       *int
}

// Aggregate é o resultado derivado de uma sessão.
type Aggregate struct {
	TotalScore      float64 // soma ponderada, precisão total
	MatchPercentage int     // 0-100, arredondado
}

// Option é uma alternativa de múltipla escolha.
type Option struct {
	Text      string
	IsCorrect bool
}

// Compute produz o agregado de uma sessão. Critérios sem nota (score nulo
// ou zero) ficam fora dos dois acumuladores: não contribuem e não entram no
// denominador — o percentual significa "quão bem o candidato foi no que já
// foi avaliado", não "quanto do teste já foi avaliado". Sem nenhum critério
// avaliado o percentual é 0, nunca um erro.
func Compute(criteria []Criterion, answers []Answer) Aggregate {
	scores := make(map[uint]*int, len(answers))
	for _, a := range answers {
		scores[a.CriterionID] = a.Score
	}

	var totalWeighted float64
	totalWeight := 0
	for _, c := range criteria {
		s, ok := scores[c.ID]
		if !ok || s == nil || *s <= 0 {
			continue
		}
		totalWeighted += float64(*s) / MaxScore * float64(c.Weight)
		totalWeight += c.Weight
	}

	agg := Aggregate{TotalScore: totalWeighted}
	if totalWeight > 0 {
		agg.MatchPercentage = int(math.Round(totalWeighted / float64(totalWeight) * 100))
	}
	return agg
}

// AllScoresSet informa se toda a sessão foi avaliada: lista de critérios não
// vazia e cada critério com resposta de nota positiva.
func AllScoresSet(criteria []Criterion, answers []Answer) bool {
	if len(criteria) == 0 {
		return false
	}
	scores := make(map[uint]*int, len(answers))
	for _, a := range answers {
		scores[a.CriterionID] = a.Score
	}
	for _, c := range criteria {
		s, ok := scores[c.ID]
		if !ok || s == nil || *s <= 0 {
			return false
		}
	}
	return true
}

// PendingSummary descreve as questões abertas ainda não corrigidas de uma
// sessão externa: "N questões pendentes, peso W% fora do cálculo".
type PendingSummary struct {
	Count        int    `json:"count"`
	TotalWeight  int    `json:"totalWeight"`
	CriterionIDs []uint `json:"criterionIds"`
}

// PendingOpenText lista os critérios open_text sem correção. Informativo,
// não bloqueia nada: o percentual da sessão já é válido mesmo com pendências.
func PendingOpenText(criteria []Criterion, answers []Answer) PendingSummary {
	scores := make(map[uint]*int, len(answers))
	for _, a := range answers {
		scores[a.CriterionID] = a.Score
	}

	var p PendingSummary
	for _, c := range criteria {
		if c.QuestionType != TypeOpenText {
			continue
		}
		s, ok := scores[c.ID]
		if !ok || s == nil || *s <= 0 {
			p.Count++
			p.TotalWeight += c.Weight
			p.CriterionIDs = append(p.CriterionIDs, c.ID)
		}
	}
	return p
}

// ScoreChoice pontua uma questão de múltipla escolha no momento do envio:
// alternativa correta vale MaxScore, qualquer outra vale 0. Índice fora do
// intervalo conta como resposta errada.
func ScoreChoice(options []Option, selected int) (score int, correct bool) {
	if selected < 0 || selected >= len(options) {
		return 0, false
	}
	if options[selected].IsCorrect {
		return MaxScore, true
	}
	return 0, false
}

// Round2 arredonda para duas casas, usado apenas na exibição do TotalScore.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
