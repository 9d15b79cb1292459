package scoring_test

import (
	"math/rand"
	"testing"

	"rhello_flow_backend/internal/scoring"
)

func intPtr(v int) *int { return &v }

func answer(criterionID uint, score *int) scoring.Answer {
	return scoring.Answer{CriterionID: criterionID, Score: score}
}

func TestCompute_WeightedMath(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 60, QuestionType: scoring.TypeRating},
		{ID: 2, Weight: 40, QuestionType: scoring.TypeRating},
	}
	answers := []scoring.Answer{
		answer(1, intPtr(4)),
		answer(2, intPtr(2)),
	}

	agg := scoring.Compute(criteria, answers)
	// (4/5)*60 + (2/5)*40 = 48 + 16 = 64 sobre peso 100
	if agg.TotalScore != 64 {
		t.Fatalf("total score: esperava 64, obteve %v", agg.TotalScore)
	}
	if agg.MatchPercentage != 64 {
		t.Fatalf("match: esperava 64, obteve %d", agg.MatchPercentage)
	}
}

func TestCompute_NothingGradedIsZeroNotError(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 50},
		{ID: 2, Weight: 50},
	}
	answers := []scoring.Answer{
		answer(1, nil),
		answer(2, nil),
	}

	agg := scoring.Compute(criteria, answers)
	if agg.TotalScore != 0 || agg.MatchPercentage != 0 {
		t.Fatalf("sessão sem notas deve render agregado zero, obteve %+v", agg)
	}

	// lista de critérios vazia também não pode explodir
	empty := scoring.Compute(nil, nil)
	if empty.TotalScore != 0 || empty.MatchPercentage != 0 {
		t.Fatalf("entrada vazia deve render agregado zero, obteve %+v", empty)
	}
}

func TestCompute_UngradedExcludedFromDenominator(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 50},
		{ID: 2, Weight: 50},
	}
	answers := []scoring.Answer{
		answer(1, intPtr(5)),
		answer(2, nil),
	}

	agg := scoring.Compute(criteria, answers)
	// o percentual cobre apenas o que já foi avaliado: 100%, não 50%
	if agg.MatchPercentage != 100 {
		t.Fatalf("match: esperava 100, obteve %d", agg.MatchPercentage)
	}
	if agg.TotalScore != 50 {
		t.Fatalf("total score: esperava 50, obteve %v", agg.TotalScore)
	}
}

func TestCompute_ZeroScoreCountsAsUngraded(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 60},
		{ID: 2, Weight: 40},
	}
	answers := []scoring.Answer{
		answer(1, intPtr(5)),
		answer(2, intPtr(0)),
	}

	agg := scoring.Compute(criteria, answers)
	if agg.TotalScore != 60 {
		t.Fatalf("total score: esperava 60, obteve %v", agg.TotalScore)
	}
	if agg.MatchPercentage != 100 {
		t.Fatalf("match: esperava 100 (peso do score zero fora do denominador), obteve %d", agg.MatchPercentage)
	}
}

func TestCompute_IdempotentAndOrderIndependent(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 40, QuestionType: scoring.TypeRating},
		{ID: 2, Weight: 30, QuestionType: scoring.TypeMultipleChoice},
		{ID: 3, Weight: 20, QuestionType: scoring.TypeOpenText},
		{ID: 4, Weight: 10, QuestionType: scoring.TypeRating},
	}
	answers := []scoring.Answer{
		answer(1, intPtr(4)),
		answer(2, intPtr(5)),
		answer(3, intPtr(3)),
		answer(4, nil),
	}

	want := scoring.Compute(criteria, answers)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffledAns := append([]scoring.Answer(nil), answers...)
		rng.Shuffle(len(shuffledAns), func(a, b int) {
			shuffledAns[a], shuffledAns[b] = shuffledAns[b], shuffledAns[a]
		})
		shuffledCrit := append([]scoring.Criterion(nil), criteria...)
		rng.Shuffle(len(shuffledCrit), func(a, b int) {
			shuffledCrit[a], shuffledCrit[b] = shuffledCrit[b], shuffledCrit[a]
		})

		got := scoring.Compute(shuffledCrit, shuffledAns)
		if got != want {
			t.Fatalf("iteração %d: esperava %+v, obteve %+v", i, want, got)
		}
	}
}

func TestCompute_PercentageRounding(t *testing.T) {
	// 1 critério peso 30, nota 2: (2/5)*30 = 12 sobre 30 => 40%
	// 2 critérios peso 30+40, notas 2 e 3: 12+24=36 sobre 70 => 51.43 => 51
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 30},
		{ID: 2, Weight: 40},
	}
	answers := []scoring.Answer{
		answer(1, intPtr(2)),
		answer(2, intPtr(3)),
	}

	agg := scoring.Compute(criteria, answers)
	if agg.MatchPercentage != 51 {
		t.Fatalf("match: esperava 51 (arredondado de 51.43), obteve %d", agg.MatchPercentage)
	}
}

func TestAllScoresSet(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 50},
		{ID: 2, Weight: 50},
	}

	cases := []struct {
		name    string
		answers []scoring.Answer
		want    bool
	}{
		{"todas com nota", []scoring.Answer{answer(1, intPtr(3)), answer(2, intPtr(5))}, true},
		{"uma sem nota", []scoring.Answer{answer(1, intPtr(3)), answer(2, nil)}, false},
		{"uma com nota zero", []scoring.Answer{answer(1, intPtr(3)), answer(2, intPtr(0))}, false},
		{"resposta ausente", []scoring.Answer{answer(1, intPtr(3))}, false},
		{"nenhuma resposta", nil, false},
	}

	for _, tc := range cases {
		if got := scoring.AllScoresSet(criteria, tc.answers); got != tc.want {
			t.Errorf("%s: esperava %v, obteve %v", tc.name, tc.want, got)
		}
	}

	if scoring.AllScoresSet(nil, nil) {
		t.Errorf("sessão sem critérios nunca está completa")
	}
}

func TestPendingOpenText(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 20, QuestionType: scoring.TypeRating},
		{ID: 2, Weight: 25, QuestionType: scoring.TypeOpenText},
		{ID: 3, Weight: 15, QuestionType: scoring.TypeMultipleChoice},
		{ID: 4, Weight: 30, QuestionType: scoring.TypeOpenText},
		{ID: 5, Weight: 10, QuestionType: scoring.TypeOpenText},
	}
	answers := []scoring.Answer{
		answer(1, nil), // rating sem nota não conta como pendência de correção
		answer(2, nil),
		answer(3, intPtr(5)),
		answer(4, intPtr(0)),
		answer(5, intPtr(4)), // já corrigida
	}

	p := scoring.PendingOpenText(criteria, answers)
	if p.Count != 2 {
		t.Fatalf("pendentes: esperava 2, obteve %d", p.Count)
	}
	if p.TotalWeight != 55 {
		t.Fatalf("peso pendente: esperava 55, obteve %d", p.TotalWeight)
	}
	if len(p.CriterionIDs) != 2 || p.CriterionIDs[0] != 2 || p.CriterionIDs[1] != 4 {
		t.Fatalf("ids pendentes inesperados: %v", p.CriterionIDs)
	}
}

func TestScoreChoice(t *testing.T) {
	options := []scoring.Option{
		{Text: "Stack", IsCorrect: false},
		{Text: "Queue", IsCorrect: true},
		{Text: "Heap", IsCorrect: false},
	}

	cases := []struct {
		name        string
		selected    int
		wantScore   int
		wantCorrect bool
	}{
		{"alternativa correta", 1, scoring.MaxScore, true},
		{"alternativa errada", 0, 0, false},
		{"índice negativo", -1, 0, false},
		{"índice fora do intervalo", 3, 0, false},
	}

	for _, tc := range cases {
		score, correct := scoring.ScoreChoice(options, tc.selected)
		if score != tc.wantScore || correct != tc.wantCorrect {
			t.Errorf("%s: esperava (%d, %v), obteve (%d, %v)",
				tc.name, tc.wantScore, tc.wantCorrect, score, correct)
		}
	}
}

// Cenário completo do fluxo externo: rating + múltipla escolha respondidos
// na hora, questão aberta corrigida depois pelo recrutador.
func TestCompute_ExternalTestScenario(t *testing.T) {
	criteria := []scoring.Criterion{
		{ID: 1, Weight: 40, QuestionType: scoring.TypeRating},
		{ID: 2, Weight: 30, QuestionType: scoring.TypeMultipleChoice},
		{ID: 3, Weight: 30, QuestionType: scoring.TypeOpenText},
	}

	// logo após o envio do candidato: rating=4, múltipla escolha correta,
	// aberta ainda sem correção
	mcScore, correct := scoring.ScoreChoice([]scoring.Option{{IsCorrect: false}, {IsCorrect: true}}, 1)
	if !correct {
		t.Fatalf("esperava alternativa correta")
	}
	answers := []scoring.Answer{
		answer(1, intPtr(4)),
		answer(2, intPtr(mcScore)),
		answer(3, nil),
	}

	afterSubmit := scoring.Compute(criteria, answers)
	// (4/5)*40 + 30 = 62 sobre peso 70 => 88.57 => 89
	if afterSubmit.TotalScore != 62 {
		t.Fatalf("total score pós-envio: esperava 62, obteve %v", afterSubmit.TotalScore)
	}
	if afterSubmit.MatchPercentage != 89 {
		t.Fatalf("match pós-envio: esperava 89, obteve %d", afterSubmit.MatchPercentage)
	}

	// recrutador corrige a questão aberta com nota 3
	answers[2] = answer(3, intPtr(3))
	afterGrading := scoring.Compute(criteria, answers)
	if afterGrading.TotalScore != 80 {
		t.Fatalf("total score final: esperava 80, obteve %v", afterGrading.TotalScore)
	}
	if afterGrading.MatchPercentage != 80 {
		t.Fatalf("match final: esperava 80, obteve %d", afterGrading.MatchPercentage)
	}
}

func TestRound2(t *testing.T) {
	if got := scoring.Round2(51.42857); got != 51.43 {
		t.Fatalf("esperava 51.43, obteve %v", got)
	}
	if got := scoring.Round2(64); got != 64 {
		t.Fatalf("esperava 64, obteve %v", got)
	}
}
