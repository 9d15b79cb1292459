package model_test

import (
	"encoding/json"
	"testing"

	"rhello_flow_backend/internal/model"
)

func TestDecodeOptions(t *testing.T) {
	raw, err := json.Marshal([]model.CriterionOption{
		{Text: "Sim", IsCorrect: true},
		{Text: "Não", IsCorrect: false},
	})
	if err != nil {
		t.Fatal(err)
	}

	criterion := model.ScorecardCriterion{
		QuestionType: model.QuestionMultipleChoice,
		Options:      raw,
	}

	opts, err := criterion.DecodeOptions()
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("esperava 2 alternativas, veio %d", len(opts))
	}
	if opts[0].Text != "Sim" || !opts[0].IsCorrect {
		t.Errorf("primeira alternativa decodificada errada: %+v", opts[0])
	}
	if opts[1].IsCorrect {
		t.Error("segunda alternativa não deveria ser a correta")
	}
}

func TestDecodeOptions_Empty(t *testing.T) {
	criterion := model.ScorecardCriterion{QuestionType: model.QuestionRating}
	opts, err := criterion.DecodeOptions()
	if err != nil {
		t.Fatalf("critério sem alternativas não deveria falhar: %v", err)
	}
	if opts != nil {
		t.Errorf("esperava nil, veio %+v", opts)
	}
}

func TestDecodeOptions_Malformed(t *testing.T) {
	criterion := model.ScorecardCriterion{
		QuestionType: model.QuestionMultipleChoice,
		Options:      json.RawMessage(`{"broken":`),
	}
	if _, err := criterion.DecodeOptions(); err == nil {
		t.Error("JSON inválido deveria falhar")
	}
}

func TestAnswerGraded(t *testing.T) {
	score := func(v int) *int { return &v }

	cases := []struct {
		name   string
		answer model.ScorecardAnswer
		want   bool
	}{
		{"sem nota", model.ScorecardAnswer{}, false},
		{"nota zero", model.ScorecardAnswer{Score: score(0)}, false},
		{"nota válida", model.ScorecardAnswer{Score: score(3)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.answer.Graded(); got != tc.want {
				t.Errorf("Graded() = %v, esperava %v", got, tc.want)
			}
		})
	}
}
