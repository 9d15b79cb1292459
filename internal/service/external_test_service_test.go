package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/scoring"
	"rhello_flow_backend/internal/util"
)

func technicalTestCriteria(t *testing.T) []model.ScorecardCriterion {
	t.Helper()
	options, err := json.Marshal([]model.CriterionOption{
		{Text: "O(n)", IsCorrect: false},
		{Text: "O(log n)", IsCorrect: true},
		{Text: "O(n²)", IsCorrect: false},
	})
	if err != nil {
		t.Fatal(err)
	}
	return []model.ScorecardCriterion{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Autoavaliação em Go", Weight: 20, QuestionType: model.QuestionRating},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Busca binária", Weight: 30, QuestionType: model.QuestionMultipleChoice, Options: options},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Descreva um incidente", Weight: 50, QuestionType: model.QuestionOpenText},
	}
}

func seededAnswers(criteria []model.ScorecardCriterion) []model.ScorecardAnswer {
	answers := make([]model.ScorecardAnswer, len(criteria))
	for i, c := range criteria {
		answers[i] = model.ScorecardAnswer{
			BaseModel:   model.BaseModel{ID: uint(i + 1)},
			CriterionID: c.ID,
		}
	}
	return answers
}

func TestApplyCandidateSubmission(t *testing.T) {
	criteria := technicalTestCriteria(t)
	answers := seededAnswers(criteria)

	err := applyCandidateSubmission(criteria, answers, []ExternalAnswerInput{
		{CriterionID: 1, Score: ptr(4)},
		{CriterionID: 2, SelectedOptionIndex: ptr(1)},
		{CriterionID: 3, TextAnswer: "Num deploy de sexta..."},
	})
	if err != nil {
		t.Fatalf("envio válido rejeitado: %v", err)
	}

	if answers[0].Score == nil || *answers[0].Score != 4 {
		t.Errorf("rating: score = %v, esperava 4", answers[0].Score)
	}

	if answers[1].Score == nil || *answers[1].Score != scoring.MaxScore {
		t.Errorf("múltipla escolha correta: score = %v, esperava %d", answers[1].Score, scoring.MaxScore)
	}
	if answers[1].IsCorrect == nil || !*answers[1].IsCorrect {
		t.Error("múltipla escolha correta: is_correct deveria ser true")
	}

	if answers[2].Score != nil {
		t.Errorf("questão aberta não deveria ter nota no envio, veio %d", *answers[2].Score)
	}
	if answers[2].TextAnswer != "Num deploy de sexta..." {
		t.Errorf("texto da resposta alterado: %q", answers[2].TextAnswer)
	}
}

func TestApplyCandidateSubmission_WrongChoiceScoresZero(t *testing.T) {
	criteria := technicalTestCriteria(t)
	answers := seededAnswers(criteria)

	err := applyCandidateSubmission(criteria, answers, []ExternalAnswerInput{
		{CriterionID: 1, Score: ptr(4)},
		{CriterionID: 2, SelectedOptionIndex: ptr(0)},
		{CriterionID: 3, TextAnswer: "..."},
	})
	if err != nil {
		t.Fatal(err)
	}

	if answers[1].Score == nil || *answers[1].Score != 0 {
		t.Errorf("alternativa errada: score = %v, esperava 0", answers[1].Score)
	}
	if answers[1].IsCorrect == nil || *answers[1].IsCorrect {
		t.Error("alternativa errada: is_correct deveria ser false")
	}

	// errada vale zero e portanto fica fora do agregado, como não avaliada
	agg := scoring.Compute(criteriaViews(criteria), answerViews(answers))
	if agg.MatchPercentage != 80 {
		t.Errorf("MatchPercentage = %d, esperava 80 (só o rating 4/5 conta)", agg.MatchPercentage)
	}
}

func TestApplyCandidateSubmission_UnknownCriterion(t *testing.T) {
	criteria := technicalTestCriteria(t)
	answers := seededAnswers(criteria)

	err := applyCandidateSubmission(criteria, answers, []ExternalAnswerInput{
		{CriterionID: 42, Score: ptr(3)},
	})
	if err == nil {
		t.Fatal("resposta para critério de outro teste foi aceita")
	}
}

func TestApplyManualGrade(t *testing.T) {
	criteria := technicalTestCriteria(t)
	answers := seededAnswers(criteria)

	if err := applyCandidateSubmission(criteria, answers, []ExternalAnswerInput{
		{CriterionID: 1, Score: ptr(4)},
		{CriterionID: 2, SelectedOptionIndex: ptr(1)},
		{CriterionID: 3, TextAnswer: "resposta do candidato"},
	}); err != nil {
		t.Fatal(err)
	}

	open := &answers[2]
	now := time.Now()
	if err := applyManualGrade(open, &criteria[2], 7, 3, "boa análise", now); err != nil {
		t.Fatalf("correção válida rejeitada: %v", err)
	}

	if open.Score == nil || *open.Score != 3 {
		t.Errorf("score = %v, esperava 3", open.Score)
	}
	if open.GradedBy == nil || *open.GradedBy != 7 {
		t.Errorf("graded_by = %v, esperava 7", open.GradedBy)
	}
	if open.GradedAt == nil || !open.GradedAt.Equal(now) {
		t.Errorf("graded_at = %v, esperava %v", open.GradedAt, now)
	}
	if open.TextAnswer != "resposta do candidato" {
		t.Errorf("correção alterou o texto do candidato: %q", open.TextAnswer)
	}

	// somente a resposta alvo muda; as demais ficam intactas
	if *answers[0].Score != 4 || answers[0].GradedBy != nil {
		t.Error("correção tocou a resposta de rating")
	}
	if *answers[1].Score != scoring.MaxScore || answers[1].GradedBy != nil {
		t.Error("correção tocou a resposta de múltipla escolha")
	}

	// 4/5*20 + 5/5*30 + 3/5*50 = 16 + 30 + 30 = 76 de peso 100
	agg := scoring.Compute(criteriaViews(criteria), answerViews(answers))
	if agg.MatchPercentage != 76 {
		t.Errorf("MatchPercentage após correção = %d, esperava 76", agg.MatchPercentage)
	}
}

func TestApplyManualGrade_Rejections(t *testing.T) {
	criteria := technicalTestCriteria(t)
	now := time.Now()

	t.Run("questão que não é aberta", func(t *testing.T) {
		answer := &model.ScorecardAnswer{CriterionID: 1}
		err := applyManualGrade(answer, &criteria[0], 7, 3, "", now)
		if !errors.Is(err, util.ErrNotOpenText) {
			t.Errorf("err = %v, esperava ErrNotOpenText", err)
		}
	})

	t.Run("já corrigida", func(t *testing.T) {
		answer := &model.ScorecardAnswer{CriterionID: 3, Score: ptr(4)}
		err := applyManualGrade(answer, &criteria[2], 7, 3, "", now)
		if !errors.Is(err, util.ErrAnswerAlreadyGraded) {
			t.Errorf("err = %v, esperava ErrAnswerAlreadyGraded", err)
		}
	})

	t.Run("nota fora do intervalo", func(t *testing.T) {
		answer := &model.ScorecardAnswer{CriterionID: 3}
		err := applyManualGrade(answer, &criteria[2], 7, 6, "", now)
		if !errors.Is(err, util.ErrInvalidScore) {
			t.Errorf("err = %v, esperava ErrInvalidScore", err)
		}
	})
}

func TestNewExternalToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := newExternalToken()
		if err != nil {
			t.Fatal(err)
		}
		if len(token) != 64 {
			t.Fatalf("token com %d caracteres, esperava 64", len(token))
		}
		if seen[token] {
			t.Fatal("token repetido em 100 emissões")
		}
		seen[token] = true
	}
}
