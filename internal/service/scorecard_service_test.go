package service

import (
	"errors"
	"testing"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/util"
)

func ptr(v int) *int { return &v }

func interviewCriteria() []model.ScorecardCriterion {
	return []model.ScorecardCriterion{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Domínio técnico", Weight: 40, QuestionType: model.QuestionRating},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Comunicação", Weight: 30, QuestionType: model.QuestionRating},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Fit cultural", Weight: 30, QuestionType: model.QuestionRating},
	}
}

func TestBuildInternalSubmission_Complete(t *testing.T) {
	req := &SubmitScorecardRequest{
		CandidateID:    1,
		TemplateID:     1,
		Recommendation: model.RecommendYes,
		Answers: []AnswerInput{
			{CriterionID: 1, Score: ptr(5)},
			{CriterionID: 2, Score: ptr(4)},
			{CriterionID: 3, Score: ptr(3)},
		},
	}

	answers, agg, err := buildInternalSubmission(interviewCriteria(), req)
	if err != nil {
		t.Fatalf("envio completo rejeitado: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("esperava 3 respostas, veio %d", len(answers))
	}

	// 5/5*40 + 4/5*30 + 3/5*30 = 40 + 24 + 18 = 82
	if agg.TotalScore != 82 {
		t.Errorf("TotalScore = %v, esperava 82", agg.TotalScore)
	}
	if agg.MatchPercentage != 82 {
		t.Errorf("MatchPercentage = %d, esperava 82", agg.MatchPercentage)
	}
}

func TestBuildInternalSubmission_MissingScoreRejected(t *testing.T) {
	cases := []struct {
		name    string
		answers []AnswerInput
	}{
		{"resposta ausente", []AnswerInput{
			{CriterionID: 1, Score: ptr(5)},
			{CriterionID: 2, Score: ptr(4)},
		}},
		{"score nulo", []AnswerInput{
			{CriterionID: 1, Score: ptr(5)},
			{CriterionID: 2, Score: ptr(4)},
			{CriterionID: 3, Score: nil},
		}},
		{"score zero", []AnswerInput{
			{CriterionID: 1, Score: ptr(5)},
			{CriterionID: 2, Score: ptr(4)},
			{CriterionID: 3, Score: ptr(0)},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &SubmitScorecardRequest{
				Recommendation: model.RecommendYes,
				Answers:        tc.answers,
			}
			_, _, err := buildInternalSubmission(interviewCriteria(), req)
			if !errors.Is(err, util.ErrScorecardIncomplete) {
				t.Errorf("err = %v, esperava ErrScorecardIncomplete", err)
			}
		})
	}
}

func TestBuildInternalSubmission_RecommendationRequired(t *testing.T) {
	req := &SubmitScorecardRequest{
		Answers: []AnswerInput{
			{CriterionID: 1, Score: ptr(5)},
			{CriterionID: 2, Score: ptr(4)},
			{CriterionID: 3, Score: ptr(3)},
		},
	}

	_, _, err := buildInternalSubmission(interviewCriteria(), req)
	if !errors.Is(err, util.ErrRecommendationRequired) {
		t.Errorf("err = %v, esperava ErrRecommendationRequired", err)
	}
}

func TestBuildInternalSubmission_UnknownCriterionRejected(t *testing.T) {
	req := &SubmitScorecardRequest{
		Recommendation: model.RecommendYes,
		Answers: []AnswerInput{
			{CriterionID: 1, Score: ptr(5)},
			{CriterionID: 2, Score: ptr(4)},
			{CriterionID: 99, Score: ptr(3)},
		},
	}

	_, _, err := buildInternalSubmission(interviewCriteria(), req)
	if err == nil {
		t.Fatal("critério de outro template aceito no envio")
	}
}
