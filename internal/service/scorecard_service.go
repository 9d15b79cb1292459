package service

import (
	"errors"
	"fmt"
	"time"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/repository"
	"rhello_flow_backend/internal/scoring"
	"rhello_flow_backend/internal/util"
	"rhello_flow_backend/pkg/logger"
	"rhello_flow_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScorecardService struct {
	scorecardRepo *repository.ScorecardRepository
	templateRepo  *repository.TemplateRepository
	candidateRepo *repository.CandidateRepository
}

func NewScorecardService(
	scorecardRepo *repository.ScorecardRepository,
	templateRepo *repository.TemplateRepository,
	candidateRepo *repository.CandidateRepository,
) *ScorecardService {
	return &ScorecardService{
		scorecardRepo: scorecardRepo,
		templateRepo:  templateRepo,
		candidateRepo: candidateRepo,
	}
}

type AnswerInput struct {
	CriterionID uint   `json:"criterionId" binding:"required"`
	Score       *int   `json:"score" binding:"omitempty,min=0,max=5"`
	Notes       string `json:"notes"`
}

type SubmitScorecardRequest struct {
	CandidateID    uint                 `json:"candidateId" binding:"required"`
	TemplateID     uint                 `json:"templateId" binding:"required"`
	VagaID         *uint                `json:"vagaId"`
	Recommendation model.Recommendation `json:"recommendation" binding:"omitempty,oneof=strong_yes yes maybe no"`
	Comments       string               `json:"comments"`
	Answers        []AnswerInput        `json:"answers" binding:"required,dive"`
}

// ScorecardDetail acrescenta ao scorecard o resumo de questões abertas
// pendentes, relevante apenas para sessões externas.
type ScorecardDetail struct {
	*model.Scorecard
	TotalScoreDisplay float64                 `json:"totalScoreDisplay"`
	PendingOpenText   *scoring.PendingSummary `json:"pendingOpenText,omitempty"`
}

// criteriaViews projeta critérios do catálogo na visão mínima do motor.
func criteriaViews(criteria []model.ScorecardCriterion) []scoring.Criterion {
	views := make([]scoring.Criterion, len(criteria))
	for i, c := range criteria {
		views[i] = scoring.Criterion{
			ID:           c.ID,
			Weight:       c.Weight,
			QuestionType: string(c.QuestionType),
		}
	}
	return views
}

func answerViews(answers []model.ScorecardAnswer) []scoring.Answer {
	views := make([]scoring.Answer, len(answers))
	for i, a := range answers {
		views[i] = scoring.Answer{CriterionID: a.CriterionID, Score: a.Score}
	}
	return views
}

// buildInternalSubmission valida um envio interno contra os critérios do
// template e devolve as respostas prontas e o agregado. O envio é tudo ou
// nada: toda nota presente entre 1 e 5 e recomendação escolhida.
func buildInternalSubmission(criteria []model.ScorecardCriterion, req *SubmitScorecardRequest) ([]model.ScorecardAnswer, scoring.Aggregate, error) {
	byID := make(map[uint]*model.ScorecardCriterion, len(criteria))
	for i := range criteria {
		byID[criteria[i].ID] = &criteria[i]
	}

	answers := make([]model.ScorecardAnswer, 0, len(req.Answers))
	for _, in := range req.Answers {
		if _, ok := byID[in.CriterionID]; !ok {
			return nil, scoring.Aggregate{}, fmt.Errorf("critério %d não pertence ao template", in.CriterionID)
		}
		answers = append(answers, model.ScorecardAnswer{
			CriterionID: in.CriterionID,
			Score:       in.Score,
			Notes:       in.Notes,
		})
	}

	views := criteriaViews(criteria)
	answerVs := answerViews(answers)

	if !scoring.AllScoresSet(views, answerVs) {
		return nil, scoring.Aggregate{}, util.ErrScorecardIncomplete
	}
	if req.Recommendation == "" {
		return nil, scoring.Aggregate{}, util.ErrRecommendationRequired
	}

	return answers, scoring.Compute(views, answerVs), nil
}

// Submit grava uma avaliação interna completa. Depois de gravada a sessão
// é imutável; correções exigem uma nova avaliação.
func (s *ScorecardService) Submit(evaluatorID uint, req *SubmitScorecardRequest) (*model.Scorecard, error) {
	template, err := s.loadActiveTemplate(req.TemplateID)
	if err != nil {
		return nil, err
	}

	if _, err := s.candidateRepo.FindByID(req.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidato %d não encontrado", req.CandidateID)
		}
		return nil, err
	}

	answers, agg, err := buildInternalSubmission(template.Criteria, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scorecard := &model.Scorecard{
		CandidateID:     req.CandidateID,
		TemplateID:      req.TemplateID,
		EvaluatorID:     evaluatorID,
		VagaID:          req.VagaID,
		Source:          model.SourceInterno,
		Recommendation:  req.Recommendation,
		Comments:        req.Comments,
		TotalScore:      agg.TotalScore,
		MatchPercentage: agg.MatchPercentage,
		SubmittedAt:     &now,
	}

	if err := s.scorecardRepo.CreateWithAnswers(scorecard, answers); err != nil {
		return nil, err
	}

	monitoring.ScorecardSubmissions.WithLabelValues(string(model.SourceInterno)).Inc()
	logger.Log.Info("scorecard interno enviado",
		zap.Uint("scorecard_id", scorecard.ID),
		zap.Uint("candidate_id", scorecard.CandidateID),
		zap.Int("match", scorecard.MatchPercentage))
	return scorecard, nil
}

func (s *ScorecardService) loadActiveTemplate(id uint) (*model.ScorecardTemplate, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}
	if !template.Active {
		return nil, util.ErrTemplateInactive
	}
	if len(template.Criteria) == 0 {
		return nil, util.ErrTemplateWithoutCriteria
	}
	return template, nil
}

// GetByID devolve a sessão com o agregado já persistido e, para sessões
// externas, o resumo de pendências de correção.
func (s *ScorecardService) GetByID(id uint) (*ScorecardDetail, error) {
	scorecard, err := s.scorecardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScorecardNotFound
		}
		return nil, err
	}
	return s.detail(scorecard)
}

func (s *ScorecardService) detail(scorecard *model.Scorecard) (*ScorecardDetail, error) {
	det := &ScorecardDetail{
		Scorecard:         scorecard,
		TotalScoreDisplay: scoring.Round2(scorecard.TotalScore),
	}

	if scorecard.Source == model.SourceExterno {
		template, err := s.templateRepo.FindByID(scorecard.TemplateID)
		if err != nil {
			return nil, err
		}
		pending := scoring.PendingOpenText(criteriaViews(template.Criteria), answerViews(scorecard.Answers))
		det.PendingOpenText = &pending
	}
	return det, nil
}

func (s *ScorecardService) ListByCandidate(candidateID uint) ([]model.Scorecard, error) {
	return s.scorecardRepo.ListByCandidate(candidateID)
}

func (s *ScorecardService) ListByVaga(vagaID uint) ([]model.Scorecard, error) {
	return s.scorecardRepo.ListByVaga(vagaID)
}

func (s *ScorecardService) Delete(id uint) error {
	if _, err := s.scorecardRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrScorecardNotFound
		}
		return err
	}
	return s.scorecardRepo.Delete(id)
}
