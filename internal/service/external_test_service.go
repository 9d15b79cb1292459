package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/repository"
	"rhello_flow_backend/internal/scoring"
	"rhello_flow_backend/internal/util"
	"rhello_flow_backend/pkg/logger"
	"rhello_flow_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tokenCachePrefix = "external_test:token:"

// ExternalTestService cuida do fluxo externo: emissão de link, envio único
// pelo candidato e correção manual das questões abertas.
type ExternalTestService struct {
	scorecardRepo *repository.ScorecardRepository
	templateRepo  *repository.TemplateRepository
	candidateRepo *repository.CandidateRepository
	rdb           *redis.Client
	cfg           *config.Config
}

func NewExternalTestService(
	scorecardRepo *repository.ScorecardRepository,
	templateRepo *repository.TemplateRepository,
	candidateRepo *repository.CandidateRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *ExternalTestService {
	return &ExternalTestService{
		scorecardRepo: scorecardRepo,
		templateRepo:  templateRepo,
		candidateRepo: candidateRepo,
		rdb:           rdb,
		cfg:           cfg,
	}
}

type IssueTestRequest struct {
	CandidateID uint  `json:"candidateId" binding:"required"`
	TemplateID  uint  `json:"templateId" binding:"required"`
	VagaID      *uint `json:"vagaId"`
}

type IssueTestResponse struct {
	ScorecardID uint      `json:"scorecardId"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// newExternalToken gera 32 bytes aleatórios em hex. Com uniqueIndex na
// coluna, uma colisão (improvável) falha na gravação em vez de sobrescrever.
func newExternalToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueTest cria a sessão externa com respostas pré-semeadas vazias e
// devolve o link público do teste.
func (s *ExternalTestService) IssueTest(ctx context.Context, recruiterID uint, req *IssueTestRequest) (*IssueTestResponse, error) {
	template, err := s.templateRepo.FindByID(req.TemplateID)
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

	if _, err := s.candidateRepo.FindByID(req.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidato %d não encontrado", req.CandidateID)
		}
		return nil, err
	}

	token, err := newExternalToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.ExternalTest.ExpireDays) * 24 * time.Hour)
	scorecard := &model.Scorecard{
		CandidateID:   req.CandidateID,
		TemplateID:    req.TemplateID,
		EvaluatorID:   recruiterID,
		VagaID:        req.VagaID,
		Source:        model.SourceExterno,
		ExpiresAt:     &expiresAt,
		ExternalToken: &token,
	}

	answers := make([]model.ScorecardAnswer, len(template.Criteria))
	for i, c := range template.Criteria {
		answers[i] = model.ScorecardAnswer{CriterionID: c.ID}
	}

	if err := s.scorecardRepo.CreateWithAnswers(scorecard, answers); err != nil {
		return nil, err
	}

	s.cacheToken(ctx, token, scorecard.ID, time.Until(expiresAt))

	logger.Log.Info("teste externo emitido",
		zap.Uint("scorecard_id", scorecard.ID),
		zap.Uint("candidate_id", req.CandidateID),
		zap.Time("expires_at", expiresAt))

	return &IssueTestResponse{
		ScorecardID: scorecard.ID,
		URL:         s.cfg.ExternalTest.PublicBaseURL + "/" + token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *ExternalTestService) cacheToken(ctx context.Context, token string, id uint, ttl time.Duration) {
	if s.rdb == nil || ttl <= 0 {
		return
	}
	if err := s.rdb.Set(ctx, tokenCachePrefix+token, id, ttl).Err(); err != nil {
		logger.Log.Warn("falha ao cachear token de teste", zap.Error(err))
	}
}

func (s *ExternalTestService) findByToken(ctx context.Context, token string) (*model.Scorecard, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, tokenCachePrefix+token).Result(); err == nil {
			if id, convErr := strconv.ParseUint(cached, 10, 32); convErr == nil {
				if sc, dbErr := s.scorecardRepo.FindByID(uint(id)); dbErr == nil {
					return sc, nil
				}
			}
		}
	}

	scorecard, err := s.scorecardRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return scorecard, nil
}

// PublicCriterion é o critério visto pelo candidato: sem peso e, em
// múltipla escolha, sem o gabarito.
type PublicCriterion struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        model.QuestionType `json:"type"`
	Options     []string           `json:"options,omitempty"`
}

type PublicTestView struct {
	TemplateName string            `json:"templateName"`
	Description  string            `json:"description"`
	Criteria     []PublicCriterion `json:"criteria"`
	ExpiresAt    *time.Time        `json:"expiresAt"`
	Submitted    bool              `json:"submitted"`
}

// GetByToken monta a visão pública do teste para o candidato.
func (s *ExternalTestService) GetByToken(ctx context.Context, token string) (*PublicTestView, error) {
	scorecard, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if scorecard.ExpiresAt != nil && time.Now().After(*scorecard.ExpiresAt) {
		return nil, util.ErrTestExpired
	}

	template, err := s.templateRepo.FindByID(scorecard.TemplateID)
	if err != nil {
		return nil, err
	}

	view := &PublicTestView{
		TemplateName: template.Name,
		Description:  template.Description,
		ExpiresAt:    scorecard.ExpiresAt,
		Submitted:    scorecard.SubmittedAt != nil,
		Criteria:     make([]PublicCriterion, 0, len(template.Criteria)),
	}
	for _, c := range template.Criteria {
		pc := PublicCriterion{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Type:        c.QuestionType,
		}
		if c.QuestionType == model.QuestionMultipleChoice {
			opts, err := c.DecodeOptions()
			if err != nil {
				return nil, err
			}
			for _, o := range opts {
				pc.Options = append(pc.Options, o.Text)
			}
		}
		view.Criteria = append(view.Criteria, pc)
	}
	return view, nil
}

type ExternalAnswerInput struct {
	CriterionID         uint   `json:"criterionId" binding:"required"`
	Score               *int   `json:"score" binding:"omitempty,min=1,max=5"`
	TextAnswer          string `json:"textAnswer"`
	SelectedOptionIndex *int   `json:"selectedOptionIndex"`
}

type SubmitTestRequest struct {
	Answers []ExternalAnswerInput `json:"answers" binding:"required,dive"`
}

// applyCandidateSubmission preenche as respostas pré-semeadas com o envio
// do candidato: rating recebe a nota direta, múltipla escolha é corrigida
// automaticamente e questão aberta guarda só o texto, sem nota.
func applyCandidateSubmission(criteria []model.ScorecardCriterion, answers []model.ScorecardAnswer, inputs []ExternalAnswerInput) error {
	criterionByID := make(map[uint]*model.ScorecardCriterion, len(criteria))
	for i := range criteria {
		criterionByID[criteria[i].ID] = &criteria[i]
	}
	answerByCriterion := make(map[uint]*model.ScorecardAnswer, len(answers))
	for i := range answers {
		answerByCriterion[answers[i].CriterionID] = &answers[i]
	}

	for _, in := range inputs {
		criterion, ok := criterionByID[in.CriterionID]
		if !ok {
			return fmt.Errorf("critério %d não pertence ao teste", in.CriterionID)
		}
		answer, ok := answerByCriterion[in.CriterionID]
		if !ok {
			return util.ErrAnswerNotFound
		}

		switch criterion.QuestionType {
		case model.QuestionRating:
			if in.Score == nil {
				return fmt.Errorf("critério %d: nota obrigatória", in.CriterionID)
			}
			answer.Score = in.Score
		case model.QuestionOpenText:
			answer.TextAnswer = in.TextAnswer
		case model.QuestionMultipleChoice:
			if in.SelectedOptionIndex == nil {
				return fmt.Errorf("critério %d: alternativa obrigatória", in.CriterionID)
			}
			opts, err := criterion.DecodeOptions()
			if err != nil {
				return err
			}
			engineOpts := make([]scoring.Option, len(opts))
			for i, o := range opts {
				engineOpts[i] = scoring.Option{Text: o.Text, IsCorrect: o.IsCorrect}
			}
			score, correct := scoring.ScoreChoice(engineOpts, *in.SelectedOptionIndex)
			answer.Score = &score
			answer.IsCorrect = &correct
			answer.SelectedOptionIndex = in.SelectedOptionIndex
		}
	}
	return nil
}

// SubmitAnswers processa o envio único do candidato e persiste respostas e
// agregado numa única transação.
func (s *ExternalTestService) SubmitAnswers(ctx context.Context, token string, req *SubmitTestRequest) (*model.Scorecard, error) {
	scorecard, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if scorecard.ExpiresAt != nil && time.Now().After(*scorecard.ExpiresAt) {
		return nil, util.ErrTestExpired
	}
	if scorecard.SubmittedAt != nil {
		return nil, util.ErrTestAlreadySubmitted
	}

	template, err := s.templateRepo.FindByID(scorecard.TemplateID)
	if err != nil {
		return nil, err
	}

	if err := applyCandidateSubmission(template.Criteria, scorecard.Answers, req.Answers); err != nil {
		return nil, err
	}

	agg := scoring.Compute(criteriaViews(template.Criteria), answerViews(scorecard.Answers))
	now := time.Now()
	scorecard.TotalScore = agg.TotalScore
	scorecard.MatchPercentage = agg.MatchPercentage
	scorecard.SubmittedAt = &now

	if err := s.scorecardRepo.UpdateAnswersAndAggregate(scorecard, scorecard.Answers); err != nil {
		return nil, err
	}

	monitoring.ScorecardSubmissions.WithLabelValues(string(model.SourceExterno)).Inc()
	logger.Log.Info("teste externo enviado",
		zap.Uint("scorecard_id", scorecard.ID),
		zap.Int("match", scorecard.MatchPercentage))
	return scorecard, nil
}

type GradeAnswerRequest struct {
	Score int    `json:"score" binding:"required,min=1,max=5"`
	Notes string `json:"notes"`
}

// applyManualGrade valida e aplica a correção de uma questão aberta. O texto
// enviado pelo candidato nunca é alterado.
func applyManualGrade(answer *model.ScorecardAnswer, criterion *model.ScorecardCriterion, graderID uint, score int, notes string, now time.Time) error {
	if criterion.QuestionType != model.QuestionOpenText {
		return util.ErrNotOpenText
	}
	if answer.Graded() {
		return util.ErrAnswerAlreadyGraded
	}
	if score < 1 || score > scoring.MaxScore {
		return util.ErrInvalidScore
	}

	answer.Score = &score
	answer.GradedBy = &graderID
	answer.GradedAt = &now
	if notes != "" {
		answer.Notes = notes
	}
	return nil
}

// GradeAnswer corrige uma questão aberta e recalcula o agregado da sessão
// a partir do conjunto completo de respostas, persistindo tudo junto.
func (s *ExternalTestService) GradeAnswer(answerID, graderID uint, req *GradeAnswerRequest) (*model.Scorecard, error) {
	answer, err := s.scorecardRepo.FindAnswer(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}

	criterion, err := s.templateRepo.FindCriterion(answer.CriterionID)
	if err != nil {
		return nil, err
	}

	if err := applyManualGrade(answer, criterion, graderID, req.Score, req.Notes, time.Now()); err != nil {
		return nil, err
	}

	// relê a sessão inteira para recomputar sobre o conjunto atualizado
	scorecard, err := s.scorecardRepo.FindByID(answer.ScorecardID)
	if err != nil {
		return nil, err
	}
	for i := range scorecard.Answers {
		if scorecard.Answers[i].ID == answer.ID {
			scorecard.Answers[i] = *answer
		}
	}

	template, err := s.templateRepo.FindByID(scorecard.TemplateID)
	if err != nil {
		return nil, err
	}

	agg := scoring.Compute(criteriaViews(template.Criteria), answerViews(scorecard.Answers))
	scorecard.TotalScore = agg.TotalScore
	scorecard.MatchPercentage = agg.MatchPercentage

	if err := s.scorecardRepo.UpdateAnswersAndAggregate(scorecard, []model.ScorecardAnswer{*answer}); err != nil {
		return nil, err
	}

	monitoring.GradingEvents.Inc()
	logger.Log.Info("questão aberta corrigida",
		zap.Uint("answer_id", answer.ID),
		zap.Uint("scorecard_id", scorecard.ID),
		zap.Uint("graded_by", graderID),
		zap.Int("match", scorecard.MatchPercentage))
	return scorecard, nil
}
