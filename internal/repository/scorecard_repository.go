package repository

import (
	"rhello_flow_backend/internal/model"

	"gorm.io/gorm"
)

type ScorecardRepository struct {
	db *gorm.DB
}

func NewScorecardRepository(db *gorm.DB) *ScorecardRepository {
	return &ScorecardRepository{db: db}
}

// CreateWithAnswers grava a sessão e todas as respostas numa única
// transação: ou o scorecard inteiro entra, ou nada entra.
func (r *ScorecardRepository) CreateWithAnswers(scorecard *model.Scorecard, answers []model.ScorecardAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(scorecard).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ScorecardID = scorecard.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		scorecard.Answers = answers
		return nil
	})
}

func (r *ScorecardRepository) FindByID(id uint) (*model.Scorecard, error) {
	var scorecard model.Scorecard
	err := r.db.Preload("Answers").First(&scorecard, id).Error
	if err != nil {
		return nil, err
	}
	return &scorecard, nil
}

func (r *ScorecardRepository) FindByToken(token string) (*model.Scorecard, error) {
	var scorecard model.Scorecard
	err := r.db.Preload("Answers").Where("external_token = ?", token).First(&scorecard).Error
	if err != nil {
		return nil, err
	}
	return &scorecard, nil
}

func (r *ScorecardRepository) ListByCandidate(candidateID uint) ([]model.Scorecard, error) {
	var scorecards []model.Scorecard
	err := r.db.Preload("Answers").
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Find(&scorecards).Error
	return scorecards, err
}

func (r *ScorecardRepository) ListByVaga(vagaID uint) ([]model.Scorecard, error) {
	var scorecards []model.Scorecard
	err := r.db.Where("vaga_id = ?", vagaID).
		Order("match_percentage DESC").
		Find(&scorecards).Error
	return scorecards, err
}

func (r *ScorecardRepository) FindAnswer(id uint) (*model.ScorecardAnswer, error) {
	var answer model.ScorecardAnswer
	err := r.db.First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// UpdateAnswersAndAggregate persiste respostas alteradas e o agregado
// recalculado da sessão numa única transação. É o caminho de escrita tanto
// do envio do candidato quanto da correção manual de questão aberta.
func (r *ScorecardRepository) UpdateAnswersAndAggregate(scorecard *model.Scorecard, answers []model.ScorecardAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			if err := tx.Save(&answers[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Scorecard{}).Where("id = ?", scorecard.ID).
			Updates(map[string]interface{}{
				"total_score":      scorecard.TotalScore,
				"match_percentage": scorecard.MatchPercentage,
				"submitted_at":     scorecard.SubmittedAt,
			}).Error
	})
}

func (r *ScorecardRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scorecard_id = ?", id).Delete(&model.ScorecardAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Scorecard{}, id).Error
	})
}

// AverageMatchByVaga alimenta o relatório de pipeline por vaga.
func (r *ScorecardRepository) AverageMatchByVaga(vagaID uint) (float64, int64, error) {
	type row struct {
		Avg   float64
		Count int64
	}
	var rw row
	err := r.db.Model(&model.Scorecard{}).
		Select("COALESCE(AVG(match_percentage), 0) as avg, COUNT(*) as count").
		Where("vaga_id = ? AND submitted_at IS NOT NULL", vagaID).
		Scan(&rw).Error
	return rw.Avg, rw.Count, err
}
