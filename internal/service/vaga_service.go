package service

import (
	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/repository"
)

type VagaService struct {
	vagaRepo      *repository.VagaRepository
	scorecardRepo *repository.ScorecardRepository
}

func NewVagaService(vagaRepo *repository.VagaRepository, scorecardRepo *repository.ScorecardRepository) *VagaService {
	return &VagaService{vagaRepo: vagaRepo, scorecardRepo: scorecardRepo}
}

type VagaRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=150"`
	Description string   `json:"description"`
	Company     string   `json:"company" binding:"omitempty,max=150"`
	Location    string   `json:"location" binding:"omitempty,max=100"`
	SalaryMin   *float64 `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax   *float64 `json:"salaryMax" binding:"omitempty,gte=0"`
}

// VagaReport resume o funil de avaliação de uma vaga.
type VagaReport struct {
	Vaga           *model.Vaga       `json:"vaga"`
	ScorecardCount int64             `json:"scorecardCount"`
	AverageMatch   float64           `json:"averageMatch"`
	TopCandidates  []model.Scorecard `json:"topCandidates"`
}

func (s *VagaService) Create(recruiterID uint, req *VagaRequest) (*model.Vaga, error) {
	vaga := &model.Vaga{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Status:      model.VagaAberta,
		RecruiterID: recruiterID,
	}
	if err := s.vagaRepo.Create(vaga); err != nil {
		return nil, err
	}
	return vaga, nil
}

func (s *VagaService) GetByID(id uint) (*model.Vaga, error) {
	return s.vagaRepo.FindByID(id)
}

func (s *VagaService) List(status model.VagaStatus, page, limit int) ([]model.Vaga, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.vagaRepo.List(status, page, limit)
}

func (s *VagaService) Update(id uint, req *VagaRequest) (*model.Vaga, error) {
	vaga, err := s.vagaRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	vaga.Title = req.Title
	vaga.Description = req.Description
	vaga.Company = req.Company
	vaga.Location = req.Location
	vaga.SalaryMin = req.SalaryMin
	vaga.SalaryMax = req.SalaryMax

	if err := s.vagaRepo.Update(vaga); err != nil {
		return nil, err
	}
	return vaga, nil
}

func (s *VagaService) UpdateStatus(id uint, status model.VagaStatus) error {
	if _, err := s.vagaRepo.FindByID(id); err != nil {
		return err
	}
	return s.vagaRepo.UpdateStatus(id, status)
}

func (s *VagaService) Delete(id uint) error {
	return s.vagaRepo.Delete(id)
}

// Report consolida média de match e ranking dos avaliados da vaga.
func (s *VagaService) Report(id uint) (*VagaReport, error) {
	vaga, err := s.vagaRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.scorecardRepo.AverageMatchByVaga(id)
	if err != nil {
		return nil, err
	}

	top, err := s.scorecardRepo.ListByVaga(id)
	if err != nil {
		return nil, err
	}
	if len(top) > 10 {
		top = top[:10]
	}

	return &VagaReport{
		Vaga:           vaga,
		ScorecardCount: count,
		AverageMatch:   avg,
		TopCandidates:  top,
	}, nil
}
