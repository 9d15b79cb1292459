package service

import (
	"context"
	"errors"
	"mime/multipart"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/repository"
	"rhello_flow_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CandidateService struct {
	candidateRepo *repository.CandidateRepository
	storage       *StorageService
}

func NewCandidateService(candidateRepo *repository.CandidateRepository, storage *StorageService) *CandidateService {
	return &CandidateService{candidateRepo: candidateRepo, storage: storage}
}

type CandidateRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	LinkedIn string `json:"linkedin" binding:"omitempty,max=255"`
	City     string `json:"city" binding:"omitempty,max=100"`
	Notes    string `json:"notes"`
	VagaID   *uint  `json:"vagaId"`
}

func (s *CandidateService) Create(req *CandidateRequest) (*model.Candidate, error) {
	candidate := &model.Candidate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		City:     req.City,
		Notes:    req.Notes,
		VagaID:   req.VagaID,
	}
	if err := s.candidateRepo.Create(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) GetByID(id uint) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) List(vagaID *uint, search string, page, limit int) ([]model.Candidate, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.candidateRepo.List(vagaID, search, page, limit)
}

func (s *CandidateService) Update(id uint, req *CandidateRequest) (*model.Candidate, error) {
	candidate, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	candidate.Name = req.Name
	candidate.Email = req.Email
	candidate.Phone = req.Phone
	candidate.LinkedIn = req.LinkedIn
	candidate.City = req.City
	candidate.Notes = req.Notes
	candidate.VagaID = req.VagaID

	if err := s.candidateRepo.Update(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) Delete(ctx context.Context, id uint) error {
	candidate, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if candidate.CVPath != "" {
		if err := s.storage.Delete(ctx, candidate.CVPath); err != nil {
			logger.Log.Warn("falha ao remover currículo do storage",
				zap.Uint("candidate_id", id), zap.Error(err))
		}
	}
	return s.candidateRepo.Delete(id)
}

// UploadCV grava o arquivo no storage e substitui o currículo anterior,
// se houver.
func (s *CandidateService) UploadCV(ctx context.Context, id uint, file *multipart.FileHeader) (string, error) {
	candidate, err := s.GetByID(id)
	if err != nil {
		return "", err
	}

	key, err := s.storage.UploadCV(ctx, id, file)
	if err != nil {
		return "", err
	}

	if candidate.CVPath != "" && candidate.CVPath != key {
		if err := s.storage.Delete(ctx, candidate.CVPath); err != nil {
			logger.Log.Warn("falha ao remover currículo antigo",
				zap.Uint("candidate_id", id), zap.Error(err))
		}
	}

	if err := s.candidateRepo.UpdateCVPath(id, key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *CandidateService) CVURL(ctx context.Context, id uint) (string, error) {
	candidate, err := s.GetByID(id)
	if err != nil {
		return "", err
	}
	if candidate.CVPath == "" {
		return "", gorm.ErrRecordNotFound
	}
	return s.storage.GetURL(ctx, candidate.CVPath)
}
