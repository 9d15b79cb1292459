package repository_test

import (
	"testing"
	"time"

	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB sobe um sqlite em memória com o schema mínimo de sessões e
// respostas, equivalente ao gerado pela migração no MySQL.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// uma única conexão para o :memory: não se fragmentar entre conexões do pool
	sqlDB.SetMaxOpenConns(1)

	stmts := []string{
		`CREATE TABLE scorecards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			candidate_id INTEGER NOT NULL,
			template_id INTEGER NOT NULL,
			evaluator_id INTEGER,
			vaga_id INTEGER,
			source TEXT DEFAULT 'interno',
			recommendation TEXT,
			comments TEXT,
			total_score REAL,
			match_percentage INTEGER,
			submitted_at DATETIME,
			expires_at DATETIME,
			external_token TEXT
		)`,
		`CREATE UNIQUE INDEX idx_scorecards_external_token ON scorecards(external_token)`,
		`CREATE TABLE scorecard_answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			scorecard_id INTEGER NOT NULL,
			criterion_id INTEGER NOT NULL,
			score INTEGER,
			notes TEXT,
			text_answer TEXT,
			graded_by INTEGER,
			graded_at DATETIME,
			selected_option_index INTEGER,
			is_correct BOOLEAN
		)`,
		`CREATE UNIQUE INDEX idx_scorecard_criterion ON scorecard_answers(scorecard_id, criterion_id)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("criando schema de teste: %v", err)
		}
	}
	return db
}

func score(v int) *int { return &v }

func internalScorecard(candidateID uint) (*model.Scorecard, []model.ScorecardAnswer) {
	now := time.Now()
	sc := &model.Scorecard{
		CandidateID:     candidateID,
		TemplateID:      1,
		EvaluatorID:     2,
		Source:          model.SourceInterno,
		Recommendation:  model.RecommendYes,
		TotalScore:      82,
		MatchPercentage: 82,
		SubmittedAt:     &now,
	}
	answers := []model.ScorecardAnswer{
		{CriterionID: 1, Score: score(5)},
		{CriterionID: 2, Score: score(4)},
	}
	return sc, answers
}

// Sessões internas não carregam token; o NULL resultante não pode colidir
// no índice único, senão a segunda avaliação da base inteira é rejeitada.
func TestCreateWithAnswers_RepeatedInternalSubmissions(t *testing.T) {
	repo := repository.NewScorecardRepository(openTestDB(t))

	first, firstAnswers := internalScorecard(10)
	if err := repo.CreateWithAnswers(first, firstAnswers); err != nil {
		t.Fatalf("primeira avaliação interna: %v", err)
	}

	second, secondAnswers := internalScorecard(11)
	if err := repo.CreateWithAnswers(second, secondAnswers); err != nil {
		t.Fatalf("segunda avaliação interna rejeitada: %v", err)
	}

	third, thirdAnswers := internalScorecard(10) // mesmo candidato, nova entrevista
	if err := repo.CreateWithAnswers(third, thirdAnswers); err != nil {
		t.Fatalf("terceira avaliação interna rejeitada: %v", err)
	}

	got, err := repo.FindByID(second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ExternalToken != nil {
		t.Errorf("avaliação interna gravou token %q, esperava NULL", *got.ExternalToken)
	}
	if len(got.Answers) != 2 {
		t.Errorf("esperava 2 respostas, veio %d", len(got.Answers))
	}
}

func TestCreateWithAnswers_TokenUniqueness(t *testing.T) {
	repo := repository.NewScorecardRepository(openTestDB(t))

	tokenA := "aaaa1111"
	tokenB := "bbbb2222"
	expires := time.Now().Add(24 * time.Hour)

	for _, token := range []string{tokenA, tokenB} {
		tk := token
		sc := &model.Scorecard{
			CandidateID:   1,
			TemplateID:    1,
			Source:        model.SourceExterno,
			ExpiresAt:     &expires,
			ExternalToken: &tk,
		}
		if err := repo.CreateWithAnswers(sc, []model.ScorecardAnswer{{CriterionID: 1}}); err != nil {
			t.Fatalf("emissão com token %s: %v", token, err)
		}
	}

	dup := tokenA
	clash := &model.Scorecard{
		CandidateID:   2,
		TemplateID:    1,
		Source:        model.SourceExterno,
		ExpiresAt:     &expires,
		ExternalToken: &dup,
	}
	if err := repo.CreateWithAnswers(clash, []model.ScorecardAnswer{{CriterionID: 1}}); err == nil {
		t.Fatal("token repetido deveria falhar no índice único")
	}

	found, err := repo.FindByToken(tokenA)
	if err != nil {
		t.Fatal(err)
	}
	if found.CandidateID != 1 {
		t.Errorf("token %s resolveu para o candidato %d, esperava 1", tokenA, found.CandidateID)
	}
}

// Correção de questão aberta: resposta e agregado precisam ser persistidos
// juntos, sem tocar as demais respostas nem o submitted_at da sessão.
func TestUpdateAnswersAndAggregate_GradingEvent(t *testing.T) {
	repo := repository.NewScorecardRepository(openTestDB(t))

	token := "cccc3333"
	submittedAt := time.Now().Add(-time.Hour).Truncate(time.Second)
	sc := &model.Scorecard{
		CandidateID:     1,
		TemplateID:      1,
		Source:          model.SourceExterno,
		ExternalToken:   &token,
		SubmittedAt:     &submittedAt,
		TotalScore:      46,
		MatchPercentage: 92,
	}
	answers := []model.ScorecardAnswer{
		{CriterionID: 1, Score: score(4)},
		{CriterionID: 2, Score: score(5), SelectedOptionIndex: score(1)},
		{CriterionID: 3, TextAnswer: "resposta do candidato"},
	}
	if err := repo.CreateWithAnswers(sc, answers); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.FindByID(sc.ID)
	if err != nil {
		t.Fatal(err)
	}

	var open *model.ScorecardAnswer
	for i := range loaded.Answers {
		if loaded.Answers[i].CriterionID == 3 {
			open = &loaded.Answers[i]
		}
	}
	if open == nil {
		t.Fatal("resposta aberta não encontrada na sessão")
	}

	gradedAt := time.Now().Truncate(time.Second)
	grader := uint(7)
	open.Score = score(3)
	open.GradedBy = &grader
	open.GradedAt = &gradedAt
	loaded.TotalScore = 76
	loaded.MatchPercentage = 76

	if err := repo.UpdateAnswersAndAggregate(loaded, []model.ScorecardAnswer{*open}); err != nil {
		t.Fatalf("persistindo correção: %v", err)
	}

	after, err := repo.FindByID(sc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.TotalScore != 76 || after.MatchPercentage != 76 {
		t.Errorf("agregado = (%v, %d), esperava (76, 76)", after.TotalScore, after.MatchPercentage)
	}
	if after.SubmittedAt == nil || !after.SubmittedAt.Equal(submittedAt) {
		t.Errorf("submitted_at alterado pela correção: %v", after.SubmittedAt)
	}

	for _, a := range after.Answers {
		switch a.CriterionID {
		case 1:
			if a.Score == nil || *a.Score != 4 || a.GradedBy != nil {
				t.Errorf("resposta de rating alterada pela correção: %+v", a)
			}
		case 2:
			if a.Score == nil || *a.Score != 5 {
				t.Errorf("resposta de múltipla escolha alterada pela correção: %+v", a)
			}
		case 3:
			if a.Score == nil || *a.Score != 3 {
				t.Errorf("nota da questão aberta = %v, esperava 3", a.Score)
			}
			if a.GradedBy == nil || *a.GradedBy != grader {
				t.Errorf("graded_by = %v, esperava %d", a.GradedBy, grader)
			}
			if a.TextAnswer != "resposta do candidato" {
				t.Errorf("correção alterou o texto: %q", a.TextAnswer)
			}
		}
	}
}
