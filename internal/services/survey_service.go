package services

import (
	"context"
	"fmt"
	"time"

	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/repository"
	"github.com/baomythoi/leefit/internal/survey"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const recommendedTrainerLimit = 3

type surveyCreator interface {
	Create(ctx context.Context, input repository.CreateSurveyInput) (*models.SurveySubmission, error)
}

type surveyReader interface {
	LatestByUserID(ctx context.Context, userID int64) (*models.SurveySubmission, error)
}

type surveyProfileWriter interface {
	ApplySurvey(ctx context.Context, userID int64, in repository.SurveyProfileInput) (*models.UserProfile, error)
}

// surveyWriters binds the stores a submission writes to one query runner,
// normally a transaction.
type surveyWriters func(db repository.DBTX) (surveyCreator, surveyProfileWriter)

type trainerRecommender interface {
	RecommendTrainers(ctx context.Context, answers survey.Answers, limit int) ([]models.TrainerWithScore, error)
}

// SurveyRecorder is notified of every stored submission.
type SurveyRecorder interface {
	SurveySubmitted(goal string, language string)
}

type SurveyService struct {
	db         txBeginner
	surveyRepo surveyReader
	writers    surveyWriters
	matcher    trainerRecommender
	recorder   SurveyRecorder
	now        func() time.Time
}

type SurveyResult struct {
	Submission          *models.SurveySubmission  `json:"submission"`
	RecommendedTrainers []models.TrainerWithScore `json:"recommended_trainers"`
}

func NewSurveyService(
	db txBeginner,
	surveyRepo surveyReader,
	matcher trainerRecommender,
	recorder SurveyRecorder,
) *SurveyService {
	return &SurveyService{
		db:         db,
		surveyRepo: surveyRepo,
		writers: func(q repository.DBTX) (surveyCreator, surveyProfileWriter) {
			return repository.NewSurveyRepository(q), repository.NewUserProfileRepository(q)
		},
		matcher:  matcher,
		recorder: recorder,
		now:      time.Now,
	}
}

// Submit validates and stores a questionnaire submission. When userID is
// set the answers are also copied onto that user's profile.
func (s *SurveyService) Submit(
	ctx context.Context,
	userID *int64,
	submission survey.Submission,
) (*SurveyResult, error) {
	if err := survey.Validate(submission.Answers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	lang, err := i18n.ParseLanguage(string(submission.Language))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	submittedAt := s.now().UTC()
	if submission.Timestamp != "" {
		parsed, err := submission.SubmittedAt()
		if err != nil {
			return nil, fmt.Errorf("%w: timestamp must be ISO-8601", ErrInvalidInput)
		}
		submittedAt = parsed.UTC()
	}

	stored, err := s.store(ctx, userID, submission, repository.CreateSurveyInput{
		Reference:   uuid.NewString(),
		UserID:      userID,
		Answers:     submission.Answers,
		Language:    string(lang),
		SubmittedAt: submittedAt,
	})
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.SurveySubmitted(submission.FitnessGoal, string(lang))
	}

	trainers, err := s.matcher.RecommendTrainers(ctx, submission.Answers, recommendedTrainerLimit)
	if err != nil {
		log.Warn().Err(err).Str("reference", stored.Reference).Msg("Trainer recommendation failed")
		trainers = []models.TrainerWithScore{}
	}

	return &SurveyResult{
		Submission:          stored,
		RecommendedTrainers: trainers,
	}, nil
}

// store writes the submission and the profile update in one transaction.
func (s *SurveyService) store(
	ctx context.Context,
	userID *int64,
	submission survey.Submission,
	input repository.CreateSurveyInput,
) (*models.SurveySubmission, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	submissions, profiles := s.writers(tx)

	stored, err := submissions.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if _, err := profiles.ApplySurvey(ctx, *userID, repository.SurveyProfileInput{
			FitnessLevel:      submission.Experience,
			Goals:             []string{submission.FitnessGoal},
			DailyMinutes:      submission.TimeAvailable,
			MedicalConditions: submission.HealthConcerns,
			TrainerGender:     submission.TrainerGender,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *SurveyService) Latest(ctx context.Context, userID int64) (*models.SurveySubmission, error) {
	return s.surveyRepo.LatestByUserID(ctx, userID)
}
