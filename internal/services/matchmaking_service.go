package services

import (
	"context"
	"sort"
	"strings"

	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/survey"
)

type TrainerLister interface {
	ListAll(ctx context.Context) ([]models.Trainer, error)
}

type MatchmakingService struct {
	trainerRepo TrainerLister
}

func NewMatchmakingService(trainerRepo TrainerLister) *MatchmakingService {
	return &MatchmakingService{trainerRepo: trainerRepo}
}

// RecommendTrainers ranks every trainer against the questionnaire answers,
// highest score first, ties broken by rating.
func (s *MatchmakingService) RecommendTrainers(
	ctx context.Context,
	answers survey.Answers,
	limit int,
) ([]models.TrainerWithScore, error) {
	trainers, err := s.trainerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.TrainerWithScore, 0, len(trainers))
	for _, trainer := range trainers {
		matched = append(matched, models.TrainerWithScore{
			Trainer:    trainer,
			MatchScore: calculateMatchScore(answers, &trainer),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func calculateMatchScore(answers survey.Answers, trainer *models.Trainer) int {
	score := 0
	specs := normalizeValues(trainer.Specializations)

	for _, alias := range goalAliases(answers.FitnessGoal) {
		if _, ok := specs[alias]; ok {
			score += 40
			break
		}
	}

	switch preferred := normalize(answers.TrainerGender); preferred {
	case "male", "female":
		if normalize(trainer.Gender) == preferred {
			score += 25
		}
	}

	if trainer.Rating > 4.0 {
		score += 20
	}
	if trainer.ExperienceYears > 3 {
		score += 15
	}
	if len(trainer.Certifications) > 0 {
		score += 10
	}
	if hasHealthConcern(answers.HealthConcerns) {
		for _, spec := range []string{"rehabilitation", "injury_prevention", "physiotherapy", "corrective_exercise"} {
			if _, ok := specs[spec]; ok {
				score += 15
				break
			}
		}
	}

	return score
}

func goalAliases(goal string) []string {
	switch normalize(goal) {
	case "lose_weight", "weight_loss", "fat_loss":
		return []string{"weight_loss", "fat_loss"}
	case "gain_muscle", "muscle_gain":
		return []string{"muscle_gain", "bodybuilding", "hypertrophy"}
	case "increase_strength", "strength":
		return []string{"strength", "strength_training", "powerlifting"}
	case "maintain_health", "general_fitness":
		return []string{"general_fitness", "wellness", "mobility"}
	case "":
		return nil
	default:
		return []string{normalize(goal)}
	}
}

func hasHealthConcern(concerns []string) bool {
	for _, concern := range concerns {
		if c := normalize(concern); c != "" && c != survey.NoConcerns {
			return true
		}
	}
	return false
}

func normalizeValues(values []string) map[string]struct{} {
	normalized := make(map[string]struct{})
	for _, value := range values {
		if key := normalize(value); key != "" {
			normalized[key] = struct{}{}
		}
	}
	return normalized
}

func normalize(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}
