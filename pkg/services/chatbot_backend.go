package services

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var chatbotValidate *validator.Validate

type ChatbotServiceBackend struct {
	agroData AgroDataService
	logger   *logrus.Entry
}

type ChatbotBuilder struct {
	Logger   *logrus.Entry
	AgroData AgroDataService
}

func NewChatbotService(builder ChatbotBuilder) ChatbotService {
	chatbotValidate = validator.New()
	return &ChatbotServiceBackend{
		agroData: builder.AgroData,
		logger:   builder.Logger,
	}
}

func (svc *ChatbotServiceBackend) Diagnose(ctx context.Context, input DiagnoseInput) ([]DiagnoseMatch, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := chatbotValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	described := tokenize(input.Description)

	matches := []DiagnoseMatch{}
	_, err = svc.agroData.GetDiseases(ctx, GetDiseasesInput{
		ListInput: resources.ListInput[models.Disease]{
			ExhaustiveRun: true,
			ApplyFunc: func(disease models.Disease) {
				matched := []string{}
				for _, symptom := range disease.Symptoms {
					if symptomMatches(symptom, described) {
						matched = append(matched, symptom)
					}
				}

				if len(matched) > 0 {
					matches = append(matches, DiagnoseMatch{
						Disease:         disease,
						MatchedSymptoms: matched,
						Score:           len(matched),
					})
				}
			},
		},
	})
	if err != nil {
		lFunc.Errorf("could not iterate diseases: %s", err)
		return nil, err
	}

	// Ties break on name so the ranking is stable across runs.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Disease.Name < matches[j].Disease.Name
	})

	return matches, nil
}

// symptomMatches reports whether every word of the catalogued symptom appears
// in the described word set.
func symptomMatches(symptom string, described map[string]struct{}) bool {
	words := splitWords(symptom)
	if len(words) == 0 {
		return false
	}

	for _, word := range words {
		if _, ok := described[word]; !ok {
			return false
		}
	}

	return true
}

func tokenize(text string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, word := range splitWords(text) {
		words[word] = struct{}{}
	}

	return words
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
