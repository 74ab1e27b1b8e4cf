package errs

import "errors"

var (
	ErrCropNotFound         error = errors.New("crop not found")
	ErrCropAlreadyExists    error = errors.New("crop already exists")
	ErrDiseaseNotFound      error = errors.New("disease not found")
	ErrSoilTypeNotFound     error = errors.New("soil type not found")
	ErrScheduleRuleNotFound error = errors.New("schedule rule not found")
	ErrPlanNotFound         error = errors.New("cultivation plan not found")
)
