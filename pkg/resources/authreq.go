package resources

import "github.com/agrosense/agrosense/pkg/models"

type RegisterUserBody struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type DiagnoseBody struct {
	Description string `json:"description"`
}

type DiagnoseMatch struct {
	Disease         models.Disease `json:"disease"`
	MatchedSymptoms []string       `json:"matched_symptoms"`
	Score           int            `json:"score"`
}

type DiagnoseResponse struct {
	Success bool            `json:"success"`
	Matches []DiagnoseMatch `json:"matches"`
}
