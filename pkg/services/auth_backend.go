package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/errs"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/agrosense/agrosense/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jakehl/goid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var authValidate *validator.Validate

type AuthServiceBackend struct {
	usersStorage storage.UsersRepo
	signingKey   []byte
	tokenTTL     time.Duration
	logger       *logrus.Entry
}

type AuthBuilder struct {
	Logger       *logrus.Entry
	UsersStorage storage.UsersRepo
	Config       config.AuthConfig
}

func NewAuthService(builder AuthBuilder) AuthService {
	authValidate = validator.New()

	ttl := time.Duration(builder.Config.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}

	return &AuthServiceBackend{
		usersStorage: builder.UsersStorage,
		signingKey:   []byte(builder.Config.JWTSigningKey),
		tokenTTL:     ttl,
		logger:       builder.Logger,
	}
}

func (svc *AuthServiceBackend) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := authValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, _, err := svc.usersStorage.SelectExistsByEmail(ctx, input.Email)
	if err != nil {
		lFunc.Errorf("could not check if user '%s' exists in storage engine: %s", input.Email, err)
		return nil, err
	} else if exists {
		lFunc.Errorf("user %s already registered", input.Email)
		return nil, errs.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		lFunc.Errorf("could not hash password: %s", err)
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleFarmer
	}

	user := &models.User{
		ID:                goid.NewV4UUID().String(),
		Email:             input.Email,
		FullName:          input.FullName,
		PasswordHash:      string(hash),
		Role:              role,
		CreationTimestamp: time.Now(),
	}

	user, err = svc.usersStorage.Insert(ctx, user)
	if err != nil {
		lFunc.Errorf("could not insert user %s in storage engine: %s", input.Email, err)
		return nil, err
	}

	lFunc.Infof("user %s registered with role %s", user.Email, user.Role)
	return user, nil
}

func (svc *AuthServiceBackend) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := authValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	exists, user, err := svc.usersStorage.SelectExistsByEmail(ctx, input.Email)
	if err != nil {
		lFunc.Errorf("could not check if user '%s' exists in storage engine: %s", input.Email, err)
		return nil, err
	} else if !exists {
		lFunc.Warnf("login attempt for unknown user %s", input.Email)
		return nil, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		lFunc.Warnf("failed login attempt for user %s", input.Email)
		return nil, errs.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(svc.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(svc.signingKey)
	if err != nil {
		lFunc.Errorf("could not sign token for user %s: %s", input.Email, err)
		return nil, err
	}

	return &LoginOutput{
		Token: signed,
		User:  user,
	}, nil
}

func (svc *AuthServiceBackend) ParseAndVerify(ctx context.Context, tokenString string) (*TokenClaims, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return svc.signingKey, nil
	})
	if err != nil || !token.Valid {
		lFunc.Warnf("rejected token: %s", err)
		return nil, errs.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.ErrInvalidCredentials
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errs.ErrInvalidCredentials
	}

	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID: sub,
		Role:   models.UserRole(role),
	}, nil
}
