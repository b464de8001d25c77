package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/ctxutil"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/platform/validate"
)

type RegisterInput struct {
	ChurchName string `json:"church_name" validate:"required,max=200"`
	Timezone   string `json:"timezone"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
}

type AuthResult struct {
	AccessToken string            `json:"access_token"`
	ExpiresIn   int               `json:"expires_in"`
	User        *domain.StaffUser `json:"user"`
	Church      *domain.Church    `json:"church,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context) (*domain.StaffUser, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	ChurchID string `json:"church_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	churchRepo   repos.ChurchRepo
	userRepo     repos.StaffUserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	churchRepo repos.ChurchRepo,
	userRepo repos.StaffUserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		churchRepo:   churchRepo,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.ChurchName = strings.TrimSpace(in.ChurchName)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierr.Conflict("email_taken", "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, apierr.BadRequest("invalid_timezone", fmt.Sprintf("unknown timezone %q", tz))
	}

	var church *domain.Church
	var user *domain.StaffUser
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := as.uniqueSlug(ctx, tx, in.ChurchName)
		if err != nil {
			return err
		}
		church, err = as.churchRepo.Create(ctx, tx, &domain.Church{
			Name:     in.ChurchName,
			Slug:     slug,
			Timezone: tz,
		})
		if err != nil {
			return err
		}
		user, err = as.userRepo.Create(ctx, tx, &domain.StaffUser{
			ChurchID:     church.ID,
			Email:        in.Email,
			PasswordHash: string(hash),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Role:         domain.RoleAdmin,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("register church: %w", err)
	}
	as.log.Info("church registered", "church_id", church.ID, "user_id", user.ID)

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresIn: int(as.accessTTL.Seconds()), User: user, Church: church}, nil
}

func (as *authService) uniqueSlug(ctx context.Context, tx *gorm.DB, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "church"
	}
	slug := base
	for i := 0; i < 5; i++ {
		taken, err := as.churchRepo.SlugExists(ctx, tx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:6]
	}
	return "", apierr.Conflict("slug_taken", "could not allocate a unique church slug")
}

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (as *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apierr.BadRequest("invalid_request", "email and password are required")
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apierr.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apierr.Unauthorized("invalid credentials")
	}
	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresIn: int(as.accessTTL.Seconds()), User: user}, nil
}

func (as *authService) Me(ctx context.Context) (*domain.StaffUser, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized("not authenticated")
	}
	user, err := as.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apierr.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (as *authService) generateAccessToken(user *domain.StaffUser) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		ChurchID: user.ChurchID.String(),
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized("missing token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, &apierr.Error{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "invalid or expired token", Err: err}
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthorized("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid user id in token")
	}
	churchID, err := uuid.Parse(claims.ChurchID)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid church id in token")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:   userID,
		ChurchID: churchID,
		Role:     claims.Role,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
