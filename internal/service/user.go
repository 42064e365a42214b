package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
	"stablecart-api/internal/repository"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Get(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	CreateAddress(ctx context.Context, userID string, req *dto.AddressRequest) (*dto.AddressResponse, error)
	ListAddresses(ctx context.Context, userID string) ([]*dto.AddressResponse, error)
	UpdateAddress(ctx context.Context, userID, addressID string, req *dto.AddressRequest) (*dto.AddressResponse, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

type userServiceImpl struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Country:      req.Country,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) authResponse(user *model.User) (*dto.AuthResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.AuthResponse{
		Token: signed,
		User:  toUserResponse(user),
	}, nil
}

func (s *userServiceImpl) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a field-level update: only the fields enumerated in
// the request struct can change, nil fields are left untouched.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userID, fields); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return s.Get(ctx, userID)
}

func (s *userServiceImpl) CreateAddress(ctx context.Context, userID string, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	if req.IsDefault {
		if err := s.userRepo.ClearDefaultAddress(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	address := &model.Address{
		ID:        uuid.NewString(),
		UserID:    userID,
		Label:     req.Label,
		Recipient: req.Recipient,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		Postal:    req.Postal,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	}
	if err := s.userRepo.CreateAddress(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	return toAddressResponse(address), nil
}

func (s *userServiceImpl) ListAddresses(ctx context.Context, userID string) ([]*dto.AddressResponse, error) {
	addresses, err := s.userRepo.FindAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	out := make([]*dto.AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = toAddressResponse(a)
	}

	return out, nil
}

func (s *userServiceImpl) UpdateAddress(ctx context.Context, userID, addressID string, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	if req.IsDefault {
		if err := s.userRepo.ClearDefaultAddress(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	address := &model.Address{
		ID:        addressID,
		UserID:    userID,
		Label:     req.Label,
		Recipient: req.Recipient,
		Line1:     req.Line1,
		Line2:     req.Line2,
		City:      req.City,
		Postal:    req.Postal,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	}
	if err := s.userRepo.UpdateAddress(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	return toAddressResponse(address), nil
}

func (s *userServiceImpl) DeleteAddress(ctx context.Context, userID, addressID string) error {
	return s.userRepo.DeleteAddress(ctx, userID, addressID)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Country:     u.Country,
	}
}

func toAddressResponse(a *model.Address) *dto.AddressResponse {
	return &dto.AddressResponse{
		ID:        a.ID,
		Label:     a.Label,
		Recipient: a.Recipient,
		Line1:     a.Line1,
		Line2:     a.Line2,
		City:      a.City,
		Postal:    a.Postal,
		Country:   a.Country,
		IsDefault: a.IsDefault,
	}
}
