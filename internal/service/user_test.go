package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stablecart-api/internal/dto"
	"stablecart-api/internal/model"
)

type fakeUserRepo struct {
	users     map[string]*model.User
	addresses map[string]*model.Address
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     map[string]*model.User{},
		addresses: map[string]*model.Address{},
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["display_name"]; ok {
		u.DisplayName = v.(string)
	}
	if v, ok := fields["country"]; ok {
		u.Country = v.(string)
	}
	return nil
}

func (r *fakeUserRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	cp := *address
	r.addresses[address.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindAddresses(ctx context.Context, userID string) ([]*model.Address, error) {
	var out []*model.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateAddress(ctx context.Context, address *model.Address) error {
	existing, ok := r.addresses[address.ID]
	if !ok || existing.UserID != address.UserID {
		return gorm.ErrRecordNotFound
	}
	cp := *address
	r.addresses[address.ID] = &cp
	return nil
}

func (r *fakeUserRepo) DeleteAddress(ctx context.Context, userID, addressID string) error {
	a, ok := r.addresses[addressID]
	if !ok || a.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.addresses, addressID)
	return nil
}

func (r *fakeUserRepo) ClearDefaultAddress(ctx context.Context, userID string) error {
	for _, a := range r.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}

const testJWTSecret = "test-secret"

func newUserService(repo *fakeUserRepo) UserService {
	return NewUserService(repo, testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService(newFakeUserRepo())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "sat@example.com",
		Password:    "hunter22",
		DisplayName: "Sat",
		Country:     "PT",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "sat@example.com", reg.User.Email)

	// token carries the user id as subject
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(reg.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.Subject)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "sat@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "sat@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "sat@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "sat@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "sat@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "sat@example.com", Password: "hunter22", DisplayName: "Sat", Country: "PT",
	})
	require.NoError(t, err)

	name := "Satoshi"
	resp, err := svc.UpdateProfile(ctx, reg.User.ID, &dto.UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)

	// only the provided field changes
	assert.Equal(t, "Satoshi", resp.DisplayName)
	assert.Equal(t, "PT", resp.Country)
}

func TestAddressDefaultExclusive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	first, err := svc.CreateAddress(ctx, "user-a", &dto.AddressRequest{Label: "Home", IsDefault: true})
	require.NoError(t, err)
	second, err := svc.CreateAddress(ctx, "user-a", &dto.AddressRequest{Label: "Work", IsDefault: true})
	require.NoError(t, err)

	addresses, err := svc.ListAddresses(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDeleteAddressOwnership(t *testing.T) {
	svc := newUserService(newFakeUserRepo())
	ctx := context.Background()

	created, err := svc.CreateAddress(ctx, "user-a", &dto.AddressRequest{Label: "Home"})
	require.NoError(t, err)

	err = svc.DeleteAddress(ctx, "user-b", created.ID)
	assert.Error(t, err)

	err = svc.DeleteAddress(ctx, "user-a", created.ID)
	require.NoError(t, err)

	addresses, err := svc.ListAddresses(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
