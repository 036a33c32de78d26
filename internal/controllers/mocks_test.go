package controllers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"linkgate/internal/entities"
	"linkgate/internal/models"
	"linkgate/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.RegisterResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type mockURLService struct {
	mock.Mock
}

func (m *mockURLService) Create(ctx context.Context, req *models.CreateURLRequest, userID *string) (*entities.URL, error) {
	args := m.Called(ctx, req, userID)
	url, _ := args.Get(0).(*entities.URL)
	return url, args.Error(1)
}

func (m *mockURLService) List(ctx context.Context, userID string) ([]models.URLWithClicks, error) {
	args := m.Called(ctx, userID)
	urls, _ := args.Get(0).([]models.URLWithClicks)
	return urls, args.Error(1)
}

func (m *mockURLService) Update(ctx context.Context, id, userID string, req *models.UpdateURLRequest) (*entities.URL, error) {
	args := m.Called(ctx, id, userID, req)
	url, _ := args.Get(0).(*entities.URL)
	return url, args.Error(1)
}

func (m *mockURLService) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockURLService) GetBySlug(ctx context.Context, slug string) (*entities.URL, error) {
	args := m.Called(ctx, slug)
	url, _ := args.Get(0).(*entities.URL)
	return url, args.Error(1)
}

type mockRedirectService struct {
	mock.Mock
}

func (m *mockRedirectService) Resolve(ctx context.Context, slug string, visit service.Visit) (*service.Resolution, error) {
	args := m.Called(ctx, slug, visit)
	res, _ := args.Get(0).(*service.Resolution)
	return res, args.Error(1)
}

func (m *mockRedirectService) Check(ctx context.Context, slug string) (*service.Resolution, error) {
	args := m.Called(ctx, slug)
	res, _ := args.Get(0).(*service.Resolution)
	return res, args.Error(1)
}

func (m *mockRedirectService) ResolvePassword(ctx context.Context, urlID, password string, visit service.Visit) (*service.Resolution, error) {
	args := m.Called(ctx, urlID, password, visit)
	res, _ := args.Get(0).(*service.Resolution)
	return res, args.Error(1)
}

type mockClickService struct {
	mock.Mock
}

func (m *mockClickService) Record(ctx context.Context, urlID string, visit service.Visit) error {
	return m.Called(ctx, urlID, visit).Error(0)
}

func (m *mockClickService) Track(ctx context.Context, urlID string, visit service.Visit) error {
	return m.Called(ctx, urlID, visit).Error(0)
}

func (m *mockClickService) List(ctx context.Context, urlID, userID string, page, limit int) (*models.ClicksPage, error) {
	args := m.Called(ctx, urlID, userID, page, limit)
	result, _ := args.Get(0).(*models.ClicksPage)
	return result, args.Error(1)
}
