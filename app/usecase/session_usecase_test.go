package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"marketplace-core/app/domain"
	mock_port "marketplace-core/app/mocks"
	"marketplace-core/app/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUseCase(ctrl *gomock.Controller) (*SessionUseCase, *mock_port.MockIdentityGateway, *mock_port.MockProfileRepository, *mock_port.MockRoleCache) {
	mockGateway := mock_port.NewMockIdentityGateway(ctrl)
	mockProfiles := mock_port.NewMockProfileRepository(ctrl)
	mockCache := mock_port.NewMockRoleCache(ctrl)
	uc := NewSessionUseCase(mockGateway, mockProfiles, mockCache, testLogger())
	return uc, mockGateway, mockProfiles, mockCache
}

func TestSessionUseCase_Bootstrap(t *testing.T) {
	identity := &domain.Identity{ID: "id-123", Email: "renter@example.com"}

	tests := []struct {
		name            string
		setupMocks      func(*mock_port.MockIdentityGateway, *mock_port.MockProfileRepository, *mock_port.MockRoleCache)
		wantErr         error
		wantAuth        bool
		wantRole        domain.Role
		wantIdentityID  string
	}{
		{
			name: "cold start with no identity",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					OnIdentityChanged(gomock.Any()).
					DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
						h(nil)
						return func() {}
					})
			},
			wantAuth: false,
		},
		{
			name: "warm start adopts cached role without any store read",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					OnIdentityChanged(gomock.Any()).
					DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
						h(identity)
						return func() {}
					})
				mockCache.EXPECT().
					Get("id-123").
					Return(domain.RoleAgent, true, nil)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantAuth:       true,
			wantRole:       domain.RoleAgent,
			wantIdentityID: "id-123",
		},
		{
			name: "cache miss resolves role from the profile record",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					OnIdentityChanged(gomock.Any()).
					DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
						h(identity)
						return func() {}
					})
				mockCache.EXPECT().
					Get("id-123").
					Return(domain.Role(""), false, nil)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-123").
					Return(&domain.Profile{IdentityID: "id-123", Role: domain.RoleRenter}, nil)
				mockCache.EXPECT().
					Set("id-123", domain.RoleRenter).
					Return(nil)
			},
			wantAuth:       true,
			wantRole:       domain.RoleRenter,
			wantIdentityID: "id-123",
		},
		{
			name: "identity without a profile is forcibly signed out",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					OnIdentityChanged(gomock.Any()).
					DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
						h(identity)
						return func() {}
					})
				mockCache.EXPECT().
					Get("id-123").
					Return(domain.Role(""), false, nil)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-123").
					Return(nil, domain.ErrProfileMissing)
				mockGateway.EXPECT().
					SignOut(gomock.Any()).
					Return(nil)
				mockCache.EXPECT().
					Delete("id-123").
					Return(nil)
			},
			wantErr:  domain.ErrProfileMissing,
			wantAuth: false,
		},
		{
			name: "profile store failure clears cache and leaves unauthenticated",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					OnIdentityChanged(gomock.Any()).
					DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
						h(identity)
						return func() {}
					})
				mockCache.EXPECT().
					Get("id-123").
					Return(domain.Role(""), false, nil)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-123").
					Return(nil, errors.New("store unreachable"))
				mockCache.EXPECT().
					Delete("id-123").
					Return(nil)
			},
			wantErr:  errors.New("store unreachable"),
			wantAuth: false,
		},
		{
			name: "corrupt cache entry falls through to the profile record",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					OnIdentityChanged(gomock.Any()).
					DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
						h(identity)
						return func() {}
					})
				mockCache.EXPECT().
					Get("id-123").
					Return(domain.Role(""), false, errors.New("cache file corrupt"))
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-123").
					Return(&domain.Profile{IdentityID: "id-123", Role: domain.RoleAgent}, nil)
				mockCache.EXPECT().
					Set("id-123", domain.RoleAgent).
					Return(nil)
			},
			wantAuth:       true,
			wantRole:       domain.RoleAgent,
			wantIdentityID: "id-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, mockGateway, mockProfiles, mockCache := newTestUseCase(ctrl)
			tt.setupMocks(mockGateway, mockProfiles, mockCache)

			err := uc.Bootstrap(context.Background())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}

			session := uc.Current()
			assert.False(t, session.Bootstrapping)
			assert.Equal(t, tt.wantAuth, session.Authenticated)
			if tt.wantAuth {
				require.NotNil(t, session.Identity)
				assert.Equal(t, tt.wantIdentityID, session.Identity.ID)
				assert.Equal(t, tt.wantRole, session.Role)
			} else {
				assert.Nil(t, session.Identity)
			}
		})
	}
}

func TestSessionUseCase_Bootstrap_RunsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mockGateway, _, _ := newTestUseCase(ctrl)
	mockGateway.EXPECT().
		OnIdentityChanged(gomock.Any()).
		DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
			h(nil)
			return func() {}
		})

	require.NoError(t, uc.Bootstrap(context.Background()))

	err := uc.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already run")
}

func TestSessionUseCase_BootstrappingStateBeforeFirstNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, _, _, _ := newTestUseCase(ctrl)

	session := uc.Current()
	assert.True(t, session.Bootstrapping)
	assert.False(t, session.Authenticated)
	assert.Nil(t, session.Identity)
}

func TestSessionUseCase_Logout(t *testing.T) {
	identity := &domain.Identity{ID: "id-123", Email: "agent@example.com"}

	t.Run("logout keeps the session until the provider notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mockGateway, mockProfiles, mockCache := newTestUseCase(ctrl)

		mockGateway.EXPECT().
			SignIn(gomock.Any(), "agent@example.com", "secret-password").
			Return(identity, nil)
		mockProfiles.EXPECT().
			GetProfile(gomock.Any(), "id-123").
			Return(&domain.Profile{IdentityID: "id-123", Role: domain.RoleAgent}, nil)
		mockCache.EXPECT().
			Set("id-123", domain.RoleAgent).
			Return(nil)

		_, err := uc.Login(context.Background(), "agent@example.com", "secret-password")
		require.NoError(t, err)

		mockGateway.EXPECT().
			SignOut(gomock.Any()).
			Return(nil)
		mockCache.EXPECT().
			Delete("id-123").
			Return(nil)

		require.NoError(t, uc.Logout(context.Background()))

		// The provider's own notification drives the transition; until it
		// arrives the last committed state stands.
		assert.True(t, uc.Current().Authenticated)
	})

	t.Run("provider sign-out failure is returned and nothing is cleared", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mockGateway, _, mockCache := newTestUseCase(ctrl)

		mockGateway.EXPECT().
			SignOut(gomock.Any()).
			Return(errors.New("network down"))
		mockCache.EXPECT().
			Delete(gomock.Any()).
			Times(0)

		err := uc.Logout(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network down")
	})

	t.Run("logout while signed out only hits the provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mockGateway, _, mockCache := newTestUseCase(ctrl)

		mockGateway.EXPECT().
			SignOut(gomock.Any()).
			Return(nil)
		mockCache.EXPECT().
			Delete(gomock.Any()).
			Times(0)

		require.NoError(t, uc.Logout(context.Background()))
	})
}

func TestSessionUseCase_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mockGateway, mockProfiles, mockCache := newTestUseCase(ctrl)

	var mu sync.Mutex
	var seen []domain.Session
	cancel := uc.Subscribe(func(session domain.Session) {
		mu.Lock()
		seen = append(seen, session)
		mu.Unlock()
	})

	// Immediate snapshot of the bootstrap state.
	mu.Lock()
	require.Len(t, seen, 1)
	assert.True(t, seen[0].Bootstrapping)
	mu.Unlock()

	identity := &domain.Identity{ID: "id-123", Email: "renter@example.com"}
	mockGateway.EXPECT().
		SignIn(gomock.Any(), "renter@example.com", "secret-password").
		Return(identity, nil)
	mockProfiles.EXPECT().
		GetProfile(gomock.Any(), "id-123").
		Return(&domain.Profile{IdentityID: "id-123", Role: domain.RoleRenter}, nil)
	mockCache.EXPECT().
		Set("id-123", domain.RoleRenter).
		Return(nil)

	_, err := uc.Login(context.Background(), "renter@example.com", "secret-password")
	require.NoError(t, err)

	mu.Lock()
	require.Len(t, seen, 2)
	assert.True(t, seen[1].Authenticated)
	assert.Equal(t, domain.RoleRenter, seen[1].Role)
	mu.Unlock()

	// Cancelled and doubly-cancelled observers receive nothing further.
	cancel()
	cancel()

	uc.resetUnauthenticated()

	mu.Lock()
	assert.Len(t, seen, 2)
	mu.Unlock()
}

func TestSessionUseCase_StaleResolutionIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mockGateway, mockProfiles, mockCache := newTestUseCase(ctrl)

	var handler port.IdentityHandler
	mockGateway.EXPECT().
		OnIdentityChanged(gomock.Any()).
		DoAndReturn(func(h port.IdentityHandler) port.CancelFunc {
			handler = h
			h(nil)
			return func() {}
		})
	require.NoError(t, uc.Bootstrap(context.Background()))

	identity := &domain.Identity{ID: "id-123", Email: "renter@example.com"}
	entered := make(chan struct{})
	release := make(chan struct{})

	mockCache.EXPECT().
		Get("id-123").
		Return(domain.Role(""), false, nil)
	mockProfiles.EXPECT().
		GetProfile(gomock.Any(), "id-123").
		DoAndReturn(func(context.Context, string) (*domain.Profile, error) {
			close(entered)
			<-release
			return &domain.Profile{IdentityID: "id-123", Role: domain.RoleRenter}, nil
		})
	mockCache.EXPECT().
		Set("id-123", domain.RoleRenter).
		Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler(identity)
	}()

	// Sign-out arrives while the profile fetch is still in flight; the
	// fetch's eventual result must not resurrect the session.
	<-entered
	handler(nil)
	close(release)
	<-done

	session := uc.Current()
	assert.False(t, session.Authenticated)
	assert.Nil(t, session.Identity)
}
