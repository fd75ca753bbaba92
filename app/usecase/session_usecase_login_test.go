package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"marketplace-core/app/domain"
	mock_port "marketplace-core/app/mocks"
)

func TestSessionUseCase_Login(t *testing.T) {
	identity := &domain.Identity{ID: "id-456", Email: "agent@example.com"}

	tests := []struct {
		name       string
		setupMocks func(*mock_port.MockIdentityGateway, *mock_port.MockProfileRepository, *mock_port.MockRoleCache)
		wantErr    error
		wantAuth   bool
		wantRole   domain.Role
	}{
		{
			name: "successful login re-reads the profile and ignores the cache",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					SignIn(gomock.Any(), "agent@example.com", "secret-password").
					Return(identity, nil)
				// Login is the trust-establishing path: the cache is never
				// consulted, only refreshed.
				mockCache.EXPECT().
					Get(gomock.Any()).
					Times(0)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-456").
					Return(&domain.Profile{IdentityID: "id-456", Role: domain.RoleAgent}, nil)
				mockCache.EXPECT().
					Set("id-456", domain.RoleAgent).
					Return(nil)
			},
			wantAuth: true,
			wantRole: domain.RoleAgent,
		},
		{
			name: "invalid credentials leave the session unauthenticated",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					SignIn(gomock.Any(), "agent@example.com", "secret-password").
					Return(nil, domain.ErrInvalidCredentials)
			},
			wantErr:  domain.ErrInvalidCredentials,
			wantAuth: false,
		},
		{
			name: "sign-in succeeds but no profile exists",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					SignIn(gomock.Any(), "agent@example.com", "secret-password").
					Return(identity, nil)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-456").
					Return(nil, domain.ErrProfileMissing)
				mockGateway.EXPECT().
					SignOut(gomock.Any()).
					Return(nil)
				mockCache.EXPECT().
					Delete("id-456").
					Return(nil)
			},
			wantErr:  domain.ErrProfileMissing,
			wantAuth: false,
		},
		{
			name: "profile fetch failure rolls the session back",
			setupMocks: func(mockGateway *mock_port.MockIdentityGateway, mockProfiles *mock_port.MockProfileRepository, mockCache *mock_port.MockRoleCache) {
				mockGateway.EXPECT().
					SignIn(gomock.Any(), "agent@example.com", "secret-password").
					Return(identity, nil)
				mockProfiles.EXPECT().
					GetProfile(gomock.Any(), "id-456").
					Return(nil, errors.New("store unreachable"))
				mockCache.EXPECT().
					Delete("id-456").
					Return(nil)
			},
			wantErr:  errors.New("store unreachable"),
			wantAuth: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, mockGateway, mockProfiles, mockCache := newTestUseCase(ctrl)
			tt.setupMocks(mockGateway, mockProfiles, mockCache)

			session, err := uc.Login(context.Background(), "agent@example.com", "secret-password")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantAuth, session.Authenticated)
			assert.Equal(t, session, uc.Current())
			if tt.wantAuth {
				assert.Equal(t, tt.wantRole, session.Role)
			} else {
				assert.Nil(t, session.Identity)
			}
		})
	}
}

func TestSessionUseCase_LoginWithToken(t *testing.T) {
	identity := &domain.Identity{ID: "id-789", Email: "renter@example.com"}

	t.Run("valid token resolves the role like a password login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mockGateway, mockProfiles, mockCache := newTestUseCase(ctrl)

		mockGateway.EXPECT().
			SignInWithToken(gomock.Any(), "session-token").
			Return(identity, nil)
		mockProfiles.EXPECT().
			GetProfile(gomock.Any(), "id-789").
			Return(&domain.Profile{IdentityID: "id-789", Role: domain.RoleRenter}, nil)
		mockCache.EXPECT().
			Set("id-789", domain.RoleRenter).
			Return(nil)

		session, err := uc.LoginWithToken(context.Background(), "session-token")
		require.NoError(t, err)
		assert.True(t, session.Authenticated)
		assert.Equal(t, domain.RoleRenter, session.Role)
	})

	t.Run("rejected token leaves the session unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mockGateway, _, _ := newTestUseCase(ctrl)

		mockGateway.EXPECT().
			SignInWithToken(gomock.Any(), "expired-token").
			Return(nil, domain.ErrInvalidCredentials)

		session, err := uc.LoginWithToken(context.Background(), "expired-token")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.False(t, session.Authenticated)
	})
}

func TestSessionUseCase_LoginRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, mockGateway, _, _ := newTestUseCase(ctrl)

	mockGateway.EXPECT().
		SignIn(gomock.Any(), "agent@example.com", "wrong-password").
		Return(nil, domain.ErrInvalidCredentials).
		Times(5)

	for i := 0; i < 5; i++ {
		_, err := uc.Login(context.Background(), "agent@example.com", "wrong-password")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// The burst is spent; the sixth attempt never reaches the provider.
	_, err := uc.Login(context.Background(), "agent@example.com", "wrong-password")
	require.ErrorIs(t, err, domain.ErrTooManyAttempts)
}
