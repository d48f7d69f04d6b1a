package service

import (
	"context"
	"strconv"
	"strings"

	"spark/pkg/apperror"
	"spark/pkg/dto"
	"spark/pkg/logger"
	"spark/pkg/types/commontype"
	"spark/services/auth/repository"
)

// UserDirectory는 인증에 필요한 user 서비스 기능입니다 (user service.UserService)
type UserDirectory interface {
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*dto.UserDTO, error)
	GetUserByID(ctx context.Context, id int) (*dto.UserDTO, error)
}

type AuthService struct {
	repo             *repository.AuthRepository
	users            UserDirectory
	masterKeyEnabled bool
}

func NewAuthService(repo *repository.AuthRepository, users UserDirectory, masterKeyEnabled bool) *AuthService {
	return &AuthService{repo: repo, users: users, masterKeyEnabled: masterKeyEnabled}
}

// Register는 프로필을 만들고 바로 세션을 발급합니다
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserDTO, string, error) {
	user, err := s.users.RegisterUser(ctx, req)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := s.repo.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	logger.Logger.Info().Int("user_id", user.ID).Msg("user registered")
	return user, sessionID, nil
}

// Login은 개발용 masterkey-<userID> 토큰만 받습니다
func (s *AuthService) Login(ctx context.Context, accessToken string) (*dto.UserDTO, string, error) {
	userID, ok := s.parseMasterKey(accessToken)
	if !ok {
		return nil, "", apperror.Unauthorized("invalid access token")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return nil, "", apperror.Unauthorized("invalid access token")
		}
		return nil, "", err
	}

	sessionID, err := s.repo.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, sessionID, nil
}

func (s *AuthService) parseMasterKey(token string) (int, bool) {
	if !s.masterKeyEnabled || !strings.HasPrefix(token, commontype.MasterKeyPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(token, commontype.MasterKeyPrefix))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Logout은 세션을 삭제합니다. 세션이 없어도 성공입니다
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, sessionID)
}
