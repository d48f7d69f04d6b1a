package service

import (
	"context"
	"strings"
	"time"

	"spark/pkg/apperror"
	"spark/pkg/dto"
	"spark/pkg/logger"
	"spark/pkg/models"
	"spark/pkg/preference"
	"spark/services/user/repository"

	eventtypes "spark/pkg/types/eventtype"

	"github.com/samber/lo"
)

const birthdayLayout = "2006-01-02"

type MQEmitter interface {
	PublishUserEvent(eventtypes.EventPayload) error
}

type UserService struct {
	repo    *repository.UserRepository
	emitter MQEmitter
	now     func() time.Time
}

func NewUserService(repo *repository.UserRepository, emitter MQEmitter) *UserService {
	return &UserService{repo: repo, emitter: emitter, now: time.Now}
}

func ToUserDTO(user models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:              user.ID,
		Name:            user.Name,
		Gender:          user.Gender,
		Birthday:        user.Birthday,
		Work:            user.Work,
		Bio:             user.Bio,
		CurrentLocation: user.CurrentLocation,
		Photos:          lo.Ternary(user.Photos == nil, []string{}, []string(user.Photos)),
		Tags:            lo.Ternary(user.Tags == nil, []string{}, []string(user.Tags)),
		UpdatedAt:       user.UpdatedAt,
	}
}

// 유저 리스트 조회
func (s *UserService) GetUserList(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.repo.GetUserList(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u models.User, _ int) dto.UserDTO { return ToUserDTO(u) }), nil
}

// 특정 유저 조회
func (s *UserService) GetUserByID(ctx context.Context, id int) (*dto.UserDTO, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToUserDTO(*user)
	return &out, nil
}

func parseBirthday(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(birthdayLayout, raw)
	if err != nil {
		return nil, apperror.InvalidInput("birthday must be YYYY-MM-DD")
	}
	return &t, nil
}

func cleanList(items []string) []string {
	return lo.FilterMap(items, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}

// 유저 등록
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*dto.UserDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.InvalidInput("name is required")
	}
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	var prefs preference.Preferences
	if req.Preferences != nil {
		if prefs, err = ApplyPreferences(prefs, *req.Preferences); err != nil {
			return nil, err
		}
	}

	user := models.User{
		Name:            name,
		Gender:          strings.TrimSpace(req.Gender),
		Birthday:        birthday,
		Work:            strings.TrimSpace(req.Work),
		Bio:             req.Bio,
		CurrentLocation: strings.TrimSpace(req.CurrentLocation),
		Photos:          cleanList(req.Photos),
		Tags:            cleanList(req.Tags),
		Preferences:     prefs,
	}
	if err := s.repo.InsertUser(ctx, &user); err != nil {
		return nil, err
	}

	out := ToUserDTO(user)
	return &out, nil
}

// 유저 부분 업데이트
func (s *UserService) UpdateUser(ctx context.Context, id int, req dto.UpdateUserRequest) (*dto.UserDTO, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.InvalidInput("name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Gender != nil {
		fields["gender"] = strings.TrimSpace(*req.Gender)
	}
	if req.Birthday != nil {
		birthday, err := parseBirthday(*req.Birthday)
		if err != nil {
			return nil, err
		}
		fields["birthday"] = birthday
	}
	if req.Work != nil {
		fields["work"] = strings.TrimSpace(*req.Work)
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.CurrentLocation != nil {
		fields["current_location"] = strings.TrimSpace(*req.CurrentLocation)
	}
	if req.Photos != nil {
		fields["photos"] = datatypesSlice(cleanList(*req.Photos))
	}
	if req.Tags != nil {
		fields["tags"] = datatypesSlice(cleanList(*req.Tags))
	}

	if err := s.repo.UpdateUser(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// 유저 삭제 후 user.deleted 이벤트 발행
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	event := eventtypes.UserDeletedEvent{UserID: id, DeletedAt: s.now().UTC()}
	if err := s.emitter.PublishUserEvent(newPayload(eventtypes.EventTypeUserDeleted, event, event.DeletedAt)); err != nil {
		// 삭제는 이미 커밋됨
		logger.Error(logger.LogEventError, "Failed to publish user.deleted", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
	}
	return nil
}
