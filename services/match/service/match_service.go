package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"spark/pkg/apperror"
	"spark/pkg/config"
	"spark/pkg/dto"
	"spark/pkg/geo"
	"spark/pkg/helper"
	"spark/pkg/logger"
	"spark/pkg/models"
	"spark/pkg/preference"
	"spark/pkg/types/stype"
	"spark/services/match/repository"
	userrepo "spark/services/user/repository"

	eventtypes "spark/pkg/types/eventtype"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type MQEmitter interface {
	PublishMatchEvent(eventtypes.EventPayload) error
}

type MatchService struct {
	db       *gorm.DB
	userRepo *userrepo.UserRepository
	prefRepo *userrepo.PreferenceRepository
	likeRepo *repository.LikeRepository
	emitter  MQEmitter
	notifier *Notifier
	pipeline Pipeline
	cfg      config.MatchConfig
	now      func() time.Time
}

func NewMatchService(db *gorm.DB, emitter MQEmitter, notifier *Notifier, cfg config.MatchConfig) *MatchService {
	return &MatchService{
		db:       db,
		userRepo: userrepo.NewUserRepository(db),
		prefRepo: userrepo.NewPreferenceRepository(db),
		likeRepo: repository.NewLikeRepository(db),
		emitter:  emitter,
		notifier: notifier,
		pipeline: Pipeline{
			DefaultMaxDistanceKm: cfg.DefaultMaxDistanceKm,
			EnforceAgeRange:      cfg.EnforceAgeRange,
		},
		cfg: cfg,
		now: time.Now,
	}
}

func (s *MatchService) Notifier() *Notifier {
	return s.notifier
}

// reconcile은 만료된 싫어요를 제거하고, 제거된 것이 있을 때만 저장합니다
func (s *MatchService) reconcile(ctx context.Context, user *models.User, now time.Time) (int, error) {
	removed := user.Preferences.PruneDislikes(now)
	if removed == 0 {
		return 0, nil
	}
	if err := s.prefRepo.SavePreferences(ctx, user.ID, user.Preferences); err != nil {
		return 0, err
	}

	logger.Info(logger.LogEventDislikesPruned, "expired dislikes pruned", map[string]int{
		"user_id": user.ID,
		"pruned":  removed,
	})
	return removed, nil
}

// ReconcileDislikes는 명시적인 만료 정리 단계입니다. 여러 번 호출해도 결과가 같습니다
func (s *MatchService) ReconcileDislikes(ctx context.Context, userID int) (int, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.reconcile(ctx, user, s.now())
}

// Feed는 viewer 의 후보 카드 목록을 돌려줍니다. 응답 전에 만료된 싫어요를 정리해 저장합니다
func (s *MatchService) Feed(ctx context.Context, viewerID int) (dto.FeedResponse, error) {
	now := s.now()

	viewer, err := s.userRepo.GetUserByID(ctx, viewerID)
	if err != nil {
		return dto.FeedResponse{}, err
	}

	pruned, err := s.reconcile(ctx, viewer, now)
	if err != nil {
		return dto.FeedResponse{}, err
	}

	likedIDs, err := s.likeRepo.LikedIDs(ctx, viewer.ID)
	if err != nil {
		return dto.FeedResponse{}, err
	}

	query := userrepo.CandidateQuery{
		ExcludeIDs: helper.UniqueIDs(append([]int{viewer.ID}, likedIDs...)),
		Limit:      s.cfg.PageSize,
	}
	if interests := viewer.Preferences.Interests(); len(interests) > 0 && !lo.SomeBy(interests, preference.IsCatchAll) {
		query.GenderAliases = preference.Aliases(interests)
	}

	candidates, err := s.userRepo.FindCandidates(ctx, query)
	if err != nil {
		return dto.FeedResponse{}, err
	}

	liked := lo.SliceToMap(likedIDs, func(id int) (int, struct{}) { return id, struct{}{} })
	cards := s.pipeline.Run(*viewer, candidates, liked, now)

	return dto.FeedResponse{Cards: cards, PrunedDislikes: pruned}, nil
}

func (s *MatchService) requireTarget(ctx context.Context, targetID int) error {
	ok, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrTargetNotFound
	}
	return nil
}

func (s *MatchService) requireViewer(ctx context.Context, viewerID int) error {
	ok, err := s.userRepo.Exists(ctx, viewerID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrUserNotFound
	}
	return nil
}

// RecordLike는 from -> to 좋아요를 기록합니다. 이미 있으면 기존 간선을 돌려줍니다
func (s *MatchService) RecordLike(ctx context.Context, fromUserID, toUserID int) (dto.LikeResponse, error) {
	if fromUserID == toUserID {
		return dto.LikeResponse{}, apperror.ErrSelfLike
	}
	if err := s.requireViewer(ctx, fromUserID); err != nil {
		return dto.LikeResponse{}, err
	}
	if err := s.requireTarget(ctx, toUserID); err != nil {
		return dto.LikeResponse{}, err
	}

	like, err := s.likeRepo.GetLike(ctx, fromUserID, toUserID)
	if err != nil {
		return dto.LikeResponse{}, err
	}

	created := false
	if like == nil {
		like = &models.Like{FromUserID: fromUserID, ToUserID: toUserID, CreatedAt: s.now().UTC()}
		if createErr := s.likeRepo.CreateLike(ctx, like); createErr != nil {
			// 동시 요청이 먼저 삽입했으면 그 간선을 사용
			existing, err := s.likeRepo.GetLike(ctx, fromUserID, toUserID)
			if err != nil {
				return dto.LikeResponse{}, err
			}
			if existing == nil {
				return dto.LikeResponse{}, apperror.Internal("failed to create like", createErr)
			}
			like = existing
		} else {
			created = true
		}
	}

	matched, err := s.likeRepo.Exists(ctx, toUserID, fromUserID)
	if err != nil {
		return dto.LikeResponse{}, err
	}

	if created {
		s.afterLike(*like, matched)
	}

	return dto.LikeResponse{
		LikeID:    like.ID,
		Created:   created,
		Matched:   matched,
		CreatedAt: like.CreatedAt,
	}, nil
}

func (s *MatchService) afterLike(like models.Like, matched bool) {
	likeEvent := eventtypes.LikeEvent{
		LikeID:     like.ID,
		FromUserID: like.FromUserID,
		ToUserID:   like.ToUserID,
		Matched:    matched,
		CreatedAt:  like.CreatedAt,
	}
	s.publish(eventtypes.EventTypeLikeCreated, likeEvent, like.CreatedAt)
	logger.Info(logger.LogEventLike, "like recorded", likeEvent)

	if !matched {
		s.notifier.Notify(like.ToUserID, stype.MessageKindLike, map[string]int{"user_id": like.FromUserID})
		return
	}

	matchEvent := eventtypes.MatchEvent{
		MatchID:   generateMatchID(like.FromUserID, like.ToUserID, like.CreatedAt),
		UserIDs:   []int{like.FromUserID, like.ToUserID},
		MatchedAt: like.CreatedAt,
	}
	s.publish(eventtypes.EventTypeMatchCreated, matchEvent, like.CreatedAt)
	logger.Info(logger.LogEventMatchCreated, fmt.Sprintf("Match created: %s", matchEvent.MatchID), matchEvent)

	s.notifier.Notify(like.FromUserID, stype.MessageKindMatch, dto.MatchNotice{
		MatchID: matchEvent.MatchID, UserID: like.ToUserID, MatchedAt: matchEvent.MatchedAt,
	})
	s.notifier.Notify(like.ToUserID, stype.MessageKindMatch, dto.MatchNotice{
		MatchID: matchEvent.MatchID, UserID: like.FromUserID, MatchedAt: matchEvent.MatchedAt,
	})
}

// RecordDislike는 싫어요 항목을 만들거나 갱신하고, 같은 트랜잭션에서 to -> from 좋아요를 삭제합니다
func (s *MatchService) RecordDislike(ctx context.Context, fromUserID, toUserID int) (dto.DislikeResponse, error) {
	if fromUserID == toUserID {
		return dto.DislikeResponse{}, apperror.ErrSelfDislike
	}
	if err := s.requireTarget(ctx, toUserID); err != nil {
		return dto.DislikeResponse{}, err
	}

	now := s.now()
	var entry preference.DislikeEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		viewer, err := s.userRepo.WithTx(tx).GetUserByID(ctx, fromUserID)
		if err != nil {
			return err
		}

		entry = viewer.Preferences.AddDislike(toUserID, now, s.cfg.DislikeTTL)
		if err := s.prefRepo.WithTx(tx).SavePreferences(ctx, fromUserID, viewer.Preferences); err != nil {
			return err
		}

		_, err = s.likeRepo.WithTx(tx).DeleteLike(ctx, toUserID, fromUserID)
		return err
	})
	if err != nil {
		return dto.DislikeResponse{}, err
	}

	dislikeEvent := eventtypes.DislikeEvent{FromUserID: fromUserID, ToUserID: toUserID, ExpiresAt: entry.ExpiresAt}
	s.publish(eventtypes.EventTypeDislikeCreated, dislikeEvent, now.UTC())
	logger.Info(logger.LogEventDislike, "dislike recorded", dislikeEvent)

	return dto.DislikeResponse{TargetID: toUserID, ExpiresAt: entry.ExpiresAt}, nil
}

func (s *MatchService) summaries(ctx context.Context, likedAt map[int]time.Time, order []int) ([]dto.ProfileSummary, error) {
	users, err := s.userRepo.FindByIDs(ctx, order)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]dto.ProfileSummary, 0, len(order))
	for _, id := range order {
		u, ok := users[id]
		if !ok {
			continue
		}
		summary := dto.ProfileSummary{ID: u.ID, Name: u.Name, LikedAt: likedAt[id]}
		if u.Birthday != nil {
			age := AgeAt(*u.Birthday, now)
			summary.Age = &age
		}
		if len(u.Photos) > 0 {
			summary.PrimaryPhoto = u.Photos[0]
		}
		out = append(out, summary)
	}
	return out, nil
}

// ReceivedLikes는 나를 좋아요한 사용자 목록입니다 (최신순)
func (s *MatchService) ReceivedLikes(ctx context.Context, userID int) ([]dto.ProfileSummary, error) {
	likes, err := s.likeRepo.LikesTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	likedAt := make(map[int]time.Time, len(likes))
	order := make([]int, 0, len(likes))
	for _, l := range likes {
		likedAt[l.FromUserID] = l.CreatedAt
		order = append(order, l.FromUserID)
	}
	return s.summaries(ctx, likedAt, order)
}

// Matches는 서로 좋아요한 사용자 목록입니다. 나중에 생긴 간선 시각 기준 최신순
func (s *MatchService) Matches(ctx context.Context, userID int) ([]dto.ProfileSummary, error) {
	sent, err := s.likeRepo.LikesFrom(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := s.likeRepo.LikesTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	receivedAt := lo.SliceToMap(received, func(l models.Like) (int, time.Time) { return l.FromUserID, l.CreatedAt })

	matchedAt := map[int]time.Time{}
	for _, l := range sent {
		back, ok := receivedAt[l.ToUserID]
		if !ok {
			continue
		}
		matchedAt[l.ToUserID] = lo.Ternary(back.After(l.CreatedAt), back, l.CreatedAt)
	}

	order := lo.Keys(matchedAt)
	sort.Slice(order, func(i, j int) bool {
		a, b := matchedAt[order[i]], matchedAt[order[j]]
		if a.Equal(b) {
			return order[i] > order[j]
		}
		return a.After(b)
	})
	return s.summaries(ctx, matchedAt, order)
}

// CheckCompatibility는 두 사용자의 상호 호환성과 거리 조건을 함께 판단합니다
func (s *MatchService) CheckCompatibility(ctx context.Context, viewerID, targetID int) (dto.CompatibilityResponse, error) {
	if viewerID == targetID {
		return dto.CompatibilityResponse{}, apperror.ErrInvalidTarget
	}

	viewer, err := s.userRepo.GetUserByID(ctx, viewerID)
	if err != nil {
		return dto.CompatibilityResponse{}, err
	}
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return dto.CompatibilityResponse{}, apperror.ErrTargetNotFound
		}
		return dto.CompatibilityResponse{}, err
	}

	resp := dto.CompatibilityResponse{
		Interest:     Compatible(PartyOf(*viewer), PartyOf(*target)),
		WithinRadius: true,
	}
	if km, ok := geo.Distance(viewer.CurrentLocation, target.CurrentLocation); ok {
		resp.DistanceKm = &km
		resp.WithinRadius = km <= viewer.Preferences.MaxDistanceKm(s.cfg.DefaultMaxDistanceKm)
	}
	resp.Compatible = resp.Interest && resp.WithinRadius
	return resp, nil
}

// HandleUserDeleted는 삭제된 사용자가 포함된 좋아요 간선을 모두 제거합니다
func (s *MatchService) HandleUserDeleted(ctx context.Context, userID int) (int64, error) {
	n, err := s.likeRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	logger.Logger.Info().Int("user_id", userID).Int64("likes", n).Msg("likes removed for deleted user")
	return n, nil
}

func (s *MatchService) publish(eventType string, data interface{}, at time.Time) {
	payload := eventtypes.EventPayload{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: at,
		Data:       helper.ToJSON(data),
	}

	// MQ로 이벤트 전송. 실패해도 이미 저장된 결과는 유지
	if err := s.emitter.PublishMatchEvent(payload); err != nil {
		logger.Warn(logger.LogEventWarning, "failed to publish "+eventType, map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func generateMatchID(a, b int, at time.Time) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%s_%d_%d", at.UTC().Format("20060102150405"), a, b)
}
