package preference

import (
	"time"

	"github.com/samber/lo"
)

// ActiveDislikes는 now 이후에 만료되는 싫어요 대상 ID 집합입니다
func (p Preferences) ActiveDislikes(now time.Time) map[int]struct{} {
	active := make(map[int]struct{}, len(p.DislikedProfiles))
	for _, d := range p.DislikedProfiles {
		if d.active(now) {
			active[d.UserID] = struct{}{}
		}
	}
	return active
}

func (d DislikeEntry) active(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && d.ExpiresAt.After(now)
}

// PruneDislikes는 만료됐거나 타임스탬프가 없는 항목을 제거하고 제거 개수를 돌려줍니다
func (p *Preferences) PruneDislikes(now time.Time) int {
	before := len(p.DislikedProfiles)
	kept := lo.Filter(p.DislikedProfiles, func(d DislikeEntry, _ int) bool {
		return d.active(now)
	})
	if len(kept) == 0 {
		kept = nil
	}
	p.DislikedProfiles = kept
	return before - len(kept)
}

// AddDislike는 항목을 만들거나 만료 시각을 now+ttl 로 갱신합니다. 사용자당 하나만 유지합니다
func (p *Preferences) AddDislike(userID int, now time.Time, ttl time.Duration) DislikeEntry {
	entry := DislikeEntry{UserID: userID, ExpiresAt: now.Add(ttl).UTC()}

	rest := lo.Reject(p.DislikedProfiles, func(d DislikeEntry, _ int) bool {
		return d.UserID == userID
	})
	p.DislikedProfiles = append(rest, entry)
	return entry
}
