package preference

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Settings struct {
	MaxDistance *float64 `json:"maxDistance,omitempty"`
	MinAge      *int     `json:"minAge,omitempty"`
	MaxAge      *int     `json:"maxAge,omitempty"`
}

// Preferences는 users.preferences 컬럼 하나에 JSON으로 저장됩니다
type Preferences struct {
	InterestedIn       []string       `json:"interestedIn,omitempty"`
	RelationshipIntent string         `json:"relationshipIntent,omitempty"`
	SexualOrientation  string         `json:"sexualOrientation,omitempty"`
	Settings           Settings       `json:"settings"`
	DislikedProfiles   []DislikeEntry `json:"dislikedProfiles,omitempty"`
}

type DislikeEntry struct {
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UnmarshalJSON은 숫자/문자열 userId와 잘못된 타임스탬프를 허용합니다.
// 파싱할 수 없는 expiresAt 은 zero time(= 만료)으로 둡니다.
func (d *DislikeEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		UserID    json.RawMessage `json:"userId"`
		ExpiresAt json.RawMessage `json:"expiresAt"`
	}
	// 객체가 아닌 항목은 zero 값으로 남기고 Parse 에서 걸러냅니다
	if err := json.Unmarshal(b, &raw); err != nil {
		*d = DislikeEntry{}
		return nil
	}

	*d = DislikeEntry{
		UserID:    parseLooseInt(raw.UserID),
		ExpiresAt: parseLooseTime(raw.ExpiresAt),
	}
	return nil
}

func parseLooseInt(raw json.RawMessage) int {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

func parseLooseTime(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Parse는 원시 바이트를 Preferences로 읽습니다. 잘못된 값은 빈 값이 됩니다.
func Parse(raw []byte) Preferences {
	var p Preferences
	if len(raw) == 0 {
		return p
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return Preferences{}
	}
	p.DislikedProfiles = lo.Filter(p.DislikedProfiles, func(d DislikeEntry, _ int) bool {
		return d.UserID > 0
	})
	return p
}

// Scan implements sql.Scanner. NULL 이나 깨진 JSON 은 에러 없이 빈 값으로 읽습니다.
func (p *Preferences) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = Preferences{}
	case []byte:
		*p = Parse(v)
	case string:
		*p = Parse([]byte(v))
	default:
		*p = Preferences{}
	}
	return nil
}

// Value implements driver.Valuer.
func (p Preferences) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	return string(b), nil
}

// GormDataType은 AutoMigrate 시 컬럼 타입을 지정합니다
func (Preferences) GormDataType() string {
	return "text"
}

func (p Preferences) MaxDistanceKm(def float64) float64 {
	if p.Settings.MaxDistance != nil && *p.Settings.MaxDistance > 0 {
		return *p.Settings.MaxDistance
	}
	return def
}

// Interests는 공백 토큰을 뺀 관심 목록입니다
func (p Preferences) Interests() []string {
	return lo.Filter(p.InterestedIn, func(s string, _ int) bool { return strings.TrimSpace(s) != "" })
}

// Accepts는 이 사용자가 gender 에 관심이 있는지 한 방향으로 판단합니다
func (p Preferences) Accepts(gender string) bool {
	interests := p.Interests()
	if len(interests) == 0 || lo.SomeBy(interests, IsCatchAll) {
		return true
	}
	if strings.TrimSpace(gender) == "" {
		return false
	}
	want := GroupToken(gender)
	return lo.SomeBy(interests, func(s string) bool { return GroupToken(s) == want })
}

// Normalized는 관심 목록을 그룹 토큰으로 정리한 복사본을 돌려줍니다
func (p Preferences) Normalized() Preferences {
	out := p
	out.InterestedIn = lo.Uniq(lo.FilterMap(p.InterestedIn, func(s string, _ int) (string, bool) {
		g := GroupToken(s)
		return g, g != ""
	}))
	if len(out.InterestedIn) == 0 {
		out.InterestedIn = nil
	}
	out.RelationshipIntent = strings.ToLower(strings.TrimSpace(p.RelationshipIntent))
	out.SexualOrientation = strings.ToLower(strings.TrimSpace(p.SexualOrientation))
	out.DislikedProfiles = append([]DislikeEntry(nil), p.DislikedProfiles...)
	return out
}
