package preference

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// 정규화된 성별 토큰
const (
	Man       = "man"
	Men       = "men"
	Woman     = "woman"
	Women     = "women"
	Nonbinary = "nonbinary"
	Everyone  = "everyone"
)

var canonical = map[string]string{
	"male": Man,
	"man":  Man,
	"guy":  Man,
	"m":    Man,

	"men":   Men,
	"males": Men,
	"guys":  Men,

	"female": Woman,
	"woman":  Woman,
	"girl":   Woman,
	"f":      Woman,

	"women":   Women,
	"females": Women,
	"girls":   Women,

	"non-binary": Nonbinary,
	"nonbinary":  Nonbinary,
	"non binary": Nonbinary,
	"enby":       Nonbinary,
	"nb":         Nonbinary,

	"everyone": Everyone,
	"anyone":   Everyone,
	"all":      Everyone,
	"both":     Everyone,
	"any":      Everyone,
}

var groupOf = map[string]string{
	Man:   Men,
	Woman: Women,
}

// Normalize는 자유 입력 성별/관심 토큰을 표준 토큰으로 바꿉니다.
// 모르는 값은 trim + 소문자 그대로 돌려줍니다.
func Normalize(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := canonical[token]; ok {
		return c
	}
	return token
}

// GroupToken은 단수 토큰을 그룹 토큰으로 올립니다 (man -> men)
func GroupToken(raw string) string {
	token := Normalize(raw)
	if g, ok := groupOf[token]; ok {
		return g
	}
	return token
}

func IsCatchAll(raw string) bool {
	return Normalize(raw) == Everyone
}

// Aliases는 주어진 그룹으로 정규화되는 모든 원문 표기를 돌려줍니다.
// 프로필 저장소의 성별 IN 필터에 사용합니다.
func Aliases(groups []string) []string {
	wanted := lo.SliceToMap(lo.Compact(lo.Map(groups, func(g string, _ int) string {
		return GroupToken(g)
	})), func(g string) (string, struct{}) {
		return g, struct{}{}
	})
	if len(wanted) == 0 {
		return nil
	}

	out := make([]string, 0, len(canonical))
	for raw := range canonical {
		if _, ok := wanted[GroupToken(raw)]; ok {
			out = append(out, raw)
		}
	}
	// 표에 없는 토큰도 그대로 매칭되도록 포함
	for g := range wanted {
		out = append(out, g)
	}
	out = lo.Uniq(out)
	sort.Strings(out)
	return out
}
