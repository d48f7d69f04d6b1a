package helper

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"spark/pkg/apperror"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func ToJSON(data interface{}) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal data")
		return nil
	}
	return json.RawMessage(bytes)
}

// 첫 번째 경로 요소를 추출하고 나머지 경로를 반환하는 함수
func ExtractFirstPath(path string) (string, string) {
	parts := strings.SplitN(path, "/", 3)

	if len(parts) > 1 {
		firstPath := parts[1]
		if len(parts) > 2 {
			return firstPath, "/" + parts[2]
		}
		return firstPath, "/"
	}

	return "", "/"
}

// ParseUserID는 X-User-ID 헤더 값을 양의 정수로 변환합니다
func ParseUserID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperror.ErrMissingUserID
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperror.ErrMissingUserID
	}
	return id, nil
}

// ParseID는 경로 파라미터의 대상 ID를 변환합니다
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, apperror.ErrInvalidTarget
	}
	return id, nil
}

func IntToStringArray(arr []int) []string {
	return lo.Map(arr, func(item int, _ int) string {
		return strconv.Itoa(item)
	})
}

// UniqueIDs는 0 이하 값을 제거하고 순서를 유지한 채 중복을 제거합니다
func UniqueIDs(ids []int) []int {
	return lo.Uniq(lo.Filter(ids, func(id int, _ int) bool { return id > 0 }))
}

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// SafeName은 임의 문자열을 DB/키 이름으로 쓸 수 있게 정리합니다
func SafeName(s string) string {
	return nonWord.ReplaceAllString(s, "_")
}

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewErrorBody(err error) ErrorBody {
	return ErrorBody{
		Error:   string(apperror.CodeOf(err)),
		Message: apperror.MessageOf(err),
	}
}

// WriteJSON은 net/http 핸들러(chi)용 JSON 응답을 씁니다
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// WriteError는 AppError 코드에 맞는 상태와 바디를 씁니다
func WriteError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	WriteJSON(w, status, NewErrorBody(err))
}
