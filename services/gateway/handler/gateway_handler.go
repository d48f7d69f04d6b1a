package handler

import (
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"spark/pkg/apperror"
	"spark/pkg/helper"
	"spark/pkg/logger"

	"github.com/labstack/echo/v4"
)

// 서비스 간 호출 전용 경로. 외부에서는 auth 를 거쳐야 합니다
var internalPaths = map[string]map[string]bool{
	"user": {"/register": true},
}

type GatewayHandler struct {
	services map[string]*url.URL
	client   *http.Client
}

// NewGatewayHandler는 첫 경로 요소 -> 서비스 base URL 맵으로 프록시를 만듭니다
func NewGatewayHandler(services map[string]string) (*GatewayHandler, error) {
	parsed := make(map[string]*url.URL, len(services))
	for name, raw := range services {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeInvalidInput, "invalid service url for "+name, err)
		}
		parsed[name] = u
	}
	return &GatewayHandler{services: parsed, client: &http.Client{}}, nil
}

// ProxyService - API를 프록시해주는 역할
func (h *GatewayHandler) ProxyService(c echo.Context) error {
	logger.Logger.Debug().Str("url", c.Request().URL.String()).Msg("Proxy Request")

	// 요청 경로에서 첫 번째 경로 요소를 추출
	firstPath, trimmedPath := helper.ExtractFirstPath(c.Request().URL.Path)

	base, ok := h.services[firstPath]
	if !ok {
		return apperror.NotFound("unknown service: " + firstPath)
	}
	if internalPaths[firstPath][strings.TrimSuffix(trimmedPath, "/")] {
		return apperror.NotFound("not found: " + c.Request().URL.Path)
	}

	// 웹소켓 업그레이드는 ReverseProxy 로 전달
	if isUpgrade(c.Request()) {
		return h.proxyUpgrade(c, base, trimmedPath)
	}

	targetURL := strings.TrimSuffix(base.String(), "/") + trimmedPath

	// 쿼리 스트링 추가
	if c.QueryString() != "" {
		targetURL += "?" + c.QueryString()
	}

	// 새로운 요청 생성 (전달받은 HTTP 메서드 유지)
	req, err := http.NewRequestWithContext(c.Request().Context(), c.Request().Method, targetURL, c.Request().Body)
	if err != nil {
		return apperror.Internal("failed to create request", err)
	}

	// 원본 요청 헤더 복사
	for key, values := range c.Request().Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// HTTP 클라이언트 생성 및 요청 전송
	resp, err := h.client.Do(req)
	if err != nil {
		logger.Logger.Error().Err(err).Str("service", firstPath).Msg("Failed to send request")
		return echo.NewHTTPError(http.StatusBadGateway, "service unavailable")
	}
	defer resp.Body.Close()

	// 응답 헤더 복사
	for key, values := range resp.Header {
		for _, value := range values {
			c.Response().Header().Add(key, value)
		}
	}

	// 상태 코드 설정
	c.Response().WriteHeader(resp.StatusCode)

	// 응답 본문을 클라이언트에게 전달
	if _, err := io.Copy(c.Response().Writer, resp.Body); err != nil {
		logger.Logger.Warn().Err(err).Str("service", firstPath).Msg("Failed to copy response body")
	}
	return nil
}

func (h *GatewayHandler) proxyUpgrade(c echo.Context, base *url.URL, path string) error {
	proxy := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = base.Scheme
			req.URL.Host = base.Host
			req.URL.Path = strings.TrimSuffix(base.Path, "/") + path
			req.Host = base.Host
		},
	}
	proxy.ServeHTTP(c.Response(), c.Request())
	return nil
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
