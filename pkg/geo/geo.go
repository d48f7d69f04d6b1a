package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"spark/pkg/types/commontype"
)

type Point struct {
	Lat float64
	Lng float64
}

// ParsePoint는 "lat,lng" 형식의 위치 문자열을 읽습니다. 범위를 벗어나거나 형식이 다르면 false.
func ParsePoint(raw string) (Point, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Point{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, false
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

// HaversineKm는 두 지점 사이의 대권 거리(km)입니다
func HaversineKm(a, b Point) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return commontype.EarthRadiusKm * c
}

// Distance는 두 위치 문자열이 모두 파싱될 때만 거리를 돌려줍니다
func Distance(from, to string) (float64, bool) {
	a, ok := ParsePoint(from)
	if !ok {
		return 0, false
	}
	b, ok := ParsePoint(to)
	if !ok {
		return 0, false
	}
	return HaversineKm(a, b), true
}

// WithinRadius는 위치를 알 수 없으면 통과(fail-open)시킵니다
func WithinRadius(from, to string, maxKm float64) bool {
	d, ok := Distance(from, to)
	if !ok {
		return true
	}
	return d <= maxKm
}

func DistanceLabel(km float64) string {
	if km < 1 {
		return "less than 1 km away"
	}
	return fmt.Sprintf("%d km away", int(math.Round(km)))
}
