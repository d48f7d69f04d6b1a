package commontype

const (
	HeaderUserID = "X-User-ID"
)

// 매칭 기본값
const (
	DefaultPageSize      = 50
	DefaultMaxDistanceKm = 50.0
	EarthRadiusKm        = 6371.0
)

const (
	MasterKeyPrefix = "masterkey-"
)
