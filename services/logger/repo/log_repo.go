package repo

import (
	"context"

	"spark/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const logCollection = "logs"

type LogRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(mongoClient *mongo.Client, database string) *LogRepository {
	return &LogRepository{
		collection: mongoClient.Database(database).Collection(logCollection),
	}
}

// EnsureIndexes는 시간순/서비스별 조회용 인덱스를 만듭니다
func (r *LogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "service", Value: 1}, {Key: "log_event_type", Value: 1}}},
	})
	return err
}

// InsertLog는 로그를 MongoDB에 저장합니다
func (r *LogRepository) InsertLog(ctx context.Context, log logger.BaseLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}
