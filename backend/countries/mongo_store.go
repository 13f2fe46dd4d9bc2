package countries

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"countryclick/backend/lookup"
)

type countryDoc struct {
	Key             string    `bson:"_id"`
	Country         string    `bson:"country"`
	Flag            string    `bson:"flag"`
	Population      int64     `bson:"population"`
	FlagDescription string    `bson:"flag_description"`
	SavedAt         time.Time `bson:"saved_at"`
}

// MongoStore 把查過的國家存在 MongoDB，重啟後仍然有效
type MongoStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewMongoStore(coll *mongo.Collection, ttl time.Duration) *MongoStore {
	return &MongoStore{coll: coll, ttl: ttl}
}

const ttlIndexName = "saved_at_1"

// EnsureIndexes 建立 saved_at 的 TTL index，讓 MongoDB 自己清掉過期資料。
// 既有 index 的到期時間不同時，先刪掉再重建。
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	if m.ttl <= 0 {
		return nil
	}
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "saved_at", Value: 1}},
		Options: options.Index().SetName(ttlIndexName).SetExpireAfterSeconds(ttlSeconds(m.ttl)),
	}

	_, err := m.coll.Indexes().CreateOne(ctx, model)
	if !isIndexConflict(err) {
		return err
	}
	if _, err := m.coll.Indexes().DropOne(ctx, ttlIndexName); err != nil {
		return err
	}
	_, err = m.coll.Indexes().CreateOne(ctx, model)
	return err
}

// ttlSeconds 轉成 expireAfterSeconds，超過 int32 就取上限
func ttlSeconds(d time.Duration) int32 {
	secs := d / time.Second
	if secs > math.MaxInt32 {
		return math.MaxInt32
	}
	if secs < 1 {
		return 1
	}
	return int32(secs)
}

// IndexOptionsConflict (85)、IndexKeySpecsConflict (86)
func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Code == 85 || cmdErr.Code == 86
}

func (m *MongoStore) Get(ctx context.Context, key string) (lookup.CountryInfo, bool, error) {
	var doc countryDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return lookup.CountryInfo{}, false, nil
	}
	if err != nil {
		return lookup.CountryInfo{}, false, err
	}
	// TTL index 大約每分鐘才清一次
	if m.ttl > 0 && time.Since(doc.SavedAt) > m.ttl {
		return lookup.CountryInfo{}, false, nil
	}
	return doc.info(), true, nil
}

func (m *MongoStore) Put(ctx context.Context, key string, info lookup.CountryInfo) error {
	doc := countryDoc{
		Key:             key,
		Country:         info.Country,
		Flag:            info.Flag,
		Population:      info.Population,
		FlagDescription: info.FlagDescription,
		SavedAt:         time.Now().UTC(),
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (d countryDoc) info() lookup.CountryInfo {
	return lookup.CountryInfo{
		Country:         d.Country,
		Flag:            d.Flag,
		Population:      d.Population,
		FlagDescription: d.FlagDescription,
	}
}
