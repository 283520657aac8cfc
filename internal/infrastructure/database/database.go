package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paintrack/internal/domain/entity"
	"paintrack/pkg/logger"
)

const PhotoCollection = "photo"

type Database struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond).
		SetBSONOptions(&options.BSONOptions{
			NilSliceAsEmpty: true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	db := &Database{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := initPhotoCollection(db); err != nil {
		return nil, err
	}

	logger.Info("connected to database", "db", cfg.DBName)

	return db, nil
}

func (db *Database) collection() *mongo.Collection {
	return db.Client.Database(db.DBName).Collection(PhotoCollection)
}

func initPhotoCollection(db *Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), db.QueryTimeout)
	defer cancel()

	collections, err := db.Client.Database(db.DBName).ListCollectionNames(ctx, bson.M{"name": PhotoCollection})
	if err != nil {
		return err
	}
	if len(collections) > 0 {
		return nil // already exists
	}

	collOpts := options.CreateCollection().SetValidator(bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"_id", "attachment_id", "owner_id", "category", "public_url", "upload_time", "primary"},
			"properties": bson.M{
				"_id": bson.M{
					"bsonType":    "string",
					"pattern":     "^users/[^/]+/",
					"description": "must be a storage path under users/{owner}/",
				},
				"attachment_id": bson.M{"bsonType": "string", "minLength": 1},
				"owner_id":      bson.M{"bsonType": "string", "minLength": 1},
				"category": bson.M{
					"enum": []string{
						string(entity.CategoryAvatar),
						string(entity.CategoryCollectionThumbnail),
						string(entity.CategoryModelImage),
					},
				},
				"collection_id":     bson.M{"bsonType": "string"},
				"model_id":          bson.M{"bsonType": "string"},
				"public_url":        bson.M{"bsonType": "string"},
				"original_filename": bson.M{"bsonType": "string"},
				"mime_type":         bson.M{"bsonType": "string", "pattern": "^image/"},
				"label":             bson.M{"bsonType": "string"},
				"dimensions": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"width":  bson.M{"bsonType": []string{"int", "long"}},
						"height": bson.M{"bsonType": []string{"int", "long"}},
					},
				},
				"size":        bson.M{"bsonType": []string{"int", "long"}},
				"primary":     bson.M{"bsonType": "bool"},
				"description": bson.M{"bsonType": "string"},
				"tags": bson.M{
					"bsonType": "array",
					"items":    bson.M{"bsonType": "string"},
				},
				"upload_time": bson.M{"bsonType": "date"},
			},
		},
	})

	err = db.Client.Database(db.DBName).CreateCollection(ctx, PhotoCollection, collOpts)
	if err != nil {
		return err
	}

	_, err = db.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "upload_time", Value: -1}}},
		{Keys: bson.D{{Key: "attachment_id", Value: 1}}},
	})

	return err
}

func (db *Database) Stop() error {
	if err := db.Client.Disconnect(context.Background()); err != nil {
		return err
	}

	return nil
}
