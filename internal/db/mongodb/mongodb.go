// Package mongodb provides the MongoDB-backed implementation of the
// storage interface. It owns the users and gifts collections and compiles
// gift filters into MongoDB query documents.
package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/giftlink/giftlink-backend/internal/models"
	"github.com/giftlink/giftlink-backend/internal/user"
)

const (
	usersCollection = "users"
	giftsCollection = "gifts"
)

// MongoDB is a MongoDB-backed implementation of the document store.
// Every call is bounded by the configured timeout.
type MongoDB struct {
	client      *mongo.Client
	database    *mongo.Database
	callTimeout time.Duration
}

// userDoc mirrors user.User with the native ObjectID so the driver can
// decode _id. The string form is what leaves this package.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty"`
}

func (d *userDoc) toUser() *user.User {
	return &user.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// New connects to MongoDB eagerly and verifies the connection with a ping
// so that a misconfigured DSN fails startup instead of the first request.
func New(
	ctx context.Context,
	databaseDSN string,
	databaseName string,
	callTimeout time.Duration,
) (*MongoDB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(databaseDSN))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, errors.Join(err, client.Disconnect(context.Background()))
	}

	return &MongoDB{
		client:      client,
		database:    client.Database(databaseName),
		callTimeout: callTimeout,
	}, nil
}

func (db *MongoDB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.callTimeout)
}

// FindUserByEmail returns the user stored under the given email.
func (db *MongoDB) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var doc userDoc
	err := db.database.
		Collection(usersCollection).
		FindOne(ctx, bson.M{"email": email}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return doc.toUser(), true, nil
}

// InsertUser stores a new user document and returns the assigned id.
func (db *MongoDB) InsertUser(ctx context.Context, usr *user.User) (string, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	result, err := db.database.Collection(usersCollection).InsertOne(ctx, userDoc{
		Email:        usr.Email,
		PasswordHash: usr.PasswordHash,
		FirstName:    usr.FirstName,
		LastName:     usr.LastName,
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
	})
	if err != nil {
		return "", err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}

	return insertedID.Hex(), nil
}

// UpdateUserNames atomically updates the name fields of the user stored
// under the given email and returns the document after the update.
func (db *MongoDB) UpdateUserNames(
	ctx context.Context,
	email string,
	firstName string,
	lastName string,
) (*user.User, bool, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var doc userDoc
	err := db.database.
		Collection(usersCollection).
		FindOneAndUpdate(
			ctx,
			bson.M{"email": email},
			bson.M{"$set": bson.M{
				"firstName": firstName,
				"lastName":  lastName,
				"updatedAt": time.Now().UTC(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return doc.toUser(), true, nil
}

// compileGiftFilter translates a GiftFilter into a MongoDB query
// document. The name condition is quoted so that it matches as a plain
// substring rather than a user-supplied regular expression.
func compileGiftFilter(filter models.GiftFilter) bson.M {
	query := bson.M{}

	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	if filter.Condition != "" {
		query["condition"] = filter.Condition
	}

	if filter.MaxAgeYears != nil {
		query["age_years"] = bson.M{"$lte": *filter.MaxAgeYears}
	}

	return query
}

// FindGifts returns every gift matching the filter.
func (db *MongoDB) FindGifts(ctx context.Context, filter models.GiftFilter) ([]models.Gift, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	cursor, err := db.database.Collection(giftsCollection).Find(ctx, compileGiftFilter(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	gifts := []models.Gift{}
	if err := cursor.All(ctx, &gifts); err != nil {
		return nil, err
	}

	return gifts, nil
}

// FindGiftByID looks a gift up by its custom id attribute.
func (db *MongoDB) FindGiftByID(ctx context.Context, id string) (models.Gift, bool, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var gift models.Gift
	err := db.database.
		Collection(giftsCollection).
		FindOne(ctx, bson.M{"id": id}).
		Decode(&gift)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Gift{}, false, nil
	}
	if err != nil {
		return models.Gift{}, false, err
	}

	return gift, true, nil
}

// ReplaceGifts wipes the gifts collection and inserts the given documents.
func (db *MongoDB) ReplaceGifts(ctx context.Context, gifts []models.Gift) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	collection := db.database.Collection(giftsCollection)

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	if len(gifts) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(gifts))
	for _, gift := range gifts {
		documents = append(documents, gift)
	}

	_, err := collection.InsertMany(ctx, documents)

	return err
}

// Ping checks the connection to the MongoDB server.
func (db *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	return db.client.Ping(ctx, nil)
}

// Close disconnects from the MongoDB server.
func (db *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), db.callTimeout)
	defer cancel()

	return db.client.Disconnect(ctx)
}
