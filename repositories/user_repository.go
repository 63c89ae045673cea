package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fundmehub/fundme_backend/config"
	"github.com/fundmehub/fundme_backend/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *mongo.Client) *UserRepository {
	return &UserRepository{
		collection: config.GetCollection(client, config.UsersCollection),
	}
}

// FindByClerkID looks up a user by their external identity reference
func (r *UserRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IncrementWalletBalance atomically credits a user's wallet
func (r *UserRepository) IncrementWalletBalance(ctx context.Context, clerkID string, amount float64) error {
	update := bson.M{
		"$inc": bson.M{"walletBalance": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"clerkId": clerkID}, update)
	return err
}

// IncrementTotalDonations atomically bumps a donor's lifetime donation total
func (r *UserRepository) IncrementTotalDonations(ctx context.Context, clerkID string, amount float64) error {
	update := bson.M{
		"$inc": bson.M{"totalDonations": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"clerkId": clerkID}, update)
	return err
}
