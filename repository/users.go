package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	dbName := os.Getenv("MONGO_DB")
	return &UserRepo{
		MongoCollection: client.Database(dbName).Collection("users"),
	}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return errors.New("email and password required")
	}

	user.Email = strings.ToLower(user.Email)
	user.Role = user.Role.Normalize()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_email")
			return fmt.Errorf("email already registered")
		}
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("failed to add user: %w", err)
	}

	return nil
}

// FindUserByEmail looks a user up by email, case-insensitively. Returns
// (nil, nil) when no user matches.
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.M{"email": strings.ToLower(email)}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	filter := bson.M{"user_id": userID}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}

	return &user, nil
}

// FindTeamMemberIDs returns the ids of users whose team_lead is leadID.
func (r *UserRepo) FindTeamMemberIDs(ctx context.Context, leadID string) ([]string, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"team_lead": leadID})
	if err != nil {
		utils.TrackError("database", "team_lookup_error")
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []model.User
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"last_login": time.Now(), "updated_at": time.Now()}})
	if err != nil {
		utils.TrackError("database", "last_login_update_failed")
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID, name, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if email != "" {
		set["email"] = strings.ToLower(email)
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email already registered")
		}
		utils.TrackError("database", "profile_update_failed")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}

	return r.FindUser(ctx, userID)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	if hashedPassword == "" {
		utils.TrackError("database", "invalid_password_hash")
		return errors.New("password hashing error")
	}

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"password": hashedPassword, "updated_at": time.Now()}})
	if err != nil {
		utils.TrackError("database", "password_update_failed")
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Deactivate marks the account inactive. Users are never deleted.
func (r *UserRepo) Deactivate(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}})
	if err != nil {
		utils.TrackError("database", "deactivation_failed")
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (r *UserRepo) CountUsers(ctx context.Context, filter bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "users")
	defer timer.ObserveDuration()

	return r.MongoCollection.CountDocuments(ctx, filter)
}

// RoleDistribution groups users by role.
func (r *UserRepo) RoleDistribution(ctx context.Context) (map[string]int64, error) {
	timer := utils.TrackDBOperation("aggregate", "users")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "role_aggregation_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Role  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	dist := make(map[string]int64, len(rows))
	for _, row := range rows {
		dist[row.Role] = row.Count
	}
	return dist, nil
}
