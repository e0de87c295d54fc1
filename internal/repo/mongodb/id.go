package mongodb

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID — строка является hex-представлением ObjectID.
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
