package service

import "go.mongodb.org/mongo-driver/bson/primitive"

// checkOwner is the single ownership guard shared by every mutating
// operation on the four content entities. Create, list and public
// get-by-id do not call it.
func checkOwner(ownerID, callerID primitive.ObjectID) error {
	if ownerID != callerID {
		return ErrNotOwner
	}
	return nil
}
