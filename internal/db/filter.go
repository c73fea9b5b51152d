package db

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterBuilder builds MongoDB filters fluently.
type FilterBuilder struct {
	filter bson.M
}

// NewFilter creates an empty FilterBuilder.
func NewFilter() *FilterBuilder {
	return &FilterBuilder{filter: bson.M{}}
}

// Eq adds an equality condition.
func (f *FilterBuilder) Eq(field string, value interface{}) *FilterBuilder {
	f.filter[field] = value
	return f
}

// In adds an $in condition.
func (f *FilterBuilder) In(field string, values interface{}) *FilterBuilder {
	f.filter[field] = bson.M{"$in": values}
	return f
}

// Contains adds a case-insensitive substring match. The value is
// quoted so user-supplied search text cannot inject regex syntax.
func (f *FilterBuilder) Contains(field string, value string) *FilterBuilder {
	f.filter[field] = bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
	return f
}

// EqFold adds a case-insensitive whole-value match.
func (f *FilterBuilder) EqFold(field string, value string) *FilterBuilder {
	f.filter[field] = bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
	return f
}

// ObjectID adds an ObjectID equality condition. Invalid hex leaves
// the filter unchanged.
func (f *FilterBuilder) ObjectID(field string, id string) *FilterBuilder {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err == nil {
		f.filter[field] = objectID
	}
	return f
}

// Exists adds a field-presence condition.
func (f *FilterBuilder) Exists(field string, exists bool) *FilterBuilder {
	f.filter[field] = bson.M{"$exists": exists}
	return f
}

// Or combines multiple filters with $or.
func (f *FilterBuilder) Or(filters ...bson.M) *FilterBuilder {
	if len(filters) > 0 {
		f.filter["$or"] = filters
	}
	return f
}

// Build returns the final bson.M filter.
func (f *FilterBuilder) Build() bson.M {
	return f.filter
}

// Empty returns a filter matching all documents.
func Empty() bson.M {
	return bson.M{}
}
