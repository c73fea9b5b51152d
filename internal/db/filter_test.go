package db

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterEq(t *testing.T) {
	got := NewFilter().Eq("status", "open").Eq("amount", 3).Build()
	want := bson.M{"status": "open", "amount": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterContainsEscapesRegex(t *testing.T) {
	got := NewFilter().Contains("plant_name", "rose (red)").Build()
	want := bson.M{"plant_name": bson.M{"$regex": `rose \(red\)`, "$options": "i"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterEqFoldAnchors(t *testing.T) {
	got := NewFilter().EqFold("plant_name", "Rose").Build()
	want := bson.M{"plant_name": bson.M{"$regex": "^Rose$", "$options": "i"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	got := NewFilter().ObjectID("user", id.Hex()).Build()
	if got["user"] != id {
		t.Errorf("got %v, want %v", got["user"], id)
	}

	// Invalid hex must not add a condition.
	got = NewFilter().ObjectID("user", "nothex").Build()
	if len(got) != 0 {
		t.Errorf("invalid hex added condition: %v", got)
	}
}

func TestFilterOr(t *testing.T) {
	byName := NewFilter().Contains("plant_name", "rose").Build()
	byType := NewFilter().Contains("plant_type", "rose").Build()

	got := NewFilter().Eq("status", "available").Or(byName, byType).Build()
	or, ok := got["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %v, want two branches", got["$or"])
	}
	if got["status"] != "available" {
		t.Errorf("status condition lost: %v", got)
	}

	// Empty Or is a no-op.
	got = NewFilter().Or().Build()
	if _, present := got["$or"]; present {
		t.Errorf("empty Or added condition: %v", got)
	}
}

func TestEmpty(t *testing.T) {
	if got := Empty(); len(got) != 0 {
		t.Errorf("Empty() = %v, want empty filter", got)
	}
}
