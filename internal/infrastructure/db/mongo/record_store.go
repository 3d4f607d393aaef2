package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

// recordStore is the generic create/list/delete layer shared by the
// appointment and prescription collections. D is the BSON document type.
type recordStore[D any] struct {
	coll *mongo.Collection
}

func (s recordStore[D]) insert(ctx context.Context, doc *D) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert "+s.coll.Name(), err)
	}
	return nil
}

// list returns documents in scope, newest first. ObjectIDs grow with
// insertion time, so sorting on _id keeps insertion order.
func (s recordStore[D]) list(ctx context.Context, scope domain.RecordScope) ([]D, error) {
	if scope.MatchesNothing() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !scope.All {
		filter["doctor_id"] = scope.DoctorID
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("find "+s.coll.Name(), err)
	}
	defer cur.Close(ctx)

	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.coll.Name(), err)
	}
	return docs, nil
}

// deleteByID removes one document. Malformed ids cannot exist, so they are
// reported as not found like any other missing id.
func (s recordStore[D]) deleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeError("delete "+s.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (s recordStore[D]) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "_id", Value: -1}},
	})
	return err
}
