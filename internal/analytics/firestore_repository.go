package analytics

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const dailyRecordsCollection = "daily_records"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

// dailyRecords returns the per-user subcollection; document IDs are the
// date keys, which makes the daily upsert a plain Set.
func (r *firestoreRepository) dailyRecords(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection(dailyRecordsCollection)
}

func (r *firestoreRepository) UpsertDaily(ctx context.Context, userID string, record DailyRecord) error {
	if _, err := r.dailyRecords(userID).Doc(record.Date).Set(ctx, record); err != nil {
		return fmt.Errorf("set daily record: %w", err)
	}
	return nil
}

func (r *firestoreRepository) GetRecords(ctx context.Context, userID string, startDate, endDate string) (map[string]DailyRecord, error) {
	iter := r.dailyRecords(userID).
		Where("date", ">=", startDate).
		Where("date", "<=", endDate).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	records := make(map[string]DailyRecord)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate daily records: %w", err)
		}

		var record DailyRecord
		if err := doc.DataTo(&record); err != nil {
			continue // Skip invalid entries
		}
		records[record.Date] = record
	}

	return records, nil
}
