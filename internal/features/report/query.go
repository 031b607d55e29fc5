package report

import (
	"context"
	"time"

	"splice-reports/internal/features/filter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Per-instance history is capped; a managed system checking in hourly keeps
// over ten days of history inside the cap.
const instanceCheckinLimit = 250

// ReportQuery translates a stored filter plus ad-hoc search and paging
// parameters into store queries. It holds no mutable state and is safe for
// concurrent use.
type ReportQuery struct {
	Store CheckinStore
}

func NewReportQuery(store CheckinStore) *ReportQuery {
	return &ReportQuery{Store: store}
}

// predicate builds the store query for a filter: status and state set
// membership, the resolved time window, and an optional case-insensitive
// search over the text fields.
func (q *ReportQuery) predicate(f *filter.Filter, win Window, search string) bson.M {
	pred := bson.M{
		"status": bson.M{"$in": f.Status},
		"state":  bson.M{"$in": f.State},
		"checkin_date": bson.M{
			"$gte": win.Start,
			"$lt":  win.End,
		},
	}

	if search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		pred["$or"] = []bson.M{
			{"hostname": bson.M{"$regex": regex}},
			{"identifier": bson.M{"$regex": regex}},
			{"organization_name": bson.M{"$regex": regex}},
		}
	}

	return pred
}

// Count returns the total number of matching rows, ignoring pagination.
func (q *ReportQuery) Count(ctx context.Context, f *filter.Filter, win Window, search string) (int64, error) {
	return q.Store.Count(ctx, q.predicate(f, win, search))
}

// Fetch returns at most pageSize matching rows starting at offset, in sort
// order. A nil offset means no pagination: every matching row is
// returned and pageSize is ignored. Statuses are translated to the display
// vocabulary before rows are handed back.
func (q *ReportQuery) Fetch(ctx context.Context, f *filter.Filter, win Window, search string, offset *int64, pageSize int64, sort SortSpec) ([]Checkin, error) {
	opts := &FindOptions{Sort: sortDoc(sort)}
	if offset != nil {
		opts.Skip = offset
		opts.Limit = &pageSize
	}

	docs, err := q.Store.Find(ctx, q.predicate(f, win, search), opts)
	if err != nil {
		return nil, err
	}

	rows := make([]Checkin, 0, len(docs))
	for _, doc := range docs {
		row := decodeCheckin(doc)
		row.Status = TranslateStatus(row.Status)
		rows = append(rows, row)
	}

	return rows, nil
}

// FindInstanceCheckins returns the check-in history of one managed instance
// up to the window end, newest first, capped at instanceCheckinLimit rows.
// Rows missing an entitlement-status sub-document are recovered in place
// with status "deleted" rather than failing the query.
func (q *ReportQuery) FindInstanceCheckins(ctx context.Context, instanceID string, end time.Time) ([]Checkin, error) {
	pred := bson.M{
		"instance_identifier": instanceID,
		"checkin_date":        bson.M{"$lt": end},
	}

	limit := int64(instanceCheckinLimit)
	opts := &FindOptions{
		Projection: bson.M{
			"identifier":          1,
			"instance_identifier": 1,
			"checkin_date":        1,
			"entitlement_status":  1,
			"hostname":            1,
			"splice_server":       1,
			"organization_name":   1,
			"state":               1,
		},
		Sort:  bson.D{{Key: "checkin_date", Value: -1}},
		Limit: &limit,
	}

	docs, err := q.Store.Find(ctx, pred, opts)
	if err != nil {
		return nil, err
	}

	rows := make([]Checkin, 0, len(docs))
	for _, doc := range docs {
		row := decodeCheckin(doc)
		row.Status = TranslateStatus(entitlementStatus(doc))
		rows = append(rows, row)
	}

	return rows, nil
}

func sortDoc(sort SortSpec) bson.D {
	field := sort.Field
	if field == "" {
		field = "checkin_date"
	}
	value := 1
	if sort.Desc || sort.Field == "" {
		value = -1
	}
	return bson.D{{Key: field, Value: value}}
}

// decodeCheckin extracts the listing projection from an opaque document.
// Missing fields decode to zero values rather than errors.
func decodeCheckin(doc Document) Checkin {
	return Checkin{
		RecordID:           docObjectID(doc, "_id"),
		Identifier:         docString(doc, "identifier"),
		InstanceIdentifier: docString(doc, "instance_identifier"),
		CheckinDate:        docTime(doc, "checkin_date"),
		Status:             docString(doc, "status"),
		Hostname:           docString(doc, "hostname"),
		SpliceServer:       docString(doc, "splice_server"),
		OrganizationName:   docString(doc, "organization_name"),
		State:              docString(doc, "state"),
	}
}

// entitlementStatus digs the raw status out of the entitlement_status
// sub-document; a row without one reports "deleted".
func entitlementStatus(doc Document) string {
	switch sub := doc["entitlement_status"].(type) {
	case bson.M:
		if s, ok := sub["status"].(string); ok {
			return s
		}
	case bson.D:
		for _, e := range sub {
			if e.Key == "status" {
				if s, ok := e.Value.(string); ok {
					return s
				}
			}
		}
	}
	return "deleted"
}

func docString(doc Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docTime(doc Document, key string) time.Time {
	switch v := doc[key].(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	}
	return time.Time{}
}

func docObjectID(doc Document, key string) primitive.ObjectID {
	id, _ := doc[key].(primitive.ObjectID)
	return id
}
