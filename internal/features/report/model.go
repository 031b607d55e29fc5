package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkin is the projection of a check-in document used by listings and
// exports. The documents themselves are owned by the backend splice tool;
// this engine only reads and reshapes copies.
type Checkin struct {
	RecordID           primitive.ObjectID `json:"record_id" bson:"_id"`
	Identifier         string             `json:"identifier" bson:"identifier"`
	InstanceIdentifier string             `json:"instance_identifier" bson:"instance_identifier"`
	CheckinDate        time.Time          `json:"checkin_date" bson:"checkin_date"`
	Status             string             `json:"status" bson:"status"`
	Hostname           string             `json:"hostname" bson:"hostname"`
	SpliceServer       string             `json:"splice_server" bson:"splice_server"`
	OrganizationName   string             `json:"organization_name" bson:"organization_name"`
	State              string             `json:"state" bson:"state"`
}

// RowSet is one page of check-ins plus the total match count.
type RowSet struct {
	Rows  []Checkin
	Total int64
}

// Summary holds the status counts for a row set. Rows whose display status
// is not one of current/invalid/insufficient are excluded from every count.
type Summary struct {
	NumCurrent      int `json:"num_current"`
	NumInvalid      int `json:"num_invalid"`
	NumInsufficient int `json:"num_insufficient"`
	NumTotal        int `json:"num_total"`
}

// Cell is one field of an export row. Rows keep their cells in display
// order; that order drives the CSV header and body layout.
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered sequence of cells. Every row in an export shares the
// same key set and key order; this is assumed, not verified.
type Row []Cell

// SortSpec names the field and direction a query is ordered by.
type SortSpec struct {
	Field string
	Desc  bool
}

// Entry is one named blob inside an export bundle.
type Entry struct {
	Name string
	Data []byte
}

// FactPair is one translated fact key/value; order is preserved because it
// drives display order downstream.
type FactPair struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Document is an opaque check-in document as returned by the store.
type Document = bson.M
