package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"splice-reports/internal/features/filter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultPageSize = 25

// Export field order; it drives the CSV header and body layout.
var exportFields = []string{
	"checkin_date",
	"status",
	"identifier",
	"splice_server",
	"hostname",
	"organization_name",
	"state",
	"record",
}

// ExportOptions controls how a bundle is produced.
type ExportOptions struct {
	Format       string // "csv" (default) or "xlsx"
	SkipExpanded bool   // leave out expanded_export.json
	Encrypt      bool   // wrap the bundle for the configured recipient
}

// ItemsResult is one page of matching check-ins. Subtotal mirrors Total.
type ItemsResult struct {
	Subtotal int64     `json:"subtotal"`
	Total    int64     `json:"total"`
	Systems  []Checkin `json:"systems"`
}

type ReportService interface {
	Items(ctx context.Context, filterID, search string, offset, pageSize int64) (*ItemsResult, error)
	InstanceCheckins(ctx context.Context, filterID, instanceID string) ([]Checkin, error)
	Record(ctx context.Context, recordID string) (Document, error)
	Facts(ctx context.Context, recordID string) ([]FactPair, error)
	Summary(ctx context.Context, filterID, search string) (Summary, error)
	Export(ctx context.Context, filterID string, opts ExportOptions) ([]byte, string, error)
}

type ReportServiceImpl struct {
	FilterService filter.FilterService
	Query         *ReportQuery
	Store         CheckinStore
	Pipeline      EncryptionPipeline
	Logger        *zap.Logger

	now func() time.Time
}

func NewReportService(filterService filter.FilterService, query *ReportQuery, store CheckinStore, pipeline EncryptionPipeline, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{
		FilterService: filterService,
		Query:         query,
		Store:         store,
		Pipeline:      pipeline,
		Logger:        logger,
		now:           time.Now,
	}
}

func (s *ReportServiceImpl) Items(ctx context.Context, filterID, search string, offset, pageSize int64) (*ItemsResult, error) {
	f, win, err := s.resolve(ctx, filterID)
	if err != nil {
		return nil, err
	}

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	total, err := s.Query.Count(ctx, f, win, search)
	if err != nil {
		return nil, err
	}

	rows, err := s.Query.Fetch(ctx, f, win, search, &offset, pageSize, SortSpec{Field: "checkin_date", Desc: true})
	if err != nil {
		return nil, err
	}

	return &ItemsResult{Subtotal: total, Total: total, Systems: rows}, nil
}

func (s *ReportServiceImpl) InstanceCheckins(ctx context.Context, filterID, instanceID string) ([]Checkin, error) {
	_, win, err := s.resolve(ctx, filterID)
	if err != nil {
		return nil, err
	}

	return s.Query.FindInstanceCheckins(ctx, instanceID, win.End)
}

func (s *ReportServiceImpl) Record(ctx context.Context, recordID string) (Document, error) {
	return s.Store.FindOne(ctx, bson.M{"identifier": recordID})
}

func (s *ReportServiceImpl) Facts(ctx context.Context, recordID string) ([]FactPair, error) {
	doc, err := s.Record(ctx, recordID)
	if err != nil {
		return nil, err
	}

	return TranslateFacts(factsDoc(doc)), nil
}

func (s *ReportServiceImpl) Summary(ctx context.Context, filterID, search string) (Summary, error) {
	f, win, err := s.resolve(ctx, filterID)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.Query.Fetch(ctx, f, win, search, nil, 0, SortSpec{Field: "checkin_date", Desc: true})
	if err != nil {
		return Summary{}, err
	}

	return Summarize(rows), nil
}

// Export materializes the full matching row set as a zip bundle: the
// tabular export, a metadata text file, and (unless skipped) an expanded
// JSON dump of the raw documents, optionally encrypted for the configured
// recipient. Bundles only ever exist in memory; nothing unencrypted is
// written to durable storage.
func (s *ReportServiceImpl) Export(ctx context.Context, filterID string, opts ExportOptions) ([]byte, string, error) {
	f, win, err := s.resolve(ctx, filterID)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.Query.Fetch(ctx, f, win, "", nil, 0, SortSpec{Field: "checkin_date", Desc: true})
	if err != nil {
		return nil, "", err
	}

	generatedAt := s.now().UTC().Format(time.RFC3339)
	exportRows := buildExportRows(rows)

	var entries []Entry
	switch opts.Format {
	case "", "csv":
		entries = append(entries, Entry{Name: "export.csv", Data: []byte(ExportCSV(exportRows))})
	case "xlsx":
		data, err := ExportXLSX(exportRows)
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, Entry{Name: "export.xlsx", Data: data})
	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", opts.Format)
	}

	entries = append(entries, Entry{
		Name: "metadata",
		Data: []byte(buildMetadata(f, generatedAt, len(rows), Summarize(rows))),
	})

	if !opts.SkipExpanded {
		expanded, err := s.expandedExport(ctx, rows)
		if err != nil {
			return nil, "", err
		}
		entries = append(entries, Entry{Name: "expanded_export.json", Data: expanded})
	}

	token := strings.ReplaceAll(generatedAt, ":", "-")
	data, err := BuildArchive(generatedAt, entries)
	if err != nil {
		return nil, "", err
	}
	filename := "report_" + token + ".zip"

	if opts.Encrypt {
		data, err = s.Pipeline.Encrypt(ctx, data)
		if err != nil {
			return nil, "", err
		}
		filename += ".gpg"
	}

	s.Logger.Info("export bundle built",
		zap.String("filter_id", filterID),
		zap.String("filename", filename),
		zap.Int("rows", len(rows)),
		zap.Bool("encrypted", opts.Encrypt))

	return data, filename, nil
}

// resolve loads the filter and fixes its time window once per request, so
// count and fetch see the same interval.
func (s *ReportServiceImpl) resolve(ctx context.Context, filterID string) (*filter.Filter, Window, error) {
	f, err := s.FilterService.GetFilter(ctx, filterID)
	if err != nil {
		return nil, Window{}, err
	}

	win, err := ResolveWindow(f, s.now())
	if err != nil {
		return nil, Window{}, err
	}

	return f, win, nil
}

// expandedExport fetches the raw documents behind the row set in one $in
// batch and keys them by record id.
func (s *ReportServiceImpl) expandedExport(ctx context.Context, rows []Checkin) ([]byte, error) {
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		if !row.RecordID.IsZero() {
			ids = append(ids, row.RecordID)
		}
	}

	expanded := make(map[string]Document, len(ids))
	if len(ids) > 0 {
		docs, err := s.Store.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			expanded[docObjectID(doc, "_id").Hex()] = doc
		}
	}

	return json.MarshalIndent(expanded, "", "  ")
}

func buildExportRows(rows []Checkin) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		values := map[string]any{
			"checkin_date":      row.CheckinDate.UTC().Format(time.RFC3339),
			"status":            row.Status,
			"identifier":        row.Identifier,
			"splice_server":     row.SpliceServer,
			"hostname":          row.Hostname,
			"organization_name": row.OrganizationName,
			"state":             row.State,
			"record":            bson.M{"$oid": row.RecordID.Hex()},
		}

		cells := make(Row, 0, len(exportFields))
		for _, field := range exportFields {
			cells = append(cells, Cell{Key: field, Value: values[field]})
		}
		out = append(out, cells)
	}
	return out
}

func buildMetadata(f *filter.Filter, generatedAt string, rowCount int, summary Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generated: %s\n", generatedAt)
	fmt.Fprintf(&b, "Rows: %d\n", rowCount)
	fmt.Fprintf(&b, "Current: %d\n", summary.NumCurrent)
	fmt.Fprintf(&b, "Invalid: %d\n", summary.NumInvalid)
	fmt.Fprintf(&b, "Insufficient: %d\n", summary.NumInsufficient)
	fmt.Fprintf(&b, "Total: %d\n", summary.NumTotal)

	fmt.Fprintf(&b, "Filter Id: %s\n", f.ID.Hex())
	fmt.Fprintf(&b, "Filter Name: %s\n", f.Name)
	fmt.Fprintf(&b, "Filter Description: %s\n", f.Description)
	fmt.Fprintf(&b, "Filter Satellite Server: %s\n", f.SatelliteName)
	fmt.Fprintf(&b, "Filter Status: %s\n", strings.Join(f.Status, ", "))
	fmt.Fprintf(&b, "Filter Lifecycle State: %s\n", strings.Join(f.State, ", "))
	if f.Hours != nil {
		fmt.Fprintf(&b, "Filter Hours: %d\n", *f.Hours)
	}
	if f.StartDate != nil {
		fmt.Fprintf(&b, "Filter Start Date: %s\n", f.StartDate.UTC().Format(time.RFC3339))
	}
	if f.EndDate != nil {
		fmt.Fprintf(&b, "Filter End Date: %s\n", f.EndDate.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Filter Locked: %t\n", f.Locked)
	if !f.UserID.IsZero() {
		fmt.Fprintf(&b, "Filter Owner: %s\n", f.UserID.Hex())
	}
	if len(f.OrganizationIDs) > 0 {
		orgs := make([]string, len(f.OrganizationIDs))
		for i, id := range f.OrganizationIDs {
			orgs[i] = id.Hex()
		}
		fmt.Fprintf(&b, "Filter Organizations: %s\n", strings.Join(orgs, ", "))
	}

	return b.String()
}

// factsDoc returns a document's facts as an ordered sequence. Documents
// decoded into plain maps lose order; those fall back to key-sorted output
// so the result stays deterministic.
func factsDoc(doc Document) bson.D {
	switch facts := doc["facts"].(type) {
	case bson.D:
		return facts
	case bson.M:
		keys := make([]string, 0, len(facts))
		for k := range facts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make(bson.D, 0, len(keys))
		for _, k := range keys {
			ordered = append(ordered, bson.E{Key: k, Value: facts[k]})
		}
		return ordered
	}
	return nil
}
