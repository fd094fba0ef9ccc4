package gorm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gramsetu/contenthub/pkg/server/store"
)

// Ensure RecordsStore implements store.RecordsStore
var _ store.RecordsStore = (*RecordsStore)(nil)

// RecordsStore implements store.RecordsStore using GORM
type RecordsStore struct {
	db *gorm.DB
}

// NewRecordsStore creates a new RecordsStore
func NewRecordsStore(db *gorm.DB) *RecordsStore {
	return &RecordsStore{db: db}
}

const recordColumns = `r.id, r.kind, r.language, r.attributes, r.created_by, r.created_at, r.updated_at, u.name AS created_by_name`

type recordRow struct {
	ID            string
	Kind          string
	Language      string
	Attributes    []byte
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedByName string
}

// ListRecords returns one page of records matching the filter, newest first,
// plus the total count computed against the same predicates.
func (s *RecordsStore) ListRecords(filter store.Filter, page store.PageRequest) ([]store.Record, int, error) {
	where, args := whereClause(filter)

	var count int
	tx := s.db.Raw(`SELECT COUNT(*) FROM records r WHERE `+where, args...).Scan(&count)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	query := `
		SELECT ` + recordColumns + `
		FROM records r
		LEFT JOIN users u ON u.id = r.created_by
		WHERE ` + where + `
		ORDER BY r.created_at DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, page.Limit, page.Offset())

	var rows []recordRow
	tx = s.db.Raw(query, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	records := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *record)
	}

	return records, count, nil
}

// FetchRecord retrieves a single record by kind and id
func (s *RecordsStore) FetchRecord(kind store.Kind, id string) (*store.Record, error) {
	var row recordRow
	// id::text keeps malformed ids from erroring out at the uuid cast
	tx := s.db.Raw(`
		SELECT `+recordColumns+`
		FROM records r
		LEFT JOIN users u ON u.id = r.created_by
		WHERE r.kind = ? AND r.id::text = ?
	`, string(kind), id).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrRecordNotFound
	}

	return row.toRecord()
}

// CreateRecord persists a new record owned by ownerID
func (s *RecordsStore) CreateRecord(kind store.Kind, ownerID string, doc store.Document) (*store.Record, error) {
	attrs, err := json.Marshal(doc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}

	id := uuid.NewString()
	tx := s.db.Exec(`
		INSERT INTO records (id, kind, language, attributes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?::jsonb, ?, NOW(), NOW())
	`, id, string(kind), doc.Language, string(attrs), ownerID)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return s.FetchRecord(kind, id)
}

// UpdateRecord replaces the validated fields of an existing record
func (s *RecordsStore) UpdateRecord(kind store.Kind, id string, doc store.Document) (*store.Record, error) {
	attrs, err := json.Marshal(doc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}

	tx := s.db.Exec(`
		UPDATE records
		SET language = ?, attributes = ?::jsonb, updated_at = NOW()
		WHERE kind = ? AND id::text = ?
	`, doc.Language, string(attrs), string(kind), id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrRecordNotFound
	}

	return s.FetchRecord(kind, id)
}

// DeleteRecord permanently removes a record
func (s *RecordsStore) DeleteRecord(kind store.Kind, id string) error {
	tx := s.db.Exec(`DELETE FROM records WHERE kind = ? AND id::text = ?`, string(kind), id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

// whereClause translates a filter into a SQL predicate. Attribute keys come
// from the static resource descriptors, never from request input.
func whereClause(f store.Filter) (string, []interface{}) {
	conds := []string{`r.kind = ?`}
	args := []interface{}{string(f.Kind)}

	if f.Language != "" {
		conds = append(conds, `r.language = ?`)
		args = append(args, f.Language)
	}

	for _, key := range sortedKeys(f.Equals) {
		conds = append(conds, `r.attributes->>'`+key+`' = ?`)
		args = append(args, f.Equals[key])
	}

	for _, key := range sortedKeys(f.Contains) {
		conds = append(conds, `r.attributes->>'`+key+`' ILIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.Contains[key]))
	}

	if f.Search != nil && f.Search.Term != "" && len(f.Search.Fields) > 0 {
		fields := make([]string, 0, len(f.Search.Fields))
		for _, field := range f.Search.Fields {
			fields = append(fields, `r.attributes->>'`+field+`' ILIKE ? ESCAPE '\'`)
			args = append(args, likePattern(f.Search.Term))
		}
		conds = append(conds, "("+strings.Join(fields, " OR ")+")")
	}

	return strings.Join(conds, " AND "), args
}

// likeEscaper neutralizes the LIKE metacharacters in user-supplied values so
// substring matching stays literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (row recordRow) toRecord() (*store.Record, error) {
	record := &store.Record{
		ID:            row.ID,
		Kind:          store.Kind(row.Kind),
		Language:      row.Language,
		CreatedBy:     row.CreatedBy,
		CreatedByName: row.CreatedByName,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	if len(row.Attributes) > 0 {
		if err := json.Unmarshal(row.Attributes, &record.Attributes); err != nil {
			return nil, fmt.Errorf("failed to decode attributes of record %s: %w", row.ID, err)
		}
	}

	return record, nil
}
