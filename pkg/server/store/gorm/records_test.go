package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramsetu/contenthub/pkg/server/store"
)

func TestWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       store.Filter
		expectedSQL  string
		expectedArgs []interface{}
	}{
		{
			name:         "kind only",
			filter:       store.Filter{Kind: store.KindJobs},
			expectedSQL:  `r.kind = ?`,
			expectedArgs: []interface{}{"jobs"},
		},
		{
			name:         "language is exact",
			filter:       store.Filter{Kind: store.KindJobs, Language: "hi"},
			expectedSQL:  `r.kind = ? AND r.language = ?`,
			expectedArgs: []interface{}{"jobs", "hi"},
		},
		{
			name: "exact attribute",
			filter: store.Filter{
				Kind:   store.KindTraining,
				Equals: map[string]string{"type": "video"},
			},
			expectedSQL:  `r.kind = ? AND r.attributes->>'type' = ?`,
			expectedArgs: []interface{}{"training", "video"},
		},
		{
			name: "substring attributes in key order",
			filter: store.Filter{
				Kind:     store.KindJobs,
				Contains: map[string]string{"location": "Pune", "category": "farm"},
			},
			expectedSQL:  `r.kind = ? AND r.attributes->>'category' ILIKE ? ESCAPE '\' AND r.attributes->>'location' ILIKE ? ESCAPE '\'`,
			expectedArgs: []interface{}{"jobs", "%farm%", "%Pune%"},
		},
		{
			name: "substring values match LIKE metacharacters literally",
			filter: store.Filter{
				Kind:     store.KindJobs,
				Contains: map[string]string{"location": `100%_\`},
			},
			expectedSQL:  `r.kind = ? AND r.attributes->>'location' ILIKE ? ESCAPE '\'`,
			expectedArgs: []interface{}{"jobs", `%100\%\_\\%`},
		},
		{
			name: "search ORs across fields and ANDs with language",
			filter: store.Filter{
				Kind:     store.KindSchemes,
				Language: "en",
				Search: &store.SearchFilter{
					Term:   "farm",
					Fields: []string{"title", "description", "category"},
				},
			},
			expectedSQL:  `r.kind = ? AND r.language = ? AND (r.attributes->>'title' ILIKE ? ESCAPE '\' OR r.attributes->>'description' ILIKE ? ESCAPE '\' OR r.attributes->>'category' ILIKE ? ESCAPE '\')`,
			expectedArgs: []interface{}{"schemes", "en", "%farm%", "%farm%", "%farm%"},
		},
		{
			name: "empty search term imposes no constraint",
			filter: store.Filter{
				Kind:   store.KindSchemes,
				Search: &store.SearchFilter{Term: "", Fields: []string{"title"}},
			},
			expectedSQL:  `r.kind = ?`,
			expectedArgs: []interface{}{"schemes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := whereClause(tt.filter)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "kind", "language", "attributes", "created_by", "created_at", "updated_at", "created_by_name",
	})
}

func TestListRecords(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("jobs", "en").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(`FROM records r\s+LEFT JOIN users u`).
		WithArgs("jobs", "en", 10, 10).
		WillReturnRows(recordRows().AddRow(
			"5e3e7e0a-1111-4a63-9e0c-000000000001", "jobs", "en",
			[]byte(`{"title":"Field assistant","category":"agriculture","location":"Nashik","description":"Seasonal work"}`),
			"5e3e7e0a-2222-4a63-9e0c-000000000002", now, now, "Asha Pawar",
		))

	records, total, err := s.ListRecords(
		store.Filter{Kind: store.KindJobs, Language: "en"},
		store.PageRequest{Page: 2, Limit: 10},
	)
	require.NoError(t, err)

	assert.Equal(t, 12, total)
	require.Len(t, records, 1)
	assert.Equal(t, store.KindJobs, records[0].Kind)
	assert.Equal(t, "Field assistant", records[0].Attributes["title"])
	assert.Equal(t, "Asha Pawar", records[0].CreatedByName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchRecord(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	now := time.Now()
	mock.ExpectQuery(`FROM records r`).
		WithArgs("training", "abc").
		WillReturnRows(recordRows().AddRow(
			"abc", "training", "en",
			[]byte(`{"title":"Intro","type":"video","url":"https://x.test/a"}`),
			"owner-1", now, now, "Meena",
		))

	record, err := s.FetchRecord(store.KindTraining, "abc")
	require.NoError(t, err)

	assert.Equal(t, "abc", record.ID)
	assert.Equal(t, "video", record.Attributes["type"])
	assert.Equal(t, "Meena", record.CreatedByName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchRecord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	mock.ExpectQuery(`FROM records r`).
		WithArgs("training", "missing").
		WillReturnRows(recordRows())

	_, err := s.FetchRecord(store.KindTraining, "missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestCreateRecord(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO records`).
		WithArgs(sqlmock.AnyArg(), "schemes", "en", sqlmock.AnyArg(), "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM records r`).
		WithArgs("schemes", sqlmock.AnyArg()).
		WillReturnRows(recordRows().AddRow(
			"new-id", "schemes", "en",
			[]byte(`{"title":"Farm subsidy","description":"Crop support","eligibility":"Smallholders","link":"https://gov.test/s","category":"agriculture"}`),
			"owner-1", now, now, "Admin",
		))

	record, err := s.CreateRecord(store.KindSchemes, "owner-1", store.Document{
		Language: "en",
		Attributes: map[string]interface{}{
			"title":       "Farm subsidy",
			"description": "Crop support",
			"eligibility": "Smallholders",
			"link":        "https://gov.test/s",
			"category":    "agriculture",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "new-id", record.ID)
	assert.Equal(t, "owner-1", record.CreatedBy)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRecord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	mock.ExpectExec(`UPDATE records`).
		WithArgs("en", sqlmock.AnyArg(), "jobs", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdateRecord(store.KindJobs, "missing", store.Document{
		Language:   "en",
		Attributes: map[string]interface{}{"title": "x"},
	})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestDeleteRecord(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	mock.ExpectExec(`DELETE FROM records`).
		WithArgs("jobs", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.DeleteRecord(store.KindJobs, "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRecord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRecordsStore(db)

	mock.ExpectExec(`DELETE FROM records`).
		WithArgs("jobs", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.DeleteRecord(store.KindJobs, "missing"), store.ErrRecordNotFound)
}
