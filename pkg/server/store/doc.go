// Package store provides storage abstractions for the ContentHub server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - RecordsStore: content record operations (list, fetch, create, update, delete)
//   - UsersStore: user accounts backing authentication and owner-name enrichment
//
// # Usage
//
//	records := gorm.NewRecordsStore(db)
//	page, total, err := records.ListRecords(store.Filter{Kind: store.KindJobs}, store.PageRequest{Page: 1, Limit: 10})
package store
