package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server/store"
)

// MockRecordsStore implements store.RecordsStore for testing using testify/mock
type MockRecordsStore struct {
	mock.Mock
}

func NewMockRecordsStore() *MockRecordsStore {
	return &MockRecordsStore{}
}

func (m *MockRecordsStore) ListRecords(filter store.Filter, page store.PageRequest) ([]store.Record, int, error) {
	args := m.Called(filter, page)
	var records []store.Record
	if args.Get(0) != nil {
		records = args.Get(0).([]store.Record)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockRecordsStore) FetchRecord(kind store.Kind, id string) (*store.Record, error) {
	args := m.Called(kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) CreateRecord(kind store.Kind, ownerID string, doc store.Document) (*store.Record, error) {
	args := m.Called(kind, ownerID, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) UpdateRecord(kind store.Kind, id string, doc store.Document) (*store.Record, error) {
	args := m.Called(kind, id, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Record), args.Error(1)
}

func (m *MockRecordsStore) DeleteRecord(kind store.Kind, id string) error {
	args := m.Called(kind, id)
	return args.Error(0)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) CreateUser(name, email, passwordDigest string, role identity.Role) (*store.User, error) {
	args := m.Called(name, email, passwordDigest, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) FetchUser(id string) (*store.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByEmail(email string) (*store.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}
