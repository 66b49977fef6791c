package ledger

import (
	"context"
	"sync"

	"github.com/jomei/notionapi"
)

// mockStore is a configurable in-memory stand-in for the Notion store.
type mockStore struct {
	mu sync.Mutex

	pages map[string]*notionapi.Page

	getErr    error
	createErr error
	updateErr error
	queryErr  error

	// queryFn overrides QueryDatabase when set.
	queryFn func(databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	// queryResults is returned as a single page of results when queryFn is unset.
	queryResults []notionapi.Page

	createdDatabaseID string
	createdProps      notionapi.Properties
	createdPageID     string

	updatedProps map[string]notionapi.Properties

	comments []string

	getCalls     int
	createCalls  int
	updateCalls  int
	queryCalls   int
	commentCalls int
}

func newMockStore() *mockStore {
	return &mockStore{
		pages:         map[string]*notionapi.Page{},
		updatedProps:  map[string]notionapi.Properties{},
		createdPageID: "created-page-id",
	}
}

func (m *mockStore) GetPage(ctx context.Context, pageID string) (*notionapi.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	page, ok := m.pages[pageID]
	if !ok {
		return &notionapi.Page{ID: notionapi.ObjectID(pageID), Properties: notionapi.Properties{}}, nil
	}
	return page, nil
}

func (m *mockStore) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdDatabaseID = databaseID
	m.createdProps = properties
	return &notionapi.Page{ID: notionapi.ObjectID(m.createdPageID)}, nil
}

func (m *mockStore) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.updatedProps[pageID] = properties
	return &notionapi.Page{ID: notionapi.ObjectID(pageID), Properties: properties}, nil
}

func (m *mockStore) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCalls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if m.queryFn != nil {
		return m.queryFn(databaseID, req)
	}
	return &notionapi.DatabaseQueryResponse{Results: m.queryResults}, nil
}

func (m *mockStore) CreateComment(ctx context.Context, pageID string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commentCalls++
	m.comments = append(m.comments, text)
	return nil
}

func (m *mockStore) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls + m.createCalls + m.updateCalls + m.queryCalls + m.commentCalls
}
