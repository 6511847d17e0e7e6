package pinecone

import "time"

// NewStoreForTest creates a Store over the provided connection (test-only).
func NewStoreForTest(conn indexConn, indexName string) *Store {
	return &Store{conn: conn, indexName: indexName}
}

// NewStoreWithTimeoutForTest is NewStoreForTest with a per-call timeout (test-only).
func NewStoreWithTimeoutForTest(conn indexConn, indexName string, timeout time.Duration) *Store {
	return &Store{conn: conn, indexName: indexName, timeout: timeout}
}
