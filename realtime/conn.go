//go:generate go run go.uber.org/mock/mockgen -source=conn.go -destination=../mocks/mock_conn.go -package=mocks
package realtime

// Conn is the opaque handle to one live transport connection. The transport
// layer supplies implementations; the core only enqueues frames and closes.
type Conn interface {
	// Send enqueues a serialized frame for delivery. It must not block: a
	// full outgoing buffer is reported as an error, not waited out.
	Send(data []byte) error
	// Close tears down the underlying connection. The transport is expected
	// to surface the resulting close event back into the router.
	Close() error
}
