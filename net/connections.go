package net

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/autonity/autonity/rpc"
)

const dialTimeout = 10 * time.Second

type Connection struct {
	Client *rpc.Client
	URL    string
}

// ConnectionPool keeps a fixed number of JSON-RPC connections spread over the
// configured gateway urls.
type ConnectionPool struct {
	initialConnections int
	urls               []string
	connections        []*Connection
	sync.RWMutex
}

func (cp *ConnectionPool) newConnection() *Connection {
	url := cp.urls[rand.Intn(len(cp.urls))]
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		slog.Error("dial error", "err", err, "url", url)
		return nil
	}

	cp.Lock()
	defer cp.Unlock()
	con := &Connection{client, url}
	cp.connections = append(cp.connections, con)
	return con
}

func NewConnectionPool(urls []string, capacity int) *ConnectionPool {
	cp := &ConnectionPool{
		urls:               urls,
		initialConnections: capacity,
		connections:        make([]*Connection, 0),
	}
	if len(urls) == 0 {
		slog.Error("no gateway urls configured")
		return cp
	}
	for i := 0; i < capacity; i++ {
		cp.newConnection()
	}
	return cp
}

func (cp *ConnectionPool) Get() *Connection {
	cp.RLock()
	defer cp.RUnlock()

	if len(cp.connections) == 0 {
		return nil
	}
	return cp.connections[rand.Intn(len(cp.connections))]
}

// Size is the number of live connections.
func (cp *ConnectionPool) Size() int {
	cp.RLock()
	defer cp.RUnlock()
	return len(cp.connections)
}

// Replace drops a connection that failed at transport level and dials a new one.
func (cp *ConnectionPool) Replace(c *Connection) *Connection {
	cp.Lock()
	for i, con := range cp.connections {
		if con == c {
			cp.connections = append(cp.connections[:i], cp.connections[i+1:]...)
			break
		}
	}
	cp.Unlock()
	c.Client.Close()
	slog.Warn("replacing gateway connection", "url", c.URL)
	return cp.newConnection()
}

func (cp *ConnectionPool) Close() {
	cp.Lock()
	defer cp.Unlock()
	for _, c := range cp.connections {
		c.Client.Close()
	}
	cp.connections = nil
}
