package net

import (
	"errors"

	"gmseer/interfaces"
)

var ErrNoConnection = errors.New("no gateway connection available")

type ConnectionProvider interface {
	GetRPCClient() (interfaces.RPCClient, error)
	// Discard reports a client whose transport failed so it is not handed out again.
	Discard(client interfaces.RPCClient)
}

type connectionProvider struct {
	RPCPool *ConnectionPool
}

func NewConnectionProvider(rpcPool *ConnectionPool) ConnectionProvider {
	return &connectionProvider{RPCPool: rpcPool}
}

func (cp *connectionProvider) GetRPCClient() (interfaces.RPCClient, error) {
	con := cp.RPCPool.Get()
	if con == nil {
		return nil, ErrNoConnection
	}
	return con.Client, nil
}

func (cp *connectionProvider) Discard(client interfaces.RPCClient) {
	cp.RPCPool.RLock()
	var found *Connection
	for _, con := range cp.RPCPool.connections {
		if interfaces.RPCClient(con.Client) == client {
			found = con
			break
		}
	}
	cp.RPCPool.RUnlock()
	if found != nil {
		cp.RPCPool.Replace(found)
	}
}
