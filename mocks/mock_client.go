package mocks

import (
	context "context"
	json "encoding/json"
	model "gmseer/model"
	reflect "reflect"

	rpc "github.com/autonity/autonity/rpc"
	gomock "github.com/golang/mock/gomock"
)

// MockRPCClient is a mock of RPCClient interface.
type MockRPCClient struct {
	ctrl     *gomock.Controller
	recorder *MockRPCClientMockRecorder
}

// MockRPCClientMockRecorder is the mock recorder for MockRPCClient.
type MockRPCClientMockRecorder struct {
	mock *MockRPCClient
}

// NewMockRPCClient creates a new mock instance.
func NewMockRPCClient(ctrl *gomock.Controller) *MockRPCClient {
	mock := &MockRPCClient{ctrl: ctrl}
	mock.recorder = &MockRPCClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRPCClient) EXPECT() *MockRPCClientMockRecorder {
	return m.recorder
}

// BatchCallContext mocks base method.
func (m *MockRPCClient) BatchCallContext(ctx context.Context, b []rpc.BatchElem) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BatchCallContext", ctx, b)
	ret0, _ := ret[0].(error)
	return ret0
}

// BatchCallContext indicates an expected call of BatchCallContext.
func (mr *MockRPCClientMockRecorder) BatchCallContext(ctx, b interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BatchCallContext", reflect.TypeOf((*MockRPCClient)(nil).BatchCallContext), ctx, b)
}

// CallContext mocks base method.
func (m *MockRPCClient) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	m.ctrl.T.Helper()
	varargs := []interface{}{ctx, result, method}
	for _, a := range args {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "CallContext", varargs...)
	ret0, _ := ret[0].(error)
	return ret0
}

// CallContext indicates an expected call of CallContext.
func (mr *MockRPCClientMockRecorder) CallContext(ctx, result, method interface{}, args ...interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]interface{}{ctx, result, method}, args...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CallContext", reflect.TypeOf((*MockRPCClient)(nil).CallContext), varargs...)
}

// MockStorageReader is a mock of StorageReader interface.
type MockStorageReader struct {
	ctrl     *gomock.Controller
	recorder *MockStorageReaderMockRecorder
}

// MockStorageReaderMockRecorder is the mock recorder for MockStorageReader.
type MockStorageReaderMockRecorder struct {
	mock *MockStorageReader
}

// NewMockStorageReader creates a new mock instance.
func NewMockStorageReader(ctrl *gomock.Controller) *MockStorageReader {
	mock := &MockStorageReader{ctrl: ctrl}
	mock.recorder = &MockStorageReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorageReader) EXPECT() *MockStorageReaderMockRecorder {
	return m.recorder
}

// ReadMany mocks base method.
func (m *MockStorageReader) ReadMany(ctx context.Context, at model.BlockRef, pallet, item string, keys []any) ([]json.RawMessage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadMany", ctx, at, pallet, item, keys)
	ret0, _ := ret[0].([]json.RawMessage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReadMany indicates an expected call of ReadMany.
func (mr *MockStorageReaderMockRecorder) ReadMany(ctx, at, pallet, item, keys interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadMany", reflect.TypeOf((*MockStorageReader)(nil).ReadMany), ctx, at, pallet, item, keys)
}

// MockStateReader is a mock of StateReader interface.
type MockStateReader struct {
	ctrl     *gomock.Controller
	recorder *MockStateReaderMockRecorder
}

// MockStateReaderMockRecorder is the mock recorder for MockStateReader.
type MockStateReaderMockRecorder struct {
	mock *MockStateReader
}

// NewMockStateReader creates a new mock instance.
func NewMockStateReader(ctrl *gomock.Controller) *MockStateReader {
	mock := &MockStateReader{ctrl: ctrl}
	mock.recorder = &MockStateReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStateReader) EXPECT() *MockStateReaderMockRecorder {
	return m.recorder
}

// Identities mocks base method.
func (m *MockStateReader) Identities(ctx context.Context, at model.BlockRef, keys [][]byte) ([]*model.IdentityRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Identities", ctx, at, keys)
	ret0, _ := ret[0].([]*model.IdentityRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Identities indicates an expected call of Identities.
func (mr *MockStateReaderMockRecorder) Identities(ctx, at, keys interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Identities", reflect.TypeOf((*MockStateReader)(nil).Identities), ctx, at, keys)
}

// SystemAccounts mocks base method.
func (m *MockStateReader) SystemAccounts(ctx context.Context, at model.BlockRef, keys [][]byte) ([]*model.NativeAccountData, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SystemAccounts", ctx, at, keys)
	ret0, _ := ret[0].([]*model.NativeAccountData)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SystemAccounts indicates an expected call of SystemAccounts.
func (mr *MockStateReaderMockRecorder) SystemAccounts(ctx, at, keys interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SystemAccounts", reflect.TypeOf((*MockStateReader)(nil).SystemAccounts), ctx, at, keys)
}

// TokenAccounts mocks base method.
func (m *MockStateReader) TokenAccounts(ctx context.Context, at model.BlockRef, currency model.Currency, keys [][]byte) ([]*model.TokenAccountData, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TokenAccounts", ctx, at, currency, keys)
	ret0, _ := ret[0].([]*model.TokenAccountData)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TokenAccounts indicates an expected call of TokenAccounts.
func (mr *MockStateReaderMockRecorder) TokenAccounts(ctx, at, currency, keys interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TokenAccounts", reflect.TypeOf((*MockStateReader)(nil).TokenAccounts), ctx, at, currency, keys)
}
