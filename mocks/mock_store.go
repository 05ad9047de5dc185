// Package mocks holds gomock doubles for the interfaces in interfaces/store.go.
package mocks

import (
	context "context"
	model "gmseer/model"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
)

// MockEntityLoader is a mock of EntityLoader interface.
type MockEntityLoader struct {
	ctrl     *gomock.Controller
	recorder *MockEntityLoaderMockRecorder
}

// MockEntityLoaderMockRecorder is the mock recorder for MockEntityLoader.
type MockEntityLoaderMockRecorder struct {
	mock *MockEntityLoader
}

// NewMockEntityLoader creates a new mock instance.
func NewMockEntityLoader(ctrl *gomock.Controller) *MockEntityLoader {
	mock := &MockEntityLoader{ctrl: ctrl}
	mock.recorder = &MockEntityLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEntityLoader) EXPECT() *MockEntityLoaderMockRecorder {
	return m.recorder
}

// LoadAccounts mocks base method.
func (m *MockEntityLoader) LoadAccounts(ctx context.Context, ids []string) ([]*model.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadAccounts", ctx, ids)
	ret0, _ := ret[0].([]*model.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadAccounts indicates an expected call of LoadAccounts.
func (mr *MockEntityLoaderMockRecorder) LoadAccounts(ctx, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadAccounts", reflect.TypeOf((*MockEntityLoader)(nil).LoadAccounts), ctx, ids)
}

// LoadEventIDs mocks base method.
func (m *MockEntityLoader) LoadEventIDs(ctx context.Context, kind model.EntityKind, ids []string) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadEventIDs", ctx, kind, ids)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadEventIDs indicates an expected call of LoadEventIDs.
func (mr *MockEntityLoaderMockRecorder) LoadEventIDs(ctx, kind, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadEventIDs", reflect.TypeOf((*MockEntityLoader)(nil).LoadEventIDs), ctx, kind, ids)
}

// MockStore is a mock of Store interface.
type MockStore struct {
	ctrl     *gomock.Controller
	recorder *MockStoreMockRecorder
}

// MockStoreMockRecorder is the mock recorder for MockStore.
type MockStoreMockRecorder struct {
	mock *MockStore
}

// NewMockStore creates a new mock instance.
func NewMockStore(ctrl *gomock.Controller) *MockStore {
	mock := &MockStore{ctrl: ctrl}
	mock.recorder = &MockStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStore) EXPECT() *MockStoreMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *MockStore) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockStoreMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockStore)(nil).Close))
}

// LastProcessed mocks base method.
func (m *MockStore) LastProcessed(ctx context.Context) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LastProcessed", ctx)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LastProcessed indicates an expected call of LastProcessed.
func (mr *MockStoreMockRecorder) LastProcessed(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LastProcessed", reflect.TypeOf((*MockStore)(nil).LastProcessed), ctx)
}

// LoadAccounts mocks base method.
func (m *MockStore) LoadAccounts(ctx context.Context, ids []string) ([]*model.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadAccounts", ctx, ids)
	ret0, _ := ret[0].([]*model.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadAccounts indicates an expected call of LoadAccounts.
func (mr *MockStoreMockRecorder) LoadAccounts(ctx, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadAccounts", reflect.TypeOf((*MockStore)(nil).LoadAccounts), ctx, ids)
}

// LoadEventIDs mocks base method.
func (m *MockStore) LoadEventIDs(ctx context.Context, kind model.EntityKind, ids []string) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadEventIDs", ctx, kind, ids)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadEventIDs indicates an expected call of LoadEventIDs.
func (mr *MockStoreMockRecorder) LoadEventIDs(ctx, kind, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadEventIDs", reflect.TypeOf((*MockStore)(nil).LoadEventIDs), ctx, kind, ids)
}

// Persist mocks base method.
func (m *MockStore) Persist(ctx context.Context, changes *model.ChangeSet, processedUpTo uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Persist", ctx, changes, processedUpTo)
	ret0, _ := ret[0].(error)
	return ret0
}

// Persist indicates an expected call of Persist.
func (mr *MockStoreMockRecorder) Persist(ctx, changes, processedUpTo interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Persist", reflect.TypeOf((*MockStore)(nil).Persist), ctx, changes, processedUpTo)
}

// MockSink is a mock of Sink interface.
type MockSink struct {
	ctrl     *gomock.Controller
	recorder *MockSinkMockRecorder
}

// MockSinkMockRecorder is the mock recorder for MockSink.
type MockSinkMockRecorder struct {
	mock *MockSink
}

// NewMockSink creates a new mock instance.
func NewMockSink(ctrl *gomock.Controller) *MockSink {
	mock := &MockSink{ctrl: ctrl}
	mock.recorder = &MockSinkMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSink) EXPECT() *MockSinkMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *MockSink) Close() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Close")
}

// Close indicates an expected call of Close.
func (mr *MockSinkMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockSink)(nil).Close))
}

// Flush mocks base method.
func (m *MockSink) Flush() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Flush")
}

// Flush indicates an expected call of Flush.
func (mr *MockSinkMockRecorder) Flush() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockSink)(nil).Flush))
}

// WriteChangeSet mocks base method.
func (m *MockSink) WriteChangeSet(changes *model.ChangeSet, batch *model.Batch) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WriteChangeSet", changes, batch)
}

// WriteChangeSet indicates an expected call of WriteChangeSet.
func (mr *MockSinkMockRecorder) WriteChangeSet(changes, batch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WriteChangeSet", reflect.TypeOf((*MockSink)(nil).WriteChangeSet), changes, batch)
}
