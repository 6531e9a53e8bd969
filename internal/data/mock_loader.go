// Mock of the Loader interface declared in internal/data/loader.go.

package data

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockLoader is a mock of the Loader interface, hand-authored in the shape
// mockgen would produce, so a unit test can simulate a corrupt or missing
// catalogue without a filesystem fixture.
type MockLoader struct {
	ctrl     *gomock.Controller
	recorder *MockLoaderMockRecorder
}

// MockLoaderMockRecorder is the mock recorder for MockLoader.
type MockLoaderMockRecorder struct {
	mock *MockLoader
}

// NewMockLoader creates a new mock instance.
func NewMockLoader(ctrl *gomock.Controller) *MockLoader {
	mock := &MockLoader{ctrl: ctrl}
	mock.recorder = &MockLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLoader) EXPECT() *MockLoaderMockRecorder {
	return m.recorder
}

// LoadPayloads mocks base method.
func (m *MockLoader) LoadPayloads() ([]PayloadRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadPayloads")
	ret0, _ := ret[0].([]PayloadRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadPayloads indicates an expected call of LoadPayloads.
func (mr *MockLoaderMockRecorder) LoadPayloads() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadPayloads", reflect.TypeOf((*MockLoader)(nil).LoadPayloads))
}

// LoadCpeList mocks base method.
func (m *MockLoader) LoadCpeList() ([]CpeRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadCpeList")
	ret0, _ := ret[0].([]CpeRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadCpeList indicates an expected call of LoadCpeList.
func (mr *MockLoaderMockRecorder) LoadCpeList() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadCpeList", reflect.TypeOf((*MockLoader)(nil).LoadCpeList))
}

// LoadCpeRegex mocks base method.
func (m *MockLoader) LoadCpeRegex() ([]RegexRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadCpeRegex")
	ret0, _ := ret[0].([]RegexRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadCpeRegex indicates an expected call of LoadCpeRegex.
func (mr *MockLoaderMockRecorder) LoadCpeRegex() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadCpeRegex", reflect.TypeOf((*MockLoader)(nil).LoadCpeRegex))
}

// LoadCpeCves mocks base method.
func (m *MockLoader) LoadCpeCves() ([]CveCatalogueRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LoadCpeCves")
	ret0, _ := ret[0].([]CveCatalogueRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LoadCpeCves indicates an expected call of LoadCpeCves.
func (mr *MockLoaderMockRecorder) LoadCpeCves() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LoadCpeCves", reflect.TypeOf((*MockLoader)(nil).LoadCpeCves))
}
