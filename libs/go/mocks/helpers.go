package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockRowSinkForTest creates a new mock RowSink for testing
func NewMockRowSinkForTest(t *testing.T) *MockRowSink {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockRowSink(ctrl)
}

// NewMockDocumentServiceForTest creates a new mock DocumentService for testing
func NewMockDocumentServiceForTest(t *testing.T) *MockDocumentService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockDocumentService(ctrl)
}

// NewMockExportServiceForTest creates a new mock ExportService for testing
func NewMockExportServiceForTest(t *testing.T) *MockExportService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockExportService(ctrl)
}

// NewMockEmailServiceForTest creates a new mock EmailService for testing
func NewMockEmailServiceForTest(t *testing.T) *MockEmailService {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEmailService(ctrl)
}
