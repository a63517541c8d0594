// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
	"kindra-backend/domain/events"
)

type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) Save(ctx context.Context, conn *entities.Connection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockConnectionRepository) GetByID(ctx context.Context, userID valueobjects.UserID, id valueobjects.ConnectionID) (*entities.Connection, error) {
	args := m.Called(ctx, userID, id)
	if conn, ok := args.Get(0).(*entities.Connection); ok {
		return conn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConnectionRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Connection, error) {
	args := m.Called(ctx, userID)
	if conns, ok := args.Get(0).([]*entities.Connection); ok {
		return conns, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMomentRepository struct {
	mock.Mock
}

func (m *MockMomentRepository) Save(ctx context.Context, moment *entities.Moment) error {
	args := m.Called(ctx, moment)
	return args.Error(0)
}

func (m *MockMomentRepository) Delete(ctx context.Context, userID valueobjects.UserID, id valueobjects.MomentID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockMomentRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.Moment, error) {
	args := m.Called(ctx, userID)
	if moments, ok := args.Get(0).([]*entities.Moment); ok {
		return moments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMomentRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID valueobjects.ConnectionID) ([]*entities.Moment, error) {
	args := m.Called(ctx, userID, connectionID)
	if moments, ok := args.Get(0).([]*entities.Moment); ok {
		return moments, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCycleRepository struct {
	mock.Mock
}

func (m *MockCycleRepository) Save(ctx context.Context, cycle *entities.CycleRecord) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

func (m *MockCycleRepository) ListByUser(ctx context.Context, userID valueobjects.UserID) ([]*entities.CycleRecord, error) {
	args := m.Called(ctx, userID)
	if cycles, ok := args.Get(0).([]*entities.CycleRecord); ok {
		return cycles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCycleRepository) ListByConnection(ctx context.Context, userID valueobjects.UserID, connectionID *valueobjects.ConnectionID) ([]*entities.CycleRecord, error) {
	args := m.Called(ctx, userID, connectionID)
	if cycles, ok := args.Get(0).([]*entities.CycleRecord); ok {
		return cycles, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (interface{}, bool) {
	args := m.Called(ctx, key)
	return args.Get(0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *MockCache) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) RecordInsights(kind string, count int) {
	m.Called(kind, count)
}

func (m *MockMetricsRecorder) RecordAnalysisDuration(kind string, d time.Duration) {
	m.Called(kind, d)
}

func (m *MockMetricsRecorder) RecordSkipped(reason string, count int) {
	m.Called(reason, count)
}
