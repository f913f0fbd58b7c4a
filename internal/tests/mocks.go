package tests

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/redis"
	"dispatch/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers []domain.Driver
	nextID  int

	// Counters for verification
	ListCallCount   int32
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	ListError   error
	CreateError error
	UpdateError error

	// ListGate, when set, blocks List until it is closed or receives.
	ListGate chan struct{}
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = append(m.drivers, driver)
}

func (m *MockDriverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListGate != nil {
		<-m.ListGate
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Driver{}, m.drivers...), nil
}

func (m *MockDriverRepository) Create(ctx context.Context, fields domain.DriverFields) (domain.Driver, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return domain.Driver{}, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	driver := domain.Driver{
		ID:       fmt.Sprintf("driver-%d", m.nextID),
		Name:     fields.Name,
		Phone:    fields.Phone,
		HomeCity: fields.HomeCity,
	}
	m.drivers = append(m.drivers, driver)
	return driver, nil
}

// Update echoes the patch like the document repository does. A missing
// driver is reported as not found.
func (m *MockDriverRepository) Update(ctx context.Context, id string, patch domain.DriverPatch) (domain.DriverPatch, error) {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return domain.DriverPatch{}, m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drivers {
		if m.drivers[i].ID == id {
			m.drivers[i] = patch.Apply(m.drivers[i])
			patch.ID = id
			return patch, nil
		}
	}
	return domain.DriverPatch{}, repository.ErrNotFound
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drivers {
		if m.drivers[i].ID == id {
			m.drivers = append(m.drivers[:i], m.drivers[i+1:]...)
			return nil
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK CARGO REPOSITORY
// ──────────────────────────────────────────────

// MockCargoRepository is a mock implementation of CargoRepository.
type MockCargoRepository struct {
	mu     sync.RWMutex
	cargos []domain.Cargo
	nextID int

	// Counters for verification
	ListCallCount   int32
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	ListError   error
	CreateError error
	UpdateError error

	// FailUpdateAfter, when positive, makes every Update after the first
	// FailUpdateAfter successful ones return UpdateError.
	FailUpdateAfter int32

	// UpdateGate, when set, blocks Update until it is closed or receives.
	UpdateGate chan struct{}
}

// NewMockCargoRepository creates a new mock cargo repository.
func NewMockCargoRepository() *MockCargoRepository {
	return &MockCargoRepository{}
}

// AddCargo adds a cargo to the mock repository.
func (m *MockCargoRepository) AddCargo(cargo domain.Cargo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cargos = append(m.cargos, cargo)
}

// GetCargo returns the stored cargo (for test assertions).
func (m *MockCargoRepository) GetCargo(id string) (domain.Cargo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cargos {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Cargo{}, false
}

func (m *MockCargoRepository) List(ctx context.Context) ([]domain.Cargo, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Cargo{}, m.cargos...), nil
}

func (m *MockCargoRepository) Create(ctx context.Context, fields domain.CargoFields) (domain.Cargo, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return domain.Cargo{}, m.CreateError
	}
	status := fields.Status
	if status == "" {
		status = domain.CargoStatusBooked
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cargo := domain.Cargo{
		ID:               fmt.Sprintf("cargo-%d", m.nextID),
		PickupLocation:   fields.PickupLocation,
		DeliveryLocation: fields.DeliveryLocation,
		PickupDateTime:   fields.PickupDateTime,
		DeliveryDateTime: fields.DeliveryDateTime,
		Notes:            fields.Notes,
		DriverID:         fields.DriverID,
		Status:           status,
		Order:            fields.Order,
	}
	m.cargos = append(m.cargos, cargo)
	return cargo, nil
}

// Update merges the patch over the stored cargo and returns the result.
func (m *MockCargoRepository) Update(ctx context.Context, id string, patch domain.CargoPatch) (domain.Cargo, error) {
	n := atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateGate != nil {
		<-m.UpdateGate
	}
	if m.UpdateError != nil && n > m.FailUpdateAfter {
		return domain.Cargo{}, m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cargos {
		if m.cargos[i].ID == id {
			m.cargos[i] = patch.Apply(m.cargos[i])
			return m.cargos[i], nil
		}
	}
	return domain.Cargo{}, repository.ErrNotFound
}

func (m *MockCargoRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cargos {
		if m.cargos[i].ID == id {
			m.cargos = append(m.cargos[:i], m.cargos[i+1:]...)
			return nil
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu     sync.Mutex
	locks  map[string]mockLock
	tokens int

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// ReleaseGate, when set, blocks ReleaseReorderLock until it receives.
	ReleaseGate chan struct{}
}

type mockLock struct {
	token  string
	expiry time.Time
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]mockLock),
	}
}

var _ redis.LockStoreInterface = (*MockLockStore)(nil)

func (m *MockLockStore) AcquireReorderLock(ctx context.Context, driverID string, ttl time.Duration) (string, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:reorder:" + driverID
	if lock, exists := m.locks[key]; exists && time.Now().Before(lock.expiry) {
		return "", nil // Lock still held.
	}
	m.tokens++
	token := fmt.Sprintf("token-%d", m.tokens)
	m.locks[key] = mockLock{token: token, expiry: time.Now().Add(ttl)}
	return token, nil
}

func (m *MockLockStore) ReleaseReorderLock(ctx context.Context, driverID, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	if m.ReleaseGate != nil {
		<-m.ReleaseGate
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:reorder:" + driverID
	if lock, exists := m.locks[key]; exists && lock.token == token {
		delete(m.locks, key)
	}
	return nil
}

// Hold marks the driver's reorder lock as held by someone else.
func (m *MockLockStore) Hold(driverID string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks["lock:reorder:"+driverID] = mockLock{token: "held", expiry: time.Now().Add(ttl)}
}

// IsLocked checks if a driver's reorder lock is held (for test assertions).
func (m *MockLockStore) IsLocked(driverID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, exists := m.locks["lock:reorder:"+driverID]
	return exists && time.Now().Before(lock.expiry)
}
