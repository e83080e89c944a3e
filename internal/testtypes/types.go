package testtypes

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	di "github.com/lakutata/lakutata-sub001"
)

// The four supported Close signatures.

type InterfaceA interface {
	A()
	Close(context.Context) error
}

type InterfaceB interface {
	B()
	Close(context.Context)
}

type InterfaceC interface {
	C()
	Close() error
}

type InterfaceD interface {
	D()
	Close()
}

type StructA struct {
	Tag    any
	Closed atomic.Int32
}

func (*StructA) A() {}
func (s *StructA) Close(context.Context) error {
	s.Closed.Add(1)
	return nil
}

type StructB struct {
	Closed atomic.Int32
}

func (*StructB) B() {}
func (s *StructB) Close(context.Context) {
	s.Closed.Add(1)
}

type StructC struct {
	Closed atomic.Int32
}

func (*StructC) C() {}
func (s *StructC) Close() error {
	s.Closed.Add(1)
	return nil
}

type StructD struct {
	Closed atomic.Int32
}

func (*StructD) D() {}
func (s *StructD) Close() {
	s.Closed.Add(1)
}

func NewInterfaceA() InterfaceA {
	return &StructA{}
}

func NewInterfaceB() InterfaceB {
	return &StructB{}
}

func NewInterfaceC() InterfaceC {
	return &StructC{}
}

func NewInterfaceD() InterfaceD {
	return &StructD{}
}

// Database is a dependency without dependencies of its own.
type Database struct {
	DSN    string
	Closed atomic.Int32
}

func NewDatabase() *Database {
	return &Database{DSN: "memory"}
}

func (d *Database) Close() error {
	d.Closed.Add(1)
	return nil
}

// Repository is a class receiving its dependency through a tagged field.
type Repository struct {
	DB *Database `di:"db"`
}

// Service is a class receiving its dependencies from the cradle.
type Service struct {
	Repo   *Repository
	Logger any
}

func (s *Service) Construct(c di.Cradle) error {
	repo, err := di.Get[*Repository](c, "repo")
	if err != nil {
		return err
	}
	s.Repo = repo

	if c.Has("logger") {
		s.Logger, err = c.Resolve("logger")
	}
	return err
}

// MockCloser is a testify mock implementing di.Closer.
type MockCloser struct {
	mock.Mock
}

func (m *MockCloser) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ di.Closer = (*MockCloser)(nil)
var _ di.Constructor = (*Service)(nil)
