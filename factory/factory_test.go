package factory_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/toejough/standin"
	"github.com/toejough/standin/factory"
)

type Clock interface {
	Now() int64
}

type Mailer struct{}

func (*Mailer) Send(to string) error { return nil }

// Service is the kind of type a factory builds: dependencies behind fields.
type Service struct {
	Clock   standin.Object
	Mailer  standin.Object
	Exact   *standin.Mock
	Name    string
	secrets standin.Object
}

type BuildSuite struct {
	suite.Suite
}

func TestBuildSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BuildSuite))
}

// TestDefaultConstruction allocates the target and fills every nested field.
func (suite *BuildSuite) TestDefaultConstruction() {
	cfg := factory.Config[*Service]{
		Nested: []factory.Nested{
			{Field: "Clock", Type: reflect.TypeFor[Clock]()},
			{Field: "Mailer", Real: &Mailer{}, Options: []standin.Option{standin.WithoutSeeding()}},
			{Field: "Exact"},
		},
	}

	service, err := factory.Build(cfg)
	suite.Require().NoError(err)
	suite.Require().NotNil(service.Clock)
	suite.Require().NotNil(service.Mailer)
	suite.Require().NotNil(service.Exact)
	suite.Nil(service.secrets)

	now, err := service.Clock.Invoke("Now")
	suite.NoError(err)
	suite.IsType(int64(0), now)

	sent, err := service.Mailer.Invoke("Send", "ops")
	suite.NoError(err)
	suite.Nil(sent)

	suite.Empty(service.Exact.Methods())
}

// TestConstructorSelector uses the supplied constructor instead of new.
func (suite *BuildSuite) TestConstructorSelector() {
	cfg := factory.Config[*Service]{
		Construct: func() *Service { return &Service{Name: "billing"} },
		Nested:    []factory.Nested{{Field: "Clock", Type: reflect.TypeFor[Clock]()}},
	}

	service, err := factory.Build(cfg)
	suite.Require().NoError(err)
	suite.Equal("billing", service.Name)

	mocks, err := factory.Mocks(service, cfg)
	suite.Require().NoError(err)
	suite.Require().Contains(mocks, "Clock")

	mocks["Clock"].For("Now").Returns(int64(1700000000))

	now, err := service.Clock.Invoke("Now")
	suite.NoError(err)
	suite.Equal(int64(1700000000), now)
}

// TestNestedMocksAreIndependent gives every build its own mocks.
func (suite *BuildSuite) TestNestedMocksAreIndependent() {
	cfg := factory.Config[*Service]{
		Nested: []factory.Nested{{Field: "Clock", Type: reflect.TypeFor[Clock]()}},
	}

	first, err := factory.Build(cfg)
	suite.Require().NoError(err)

	second, err := factory.Build(cfg)
	suite.Require().NoError(err)

	suite.NotSame(first.Clock, second.Clock)
}

// TestErrors covers every way a configuration can be wrong.
func (suite *BuildSuite) TestErrors() {
	_, err := factory.Build(factory.Config[*Service]{
		Nested: []factory.Nested{{Field: "Missing"}},
	})
	suite.ErrorIs(err, factory.ErrNoSuchField)

	_, err = factory.Build(factory.Config[*Service]{
		Nested: []factory.Nested{{Field: "Name"}},
	})
	suite.ErrorIs(err, factory.ErrFieldType)

	_, err = factory.Build(factory.Config[*Service]{
		Nested: []factory.Nested{{Field: "secrets"}},
	})
	suite.ErrorIs(err, factory.ErrFieldType)

	_, err = factory.Build(factory.Config[Service]{})
	suite.ErrorIs(err, factory.ErrNotStructPointer)

	_, err = factory.Build(factory.Config[*int]{})
	suite.ErrorIs(err, factory.ErrNotStructPointer)

	_, err = factory.Build(factory.Config[*Service]{
		Construct: func() *Service { return nil },
	})
	suite.ErrorIs(err, factory.ErrNotStructPointer)

	_, err = factory.Mocks(&Service{Name: "x"}, factory.Config[*Service]{
		Nested: []factory.Nested{{Field: "Clock"}},
	})
	suite.ErrorIs(err, factory.ErrFieldType)
}
