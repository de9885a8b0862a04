package kdtreetesting

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	fuzz "github.com/google/gofuzz"
)

type TestContext struct {
	Log  logger.Logger
	T    *testing.T
	Fuzz *fuzz.Fuzzer
}

type TestConfig struct {
	// The generators are seeded from Seed. Fix it so that the generated
	// points are the same from run to run.
	Seed            int64
	TestLabelPrefix string
	LogLevel        string // defaults to NOOP
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T:    t,
		Fuzz: fuzz.NewWithSeed(cfg.Seed).NilChance(0),
	}
	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// Float returns a value in [0,1)
func (c *TestContext) Float() float64 {
	var x float64
	c.Fuzz.Fuzz(&x)
	return x
}

// Intn returns a value in [0,n)
func (c *TestContext) Intn(n int) int {
	if n <= 0 {
		c.T.Fatalf("Intn: n must be positive, got %d", n)
	}
	var u uint32
	c.Fuzz.Fuzz(&u)
	return int(u % uint32(n))
}
