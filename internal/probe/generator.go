package probe

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/okian/arith/pkg/logger"
)

// Operations probed and their local reference implementations.
var operations = map[string]func(a, b float64) float64{
	"add":      func(a, b float64) float64 { return a + b },
	"subtract": func(a, b float64) float64 { return a - b },
}

// generateCases builds NumCases pairs for every operation.
func generateCases(ctx context.Context, config *Config, stats *Stats) []Case {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Get().Info(ctx, "generating cases",
		logger.Int("perOperation", config.NumCases),
		logger.Any("seed", seed))

	cases := make([]Case, 0, config.NumCases*len(operations))
	for _, op := range []string{"add", "subtract"} {
		fn := operations[op]
		for i := 0; i < config.NumCases; i++ {
			a := (rng.Float64()*2 - 1) * config.Magnitude
			b := (rng.Float64()*2 - 1) * config.Magnitude
			cases = append(cases, Case{
				ID:        uuid.NewString(),
				Operation: op,
				A:         a,
				B:         b,
				Expected:  fn(a, b),
			})
		}
	}

	stats.CasesGenerated = len(cases)
	return cases
}
