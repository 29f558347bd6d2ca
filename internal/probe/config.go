package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumCases  int           // Number of operand pairs per operation
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Magnitude float64       // Operands are drawn from [-Magnitude, Magnitude)
	Seed      int64         // Seed for operand generation; 0 picks one from the clock
	Verbose   bool          // Log every mismatch as it happens
}

// Case is one request to send and the answer expected for it.
type Case struct {
	ID        string  `json:"id"`
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Expected  float64 `json:"expected"`
}

// Response mirrors the body of /add and /subtract.
type Response struct {
	A      *float64 `json:"a"`
	B      *float64 `json:"b"`
	Result *float64 `json:"result"`
}

// Stats holds probe statistics.
type Stats struct {
	CasesGenerated int
	Passed         int
	Mismatched     int
	Failed         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
