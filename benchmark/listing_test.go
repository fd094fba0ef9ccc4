package benchmark

import (
	"fmt"
	"net/http"
	"os"
	"testing"
)

// Benchmarks against a locally running server:
//
//	CONTENTHUB_TOKEN_SECRET=... contentctl server
//	go test -bench=. ./benchmark/...
//
// Override the target with CONTENTHUB_BENCH_URL.
func serverURL() string {
	if url := os.Getenv("CONTENTHUB_BENCH_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

func BenchmarkListTraining(b *testing.B) {
	base := serverURL()

	b.Run("GET /api/v1/training", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", base+"/api/v1/training", nil)
			_, _ = http.DefaultClient.Do(r)
		}
	})

	b.Run("GET /api/v1/training paginated", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			page := i%10 + 1
			r, _ := http.NewRequest("GET", fmt.Sprintf("%s/api/v1/training?page=%d&limit=20", base, page), nil)
			_, _ = http.DefaultClient.Do(r)
		}
	})
}

func BenchmarkSearchSchemes(b *testing.B) {
	base := serverURL()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r, _ := http.NewRequest("GET", base+"/api/v1/schemes/search/loan", nil)
		_, _ = http.DefaultClient.Do(r)
	}
}
