// Command probe queries a greeter health endpoint once and exits non-zero
// when it is not healthy.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/okian/greeter/internal/probe"
	"github.com/okian/greeter/pkg/logger"
)

func main() {
	var (
		url     = flag.String("url", probe.DefaultURL, "Health endpoint to query")
		timeout = flag.Duration("timeout", probe.DefaultTimeout, "HTTP request timeout")
		expect  = flag.String("expect", probe.DefaultExpect, "Expected response body")
		quiet   = flag.Bool("quiet", false, "Only log failures")
	)
	flag.Parse()

	if err := logger.InitWith(os.Stderr, logger.FormatText); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *quiet {
		_ = logger.SetLevelString("error")
	}
	log := logger.Named("probe")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := probe.Run(ctx, probe.Config{URL: *url, Timeout: *timeout, Expect: *expect})
	if err != nil {
		cancel()
		log.Fatal(ctx, "probe failed",
			logger.String("url", *url),
			logger.Int("status", res.StatusCode),
			logger.Error(err),
		)
	}

	log.Info(ctx, "probe passed",
		logger.String("url", *url),
		logger.Duration("latency", res.Latency),
		logger.String("request_id", res.RequestID),
	)
}
