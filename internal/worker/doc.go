// Package worker implements the spec worker lifecycle and Redis Streams integration.
//
// The worker subscribes to a Redis Stream of filter requests, applies the named
// specification to the request's products, and publishes results to a result
// stream.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	f := filter.New(catalog.Specs(cfg.HighPriceThreshold), cfg.ReportTemplate, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, f, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// Requests are stream entries with a single "data" field holding JSON:
//
//	{"request_id": "r-1", "spec": "is-new", "products": [{"name": "피카츄", "is_new": true, "price": 100000}]}
//
// Results are written to RESULT_STREAM; failed requests to RESULT_STREAM + ".errors".
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
