// Package health reports the health of the cache layer.
//
// A Checker reports a Status: Healthy, Degraded, or Unhealthy. StoreChecker
// watches an in-process store's fill level against a configured capacity;
// PingChecker verifies that a remote store such as Redis answers in time.
// Aggregator runs a set of checkers under one deadline and folds their
// results into a single status.
//
//	agg := health.NewAggregator()
//	agg.Register(storeChecker)
//	agg.Register(redisChecker)
//
//	results := agg.CheckAll(ctx)
//	if health.OverallStatus(results) == health.StatusUnhealthy {
//	    logger.Error(ctx, "cache unhealthy")
//	}
package health
