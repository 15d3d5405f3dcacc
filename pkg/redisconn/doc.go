// Package redisconn provides helpers for connecting to a Redis server: a
// retrying Connect over go-redis, an env-taggable Config, and a healthcheck
// probe.
//
//	var cfg redisconn.Config
//	config.MustLoad(&cfg)
//
//	client, err := redisconn.Connect(ctx, cfg)
//	if err != nil {
//	    // probably terminate the application
//	}
//	defer client.Close()
//
// Sentinel errors (ErrRedisNotReady, ErrFailedToParseConnString) wrap the
// underlying go-redis errors via errors.Join for easy comparison.
package redisconn
