package providers

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// Call runs a chat request through a client with rate limiting and
// exponential-backoff retries, using the client's declared retry settings.
// A nil limiter skips rate limiting.
func Call(ctx context.Context, client LLMClient, limiter *RateLimiter, req *ChatRequest) (*ChatResult, error) {
	attempts := client.MaxRetries()
	if attempts <= 0 {
		attempts = 1
	}
	delay := client.RetryDelayBase()
	if delay <= 0 {
		delay = time.Second
	}

	return retry.DoWithData(
		func() (*ChatResult, error) {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return nil, retry.Unrecoverable(err)
				}
			}
			return client.Chat(ctx, req)
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxJitter(delay/2),
		retry.LastErrorOnly(true),
	)
}
