/*
Copyright 2017 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package githubutil

import (
	"context"
	"math"
	"time"

	"github.com/google/go-github/github"
	"github.com/sirupsen/logrus"
)

const (
	maxRetryDelay = 20 * time.Second
	tokenReserve  = 50
)

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) sleepForAttempt(ctx context.Context, retryCount int) error {
	delay := c.RetryInitialBackoff * time.Duration(math.Exp2(float64(retryCount)))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return c.sleep(ctx, delay)
}

func (c *Client) limitRate(ctx context.Context, r github.Rate) error {
	if r.Limit == 0 || r.Remaining > tokenReserve {
		return nil
	}
	sleepDuration := time.Until(r.Reset.Time) + (time.Second * 10)
	if sleepDuration <= 0 {
		return nil
	}
	logrus.Infof("Tokens reached minimum reserve %d. Sleeping until reset in %v.", tokenReserve, sleepDuration)
	return c.sleep(ctx, sleepDuration)
}

// retry handles rate limiting and retry logic for a github API call.
func (c *Client) retry(ctx context.Context, action string, call func() (*github.Response, error)) (*github.Response, error) {
	var err error
	var resp *github.Response

	for retryCount := 0; retryCount <= c.Retries; retryCount++ {
		if resp, err = call(); err == nil {
			if resp != nil {
				if err := c.limitRate(ctx, resp.Rate); err != nil {
					return resp, err
				}
			}
			return resp, nil
		}
		switch err := err.(type) {
		case *github.RateLimitError:
			if err := c.limitRate(ctx, err.Rate); err != nil {
				return resp, err
			}
		case *github.TwoFactorAuthError:
			return resp, err
		}

		if retryCount == c.Retries {
			return resp, err
		}
		logrus.WithError(err).Warnf("Failed %s. Will retry.", action)
		if err := c.sleepForAttempt(ctx, retryCount); err != nil {
			return resp, err
		}
	}
	return resp, err
}
