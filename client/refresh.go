package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stitchwork/go-erp-client/internal/utils"
)

const refreshPath = "/auth/refresh"

// tokenPair is the payload of a successful POST /auth/refresh.
type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refreshTokens exchanges the stored refresh token for a new token pair.
//
// The exchange runs under a single-flight group: however many requests
// observe an expired session concurrently, exactly one refresh call goes
// out and every caller shares its outcome. Both tokens are persisted before
// any caller proceeds, so no retry ever runs with the old access token.
//
// Failure is terminal for the session: credentials are cleared and the
// session-expired hook fires, exactly once per failed exchange, before any
// waiter is released.
func (c *Client) refreshTokens(ctx context.Context) (*tokenPair, error) {
	result, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		pair, err := c.doRefresh(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("token refresh failed, session terminated")
			if clearErr := c.store.Clear(); clearErr != nil {
				c.logger.Warn().Err(clearErr).Msg("failed to clear credentials")
			}
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return nil, err
		}
		return pair, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug().Msg("joined in-flight token refresh")
	}
	return result.(*tokenPair), nil
}

func (c *Client) doRefresh(ctx context.Context) (*tokenPair, error) {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return nil, ErrRefreshUnavailable
	}

	spec, err := c.newRequestSpec(http.MethodPost, refreshPath, &RequestOptions{
		Body: map[string]string{"refreshToken": refreshToken},
	})
	if err != nil {
		return nil, err
	}

	// The refresh endpoint is public: no bearer token, and its own 401
	// never re-enters the refresh protocol.
	resp, err := c.execute(ctx, spec, "")
	if err != nil {
		return nil, err
	}
	if resp.Status < http.StatusOK || resp.Status >= http.StatusMultipleChoices {
		return nil, newHTTPError(resp.Status, http.StatusText(resp.Status), resp.Body)
	}

	var pair tokenPair
	if err := json.Unmarshal(resp.Body, &pair); err != nil {
		return nil, errors.Wrap(err, "[Client.doRefresh] decode refresh response")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, errors.New("[Client.doRefresh] refresh response missing tokens")
	}

	// Persist the pair before releasing any waiter. A store that cannot
	// hold the new tokens leaves the session unusable, so treat the write
	// failure like a failed refresh.
	if err := c.store.SetTokens(utils.Ptr(pair.AccessToken), utils.Ptr(pair.RefreshToken)); err != nil {
		return nil, errors.Wrap(err, "[Client.doRefresh] persist tokens")
	}

	c.logger.Info().Msg("access token refreshed")
	return &pair, nil
}

// tokenExpiring reports whether the access token is a JWT whose expiry
// falls within the configured refresh buffer. Opaque tokens and tokens
// without an exp claim never report as expiring; the reactive 401 path
// covers them.
func (c *Client) tokenExpiring(accessToken string) bool {
	if accessToken == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Sub(c.nowTime()) < c.refreshBuffer
}
