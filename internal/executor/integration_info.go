package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// NodeDependency is the dependency name of the ledger node in IntegrationInfo.
const NodeDependency = "rippled"

// ReleaseFeed returns the tag of the latest node release, or "" when it is not known.
type ReleaseFeed interface {
	LatestTag(ctx context.Context) (string, error)
}

type IntegrationInfoProvider struct {
	gateway Gateway
	feed    ReleaseFeed
	logger  logrus.FieldLogger
}

func NewIntegrationInfoProvider(gateway Gateway, feed ReleaseFeed, logger logrus.FieldLogger) *IntegrationInfoProvider {
	return &IntegrationInfoProvider{
		gateway: gateway,
		feed:    feed,
		logger:  logger.WithField("component", "integration_info"),
	}
}

// GetInfo reports the latest validated ledger and the running vs latest released node version.
func (p *IntegrationInfoProvider) GetInfo(ctx context.Context) (*IntegrationInfo, error) {
	var (
		info    IntegrationInfo
		running *version.Version
		latest  *version.Version
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		state, err := p.gateway.ServerState(egCtx)
		if err != nil {
			return fmt.Errorf("failed to get server state: %w", err)
		}
		if state.ValidatedLedger == nil {
			return errors.New("node has no validated ledger yet, retry later")
		}
		info.Blockchain = BlockchainInfo{
			LatestBlockNumber: state.ValidatedLedger.Seq,
			LatestBlockMoment: state.ValidatedLedger.CloseMoment(),
		}

		running, err = ParseNodeVersion(state.BuildVersion)
		if err != nil {
			p.logger.WithError(err).WithField("build_version", state.BuildVersion).
				Warn("failed to parse node version")
		}
		return nil
	})
	eg.Go(func() error {
		latest = p.latestVersion(egCtx)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	info.Dependencies = map[string]DependencyInfo{
		NodeDependency: {RunningVersion: running, LatestVersion: latest},
	}
	return &info, nil
}

func (p *IntegrationInfoProvider) latestVersion(ctx context.Context) *version.Version {
	if p.feed == nil {
		return nil
	}

	tag, err := p.feed.LatestTag(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("failed to get latest node release")
		return nil
	}
	if tag == "" {
		return nil
	}

	v, err := ParseNodeVersion(tag)
	if err != nil {
		p.logger.WithError(err).WithField("tag", tag).Warn("failed to parse latest node release")
		return nil
	}
	return v
}

// ParseNodeVersion parses a rippled build version or release tag, ignoring everything after the first "-".
// A leading "v" is allowed, e.g. "v2.2.3-rc1" -> 2.2.3.
func ParseNodeVersion(raw string) (*version.Version, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "-"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" {
		return nil, errors.New("empty version")
	}
	return version.NewVersion(raw)
}
