package collect

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/classify"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/resilience"
	"github.com/faithmap/faithmap/pkg/naver"
)

// naverNamespace scopes the derived ids of Naver records, which carry no
// provider identifier.
var naverNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://openapi.naver.com/v1/search/local"))

// NaverID derives a stable identifier from name and address.
func NaverID(name, address string) string {
	return "naver:" + uuid.NewSHA1(naverNamespace, []byte(name+"|"+address)).String()
}

// NaverSource searches the Naver local endpoint. It issues a single request
// per target.
type NaverSource struct {
	client     naver.Client
	classifier *classify.Classifier
	limiter    *Limiter
	display    int
	wait       resilience.WaitConfig
}

// NewNaverSource creates a NaverSource.
func NewNaverSource(client naver.Client, classifier *classify.Classifier, limiter *Limiter, display int) *NaverSource {
	if display <= 0 || display > naver.MaxDisplay {
		display = naver.MaxDisplay
	}
	return &NaverSource{
		client:     client,
		classifier: classifier,
		limiter:    limiter,
		display:    display,
		wait:       resilience.RateLimitWait(),
	}
}

// Name implements Source.
func (s *NaverSource) Name() string { return "naver" }

// Search implements Source.
func (s *NaverSource) Search(ctx context.Context, t Target) ([]model.Facility, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "naver: rate limiter")
	}

	wait := s.wait
	onRetry := resilience.RetryLogger("naver", "local_search")
	wait.OnRetry = func(attempt int, err error) {
		s.limiter.OnRateLimit()
		onRetry(attempt, err)
	}

	resp, err := resilience.DoVal(ctx, wait, func(ctx context.Context) (*naver.LocalResponse, error) {
		return s.client.LocalSearch(ctx, t.Query(), s.display)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "naver: search %q", t.Query())
	}
	s.limiter.OnSuccess()

	out := make([]model.Facility, 0, len(resp.Items))
	for _, item := range resp.Items {
		lat, lng, err := item.LatLng()
		if err != nil {
			zap.L().Debug("naver: skipping item", zap.String("title", item.Title), zap.Error(err))
			continue
		}
		cult := s.classifier.CultType(item.Title, item.Category)
		f := model.Facility{
			ID:           NaverID(item.Title, item.Address),
			Name:         item.Title,
			Type:         t.Type,
			Address:      item.Address,
			RoadAddress:  item.RoadAddress,
			Phone:        item.Telephone,
			Lat:          lat,
			Lng:          lng,
			Category:     item.Category,
			Denomination: s.classifier.Denomination(item.Category),
			IsCult:       cult != "",
			CultType:     cult,
			Region:       t.Region,
			Source:       "naver",
		}
		if model.IsValidWebsite(item.Link) {
			f.Website = item.Link
		}
		out = append(out, f)
	}
	return out, nil
}
